package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

// fakeDocker replays a scripted sequence of container states per id.
type fakeDocker struct {
	mu         sync.Mutex
	containers []types.Container
	listErr    error
	listOpts   container.ListOptions
	execErr    error
	execCmds   map[string][]string
	states     map[string][]types.ContainerJSON
	inspectErr error
	closed     bool
}

func newFakeDocker() *fakeDocker {
	return &fakeDocker{
		execCmds: make(map[string][]string),
		states:   make(map[string][]types.ContainerJSON),
	}
}

func (d *fakeDocker) ContainerList(_ context.Context, options container.ListOptions) ([]types.Container, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listOpts = options
	return d.containers, d.listErr
}

func (d *fakeDocker) ContainerExecCreate(_ context.Context, id string, options container.ExecOptions) (types.IDResponse, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.execErr != nil {
		return types.IDResponse{}, d.execErr
	}
	d.execCmds[id] = options.Cmd
	return types.IDResponse{ID: "exec-" + id}, nil
}

func (d *fakeDocker) ContainerExecStart(context.Context, string, container.ExecStartOptions) error {
	return nil
}

// ContainerInspect pops the next scripted state; the last one repeats.
func (d *fakeDocker) ContainerInspect(_ context.Context, id string) (types.ContainerJSON, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inspectErr != nil {
		return types.ContainerJSON{}, d.inspectErr
	}
	seq := d.states[id]
	if len(seq) == 0 {
		return containerState("", true, ""), nil
	}
	next := seq[0]
	if len(seq) > 1 {
		d.states[id] = seq[1:]
	}
	return next, nil
}

func (d *fakeDocker) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func containerState(name string, running bool, health string) types.ContainerJSON {
	state := &types.ContainerState{Running: running}
	if health != "" {
		state.Health = &types.Health{Status: health}
	}
	return types.ContainerJSON{ContainerJSONBase: &types.ContainerJSONBase{Name: name, State: state}}
}

func newTestDockerFleet(api *fakeDocker) *DockerFleet {
	f := newDockerFleet(api, "")
	f.pollEvery = time.Millisecond
	f.failAfter = 50 * time.Millisecond
	return f
}

func waitPending(t *testing.T, f *DockerFleet) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.Wait(ctx); err != nil {
		t.Fatalf("Expected monitor to finish, got %v", err)
	}
}

func TestDockerHealthyFiltersAndNames(t *testing.T) {
	api := newFakeDocker()
	api.containers = []types.Container{
		{ID: "c1", Names: []string{"/web-1"}},
		{ID: "c2"},
	}
	f := newTestDockerFleet(api)

	healthy := f.Healthy()
	if len(healthy) != 2 {
		t.Fatalf("Expected 2 targets, got %d", len(healthy))
	}
	if healthy[0].ID != "c1" || healthy[0].DisplayName() != "web-1" {
		t.Errorf("Expected c1/web-1, got %s/%s", healthy[0].ID, healthy[0].DisplayName())
	}
	if healthy[1].DisplayName() != netconfig.UnknownName {
		t.Errorf("Expected %s for unnamed container, got %s", netconfig.UnknownName, healthy[1].DisplayName())
	}

	if got := api.listOpts.Filters.Get("label"); len(got) != 1 || got[0] != DefaultTargetLabel {
		t.Errorf("Expected label filter %s, got %v", DefaultTargetLabel, got)
	}
	if got := api.listOpts.Filters.Get("health"); len(got) != 1 || got[0] != "healthy" {
		t.Errorf("Expected health filter healthy, got %v", got)
	}
}

func TestDockerHealthyListError(t *testing.T) {
	api := newFakeDocker()
	api.listErr = errors.New("daemon unreachable")
	f := newTestDockerFleet(api)

	healthy := f.Healthy()
	if healthy == nil || len(healthy) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", healthy)
	}
}

func TestDockerKillMeasuresRecovery(t *testing.T) {
	api := newFakeDocker()
	api.containers = []types.Container{{ID: "c1", Names: []string{"/web-1"}}}
	api.states["c1"] = []types.ContainerJSON{
		containerState("/web-1", true, "healthy"),
		containerState("/web-1", false, "unhealthy"),
		containerState("/web-1", true, "starting"),
		containerState("/web-1", true, "healthy"),
	}
	f := newTestDockerFleet(api)
	f.Healthy()

	if err := f.Kill("c1", netconfig.KillSIGTERM); err != nil {
		t.Fatalf("Expected kill to succeed, got %v", err)
	}
	cmd := api.execCmds["c1"]
	want := []string{"kill", "-s", "SIGTERM", "-1"}
	if len(cmd) != len(want) {
		t.Fatalf("Expected exec %v, got %v", want, cmd)
	}
	for i := range want {
		if cmd[i] != want[i] {
			t.Errorf("Expected exec %v, got %v", want, cmd)
			break
		}
	}

	waitPending(t, f)
	stats := f.Stats()
	if len(stats) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(stats))
	}
	if stats[0].State != netconfig.RecoveryRecovered {
		t.Errorf("Expected RECOVERED, got %s", stats[0].State)
	}
	if stats[0].Container.DisplayName() != "web-1" {
		t.Errorf("Expected web-1, got %s", stats[0].Container.DisplayName())
	}
	if stats[0].KillMethod != "SIGTERM" {
		t.Errorf("Expected SIGTERM, got %s", stats[0].KillMethod)
	}
}

func TestDockerContainerWithoutHealthCheck(t *testing.T) {
	api := newFakeDocker()
	api.states["c1"] = []types.ContainerJSON{
		containerState("/plain", false, ""),
		containerState("/plain", true, ""),
	}
	f := newTestDockerFleet(api)

	if err := f.Kill("c1", netconfig.KillSIGKILL); err != nil {
		t.Fatalf("Expected kill to succeed, got %v", err)
	}
	waitPending(t, f)
	if stats := f.Stats(); len(stats) != 1 || stats[0].State != netconfig.RecoveryRecovered {
		t.Errorf("Expected one RECOVERED measurement, got %+v", stats)
	}
}

func TestDockerKillFailures(t *testing.T) {
	tests := []struct {
		name   string
		states []types.ContainerJSON
		err    error
	}{
		{"never goes down", []types.ContainerJSON{containerState("/x", true, "healthy")}, nil},
		{"never comes back", []types.ContainerJSON{containerState("/x", false, "unhealthy")}, nil},
		{"inspect error", nil, errors.New("no such container")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeDocker()
			api.states["c1"] = tt.states
			api.inspectErr = tt.err
			f := newTestDockerFleet(api)

			if err := f.Kill("c1", netconfig.KillSIGSEGV); err != nil {
				t.Fatalf("Expected kill to succeed, got %v", err)
			}
			waitPending(t, f)

			stats := f.Stats()
			if len(stats) != 1 {
				t.Fatalf("Expected 1 measurement, got %d", len(stats))
			}
			if stats[0].State != netconfig.RecoveryFailed {
				t.Errorf("Expected FAILED, got %s", stats[0].State)
			}
			if stats[0].TimeToRecover != 0 {
				t.Errorf("Expected zero ttr, got %s", stats[0].TimeToRecover)
			}
		})
	}
}

func TestDockerKillExecError(t *testing.T) {
	api := newFakeDocker()
	api.execErr = errors.New("container not running")
	f := newTestDockerFleet(api)

	if err := f.Kill("c1", netconfig.KillSIGKILL); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Expected ErrUnknownTarget, got %v", err)
	}
	if f.Pending() != 0 {
		t.Errorf("Expected nothing pending, got %d", f.Pending())
	}
}

func TestDockerResetDropsRunningMonitors(t *testing.T) {
	api := newFakeDocker()
	api.states["c1"] = []types.ContainerJSON{containerState("/x", true, "healthy")}
	f := newTestDockerFleet(api)
	f.failAfter = time.Hour

	if err := f.Kill("c1", netconfig.KillSIGKILL); err != nil {
		t.Fatalf("Expected kill to succeed, got %v", err)
	}
	f.Reset()

	if f.Pending() != 0 {
		t.Errorf("Expected reset to clear pending, got %d", f.Pending())
	}
	time.Sleep(20 * time.Millisecond)
	if got := len(f.Stats()); got != 0 {
		t.Errorf("Expected no measurements after reset, got %d", got)
	}

	if err := f.Close(); err != nil {
		t.Errorf("Expected clean close, got %v", err)
	}
	if !api.closed {
		t.Error("Expected docker client closed")
	}
}
