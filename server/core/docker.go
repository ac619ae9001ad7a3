package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

// DefaultTargetLabel selects the containers a match may shoot at.
const DefaultTargetLabel = "tested=true"

// dockerAPI is the part of the Docker client a DockerFleet needs.
type dockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerExecCreate(ctx context.Context, containerID string, options container.ExecOptions) (types.IDResponse, error)
	ContainerExecStart(ctx context.Context, execID string, options container.ExecStartOptions) error
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	Close() error
}

// DockerFleet shoots at labelled containers on a Docker host. A kill runs
// `kill -s <method> -1` inside the container; a monitor then times how long
// the container takes to go down and come back healthy.
type DockerFleet struct {
	api       dockerAPI
	label     string
	pollEvery time.Duration
	failAfter time.Duration
	timeout   time.Duration

	mu      sync.Mutex
	names   map[string]string
	stats   []messages.RecoveryData
	pending int
	round   uint64

	ctx    context.Context
	cancel context.CancelFunc // Stops monitors of the current round
}

// NewDockerFleet connects to the Docker host described by the environment
// (DOCKER_HOST and friends).
func NewDockerFleet(label string) (*DockerFleet, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return newDockerFleet(cli, label), nil
}

func newDockerFleet(api dockerAPI, label string) *DockerFleet {
	if label == "" {
		label = DefaultTargetLabel
	}
	f := &DockerFleet{
		api:       api,
		label:     label,
		pollEvery: 500 * time.Millisecond,
		failAfter: DefaultFailAfter,
		timeout:   5 * time.Second,
		names:     make(map[string]string),
	}
	f.ctx, f.cancel = context.WithCancel(context.Background())
	return f
}

// Healthy lists running containers that carry the target label and report a
// healthy status. Docker errors are logged and yield an empty list.
func (f *DockerFleet) Healthy() []messages.EntityInfo {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	args := filters.NewArgs(
		filters.Arg("label", f.label),
		filters.Arg("health", "healthy"),
	)
	containers, err := f.api.ContainerList(ctx, container.ListOptions{Filters: args})
	if err != nil {
		log.Printf("[docker] list containers: %v", err)
		return []messages.EntityInfo{}
	}

	result := make([]messages.EntityInfo, 0, len(containers))
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range containers {
		info := messages.EntityInfo{ID: c.ID}
		if len(c.Names) > 0 {
			info.Name = c.Names[0]
			f.names[c.ID] = c.Names[0]
		}
		result = append(result, info)
	}
	return result
}

func (f *DockerFleet) Kill(id string, method netconfig.KillMethod) error {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	exec, err := f.api.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd: []string{"kill", "-s", string(method), "-1"},
	})
	if err != nil {
		return fmt.Errorf("%w: exec create on %s: %v", ErrUnknownTarget, id, err)
	}
	if err := f.api.ContainerExecStart(ctx, exec.ID, container.ExecStartOptions{}); err != nil {
		return fmt.Errorf("exec start on %s: %w", id, err)
	}

	f.mu.Lock()
	f.pending++
	round, monitorCtx := f.round, f.ctx
	name := f.names[id]
	f.mu.Unlock()

	log.Printf("[docker] %s %s", method, displayName(id, name))
	go f.monitor(monitorCtx, round, messages.EntityInfo{ID: id, Name: name}, method)
	return nil
}

func displayName(id, name string) string {
	if name == "" {
		return id
	}
	return messages.EntityInfo{Name: name}.DisplayName()
}

// monitor waits for the container to go down, then for it to come back. Each
// phase may take up to failAfter before the kill is recorded as failed.
func (f *DockerFleet) monitor(ctx context.Context, round uint64, target messages.EntityInfo, method netconfig.KillMethod) {
	ticker := time.NewTicker(f.pollEvery)
	defer ticker.Stop()

	fail := func() {
		f.record(round, target, method, 0, netconfig.RecoveryFailed)
	}

	wait := func(done func(types.ContainerJSON) bool) (time.Time, bool) {
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return time.Time{}, false
			case <-ticker.C:
			}
			state, err := f.inspect(ctx, target.ID)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("[docker] inspect %s: %v", target.ID, err)
					fail()
				}
				return time.Time{}, false
			}
			if done(state) {
				if state.ContainerJSONBase != nil && state.Name != "" {
					target.Name = state.Name
				}
				return time.Now(), true
			}
			if time.Since(start) >= f.failAfter {
				fail()
				return time.Time{}, false
			}
		}
	}

	downAt, ok := wait(func(s types.ContainerJSON) bool { return !containerUp(s) })
	if !ok {
		return
	}
	upAt, ok := wait(containerUp)
	if !ok {
		return
	}
	f.record(round, target, method, upAt.Sub(downAt), netconfig.RecoveryRecovered)
}

func (f *DockerFleet) inspect(ctx context.Context, id string) (types.ContainerJSON, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.api.ContainerInspect(ctx, id)
}

// containerUp reports whether a container is running and, when it has a
// health check, healthy.
func containerUp(s types.ContainerJSON) bool {
	if s.ContainerJSONBase == nil || s.State == nil || !s.State.Running {
		return false
	}
	if s.State.Health != nil {
		return s.State.Health.Status == "healthy"
	}
	return true
}

func (f *DockerFleet) record(round uint64, target messages.EntityInfo, method netconfig.KillMethod, ttr time.Duration, state string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if round != f.round {
		return
	}
	f.stats = append(f.stats, messages.RecoveryData{
		Container:     target,
		KillMethod:    string(method),
		TimeToRecover: ttr,
		State:         state,
	})
	f.pending--
	log.Printf("[docker] %s %s after %s", displayName(target.ID, target.Name), state, ttr.Round(time.Millisecond))
}

func (f *DockerFleet) Stats() []messages.RecoveryData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]messages.RecoveryData(nil), f.stats...)
}

func (f *DockerFleet) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *DockerFleet) Wait(ctx context.Context) error {
	return waitIdle(ctx, f.Pending)
}

// Reset abandons running monitors and forgets all measurements. The
// containers themselves are left alone.
func (f *DockerFleet) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancel()
	f.ctx, f.cancel = context.WithCancel(context.Background())
	f.round++
	f.stats = nil
	f.pending = 0
}

// Close stops every monitor and releases the Docker client.
func (f *DockerFleet) Close() error {
	f.mu.Lock()
	f.cancel()
	f.mu.Unlock()
	return f.api.Close()
}
