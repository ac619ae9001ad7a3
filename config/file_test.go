package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// snapshot restores the globals touched by these tests.
func snapshot(t *testing.T) {
	t.Helper()
	network, sync, combat, match, debug := Network, Sync, Combat, Match, Debug
	t.Cleanup(func() {
		Network, Sync, Combat, Match, Debug = network, sync, combat, match, debug
	})
}

func TestParseFileOverridesOnlyGivenKeys(t *testing.T) {
	snapshot(t)

	fc, err := ParseFile([]byte(`
[network]
server_url = "http://10.0.0.5:8080"

[sync]
poll_interval = "250ms"

[combat]
hostile_fire_chance = 0.02
`))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if fc.Network.ServerURL != "http://10.0.0.5:8080" {
		t.Errorf("Expected server url override, got %q", fc.Network.ServerURL)
	}
	if fc.Sync.PollInterval != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", fc.Sync.PollInterval)
	}
	if fc.Network.RequestTimeout != Network.RequestTimeout {
		t.Errorf("Expected default timeout %v kept, got %v", Network.RequestTimeout, fc.Network.RequestTimeout)
	}
	if fc.Match.DefaultIterations != Match.DefaultIterations {
		t.Errorf("Expected default iterations kept, got %d", fc.Match.DefaultIterations)
	}

	fc.Apply()
	if Combat.HostileFireChance != 0.02 {
		t.Errorf("Expected applied chance 0.02, got %v", Combat.HostileFireChance)
	}
}

func TestParseFileRejectsInvalidValues(t *testing.T) {
	snapshot(t)

	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "[network"},
		{"chance above one", "[combat]\nhostile_fire_chance = 1.5"},
		{"zero iterations", "[match]\ndefault_iterations = 0"},
		{"negative interval", "[sync]\npoll_interval = \"-1s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFile([]byte(tt.data)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	snapshot(t)

	path := filepath.Join(t.TempDir(), "client.toml")
	if err := os.WriteFile(path, []byte("[debug]\nseed = 42\nshow_telemetry = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if Debug.Seed != 42 || !Debug.ShowTelemetry {
		t.Errorf("Expected seed 42 with telemetry, got %+v", Debug)
	}

	if err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	snapshot(t)

	env := map[string]string{
		EnvServerURL:         "http://controller:9000",
		EnvPollIntervalMS:    "750",
		EnvHostileFireChance: "0.1",
		EnvSeed:              "7",
	}
	if err := ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if Network.ServerURL != "http://controller:9000" {
		t.Errorf("Expected env server url, got %q", Network.ServerURL)
	}
	if Sync.PollInterval != 750*time.Millisecond {
		t.Errorf("Expected 750ms, got %v", Sync.PollInterval)
	}
	if Combat.HostileFireChance != 0.1 {
		t.Errorf("Expected 0.1, got %v", Combat.HostileFireChance)
	}
	if Debug.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", Debug.Seed)
	}

	bad := map[string]string{EnvPollIntervalMS: "soon"}
	if err := ApplyEnv(func(k string) string { return bad[k] }); err == nil {
		t.Error("Expected error for invalid interval")
	}
}

func TestLoadEnvFile(t *testing.T) {
	snapshot(t)
	t.Setenv(EnvSeed, "")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CHAOS_SEED=99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set, so clear it first.
	os.Unsetenv(EnvSeed)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if Debug.Seed != 99 {
		t.Errorf("Expected seed 99 from .env, got %d", Debug.Seed)
	}

	if err := LoadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}
}
