package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileConfig is the subset of settings that can be overridden from a TOML file.
type FileConfig struct {
	Network FileNetwork `toml:"network"`
	Sync    FileSync    `toml:"sync"`
	Combat  FileCombat  `toml:"combat"`
	Match   FileMatch   `toml:"match"`
	Debug   FileDebug   `toml:"debug"`
}

type FileNetwork struct {
	ServerURL      string        `toml:"server_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

type FileSync struct {
	PollInterval time.Duration `toml:"poll_interval"`
}

type FileCombat struct {
	HostileFireChance float64 `toml:"hostile_fire_chance"` // 0.0-1.0 per live enemy per tick
}

type FileMatch struct {
	DefaultMethod     string `toml:"default_method"`
	DefaultIterations int    `toml:"default_iterations"`
}

type FileDebug struct {
	ShowTelemetry bool  `toml:"show_telemetry"`
	Seed          int64 `toml:"seed"`
}

// Environment variables read by LoadEnv.
const (
	EnvServerURL         = "CHAOS_SERVER_URL"
	EnvPollIntervalMS    = "CHAOS_POLL_INTERVAL_MS"
	EnvHostileFireChance = "CHAOS_HOSTILE_FIRE_CHANCE"
	EnvSeed              = "CHAOS_SEED"
)

func currentFileConfig() FileConfig {
	return FileConfig{
		Network: FileNetwork{ServerURL: Network.ServerURL, RequestTimeout: Network.RequestTimeout},
		Sync:    FileSync{PollInterval: Sync.PollInterval},
		Combat:  FileCombat{HostileFireChance: Combat.HostileFireChance},
		Match:   FileMatch{DefaultMethod: Match.DefaultMethod, DefaultIterations: Match.DefaultIterations},
		Debug:   FileDebug{ShowTelemetry: Debug.ShowTelemetry, Seed: Debug.Seed},
	}
}

// ParseFile decodes TOML data on top of the current settings.
func ParseFile(data []byte) (FileConfig, error) {
	fc := currentFileConfig()
	if err := toml.Unmarshal(data, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := fc.validate(); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}

func (fc FileConfig) validate() error {
	if fc.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync.poll_interval must be positive, got %v", fc.Sync.PollInterval)
	}
	if fc.Combat.HostileFireChance < 0 || fc.Combat.HostileFireChance > 1 {
		return fmt.Errorf("combat.hostile_fire_chance must be within [0, 1], got %v", fc.Combat.HostileFireChance)
	}
	if fc.Match.DefaultIterations <= 0 {
		return fmt.Errorf("match.default_iterations must be positive, got %d", fc.Match.DefaultIterations)
	}
	return nil
}

// Apply copies the file settings into the global configuration.
func (fc FileConfig) Apply() {
	Network.ServerURL = fc.Network.ServerURL
	Network.RequestTimeout = fc.Network.RequestTimeout
	Sync.PollInterval = fc.Sync.PollInterval
	Combat.HostileFireChance = fc.Combat.HostileFireChance
	Match.DefaultMethod = fc.Match.DefaultMethod
	Match.DefaultIterations = fc.Match.DefaultIterations
	Debug.ShowTelemetry = fc.Debug.ShowTelemetry
	Debug.Seed = fc.Debug.Seed
}

// LoadFile reads a TOML config file and applies it.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	fc, err := ParseFile(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fc.Apply()
	log.Printf("[config] loaded %s", path)
	return nil
}

// LoadEnv loads .env files (missing files are fine) and applies CHAOS_*
// variables from the environment.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return ApplyEnv(os.Getenv)
}

// ApplyEnv applies CHAOS_* variables using lookup.
func ApplyEnv(lookup func(string) string) error {
	if v := lookup(EnvServerURL); v != "" {
		Network.ServerURL = v
	}
	if v := lookup(EnvPollIntervalMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("%s: invalid interval %q", EnvPollIntervalMS, v)
		}
		Sync.PollInterval = time.Duration(ms) * time.Millisecond
	}
	if v := lookup(EnvHostileFireChance); v != "" {
		chance, err := strconv.ParseFloat(v, 64)
		if err != nil || chance < 0 || chance > 1 {
			return fmt.Errorf("%s: invalid chance %q", EnvHostileFireChance, v)
		}
		Combat.HostileFireChance = chance
	}
	if v := lookup(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid seed %q", EnvSeed, v)
		}
		Debug.Seed = seed
	}
	return nil
}
