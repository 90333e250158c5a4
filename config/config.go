// Package config loads orrery host settings from TOML
// Values absent from the file keep their defaults
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
)

// ErrInvalid marks a configuration that parsed but cannot be used
var ErrInvalid = errors.New("invalid config")

// Limits
const (
	MaxMultiplier = 10
	MinFPS        = 1
	MaxFPS        = 240
)

type Speed struct {
	Orbit    float64 `toml:"orbit"`
	Rotation float64 `toml:"rotation"`
}

type Scene struct {
	AUScale float64 `toml:"au_scale"`
}

// View holds terminal viewer settings
type View struct {
	FPS  int  `toml:"fps"`
	Mute bool `toml:"mute"`

	// Camera circles the sun at CameraDistance, raised by CameraHeight
	CameraDistance float64 `toml:"camera_distance"`
	CameraHeight   float64 `toml:"camera_height"`
}

// Assets selects the body catalog; empty Catalog uses the embedded one
type Assets struct {
	Catalog string        `toml:"catalog"`
	Latency time.Duration `toml:"latency"`
}

type Metrics struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the complete host configuration
type Config struct {
	Speed   Speed   `toml:"speed"`
	Scene   Scene   `toml:"scene"`
	View    View    `toml:"view"`
	Assets  Assets  `toml:"assets"`
	Metrics Metrics `toml:"metrics"`
	Log     Log     `toml:"log"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Speed: Speed{Orbit: 1, Rotation: 1},
		Scene: Scene{AUScale: 0.5},
		View: View{
			FPS:            30,
			CameraDistance: 4,
			CameraHeight:   2,
		},
		Log: Log{Level: "info"},
	}
}

// Parse overlays TOML data on the defaults
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path, or returns the defaults when path is empty
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config read: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first unusable value
func (c *Config) Validate() error {
	if !inRange(c.Speed.Orbit, 0, MaxMultiplier) {
		return fmt.Errorf("%w: speed.orbit %v outside [0, %d]", ErrInvalid, c.Speed.Orbit, MaxMultiplier)
	}
	if !inRange(c.Speed.Rotation, 0, MaxMultiplier) {
		return fmt.Errorf("%w: speed.rotation %v outside [0, %d]", ErrInvalid, c.Speed.Rotation, MaxMultiplier)
	}
	if !(c.Scene.AUScale > 0) || math.IsInf(c.Scene.AUScale, 1) {
		return fmt.Errorf("%w: scene.au_scale must be positive, got %v", ErrInvalid, c.Scene.AUScale)
	}
	if c.View.FPS < MinFPS || c.View.FPS > MaxFPS {
		return fmt.Errorf("%w: view.fps %d outside [%d, %d]", ErrInvalid, c.View.FPS, MinFPS, MaxFPS)
	}
	if !(c.View.CameraDistance > 0) {
		return fmt.Errorf("%w: view.camera_distance must be positive, got %v", ErrInvalid, c.View.CameraDistance)
	}
	if c.Assets.Latency < 0 {
		return fmt.Errorf("%w: assets.latency must not be negative, got %v", ErrInvalid, c.Assets.Latency)
	}
	if hclog.LevelFromString(c.Log.Level) == hclog.NoLevel {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// FrameInterval converts FPS to the ticker period
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.View.FPS)
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
