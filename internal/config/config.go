// Package config holds run configuration: YAML files, named presets, and
// GRAVSIM_* environment overrides. Precedence is flags > environment > file
// > preset > defaults; the CLI applies flag overrides itself.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

const (
	DefaultScheme   = "leapfrog"
	DefaultDt       = 1e-3
	DefaultDuration = 10.0
	DefaultDataDir  = ".gravsim"

	// KeepFrame disables the rest-frame transform; any out-of-range index
	// behaves the same way.
	KeepFrame = -1
)

type Config struct {
	Scheme      string  `yaml:"scheme" env:"GRAVSIM_SCHEME"`
	Dt          float64 `yaml:"dt" env:"GRAVSIM_DT"`
	Duration    float64 `yaml:"duration" env:"GRAVSIM_DURATION"`
	RestFrame   int     `yaml:"rest_frame" env:"GRAVSIM_REST_FRAME"`
	SampleEvery int     `yaml:"sample_every" env:"GRAVSIM_SAMPLE_EVERY"`
	DataDir     string  `yaml:"data_dir" env:"GRAVSIM_DATA_DIR"`

	// BodiesFile points at a CSV of initial conditions; inline Bodies win
	// when both are set.
	BodiesFile string       `yaml:"bodies_file" env:"GRAVSIM_BODIES_FILE"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

// BodyConfig is one body's initial conditions in a config file. GM is the
// mass pre-multiplied by the gravitational constant.
type BodyConfig struct {
	Pos [3]float64 `yaml:"pos"`
	Vel [3]float64 `yaml:"vel"`
	GM  float64    `yaml:"gm"`
}

func Default() *Config {
	return &Config{
		Scheme:      DefaultScheme,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		RestFrame:   KeepFrame,
		SampleEvery: 1,
		DataDir:     DefaultDataDir,
	}
}

// Load reads a YAML config over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays GRAVSIM_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// BuildBodies materializes the inline body list.
func (c *Config) BuildBodies() []world.Body {
	bodies := make([]world.Body, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		bodies = append(bodies, world.NewBody(
			vec.New(b.Pos[0], b.Pos[1], b.Pos[2]),
			vec.New(b.Vel[0], b.Vel[1], b.Vel[2]),
			b.GM,
		))
	}
	return bodies
}
