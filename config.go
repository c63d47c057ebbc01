package shapebatch

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// SHAPEBATCH_MAX_VERTICES=4096.
const EnvPrefix = "SHAPEBATCH"

// MinVertices is the smallest usable buffer: one rectangle (two triangles).
const MinVertices = 6

// Config holds renderer settings.
//
// Values are layered: DefaultConfig, then an optional YAML file, then
// environment variables with the SHAPEBATCH_ prefix.
type Config struct {
	// Width and Height are the logical viewport size.
	Width  int `yaml:"width" envconfig:"WIDTH"`
	Height int `yaml:"height" envconfig:"HEIGHT"`

	// Resolution is the device pixel ratio applied to Width and Height.
	Resolution float64 `yaml:"resolution" envconfig:"RESOLUTION"`

	// MaxVertices is the vertex buffer capacity. The buffer never grows;
	// it is flushed when full.
	MaxVertices int `yaml:"max_vertices" envconfig:"MAX_VERTICES"`

	// SPIRV makes the renderer hand precompiled SPIR-V to the device
	// instead of WGSL source.
	SPIRV bool `yaml:"spirv" envconfig:"SPIRV"`

	// ClearBeforeRender clears the target to ClearColor at the start of
	// each rendered frame.
	ClearBeforeRender bool `yaml:"clear_before_render" envconfig:"CLEAR_BEFORE_RENDER"`

	// ClearColor is a hex color string (see Hex).
	ClearColor string `yaml:"clear_color" envconfig:"CLEAR_COLOR"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:             800,
		Height:            600,
		Resolution:        1,
		MaxVertices:       10000,
		ClearBeforeRender: true,
		ClearColor:        "#000000",
	}
}

// LoadConfig builds a Config from defaults, the YAML file at path (skipped
// when path is empty) and SHAPEBATCH_* environment variables, then
// validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: resolution %v", ErrInvalidConfig, c.Resolution)
	}
	if c.MaxVertices < MinVertices {
		return fmt.Errorf("%w: max_vertices %d < %d", ErrInvalidConfig, c.MaxVertices, MinVertices)
	}
	return nil
}
