package img2ascii

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration read by the asciify command.
// Zero values fall back to the package defaults.
type Config struct {
	StdHeight      int    `yaml:"std_height"`
	CharFactor     int    `yaml:"char_factor"`
	Ramp           string `yaml:"ramp"`
	Model          Model  `yaml:"model"`
	ResizeTerminal bool   `yaml:"resize_terminal"`
	DefaultImage   string `yaml:"default_image"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		StdHeight:  StdHeight,
		CharFactor: CharFactor,
		Ramp:       DefaultRampString,
		Model:      DefaultModel,
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value of the configuration.
func (c Config) Validate() error {
	if c.StdHeight < 1 {
		return fmt.Errorf("%w: std_height %d must be at least 1", ErrInvalidOption, c.StdHeight)
	}
	if c.CharFactor < 1 {
		return fmt.Errorf("%w: char_factor %d must be at least 1", ErrInvalidOption, c.CharFactor)
	}
	if !c.Model.Valid() {
		return &InvalidModelError{Name: c.Model.String()}
	}
	return NewRamp(c.Ramp).Validate()
}

// Options converts the configuration into Converter options.
func (c Config) Options() []ConverterOption {
	return []ConverterOption{
		WithHeight(c.StdHeight),
		WithCharFactor(c.CharFactor),
		WithRamp(NewRamp(c.Ramp)),
	}
}
