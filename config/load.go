package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML config file, starting from Default() so an
// omitted section keeps its default values rather than zeroing out.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

// Validate checks a loaded Config for values the bus package would
// otherwise reject less legibly (spec §6's constraints).
func Validate(cfg *Config) error {
	if cfg.Serial.Port == "" {
		return errors.New("config: serial.port is required")
	}
	switch cfg.Bus.CommunicationMode {
	case "", "half_duplex", "simplex":
	default:
		return errors.Errorf("config: bus.communication_mode %q is not half_duplex or simplex", cfg.Bus.CommunicationMode)
	}
	if (cfg.Bus.InputPin == nil) != (cfg.Bus.OutputPin == nil) {
		return errors.New("config: bus.input_pin and bus.output_pin must be set together")
	}
	return nil
}
