// Package config is the YAML-backed configuration surface for pjonctl and
// any other host binary embedding this module — every knob spec §6 lists
// as a device configuration property gets a field here.
package config

// Config is the top-level document a config file unmarshals into.
type Config struct {
	Device DeviceConfig `yaml:"device"`
	Bus    BusConfig    `yaml:"bus"`
	Serial SerialConfig `yaml:"serial"`
}

// DeviceConfig covers the identity and addressing knobs of spec §6's
// configuration surface table.
type DeviceConfig struct {
	ID                uint8   `yaml:"id"`
	AcquireID         bool    `yaml:"acquire_id"`
	BusID             [4]byte `yaml:"bus_id"`
	SharedNetwork     bool    `yaml:"shared_network"`
	IncludeSenderInfo bool    `yaml:"include_sender_info"`
	Router            bool    `yaml:"router"`
}

// BusConfig covers delivery-behavior knobs.
type BusConfig struct {
	Acknowledge        bool   `yaml:"acknowledge"`
	AutoDelete         bool   `yaml:"auto_delete"`
	CommunicationMode  string `yaml:"communication_mode"` // "half_duplex" or "simplex"
	InputPin           *uint8 `yaml:"input_pin"`
	OutputPin          *uint8 `yaml:"output_pin"`
}

// SerialConfig covers the strategies/serial.Options this device's
// Strategy is built from.
type SerialConfig struct {
	Port            string `yaml:"port"`
	BaudRate        uint   `yaml:"baud_rate"`
	ResponseTimeoutMs int  `yaml:"response_timeout_ms"`
}

// Default returns the spec §6 default configuration: local, half-duplex,
// acknowledged, auto-deleting, id NotAssigned pending AcquireID.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			ID: 255,
		},
		Bus: BusConfig{
			Acknowledge:       true,
			AutoDelete:        true,
			CommunicationMode: "half_duplex",
		},
		Serial: SerialConfig{
			BaudRate:          9600,
			ResponseTimeoutMs: 10,
		},
	}
}
