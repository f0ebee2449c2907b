// Package config loads the per-process JSON configuration files for the
// sender, director and sensors binaries.
package config

import (
	"encoding/json"
	"os"

	"github.com/fcurrie/ledsign/internal/types"
)

// SenderConfig configures the Transport process.
type SenderConfig struct {
	Sign    types.SignConfig    `json:"sign"`
	Broker  types.BrokerConfig  `json:"broker"`
	Logging types.LoggingConfig `json:"logging"`
	Affinity types.AffinityConfig `json:"affinity"`
}

// DirectorConfig configures the Orchestrator process.
type DirectorConfig struct {
	Sign      types.SignConfig     `json:"sign"`
	Broker    types.BrokerConfig   `json:"broker"`
	Logging   types.LoggingConfig  `json:"logging"`
	Affinity  types.AffinityConfig `json:"affinity"`
	MoviePath string               `json:"moviePath"`
	// FontPath is an optional TTF file for the Text drawable; empty uses
	// the canvas package's built-in bitmap fallback.
	FontPath string `json:"fontPath"`
	// ThemeTag selects an embedded SVG watermark composited behind every
	// frame; empty disables the watermark.
	ThemeTag string `json:"themeTag"`
}

// SensorsConfig configures the Ambient controller process.
type SensorsConfig struct {
	Sensor   types.SensorConfig   `json:"sensor"`
	Broker   types.BrokerConfig   `json:"broker"`
	Logging  types.LoggingConfig  `json:"logging"`
	Affinity types.AffinityConfig `json:"affinity"`
}

// LoadSenderConfig loads the Transport configuration from path, merging
// onto DefaultSenderConfig's values. Callers fall back to the defaults
// themselves on error, the same pattern the matrix demo used.
func LoadSenderConfig(path string) (*SenderConfig, error) {
	cfg := DefaultSenderConfig()
	if err := loadJSON(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDirectorConfig loads the Orchestrator configuration from path.
func LoadDirectorConfig(path string) (*DirectorConfig, error) {
	cfg := DefaultDirectorConfig()
	if err := loadJSON(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSensorsConfig loads the Ambient controller configuration from path.
func LoadSensorsConfig(path string) (*SensorsConfig, error) {
	cfg := DefaultSensorsConfig()
	if err := loadJSON(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadJSON(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewDecoder(file).Decode(v)
}

// DefaultSenderConfig returns the configuration used when no file is given.
func DefaultSenderConfig() *SenderConfig {
	return &SenderConfig{
		Sign: types.SignConfig{
			Width:  320,
			Height: 64,
			FPS:    240,
		},
		Broker: types.BrokerConfig{
			SocketPath: "/var/run/redis/redis-server.sock",
		},
		Logging: types.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Affinity: types.AffinityConfig{Core: 0},
	}
}

// DefaultDirectorConfig returns the configuration used when no file is given.
func DefaultDirectorConfig() *DirectorConfig {
	return &DirectorConfig{
		Sign: types.SignConfig{
			Width:  320,
			Height: 64,
			FPS:    240,
		},
		Broker: types.BrokerConfig{
			SocketPath: "/var/run/redis/redis-server.sock",
		},
		Logging: types.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Affinity:  types.AffinityConfig{Core: 1},
		MoviePath: "movies/default.yaml",
		ThemeTag:  "classic",
	}
}

// DefaultSensorsConfig returns the configuration used when no file is given.
func DefaultSensorsConfig() *SensorsConfig {
	return &SensorsConfig{
		Sensor: types.SensorConfig{
			Bus:     1,
			Address: 0x23,
		},
		Broker: types.BrokerConfig{
			SocketPath: "/var/run/redis/redis-server.sock",
		},
		Logging: types.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Affinity: types.AffinityConfig{Core: 2},
	}
}
