// Package types holds the small set of plain data structures shared
// across the sender, director and sensors processes.
package types

// SignConfig describes the physical geometry of the attached LED matrix.
type SignConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`
}

// BrokerConfig names how to reach the shared key-value/pub-sub broker.
type BrokerConfig struct {
	SocketPath string `json:"socketPath"`
}

// LoggingConfig controls the verbosity and encoding of structured logs.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// SensorConfig names the I2C bus and address of the ambient light sensor.
type SensorConfig struct {
	Bus     int  `json:"bus"`
	Address byte `json:"address"`
}

// AffinityConfig pins a process to one CPU core, per the one-core-per-role
// resource model.
type AffinityConfig struct {
	Core int `json:"core"`
}
