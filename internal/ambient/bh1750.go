// Package ambient implements the Ambient controller: it samples a
// BH1750FVI ambient-light sensor over I2C, maps lux to a perceptual
// brightness value, smooths and rate-limits it, and publishes it to the
// broker. Bus access follows periph.io/x/host's Init-then-open pattern,
// the same shape the SPI display driver in the reference pack uses for
// its own bus.
package ambient

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const (
	// Address is the BH1750FVI's fixed I2C address with ADDR tied low.
	Address = 0x23

	opPowerOn           = 0x01
	opOneTimeHighRes    = 0x21
	measurementWait      = 180 * time.Millisecond
	// luxDivisor converts the sensor's raw count to lux per the
	// datasheet's default measurement-time accuracy constant.
	luxDivisor = 1.2
)

// Sensor is a BH1750FVI bound to one I2C bus.
type Sensor struct {
	busName string
	bus     i2c.BusCloser
	dev     *i2c.Dev
}

// Open initializes the periph.io host drivers (idempotent across
// repeated calls within one process) and opens the named I2C bus,
// binding a device handle at Address. busName may be empty to let
// i2creg pick the default bus.
func Open(busName string) (*Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	return &Sensor{
		busName: busName,
		bus:     bus,
		dev:     &i2c.Dev{Addr: Address, Bus: bus},
	}, nil
}

// Close releases the underlying bus handle.
func (s *Sensor) Close() error {
	return s.bus.Close()
}

// Reopen closes and reopens the bus handle, the Ambient controller's
// recovery step after an I2C error.
func (s *Sensor) Reopen() error {
	_ = s.bus.Close()
	bus, err := i2creg.Open(s.busName)
	if err != nil {
		return fmt.Errorf("reopen i2c bus %q: %w", s.busName, err)
	}
	s.bus = bus
	s.dev = &i2c.Dev{Addr: Address, Bus: bus}
	return nil
}

// ReadLux performs one one-time high-resolution measurement: power-on,
// trigger, wait for the conversion, then read the 2-byte big-endian
// result and convert to lux. The sensor auto-powers-down after the
// measurement completes.
func (s *Sensor) ReadLux() (float64, error) {
	if err := s.dev.Tx([]byte{opPowerOn}, nil); err != nil {
		return 0, fmt.Errorf("bh1750 power-on: %w", err)
	}
	if err := s.dev.Tx([]byte{opOneTimeHighRes}, nil); err != nil {
		return 0, fmt.Errorf("bh1750 trigger: %w", err)
	}

	time.Sleep(measurementWait)

	raw := make([]byte, 2)
	if err := s.dev.Tx(nil, raw); err != nil {
		return 0, fmt.Errorf("bh1750 read: %w", err)
	}

	count := binary.BigEndian.Uint16(raw)
	return float64(count) / luxDivisor, nil
}
