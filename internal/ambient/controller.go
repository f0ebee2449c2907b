package ambient

import (
	"context"
	"log/slog"
	"time"

	"github.com/fcurrie/ledsign/internal/broker"
)

const sampleInterval = time.Second

// Controller owns the sensor handle and the smoothing/rate-limiting
// pipeline, publishing a brightness update to the broker on each sample
// cycle in which the rate-limited value changes.
type Controller struct {
	logger   *slog.Logger
	sensor   *Sensor
	client   *broker.Client
	smoother *Smoother
}

// NewController seeds the smoother from the broker's persisted
// brightness if present, defaulting to the midpoint otherwise.
func NewController(logger *slog.Logger, sensor *Sensor, client *broker.Client) *Controller {
	initial := 50
	if v, ok, err := client.PlayerBrightness(context.Background()); err == nil && ok {
		initial = v
	}
	return &Controller{logger: logger, sensor: sensor, client: client, smoother: NewSmoother(initial)}
}

// Run samples the sensor once per sampleInterval until ctx is cancelled,
// publishing the rate-limited brightness whenever it changes; a cycle
// whose value is unchanged publishes nothing. I2C errors trigger
// a bus reopen and a 1s pause rather than stopping the loop.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		lux, err := c.sensor.ReadLux()
		if err != nil {
			c.logger.Warn("bh1750 read failed, reopening bus", "error", err)
			if rerr := c.sensor.Reopen(); rerr != nil {
				c.logger.Error("bh1750 reopen failed", "error", rerr)
			}
			time.Sleep(time.Second)
			continue
		}

		brightness, changed := c.smoother.Step(lux)
		if !changed {
			continue
		}

		if err := c.client.PublishBrightness(ctx, brightness); err != nil {
			c.logger.Warn("publish brightness failed", "error", err)
			continue
		}
		if err := c.client.SetSenderBrightness(ctx, hardwareBrightness(brightness)); err != nil {
			c.logger.Warn("set sender brightness failed", "error", err)
		}

		c.logger.Debug("ambient sample", "lux", lux, "brightness", brightness)
	}
}

// hardwareBrightness maps the [1,100] perceptual value onto the
// Transport's [0,255] hardware brightness field.
func hardwareBrightness(perceptual int) int {
	v := perceptual * 255 / 100
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return v
}
