// Command sensors is the Ambient controller process: it samples a
// BH1750FVI light sensor, maps lux to a perceptual brightness value,
// smooths and rate-limits it, and publishes it to the broker.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fcurrie/ledsign/internal/ambient"
	"github.com/fcurrie/ledsign/internal/broker"
	"github.com/fcurrie/ledsign/internal/config"
	"github.com/fcurrie/ledsign/internal/logging"
	"github.com/fcurrie/ledsign/internal/sysinfo"
)

func main() {
	configPath := flag.String("config", "sensors.json", "path to config file")
	busName := flag.String("bus", "", "I2C bus name (empty picks the default bus)")
	debug := flag.Bool("debug", false, "enable verbose logging")
	flag.Parse()

	cfg, err := config.LoadSensorsConfig(*configPath)
	if err != nil {
		cfg = config.DefaultSensorsConfig()
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger := logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	if err := sysinfo.PinToCore(cfg.Affinity.Core); err != nil {
		logger.Warn("cpu pinning failed, continuing unpinned", "error", err)
	}
	sysinfo.LogStartup(logger, "sensors", cfg.Affinity.Core)

	if *busName == "" {
		*busName = strconv.Itoa(cfg.Sensor.Bus)
	}

	sensor, err := ambient.Open(*busName)
	if err != nil {
		logger.Error("failed to open i2c bus", "error", err)
		os.Exit(1)
	}
	defer sensor.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := broker.Connect(ctx, cfg.Broker.SocketPath)
	if err != nil {
		logger.Error("failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	controller := ambient.NewController(logger, sensor, client)

	logger.Info("sensors started", "bus", *busName, "address", cfg.Sensor.Address)

	if err := controller.Run(ctx); err != nil {
		logger.Error("controller exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("sensors shut down cleanly")
}
