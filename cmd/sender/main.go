// Command sender is the Transport process: it pops BGRA frames from the
// broker, repackages them into the FPGA's row/commit wire protocol, and
// emits them over a raw Layer-2 socket on a 240 Hz deadline.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fcurrie/ledsign/internal/broker"
	"github.com/fcurrie/ledsign/internal/config"
	"github.com/fcurrie/ledsign/internal/logging"
	"github.com/fcurrie/ledsign/internal/sysinfo"
	"github.com/fcurrie/ledsign/internal/transport"
	"github.com/fcurrie/ledsign/internal/wire"
)

func main() {
	configPath := flag.String("config", "sender.json", "path to config file")
	iface := flag.String("iface", "eth0", "network interface to transmit on")
	debug := flag.Bool("debug", false, "enable verbose logging")
	flag.Parse()

	cfg, err := config.LoadSenderConfig(*configPath)
	if err != nil {
		cfg = config.DefaultSenderConfig()
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger := logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	if err := sysinfo.PinToCore(cfg.Affinity.Core); err != nil {
		logger.Warn("cpu pinning failed, continuing unpinned", "error", err)
	}
	sysinfo.LogStartup(logger, "sender", cfg.Affinity.Core)

	nic, err := transport.ResolveInterface(*iface)
	if err != nil {
		logger.Error("failed to resolve network interface", "iface", *iface, "error", err)
		os.Exit(1)
	}

	rowPayloadLen := wire.RowHeaderSize + cfg.Sign.Width*3
	sock, err := transport.Open(nic, rowPayloadLen)
	if err != nil {
		logger.Error("failed to open raw socket", "error", err)
		os.Exit(1)
	}
	defer sock.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := broker.Connect(ctx, cfg.Broker.SocketPath)
	if err != nil {
		logger.Error("failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	pump := transport.NewPump(logger, client, sock, cfg.Sign.Width, cfg.Sign.Height)

	logger.Info("sender started",
		"iface", nic.Name,
		"width", cfg.Sign.Width,
		"height", cfg.Sign.Height,
		"fps", cfg.Sign.FPS,
	)

	if err := pump.Run(ctx); err != nil {
		logger.Error("pump exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("sender shut down cleanly")
}
