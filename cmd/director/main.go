// Command director is the Orchestrator process: it drives the Renderer,
// pushes raw BGRA frames into the broker's queue, applies backpressure
// against a stalled Transport, and keeps the Renderer's brightness in
// sync with the Ambient controller's published updates.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fcurrie/ledsign/internal/broker"
	"github.com/fcurrie/ledsign/internal/canvas"
	"github.com/fcurrie/ledsign/internal/config"
	"github.com/fcurrie/ledsign/internal/logging"
	"github.com/fcurrie/ledsign/internal/player"
	"github.com/fcurrie/ledsign/internal/sysinfo"
	"github.com/fcurrie/ledsign/internal/timelines"
)

func main() {
	configPath := flag.String("config", "director.json", "path to config file")
	debug := flag.Bool("debug", false, "enable verbose logging")
	flag.Parse()

	cfg, err := config.LoadDirectorConfig(*configPath)
	if err != nil {
		cfg = config.DefaultDirectorConfig()
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger := logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	if err := sysinfo.PinToCore(cfg.Affinity.Core); err != nil {
		logger.Warn("cpu pinning failed, continuing unpinned", "error", err)
	}
	sysinfo.LogStartup(logger, "director", cfg.Affinity.Core)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := broker.Connect(ctx, cfg.Broker.SocketPath)
	if err != nil {
		logger.Error("failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	surface, err := canvas.New(cfg.Sign.Width, cfg.Sign.Height, cfg.ThemeTag, cfg.FontPath)
	if err != nil {
		logger.Error("failed to create canvas", "error", err)
		os.Exit(1)
	}

	registry := player.NewRegistry()
	timelines.Register(registry)

	renderer := player.NewRenderer(registry, surface)

	movie, err := player.LoadMovieFile(cfg.MoviePath)
	if err != nil {
		logger.Error("failed to load movie file", "path", cfg.MoviePath, "error", err)
		os.Exit(1)
	}
	if err := renderer.Load(movie); err != nil {
		logger.Error("failed to compile movie", "path", cfg.MoviePath, "error", err)
		os.Exit(1)
	}

	if v, ok, err := client.PlayerBrightness(ctx); err != nil {
		logger.Warn("failed to read persisted brightness", "error", err)
	} else if ok {
		renderer.SetBrightness(v)
	}

	fps := cfg.Sign.FPS
	if fps <= 0 {
		fps = 240
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return subscribeBrightness(gctx, client, renderer)
	})

	group.Go(func() error {
		return driveQueue(gctx, logger, client, renderer, fps)
	})

	logger.Info("director started", "movie", cfg.MoviePath, "fps", fps)

	if err := group.Wait(); err != nil && gctx.Err() == nil {
		logger.Error("director exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("director shut down cleanly")
}

// subscribeBrightness forwards live brightness updates from the broker
// into the Renderer for use by the next play() call, per the
// Orchestrator's brightness-intake contract.
func subscribeBrightness(ctx context.Context, client *broker.Client, renderer *player.Renderer) error {
	sub := client.SubscribeBrightness(ctx)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-sub.Ch:
			if !ok {
				return nil
			}
			renderer.SetBrightness(v)
		}
	}
}

// driveQueue implements the Orchestrator's §4.3 main loop: play one
// frame, push it, and apply the three-step backpressure check when the
// queue reaches one second of buffered frames.
func driveQueue(ctx context.Context, logger *slog.Logger, client *broker.Client, renderer *player.Renderer, fps int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, _, err := renderer.Play()
		if err != nil {
			logger.Warn("render failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		length, err := client.PushFrame(ctx, frame)
		if err != nil {
			logger.Warn("push frame failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		if length == int64(fps) {
			time.Sleep(5 * time.Millisecond)
			length, err = client.QueueLength(ctx)
			if err != nil {
				logger.Warn("queue length check failed", "error", err)
				time.Sleep(time.Second)
				continue
			}
			if length == int64(fps) {
				logger.Warn("transport presumed stalled, flushing queue", "queue_length", length)
				if err := client.FlushFrames(ctx); err != nil {
					logger.Warn("flush frames failed", "error", err)
				}
				time.Sleep(100 * time.Millisecond)
			}
		}
	}
}
