// Package transport implements the Sender: the hard-real-time frame pump
// that dequeues BGRA frames from the broker, repackages them into the
// FPGA's row/commit wire protocol, and emits them over a raw Layer-2
// socket on a 240 Hz deadline.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/fcurrie/ledsign/internal/broker"
	"github.com/fcurrie/ledsign/internal/wire"
)

const popTimeout = time.Second

// fpsLogInterval mirrors the original C sender's periodic throughput
// line, logged every this-many commit packets instead of printf.
const fpsLogInterval = 240

// Pump owns the socket, broker connection, and per-frame state for one
// Sender process. It is not safe for concurrent use — the Transport's hot
// path is single-threaded, per the concurrency model.
type Pump struct {
	logger *slog.Logger
	client *broker.Client
	sock   *Socket

	width, height int
	row           *wire.RowBuffer
	brightness    int

	sent        int
	fpsWindowAt time.Time
}

// NewPump wires together an already-open socket and broker client.
func NewPump(logger *slog.Logger, client *broker.Client, sock *Socket, width, height int) *Pump {
	return &Pump{
		logger:     logger,
		client:     client,
		sock:       sock,
		width:      width,
		height:     height,
		row:        wire.NewRowBuffer(width),
		brightness: 255,
	}
}

// Run drives the Sender's main loop until ctx is cancelled. It never
// returns on transient I/O failure — those are logged and the loop
// proceeds to the next tick, per the Transport's error-handling contract.
func (p *Pump) Run(ctx context.Context) error {
	if err := p.client.SeedSenderBrightness(ctx, 255); err != nil {
		return fmt.Errorf("seed sender brightness: %w", err)
	}

	started := Now()
	p.fpsWindowAt = time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, brightnessStr, err := p.client.FrameAndBrightness(ctx, popTimeout)
		if err != nil {
			p.logger.Warn("broker read failed, backing off", "error", err)
			time.Sleep(time.Second)
			continue
		}

		if brightnessStr != "" {
			if v, err := strconv.Atoi(brightnessStr); err == nil && v >= 0 && v <= 255 {
				p.brightness = v
			}
		}

		if frame == nil {
			// Queue was empty. The deadline clock is deliberately not
			// reset here — the next available frame is sent immediately
			// and timed from whatever `started` already holds.
			time.Sleep(100 * time.Microsecond)
			continue
		}

		if len(frame) != p.width*p.height*4 {
			p.logger.Warn("dropping malformed frame", "got_len", len(frame), "want_len", p.width*p.height*4)
			continue
		}

		for r := 0; r < p.height; r++ {
			src := frame[r*p.width*4 : (r+1)*p.width*4]
			if err := p.row.Fill(r, src); err != nil {
				p.logger.Warn("row fill failed", "row", r, "error", err)
				continue
			}
			if err := p.sock.SendRow(p.row.Bytes()); err != nil {
				p.logger.Warn("send_row failed", "row", r, "error", err)
			}
		}

		started = HybridWait(started)
		commit := wire.BuildCommit(p.brightness)
		if err := p.sock.SendCommit(commit); err != nil {
			p.logger.Warn("send_commit failed", "error", err)
		}

		p.sent++
		if p.sent >= fpsLogInterval {
			elapsed := time.Since(p.fpsWindowAt)
			fps := float64(p.sent) / elapsed.Seconds()
			p.logger.Info("transport throughput", "fps", fps, "frames", p.sent)
			p.sent = 0
			p.fpsWindowAt = time.Now()
		}
	}
}
