// Package broker wraps the go-redis client used to reach the shared
// key-value + pub/sub fabric that is the sole IPC path between the
// sender, director and sensors processes. The broker process itself is
// external to this module; this package is only the client side.
package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FramesKey is the list holding raw BGRA frame buffers, produced by
	// the Director (right-push) and consumed by the Sender (blocking
	// left-pop).
	FramesKey = "player:frames"
	// SenderBrightnessKey is the hardware brightness in [0,255] read by
	// the Sender.
	SenderBrightnessKey = "sender:brightness"
	// PlayerBrightnessKey is the persisted perceptual brightness in
	// [1,100] read by the Director at startup.
	PlayerBrightnessKey = "player:brightness"
	// PlayerBrightnessChannel carries live brightness updates in
	// [1,100] to the Director.
	PlayerBrightnessChannel = "player:brightness:channel"
)

// Client wraps a go-redis client bound to a Unix domain socket.
type Client struct {
	rdb *redis.Client
}

// Connect opens a client against the broker's Unix socket, retrying with
// a 1 s linear backoff until the connection succeeds or ctx is cancelled
// — the §4.1 "reconnect forever" failure semantics also apply at startup.
func Connect(ctx context.Context, socketPath string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Network: "unix",
		Addr:    socketPath,
	})

	for {
		if err := rdb.Ping(ctx).Err(); err == nil {
			return &Client{rdb: rdb}, nil
		} else if ctx.Err() != nil {
			return nil, fmt.Errorf("connect to broker: %w", ctx.Err())
		}

		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to broker: %w", ctx.Err())
		}
	}
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Underlying exposes the raw client for callers that need operations this
// package does not wrap.
func (c *Client) Underlying() *redis.Client {
	return c.rdb
}

// FrameAndBrightness pipelines the Transport's per-tick reads into one
// round trip: a blocking pop of the next frame (timeout seconds) and a
// non-blocking read of the hardware brightness. frame is nil if the pop
// timed out with nothing queued.
func (c *Client) FrameAndBrightness(ctx context.Context, timeout time.Duration) (frame []byte, brightness string, err error) {
	pipe := c.rdb.Pipeline()
	popCmd := pipe.BLPop(ctx, timeout, FramesKey)
	brightCmd := pipe.Get(ctx, SenderBrightnessKey)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, "", fmt.Errorf("pipelined frame/brightness read: %w", err)
	}

	if b, err := brightCmd.Result(); err == nil {
		brightness = b
	}

	result, err := popCmd.Result()
	if err == redis.Nil {
		return nil, brightness, nil
	}
	if err != nil {
		return nil, brightness, fmt.Errorf("blpop %s: %w", FramesKey, err)
	}
	// result is [key, value]
	return []byte(result[1]), brightness, nil
}

// SeedSenderBrightness sets the hardware brightness key to def if it is
// not already present, per the Sender's startup contract.
func (c *Client) SeedSenderBrightness(ctx context.Context, def int) error {
	_, err := c.rdb.Get(ctx, SenderBrightnessKey).Result()
	if err == redis.Nil {
		return c.rdb.Set(ctx, SenderBrightnessKey, def, 0).Err()
	}
	return err
}

// PushFrame right-pushes a raw BGRA frame onto the queue and returns the
// resulting queue length.
func (c *Client) PushFrame(ctx context.Context, frame []byte) (int64, error) {
	return c.rdb.RPush(ctx, FramesKey, frame).Result()
}

// QueueLength reports the current length of the frame queue.
func (c *Client) QueueLength(ctx context.Context) (int64, error) {
	return c.rdb.LLen(ctx, FramesKey).Result()
}

// FlushFrames empties the frame queue, used by the Director's backpressure
// path when the Sender is presumed stalled.
func (c *Client) FlushFrames(ctx context.Context) error {
	return c.rdb.Del(ctx, FramesKey).Err()
}

// PlayerBrightness reads the persisted perceptual brightness, returning ok
// = false if the key is unset.
func (c *Client) PlayerBrightness(ctx context.Context) (value int, ok bool, err error) {
	v, err := c.rdb.Get(ctx, PlayerBrightnessKey).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %s: %w", PlayerBrightnessKey, err)
	}
	return v, true, nil
}

// PublishBrightness persists the perceptual brightness and broadcasts it
// on the pub/sub channel, as the Ambient controller does on each cycle
// in which its brightness changes.
func (c *Client) PublishBrightness(ctx context.Context, value int) error {
	if err := c.rdb.Set(ctx, PlayerBrightnessKey, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", PlayerBrightnessKey, err)
	}
	return c.rdb.Publish(ctx, PlayerBrightnessChannel, value).Err()
}

// SetSenderBrightness writes the hardware brightness key consumed by the
// Transport.
func (c *Client) SetSenderBrightness(ctx context.Context, value int) error {
	return c.rdb.Set(ctx, SenderBrightnessKey, value, 0).Err()
}

// BrightnessSubscription is an active subscription to brightness updates.
type BrightnessSubscription struct {
	sub    *redis.PubSub
	Ch     <-chan int
	cancel context.CancelFunc
}

// Close unsubscribes and releases the subscription's resources.
func (s *BrightnessSubscription) Close() {
	s.cancel()
	_ = s.sub.Close()
}

// SubscribeBrightness subscribes to live brightness updates, forwarding
// parsed integer values onto a buffered channel. Malformed payloads are
// dropped rather than propagated, matching the Orchestrator's "log and
// skip" protocol-violation policy.
func (c *Client) SubscribeBrightness(ctx context.Context) *BrightnessSubscription {
	sub := c.rdb.Subscribe(ctx, PlayerBrightnessChannel)
	subCtx, cancel := context.WithCancel(ctx)
	ch := make(chan int, 8)

	go func() {
		defer close(ch)
		msgCh := sub.Channel()
		for {
			select {
			case msg, ok := <-msgCh:
				if !ok {
					return
				}
				var v int
				if _, err := fmt.Sscanf(msg.Payload, "%d", &v); err != nil {
					continue
				}
				select {
				case ch <- v:
				default:
					// Drop this update if the buffer already holds eight
					// updates the Director has not drained.
				}
			case <-subCtx.Done():
				return
			}
		}
	}()

	return &BrightnessSubscription{sub: sub, Ch: ch, cancel: cancel}
}
