package memory

import (
	"context"
	"time"
)

// Delayer simulates backend latency so fallback responses feel like
// network responses. Injected so tests can run with zero delay.
type Delayer interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits a constant duration, honoring cancellation.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoDelay returns immediately.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error { return ctx.Err() }

// DefaultDelay approximates a fast LAN round trip.
var DefaultDelay Delayer = FixedDelay(300 * time.Millisecond)
