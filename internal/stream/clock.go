package stream

import (
	"context"
	"sync"
	"time"
)

const DefaultPeriod = time.Second

// Clock ticks a Session on a fixed period from a single goroutine, so ticks
// never overlap. Pausing the session does not stop the clock.
type Clock struct {
	session *Session
	period  time.Duration
	onTick  func(Point)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClock creates a stopped clock. A non-positive period means DefaultPeriod.
// onTick, if non-nil, receives every accepted point on the clock goroutine.
func NewClock(s *Session, period time.Duration, onTick func(Point)) *Clock {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Clock{session: s, period: period, onTick: onTick}
}

// Start launches the ticking goroutine. It is a no-op if already running.
// The clock stops on its own when ctx is cancelled.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active() {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

func (c *Clock) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p, ok := c.session.Tick(); ok && c.onTick != nil {
				c.onTick(p)
			}
		}
	}
}

// Stop halts the goroutine and waits for it to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the goroutine is active.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active()
}

func (c *Clock) active() bool {
	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

func (c *Clock) Period() time.Duration { return c.period }
