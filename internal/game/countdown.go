package game

import (
	"sync"
	"time"
)

// Band classifies how urgent the remaining time is, for display.
type Band int

const (
	BandNormal Band = iota
	BandWarning
	BandAlert
)

const (
	alertThreshold   = 5
	warningThreshold = 10
)

// BandFor returns the display band for a remaining-seconds value.
func BandFor(remaining int) Band {
	switch {
	case remaining <= alertThreshold:
		return BandAlert
	case remaining <= warningThreshold:
		return BandWarning
	default:
		return BandNormal
	}
}

// Countdown is the per-question answer window: an owned timer resource
// with scoped acquisition. Start always releases any prior instance, so
// at most one countdown is ever live. The displayed value never goes
// negative and never exceeds the limit.
type Countdown struct {
	limit    int
	interval time.Duration

	mu        sync.Mutex
	remaining int
	gen       int
	stop      chan struct{}
}

// NewCountdown builds a countdown with the given limit in seconds. The
// tick interval is one second in production; tests shorten it.
func NewCountdown(limit int, interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{limit: limit, interval: interval, remaining: limit}
}

// Limit returns the configured answer window in seconds.
func (c *Countdown) Limit() int { return c.limit }

// Remaining returns the seconds left in the current window.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether a tick loop is live.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Start resets the window to the full limit and begins ticking. Any
// prior instance is released first. onTick fires immediately with the
// full value and then once per tick; onExpire fires exactly once if the
// window reaches zero without Stop being called.
func (c *Countdown) Start(onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	c.releaseLocked()
	c.gen++
	gen := c.gen
	c.remaining = c.limit
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	if onTick != nil {
		onTick(c.limit)
	}
	go c.run(gen, stop, onTick, onExpire)
}

// Stop releases the current instance, if any. Idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
}

func (c *Countdown) releaseLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	// invalidate any tick already in flight
	c.gen++
}

func (c *Countdown) run(gen int, stop chan struct{}, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if gen != c.gen {
				c.mu.Unlock()
				return
			}
			if c.remaining > 0 {
				c.remaining--
			}
			remaining := c.remaining
			expired := remaining == 0
			if expired {
				// the window is over; release without firing Stop's path
				c.stop = nil
				c.gen++
			}
			c.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}
			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}
