package clock

import (
	"fmt"
	"sync"
	"time"
)

// Countdown counts whole seconds down to a deadline. The zero value is
// not usable; create one with NewCountdown.
type Countdown struct {
	clock Clock

	mu       sync.Mutex
	deadline time.Time
}

func NewCountdown(c Clock) *Countdown {
	if c == nil {
		panic("clock: countdown needs a clock")
	}
	return &Countdown{clock: c}
}

// Start (re)arms the countdown to expire d from now.
func (c *Countdown) Start(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = c.clock.Now().Add(d)
}

// Stop expires the countdown immediately.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = time.Time{}
}

// Remaining returns the whole seconds left, rounded up and never negative.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	deadline := c.deadline
	c.mu.Unlock()

	if deadline.IsZero() {
		return 0
	}
	left := deadline.Sub(c.clock.Now())
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

func (c *Countdown) Active() bool {
	return c.Remaining() > 0
}

// Format renders the remaining time as mm:ss.
func (c *Countdown) Format() string {
	return FormatSeconds(c.Remaining())
}

// FormatSeconds renders a non-negative number of seconds as mm:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
