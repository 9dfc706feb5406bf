package page

import (
	"time"

	"github.com/simukka/cymatics-kiosk/common"
)

// SessionConfig bounds the recording session length, in whole seconds.
type SessionConfig struct {
	Duration    int
	MinDuration int
	MaxDuration int
	// PulseAt is the remaining time from which the timer pulses.
	PulseAt int
}

var DefaultSessionConfig = SessionConfig{
	Duration:    20,
	MinDuration: 5,
	MaxDuration: 60,
	PulseAt:     3,
}

// ClampDuration limits seconds to the configured range. Zero or negative
// values select the default duration.
func (c SessionConfig) ClampDuration(seconds int) int {
	if seconds <= 0 {
		seconds = c.Duration
	}
	if seconds < c.MinDuration {
		return c.MinDuration
	}
	if seconds > c.MaxDuration {
		return c.MaxDuration
	}
	return seconds
}

// Countdown ticks once per second until it reaches zero.
type Countdown struct {
	// OnTick receives the remaining seconds after each tick and whether
	// the timer is in its final pulse phase.
	OnTick func(remaining int, pulse bool)
	// OnExpire runs once when the count reaches zero.
	OnExpire func()

	sched     common.Scheduler
	pulseAt   int
	remaining int
	running   bool
	timer     common.Handle
}

// NewCountdown creates a stopped countdown that reports a pulse for the last
// pulseAt seconds.
func NewCountdown(sched common.Scheduler, pulseAt int) *Countdown {
	return &Countdown{sched: sched, pulseAt: pulseAt}
}

// Start begins counting down from seconds, replacing any running count.
func (c *Countdown) Start(seconds int) {
	c.Stop()
	c.remaining = seconds
	c.running = true
	c.timer = c.sched.After(time.Second, c.tick)
}

// Stop halts the count without firing OnExpire.
func (c *Countdown) Stop() {
	c.running = false
	c.sched.Cancel(c.timer)
	c.timer = 0
}

func (c *Countdown) Running() bool {
	return c.running
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) tick() {
	c.timer = 0
	if !c.running {
		return
	}
	c.remaining--
	if c.OnTick != nil {
		c.OnTick(c.remaining, c.remaining > 0 && c.remaining <= c.pulseAt)
	}
	if c.remaining <= 0 {
		c.running = false
		if c.OnExpire != nil {
			c.OnExpire()
		}
		return
	}
	c.timer = c.sched.After(time.Second, c.tick)
}
