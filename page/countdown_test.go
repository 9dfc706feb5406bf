package page

import (
	"testing"
	"time"

	"github.com/simukka/cymatics-kiosk/common"
)

func TestSessionConfig_ClampDuration(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 20},
		{-3, 20},
		{1, 5},
		{30, 30},
		{600, 60},
	}
	for _, tt := range tests {
		if got := DefaultSessionConfig.ClampDuration(tt.input); got != tt.expected {
			t.Errorf("ClampDuration(%d): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestCountdown_TicksAndExpires(t *testing.T) {
	sched := common.NewManual()
	c := NewCountdown(sched, 3)

	var ticks []int
	var pulses []bool
	expired := 0
	c.OnTick = func(remaining int, pulse bool) {
		ticks = append(ticks, remaining)
		pulses = append(pulses, pulse)
	}
	c.OnExpire = func() { expired++ }

	c.Start(5)
	sched.Advance(2500 * time.Millisecond)
	if c.Remaining() != 3 || expired != 0 {
		t.Errorf("Expected 3 remaining, got %d (expired %d)", c.Remaining(), expired)
	}
	sched.Advance(10 * time.Second)

	expectedTicks := []int{4, 3, 2, 1, 0}
	expectedPulse := []bool{false, true, true, true, false}
	if len(ticks) != len(expectedTicks) {
		t.Fatalf("Expected ticks %v, got %v", expectedTicks, ticks)
	}
	for i := range ticks {
		if ticks[i] != expectedTicks[i] || pulses[i] != expectedPulse[i] {
			t.Errorf("Tick %d: expected (%d, %v), got (%d, %v)", i, expectedTicks[i], expectedPulse[i], ticks[i], pulses[i])
		}
	}
	if expired != 1 || c.Running() {
		t.Errorf("Expected a single expiry, got %d (running %v)", expired, c.Running())
	}
	if sched.PendingTimers() != 0 {
		t.Errorf("Expected no timers left, got %d", sched.PendingTimers())
	}
}

func TestCountdown_StopPreventsExpiry(t *testing.T) {
	sched := common.NewManual()
	c := NewCountdown(sched, 3)
	expired := false
	c.OnExpire = func() { expired = true }

	c.Start(2)
	sched.Advance(time.Second)
	c.Stop()
	sched.Advance(5 * time.Second)

	if expired || c.Running() || c.Remaining() != 1 {
		t.Errorf("Expected stopped countdown at 1, got remaining=%d expired=%v", c.Remaining(), expired)
	}
}
