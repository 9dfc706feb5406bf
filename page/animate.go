package page

import (
	"math"
	"time"

	"github.com/simukka/cymatics-kiosk/common"
)

// EaseOutCubic maps progress p in [0,1] onto a decelerating curve.
func EaseOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// Tween animates a value on animation frames. Running a new animation
// cancels the previous one.
type Tween struct {
	sched common.Scheduler
	token uint64
	frame common.Handle
}

// NewTween creates an idle tween driven by sched's animation frames.
func NewTween(sched common.Scheduler) *Tween {
	return &Tween{sched: sched}
}

// Run calls apply on every frame with a value eased from `from` to `to`
// over d. The last call always receives `to` exactly.
func (t *Tween) Run(from, to float64, d time.Duration, apply func(float64)) {
	t.Cancel()
	token := t.token
	start := -1.0
	total := float64(d) / float64(time.Millisecond)

	var step func(ts float64)
	step = func(ts float64) {
		t.frame = 0
		if token != t.token {
			return
		}
		if start < 0 {
			start = ts
		}
		p := 1.0
		if total > 0 {
			p = math.Min((ts-start)/total, 1)
		}
		if p >= 1 {
			apply(to)
			return
		}
		apply(from + (to-from)*EaseOutCubic(p))
		t.frame = t.sched.RequestFrame(step)
	}
	t.frame = t.sched.RequestFrame(step)
}

// Cancel stops the running animation, leaving the value where it is.
func (t *Tween) Cancel() {
	t.token++
	t.sched.CancelFrame(t.frame)
	t.frame = 0
}

func (t *Tween) Running() bool {
	return t.frame != 0
}
