package common

import "time"

// DefaultFrameInterval is the frame spacing used by Manual.StepFrames and the
// native Loop scheduler.
const DefaultFrameInterval = 16 * time.Millisecond

type manualTimer struct {
	id  Handle
	due time.Duration
	seq int
	fn  func()
}

type manualFrame struct {
	id Handle
	fn func(float64)
}

// Manual is a deterministic Scheduler driven by a virtual clock. Tests and
// offline renders advance it explicitly. Timers with equal deadlines fire in
// the order they were scheduled.
type Manual struct {
	FrameInterval time.Duration

	now    time.Duration
	seq    int
	nextID Handle
	timers []*manualTimer
	frames []*manualFrame
}

// NewManual creates a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{FrameInterval: DefaultFrameInterval}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.nextID++
	m.seq++
	m.timers = append(m.timers, &manualTimer{id: m.nextID, due: m.now + d, seq: m.seq, fn: fn})
	return m.nextID
}

func (m *Manual) Cancel(h Handle) {
	for i, t := range m.timers {
		if t.id == h {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (m *Manual) RequestFrame(fn func(timestamp float64)) Handle {
	m.nextID++
	m.frames = append(m.frames, &manualFrame{id: m.nextID, fn: fn})
	return m.nextID
}

func (m *Manual) CancelFrame(h Handle) {
	for i, f := range m.frames {
		if f.id == h {
			m.frames = append(m.frames[:i], m.frames[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, firing every timer that falls due in
// deadline order. Timers scheduled by a callback fire in the same call when
// their deadline is within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := -1
		for i, t := range m.timers {
			if t.due > target {
				continue
			}
			if next < 0 || t.due < m.timers[next].due ||
				(t.due == m.timers[next].due && t.seq < m.timers[next].seq) {
				next = i
			}
		}
		if next < 0 {
			break
		}
		t := m.timers[next]
		m.timers = append(m.timers[:next], m.timers[next+1:]...)
		m.now = t.due
		t.fn()
	}
	m.now = target
}

// Frame runs the frame callbacks pending at the time of the call. Frames
// requested from inside a callback wait for the next Frame.
func (m *Manual) Frame() {
	pending := m.frames
	m.frames = nil
	ts := float64(m.now) / float64(time.Millisecond)
	for _, f := range pending {
		f.fn(ts)
	}
}

// StepFrames advances one frame interval and runs the pending frames, n times.
func (m *Manual) StepFrames(n int) {
	for i := 0; i < n; i++ {
		m.Advance(m.FrameInterval)
		m.Frame()
	}
}

// PendingTimers reports how many timers are waiting to fire.
func (m *Manual) PendingTimers() int {
	return len(m.timers)
}

// PendingFrames reports how many frame callbacks are waiting.
func (m *Manual) PendingFrames() int {
	return len(m.frames)
}
