package render

import (
	"github.com/simukka/cymatics-kiosk/audio"
	"github.com/simukka/cymatics-kiosk/common"
)

// Source produces the trace the waveform renderer draws.
type Source interface {
	// Trace fills dst with one sweep across the surface width, values in
	// [-1, 1]. It returns false when there is nothing to draw.
	Trace(dst []float64, elapsed float64) bool
}

// AnalyticSource synthesizes the trace from the selected tone.
type AnalyticSource struct {
	Tone func() audio.ToneState
}

func (a AnalyticSource) Trace(dst []float64, elapsed float64) bool {
	s := a.Tone()
	Sweep(dst, s.Waveform, s.Frequency, s.Amplitude, elapsed)
	return true
}

// SnapshotSource draws the engine's analyser window, scaled down if the
// platform delivers samples outside [-1, 1].
type SnapshotSource struct {
	Snapshot func() []float32
}

func (s SnapshotSource) Trace(dst []float64, elapsed float64) bool {
	snap := s.Snapshot()
	if len(snap) == 0 || len(dst) == 0 {
		return false
	}
	for i := range dst {
		dst[i] = float64(snap[i*len(snap)/len(dst)])
	}
	audio.Normalize(dst)
	return true
}

// WaveformRenderer animates a Source on a Surface, one trace per frame.
type WaveformRenderer struct {
	// Playing picks the active stroke color; nil means idle.
	Playing func() bool
	Overlay *StatsOverlay

	surface Surface
	sched   common.Scheduler
	source  Source

	running bool
	frame   common.Handle
	started float64
	trace   []float64
	pts     []Point
}

// NewWaveformRenderer creates a stopped renderer.
func NewWaveformRenderer(s Surface, sched common.Scheduler, src Source) *WaveformRenderer {
	return &WaveformRenderer{surface: s, sched: sched, source: src, started: -1}
}

// SetSource swaps the trace source; the next frame uses it.
func (r *WaveformRenderer) SetSource(src Source) {
	r.source = src
}

// Running reports whether the frame loop is active.
func (r *WaveformRenderer) Running() bool {
	return r.running
}

// Start begins the frame loop. Starting a running renderer does nothing.
func (r *WaveformRenderer) Start() {
	if r.running {
		return
	}
	r.running = true
	r.started = -1
	r.frame = r.sched.RequestFrame(r.tick)
}

// Stop ends the loop and cancels the pending frame.
func (r *WaveformRenderer) Stop() {
	r.running = false
	r.sched.CancelFrame(r.frame)
	r.frame = 0
}

func (r *WaveformRenderer) tick(ts float64) {
	r.frame = 0
	if !r.running {
		return
	}
	if r.started < 0 {
		r.started = ts
	}
	if r.Overlay != nil {
		r.Overlay.UpdateFPS(ts)
	}
	r.DrawFrame((ts - r.started) / 1000)
	r.frame = r.sched.RequestFrame(r.tick)
}

// DrawFrame renders a single frame at elapsed seconds.
func (r *WaveformRenderer) DrawFrame(elapsed float64) {
	s := r.surface
	w, h := s.Size()

	// Fade the previous trace instead of clearing for a short afterglow.
	s.SetAlpha(Theme.WaveFadeAlpha)
	s.Fill(Theme.WaveBackground)
	s.SetAlpha(1)

	n := int(w)
	if n < 2 || r.source == nil {
		return
	}
	if cap(r.trace) < n {
		r.trace = make([]float64, n)
		r.pts = make([]Point, n)
	}
	r.trace, r.pts = r.trace[:n], r.pts[:n]
	if r.source.Trace(r.trace, elapsed) {
		for i, v := range r.trace {
			r.pts[i] = Point{X: float64(i), Y: h/2 - v*h/3}
		}
		color := Theme.WaveIdle
		if r.Playing != nil && r.Playing() {
			color = Theme.WaveActive
		}
		s.Polyline(r.pts, Theme.WaveLineWidth, color, Theme.WaveGlow)
	}

	if r.Overlay != nil {
		r.Overlay.Render(s)
	}
}
