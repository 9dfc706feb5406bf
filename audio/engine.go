package audio

import (
	"fmt"
	"time"

	"github.com/simukka/cymatics-kiosk/common"
)

// ToneState is the engine's view of the tone the user selected.
type ToneState struct {
	Frequency float64
	Waveform  Waveform
	Amplitude float64
	Playing   bool
}

// preview tracks the pending PreviewFrequency sequence. Only callbacks
// carrying the current token may act.
type preview struct {
	token   uint64
	active  bool
	timer   common.Handle
	restore ToneState
}

// Engine synthesizes a single continuous tone:
// oscillator -> analyser -> gain -> destination.
// All methods must be called from the scheduler's thread.
type Engine struct {
	cfg   Config
	open  Opener
	sched common.Scheduler

	ctx      Context
	analyser Analyser
	gain     Gain
	osc      Oscillator

	state    ToneState
	stopping bool
	teardown common.Handle

	preview  preview
	snapshot []float32
}

// NewEngine creates an engine. Nothing touches the platform until Initialize
// or Start.
func NewEngine(open Opener, sched common.Scheduler, cfg Config) *Engine {
	return &Engine{
		cfg:   cfg,
		open:  open,
		sched: sched,
		state: ToneState{
			Frequency: cfg.ClampFrequency(cfg.DefaultFrequency),
			Waveform:  cfg.DefaultWaveform,
			Amplitude: cfg.TargetGain,
		},
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns a copy of the current tone state.
func (e *Engine) State() ToneState {
	return e.state
}

// Initialize opens the audio context and builds the analyser and gain stages.
// It is a no-op once it has succeeded.
func (e *Engine) Initialize() error {
	if e.ctx != nil {
		return nil
	}
	if e.open == nil {
		return ErrAudioUnavailable
	}
	ctx, err := e.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	if ctx == nil {
		return ErrAudioUnavailable
	}

	analyser, err := ctx.NewAnalyser(e.cfg.FFTSize)
	if err != nil {
		ctx.Close()
		return fmt.Errorf("%w: analyser: %w", ErrAudioUnavailable, err)
	}
	gain, err := ctx.NewGain()
	if err != nil {
		ctx.Close()
		return fmt.Errorf("%w: gain: %w", ErrAudioUnavailable, err)
	}
	gain.Gain().SetValueAtTime(0, ctx.CurrentTime())
	if err := analyser.Connect(gain); err != nil {
		ctx.Close()
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	if err := gain.Connect(ctx.Destination()); err != nil {
		analyser.Disconnect()
		ctx.Close()
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}

	e.ctx = ctx
	e.analyser = analyser
	e.gain = gain
	e.snapshot = make([]float32, analyser.Size())
	common.Debug("audio: context ready, analyser window", analyser.Size())
	return nil
}

// Start begins playback with a fade-in. It initializes lazily, does nothing
// when already playing and cancels any pending preview.
func (e *Engine) Start() error {
	e.cancelPreview()
	return e.start()
}

func (e *Engine) start() error {
	if err := e.Initialize(); err != nil {
		return err
	}
	e.ctx.Resume()

	// A stop fade is still running: keep the source and fade back in.
	if e.stopping {
		e.sched.Cancel(e.teardown)
		e.teardown = 0
		e.stopping = false
		e.rampGain(e.state.Amplitude)
		return nil
	}
	if e.state.Playing {
		return nil
	}

	osc, err := e.ctx.NewOscillator()
	if err != nil {
		return fmt.Errorf("%w: oscillator: %w", ErrAudioUnavailable, err)
	}
	osc.SetType(e.state.Waveform)
	osc.Frequency().SetValueAtTime(e.state.Frequency, e.ctx.CurrentTime())
	if err := osc.Connect(e.analyser); err != nil {
		osc.Disconnect()
		return fmt.Errorf("%w: connect: %w", ErrAudioUnavailable, err)
	}
	osc.Start()
	e.osc = osc

	now := e.ctx.CurrentTime()
	p := e.gain.Gain()
	p.CancelScheduledValues(now)
	p.SetValueAtTime(0, now)
	p.LinearRampToValueAtTime(e.state.Amplitude, now+e.cfg.RampTime)

	e.state.Playing = true
	return nil
}

// Stop fades the tone out and releases the source once the fade completes.
// Playing stays true until then. Stopping an idle engine is a no-op.
func (e *Engine) Stop() {
	e.cancelPreview()
	e.stop()
}

func (e *Engine) stop() {
	if !e.state.Playing || e.stopping {
		return
	}
	e.rampGain(0)
	e.stopping = true
	e.teardown = e.sched.After(e.cfg.Ramp(), e.finishStop)
}

func (e *Engine) finishStop() {
	e.teardown = 0
	if !e.stopping {
		return
	}
	e.stopping = false
	if e.osc != nil {
		e.osc.Stop()
		e.osc.Disconnect()
		e.osc = nil
	}
	e.state.Playing = false
}

// Stopping reports whether a stop fade is in progress.
func (e *Engine) Stopping() bool {
	return e.stopping
}

// SetFrequency clamps f, stores it and glides the live oscillator to it.
// While idle no audio node is touched. A pending preview returns to f rather
// than to the frequency it interrupted. It returns the applied frequency.
func (e *Engine) SetFrequency(f float64) float64 {
	f = e.setFrequency(f)
	if e.preview.active {
		e.preview.restore.Frequency = f
	}
	return f
}

func (e *Engine) setFrequency(f float64) float64 {
	f = e.cfg.ClampFrequency(f)
	e.state.Frequency = f
	if e.osc != nil && e.state.Playing {
		e.rampParam(e.osc.Frequency(), f)
	}
	return f
}

// SetWaveform switches the oscillator shape. Unknown values are rejected and
// the previous waveform kept.
func (e *Engine) SetWaveform(w Waveform) error {
	if !w.Valid() {
		common.DebugWarn("audio: ignoring waveform", int(w))
		return ErrUnknownWaveform
	}
	e.state.Waveform = w
	if e.osc != nil && e.state.Playing {
		e.osc.SetType(w)
	}
	return nil
}

// SetAmplitude sets the level a fade-in reaches, ramping the live tone to it.
func (e *Engine) SetAmplitude(a float64) {
	a = common.Clamp(a, 0, 1)
	e.state.Amplitude = a
	if e.state.Playing && !e.stopping {
		e.rampGain(a)
	}
}

// SampleSnapshot returns the analyser's latest time-domain window, or nil
// before initialization. The slice is reused by the next call.
func (e *Engine) SampleSnapshot() []float32 {
	if e.analyser == nil {
		return nil
	}
	e.analyser.TimeDomain(e.snapshot)
	return e.snapshot
}

// Level measures the latest snapshot.
func (e *Engine) Level() Level {
	return Measure(e.SampleSnapshot())
}

// PreviewFrequency plays f for d and then puts the engine back the way it was
// before the preview: the previous tone stops, f plays, and after d the
// previous tone returns if it had been playing. A newer preview replaces a
// pending one and inherits what it was going to restore. SetFrequency during
// the preview changes the frequency it returns to.
func (e *Engine) PreviewFrequency(f float64, d time.Duration) {
	if d <= 0 {
		d = e.cfg.PreviewDuration
	}
	f = e.cfg.ClampFrequency(f)

	restore := e.state
	restore.Playing = e.state.Playing && !e.stopping
	if e.preview.active {
		restore = e.preview.restore
		e.sched.Cancel(e.preview.timer)
	}
	e.preview.token++
	token := e.preview.token
	e.preview.active = true
	e.preview.restore = restore

	current := func() bool { return e.preview.active && e.preview.token == token }

	finish := func() {
		if !current() {
			return
		}
		e.preview.active = false
		e.preview.timer = 0
		e.setFrequency(e.preview.restore.Frequency)
		if err := e.start(); err != nil {
			common.DebugError("audio: preview restore failed:", err.Error())
		}
	}
	end := func() {
		if !current() {
			return
		}
		e.stop()
		if !e.preview.restore.Playing {
			e.preview.active = false
			e.preview.timer = 0
			e.setFrequency(e.preview.restore.Frequency)
			return
		}
		e.preview.timer = e.sched.After(e.cfg.Ramp()+e.cfg.RestartDelay, finish)
	}
	play := func() {
		if !current() {
			return
		}
		e.setFrequency(f)
		if err := e.start(); err != nil {
			common.DebugError("audio: preview failed:", err.Error())
			e.preview.active = false
			e.preview.timer = 0
			return
		}
		e.preview.timer = e.sched.After(d, end)
	}

	if e.state.Playing && !e.stopping {
		e.stop()
		e.preview.timer = e.sched.After(e.cfg.Ramp(), play)
		return
	}
	play()
}

// Previewing reports whether a preview sequence is pending.
func (e *Engine) Previewing() bool {
	return e.preview.active
}

func (e *Engine) cancelPreview() {
	if !e.preview.active {
		return
	}
	e.preview.token++
	e.preview.active = false
	e.sched.Cancel(e.preview.timer)
	e.preview.timer = 0
}

// Close releases the source and the audio context.
func (e *Engine) Close() error {
	e.cancelPreview()
	e.sched.Cancel(e.teardown)
	e.teardown = 0
	e.stopping = false
	if e.osc != nil {
		e.osc.Stop()
		e.osc.Disconnect()
		e.osc = nil
	}
	e.state.Playing = false
	if e.ctx == nil {
		return nil
	}
	err := e.ctx.Close()
	e.ctx, e.analyser, e.gain, e.snapshot = nil, nil, nil, nil
	return err
}

// rampGain moves the output gain from its current value to target.
func (e *Engine) rampGain(target float64) {
	e.rampParam(e.gain.Gain(), target)
}

func (e *Engine) rampParam(p Param, target float64) {
	now := e.ctx.CurrentTime()
	v := p.Value()
	p.CancelScheduledValues(now)
	p.SetValueAtTime(v, now)
	p.LinearRampToValueAtTime(target, now+e.cfg.RampTime)
}
