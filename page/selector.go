package page

import (
	"context"
	"time"

	"github.com/simukka/cymatics-kiosk/api"
	"github.com/simukka/cymatics-kiosk/audio"
	"github.com/simukka/cymatics-kiosk/common"
)

// ExperimentPath is where the selector sends the visitor once an experiment
// has been stored.
const ExperimentPath = "/experiment.html"

// SuggestDuration is how long the frequency glides to a suggestion.
const SuggestDuration = time.Second

// SelectorBackend is the part of the REST API the selector page uses.
type SelectorBackend interface {
	UsedFrequencies(ctx context.Context) (api.History, error)
	SuggestFrequency(ctx context.Context) (float64, error)
	StartExperiment(ctx context.Context, tone api.Tone) error
}

// SelectorView is the selector page's DOM.
type SelectorView interface {
	ShowFrequency(f float64)
	ShowFrequencyStatus(text, class string)
	ShowWaveform(w audio.Waveform)
	SetPreviewActive(active bool)
	ShowError(msg string)
	Navigate(path string)
}

// Dial draws the frequency dial and maps pointer positions back to
// frequencies. *render.Dial implements it.
type Dial interface {
	Draw(f float64)
	FrequencyAt(x, y float64) float64
}

// Animator is a frame loop such as *render.WaveformRenderer.
type Animator interface {
	Start()
	Stop()
}

// Toggler is a debug panel such as *render.StatsOverlay.
type Toggler interface {
	Toggle()
}

// SelectorOptions holds the collaborators of a Selector. Waveform and
// Overlay are optional.
type SelectorOptions struct {
	Engine    *audio.Engine
	Backend   SelectorBackend
	Scheduler common.Scheduler
	View      SelectorView
	Dial      Dial
	Waveform  Animator
	Overlay   Toggler
	Async     Async
}

// Selector drives the frequency selection page.
type Selector struct {
	engine   *audio.Engine
	backend  SelectorBackend
	view     SelectorView
	dial     Dial
	waveform Animator
	overlay  Toggler
	async    Async
	tween    *Tween

	ctx    context.Context
	cancel context.CancelFunc

	history  api.History
	dragging bool
}

// NewSelector creates the selector page controller. Nothing is drawn or
// fetched until Init.
func NewSelector(opts SelectorOptions) *Selector {
	if opts.Async == nil {
		opts.Async = Goroutine
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Selector{
		engine:   opts.Engine,
		backend:  opts.Backend,
		view:     opts.View,
		dial:     opts.Dial,
		waveform: opts.Waveform,
		overlay:  opts.Overlay,
		async:    opts.Async,
		tween:    NewTween(opts.Scheduler),
		ctx:      ctx,
		cancel:   cancel,
		history:  api.History{},
	}
}

// Init draws the initial state, starts the waveform display and loads the
// frequency history.
func (s *Selector) Init() {
	st := s.engine.State()
	s.view.ShowWaveform(st.Waveform)
	s.view.SetPreviewActive(false)
	s.showFrequency(st.Frequency)
	if s.waveform != nil {
		s.waveform.Start()
	}
	s.async(s.loadHistory)
}

func (s *Selector) loadHistory() {
	h, err := s.backend.UsedFrequencies(s.ctx)
	if err != nil {
		common.DebugError("Error fetching frequency history:", err.Error())
		return
	}
	s.history = h
	s.updateStatus(s.engine.State().Frequency)
}

// Frequency returns the selected frequency.
func (s *Selector) Frequency() float64 {
	return s.engine.State().Frequency
}

// SetFrequency selects f, clamped to the engine's range.
func (s *Selector) SetFrequency(f float64) {
	s.showFrequency(s.engine.SetFrequency(f))
}

func (s *Selector) showFrequency(f float64) {
	s.view.ShowFrequency(f)
	s.dial.Draw(f)
	s.updateStatus(f)
}

func (s *Selector) updateStatus(f float64) {
	s.view.ShowFrequencyStatus(FrequencyStatus(s.history, f))
}

// SetWaveform selects a waveform by name. Unknown names leave the current
// waveform in place.
func (s *Selector) SetWaveform(name string) error {
	w, err := audio.ParseWaveform(name)
	if err != nil {
		common.DebugWarn("ignoring waveform:", err.Error())
		return err
	}
	if err := s.engine.SetWaveform(w); err != nil {
		return err
	}
	s.view.ShowWaveform(w)
	return nil
}

// SetAmplitude sets the preview volume in [0,1].
func (s *Selector) SetAmplitude(a float64) {
	s.engine.SetAmplitude(a)
}

// Playing reports whether the preview tone is audible and not fading out.
func (s *Selector) Playing() bool {
	return s.engine.State().Playing && !s.engine.Stopping()
}

// TogglePreview starts the tone when it is silent and stops it otherwise.
func (s *Selector) TogglePreview() {
	if s.Playing() {
		s.engine.Stop()
		s.view.SetPreviewActive(false)
		return
	}
	if err := s.engine.Start(); err != nil {
		common.DebugError("preview failed:", err.Error())
		s.view.ShowError("Audio is not available on this device")
		return
	}
	s.view.SetPreviewActive(true)
}

// PointerDown begins a dial drag at x, y in dial coordinates.
func (s *Selector) PointerDown(x, y float64) {
	s.dragging = true
	s.tween.Cancel()
	s.SetFrequency(s.dial.FrequencyAt(x, y))
}

// PointerMove follows a dial drag.
func (s *Selector) PointerMove(x, y float64) {
	if !s.dragging {
		return
	}
	s.SetFrequency(s.dial.FrequencyAt(x, y))
}

// PointerUp ends a dial drag. Releasing the dial while the tone is silent
// plays a short preview of the chosen frequency.
func (s *Selector) PointerUp() {
	if !s.dragging {
		return
	}
	s.dragging = false
	if !s.Playing() || s.engine.Previewing() {
		s.engine.PreviewFrequency(s.Frequency(), 0)
	}
}

// Suggest asks the backend for an unexplored frequency and glides to it.
func (s *Selector) Suggest() {
	s.async(func() {
		f, err := s.backend.SuggestFrequency(s.ctx)
		if err != nil {
			common.DebugError("Error getting frequency suggestion:", err.Error())
			return
		}
		if f <= 0 {
			return
		}
		s.tween.Run(s.Frequency(), f, SuggestDuration, s.SetFrequency)
	})
}

// StartExperiment stores the selected tone and moves on to the experiment
// page.
func (s *Selector) StartExperiment() {
	st := s.engine.State()
	tone := api.Tone{Frequency: st.Frequency, Waveform: st.Waveform.String()}
	s.async(func() {
		if err := s.backend.StartExperiment(s.ctx, tone); err != nil {
			common.DebugError("Error starting experiment:", err.Error())
			s.view.ShowError("Could not start the experiment. Please try again.")
			return
		}
		s.engine.Stop()
		s.view.Navigate(ExperimentPath)
	})
}

// HandleKey reacts to a keydown and reports whether the key was used.
func (s *Selector) HandleKey(keyCode int, shift bool) bool {
	if keyCode == KeyF10 {
		if s.overlay != nil {
			s.overlay.Toggle()
		}
		return true
	}
	step := FineStep
	if shift {
		step = CoarseStep
	}
	switch TranslateKeyCode(keyCode) {
	case KeySpace:
		s.TogglePreview()
	case KeyLeft, KeyDown:
		s.tween.Cancel()
		s.SetFrequency(s.Frequency() - step)
	case KeyRight, KeyUp:
		s.tween.Cancel()
		s.SetFrequency(s.Frequency() + step)
	default:
		return false
	}
	return true
}

// Close stops everything the page started.
func (s *Selector) Close() {
	s.cancel()
	s.tween.Cancel()
	if s.waveform != nil {
		s.waveform.Stop()
	}
	if err := s.engine.Close(); err != nil {
		common.DebugWarn("closing audio:", err.Error())
	}
}
