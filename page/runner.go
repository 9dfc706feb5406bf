package page

import (
	"context"
	"time"

	"github.com/simukka/cymatics-kiosk/api"
	"github.com/simukka/cymatics-kiosk/audio"
	"github.com/simukka/cymatics-kiosk/common"
)

// CollectionPath is where the runner sends the visitor after a recording.
const CollectionPath = "/collection.html"

// Runner status lines.
const (
	StatusReady        = "Ready to begin experiment"
	StatusNoExperiment = "Error: No experiment data found"
	StatusLoadFailed   = "Error loading experiment data"
	StatusRecording    = "Recording in progress..."
	StatusComplete     = "Recording complete"
	StatusStartFailed  = "Error starting experiment"
	StatusStopFailed   = "Error stopping recording"
	StatusAudioFailed  = "Error playing audio"
)

// RunnerBackend is the part of the REST API the experiment page uses.
type RunnerBackend interface {
	CurrentExperiment(ctx context.Context) (*api.Experiment, error)
	Record(ctx context.Context, req api.RecordRequest) error
	Stop(ctx context.Context) (*api.StopResult, error)
}

// SessionStream is the live camera stream. *api.Stream implements it.
type SessionStream interface {
	Connect() error
	Subscribe(h api.Handler) (unsubscribe func())
	StartSession(frequency, duration float64) error
	StopSession() error
	Close() error
}

// RunnerView is the experiment page's DOM.
type RunnerView interface {
	ShowFrequency(f float64)
	ShowStatus(msg string)
	ShowTimer(remaining int, pulse bool)
	SetStartEnabled(enabled bool)
	SetRecording(recording bool)
	ShowFrame(dataURL string)
	ShowCapture(imagePath string)
	ShowTimestamp(t time.Time)
	Navigate(path string)
}

// RunnerOptions holds the collaborators of a Runner. Stream is optional;
// without it the page shows no live feed.
type RunnerOptions struct {
	Engine    *audio.Engine
	Backend   RunnerBackend
	Stream    SessionStream
	Scheduler common.Scheduler
	View      RunnerView
	Session   SessionConfig
	Async     Async
	// Now is the wall clock for the timestamp display.
	Now func() time.Time
}

// Runner drives the experiment page: it records the stored experiment while
// playing its tone and counting down.
type Runner struct {
	engine  *audio.Engine
	backend RunnerBackend
	stream  SessionStream
	sched   common.Scheduler
	view    RunnerView
	session SessionConfig
	async   Async
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	countdown   *Countdown
	clock       common.Handle
	unsubscribe func()

	experiment *api.Experiment
	recording  bool
	busy       bool
	closed     bool
}

// NewRunner creates the experiment page controller. Missing Async, Now and
// Session options fall back to goroutines, the wall clock and
// DefaultSessionConfig.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Async == nil {
		opts.Async = Goroutine
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Session == (SessionConfig{}) {
		opts.Session = DefaultSessionConfig
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		engine:    opts.Engine,
		backend:   opts.Backend,
		stream:    opts.Stream,
		sched:     opts.Scheduler,
		view:      opts.View,
		session:   opts.Session,
		async:     opts.Async,
		now:       opts.Now,
		ctx:       ctx,
		cancel:    cancel,
		countdown: NewCountdown(opts.Scheduler, opts.Session.PulseAt),
	}
	r.countdown.OnTick = r.view.ShowTimer
	r.countdown.OnExpire = r.Stop
	return r
}

// Init starts the clock, connects the live feed and loads the experiment.
func (r *Runner) Init() {
	r.view.SetStartEnabled(false)
	r.view.SetRecording(false)
	r.view.ShowTimer(r.duration(), false)
	r.tickClock()

	if r.stream != nil {
		r.unsubscribe = r.stream.Subscribe(api.HandlerFuncs{
			Frame:            r.handleFrame,
			SessionCompleted: r.handleSessionCompleted,
			Error:            r.handleStreamError,
		})
		if err := r.stream.Connect(); err != nil {
			common.DebugWarn("live feed unavailable:", err.Error())
		}
	}

	r.async(r.load)
}

func (r *Runner) tickClock() {
	r.view.ShowTimestamp(r.now())
	r.clock = r.sched.After(time.Second, r.tickClock)
}

func (r *Runner) load() {
	exp, err := r.backend.CurrentExperiment(r.ctx)
	if err != nil {
		common.DebugError("Error loading experiment data:", err.Error())
		r.view.ShowStatus(StatusLoadFailed)
		return
	}
	if exp == nil {
		r.view.ShowStatus(StatusNoExperiment)
		return
	}
	r.experiment = exp
	r.view.ShowFrequency(exp.Frequency)
	r.view.ShowTimer(r.duration(), false)
	r.view.SetStartEnabled(true)
	r.view.ShowStatus(StatusReady)
}

// Experiment returns the loaded experiment, or nil.
func (r *Runner) Experiment() *api.Experiment {
	return r.experiment
}

// Recording reports whether a recording is in progress.
func (r *Runner) Recording() bool {
	return r.recording
}

func (r *Runner) duration() int {
	d := 0
	if r.experiment != nil {
		d = int(r.experiment.Duration)
	}
	return r.session.ClampDuration(d)
}

// Start begins recording the loaded experiment.
func (r *Runner) Start() {
	if r.experiment == nil || r.recording || r.busy || r.closed {
		return
	}
	exp := *r.experiment
	seconds := r.duration()
	r.busy = true
	r.view.SetStartEnabled(false)
	r.async(func() {
		defer func() { r.busy = false }()
		err := r.backend.Record(r.ctx, api.RecordRequest{Frequency: exp.Frequency, Duration: float64(seconds)})
		if err != nil {
			common.DebugError("Error starting experiment:", err.Error())
			r.view.ShowStatus(StatusStartFailed)
			r.view.SetStartEnabled(true)
			return
		}
		if r.closed {
			return
		}
		r.recording = true
		r.view.SetRecording(true)
		r.view.ShowTimer(seconds, false)
		r.countdown.Start(seconds)
		if r.stream != nil {
			if err := r.stream.StartSession(exp.Frequency, float64(seconds)); err != nil {
				common.DebugWarn("stream session not started:", err.Error())
			}
		}
		if !r.playTone(exp) {
			r.view.ShowStatus(StatusAudioFailed)
			return
		}
		r.view.ShowStatus(StatusRecording)
	})
}

func (r *Runner) playTone(exp api.Experiment) bool {
	if err := r.engine.SetWaveform(exp.WaveformOrDefault()); err != nil {
		common.DebugWarn("waveform:", err.Error())
	}
	r.engine.SetFrequency(exp.Frequency)
	if err := r.engine.Start(); err != nil {
		common.DebugError("Error playing audio:", err.Error())
		return false
	}
	return true
}

// Stop ends the recording. It runs from the stop button and when the
// countdown expires.
func (r *Runner) Stop() {
	if !r.recording || r.busy {
		return
	}
	r.busy = true
	r.countdown.Stop()
	r.engine.Stop()
	r.async(func() {
		defer func() { r.busy = false }()
		res, err := r.backend.Stop(r.ctx)
		if err != nil {
			common.DebugError("Error stopping experiment:", err.Error())
			r.view.ShowStatus(StatusStopFailed)
			return
		}
		r.recording = false
		r.view.SetRecording(false)
		if r.stream != nil {
			if err := r.stream.StopSession(); err != nil {
				common.DebugWarn("stream session not stopped:", err.Error())
			}
		}
		if res.ImagePath != "" {
			r.view.ShowCapture(res.ImagePath)
		}
		r.view.ShowStatus(StatusComplete)
	})
}

// Next moves on to the collection page.
func (r *Runner) Next() {
	r.view.Navigate(CollectionPath)
}

func (r *Runner) handleFrame(m api.FrameMessage) {
	r.view.ShowFrame(m.DataURL())
}

func (r *Runner) handleSessionCompleted(m api.SessionCompletedMessage) {
	if m.ImagePath != "" {
		r.view.ShowCapture(m.ImagePath)
	}
}

func (r *Runner) handleStreamError(m api.ErrorMessage) {
	common.DebugWarn("camera stream:", m.Message)
}

// Close releases the page when the visitor leaves it.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cancel()
	r.countdown.Stop()
	r.sched.Cancel(r.clock)
	r.clock = 0
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	if r.stream != nil {
		if r.recording {
			if err := r.stream.StopSession(); err != nil {
				common.DebugWarn("stream session not stopped:", err.Error())
			}
		}
		if err := r.stream.Close(); err != nil {
			common.DebugWarn("closing stream:", err.Error())
		}
	}
	if err := r.engine.Close(); err != nil {
		common.DebugWarn("closing audio:", err.Error())
	}
}
