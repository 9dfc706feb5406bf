package page

import (
	"context"
	"errors"
	"time"

	"github.com/simukka/cymatics-kiosk/api"
	"github.com/simukka/cymatics-kiosk/audio"
	"github.com/simukka/cymatics-kiosk/common"
)

var errBackend = &api.NetworkError{Op: "GET", Path: "/api", Status: 500, Err: errors.New("boom")}

func newTestEngine() (*audio.Engine, *audio.SoftContext, *common.Manual) {
	graph := audio.NewSoftContext(8000)
	sched := common.NewManual()
	return audio.NewEngine(graph.Opener(), sched, audio.DefaultConfig), graph, sched
}

// fakeBackend implements every page backend interface.
type fakeBackend struct {
	history    []float64
	historyErr error
	suggestion float64
	suggestErr error
	started    []api.Tone
	startErr   error

	experiment *api.Experiment
	currentErr error
	records    []api.RecordRequest
	recordErr  error
	stops      int
	stopResult api.StopResult
	stopErr    error

	result  *api.Result
	resErr  error
	saved   []api.Submission
	saveErr error
}

func (b *fakeBackend) UsedFrequencies(context.Context) (api.History, error) {
	return api.NewHistory(b.history), b.historyErr
}

func (b *fakeBackend) SuggestFrequency(context.Context) (float64, error) {
	return b.suggestion, b.suggestErr
}

func (b *fakeBackend) StartExperiment(_ context.Context, tone api.Tone) error {
	b.started = append(b.started, tone)
	return b.startErr
}

func (b *fakeBackend) CurrentExperiment(context.Context) (*api.Experiment, error) {
	return b.experiment, b.currentErr
}

func (b *fakeBackend) Record(_ context.Context, req api.RecordRequest) error {
	b.records = append(b.records, req)
	return b.recordErr
}

func (b *fakeBackend) Stop(context.Context) (*api.StopResult, error) {
	b.stops++
	if b.stopErr != nil {
		return nil, b.stopErr
	}
	res := b.stopResult
	return &res, nil
}

func (b *fakeBackend) Result(context.Context) (*api.Result, error) {
	return b.result, b.resErr
}

func (b *fakeBackend) Save(_ context.Context, sub api.Submission) error {
	b.saved = append(b.saved, sub)
	return b.saveErr
}

// fakeView records what the controllers show. It implements every page view.
type fakeView struct {
	frequency     float64
	statusText    string
	statusClass   string
	waveform      audio.Waveform
	previewActive bool
	errors        []string
	navigated     []string

	status       string
	timer        int
	pulse        bool
	startEnabled bool
	recording    bool
	frames       []string
	capture      string
	timestamps   int

	result        *api.Result
	emailRequired bool
	phoneRequired bool
	alerts        []string
	success       bool
	downloads     []string
}

func (v *fakeView) ShowFrequency(f float64) { v.frequency = f }
func (v *fakeView) ShowFrequencyStatus(text, c string) { v.statusText, v.statusClass = text, c }
func (v *fakeView) ShowWaveform(w audio.Waveform) { v.waveform = w }
func (v *fakeView) SetPreviewActive(active bool) { v.previewActive = active }
func (v *fakeView) ShowError(msg string) { v.errors = append(v.errors, msg) }
func (v *fakeView) Navigate(path string) { v.navigated = append(v.navigated, path) }

func (v *fakeView) ShowStatus(msg string) { v.status = msg }
func (v *fakeView) ShowTimer(remaining int, pulse bool) { v.timer, v.pulse = remaining, pulse }
func (v *fakeView) SetStartEnabled(enabled bool) { v.startEnabled = enabled }
func (v *fakeView) SetRecording(recording bool) { v.recording = recording }
func (v *fakeView) ShowFrame(dataURL string) { v.frames = append(v.frames, dataURL) }
func (v *fakeView) ShowCapture(imagePath string) { v.capture = imagePath }
func (v *fakeView) ShowTimestamp(time.Time) { v.timestamps++ }

func (v *fakeView) ShowResult(res api.Result) { v.result = &res }
func (v *fakeView) SetContactRequired(email, phone bool) { v.emailRequired, v.phoneRequired = email, phone }
func (v *fakeView) Alert(msg string) { v.alerts = append(v.alerts, msg) }
func (v *fakeView) ShowSuccess() { v.success = true }
func (v *fakeView) Download(url, filename string) { v.downloads = append(v.downloads, url+" as "+filename) }

// fakeDial maps x straight to a frequency and records draws.
type fakeDial struct {
	drawn []float64
}

func (d *fakeDial) Draw(f float64) { d.drawn = append(d.drawn, f) }
func (d *fakeDial) FrequencyAt(x, y float64) float64 { return x }

type fakeAnimator struct{ running bool }

func (a *fakeAnimator) Start() { a.running = true }
func (a *fakeAnimator) Stop() { a.running = false }

type fakeToggler struct{ toggles int }

func (t *fakeToggler) Toggle() { t.toggles++ }

// fakeStream records session commands and lets tests push messages.
type fakeStream struct {
	handlers   []api.Handler
	connectErr error
	connected  bool
	sessions   []float64
	stops      int
	stopErr    error
	closed     bool
	closeErr   error
}

func (s *fakeStream) Connect() error {
	s.connected = s.connectErr == nil
	return s.connectErr
}

func (s *fakeStream) Subscribe(h api.Handler) func() {
	s.handlers = append(s.handlers, h)
	return func() { s.handlers = nil }
}

func (s *fakeStream) StartSession(frequency, duration float64) error {
	s.sessions = append(s.sessions, frequency)
	return nil
}

func (s *fakeStream) StopSession() error {
	s.stops++
	return s.stopErr
}

func (s *fakeStream) Close() error {
	s.closed = true
	return s.closeErr
}
