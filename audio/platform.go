package audio

import "errors"

// ErrAudioUnavailable reports that the platform cannot produce sound.
var ErrAudioUnavailable = errors.New("audio unavailable")

// Param is an automatable value such as a gain or an oscillator frequency.
// Times are in the owning Context's clock (seconds).
type Param interface {
	Value() float64
	SetValueAtTime(v, t float64)
	LinearRampToValueAtTime(v, t float64)
	CancelScheduledValues(t float64)
}

// Node is a unit in the audio graph.
type Node interface {
	Connect(dst Node) error
	Disconnect()
}

// Oscillator is a periodic source.
type Oscillator interface {
	Node
	Frequency() Param
	SetType(w Waveform)
	Start()
	Stop()
}

// Gain scales its input.
type Gain interface {
	Node
	Gain() Param
}

// Analyser passes audio through and keeps the latest time-domain window.
type Analyser interface {
	Node
	Size() int
	TimeDomain(dst []float32)
}

// Context owns an audio graph and its clock.
type Context interface {
	CurrentTime() float64
	Destination() Node
	NewOscillator() (Oscillator, error)
	NewGain() (Gain, error)
	NewAnalyser(size int) (Analyser, error)
	// Resume wakes a context that the platform suspended until a user gesture.
	Resume()
	Close() error
}

// Opener creates the platform Context on first use.
type Opener func() (Context, error)
