package audio

import (
	"errors"
	"math"
	"strings"
)

// ErrUnknownWaveform is returned for waveform names or values outside the
// supported set. Callers keep their previous waveform.
var ErrUnknownWaveform = errors.New("audio: unknown waveform")

// Waveform is the oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

var waveformNames = [...]string{
	Sine:     "sine",
	Square:   "square",
	Triangle: "triangle",
	Sawtooth: "sawtooth",
}

// Waveforms lists every supported waveform in display order.
var Waveforms = []Waveform{Sine, Square, Triangle, Sawtooth}

// Valid reports whether w is one of the supported shapes.
func (w Waveform) Valid() bool {
	return w >= Sine && w <= Sawtooth
}

func (w Waveform) String() string {
	if !w.Valid() {
		return "unknown"
	}
	return waveformNames[w]
}

// ParseWaveform maps a WebAudio oscillator type name to a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return Sine, ErrUnknownWaveform
}

// Shape evaluates the waveform at phase theta (radians) in [-1, 1].
// These definitions are shared by the software oscillator and the display.
func (w Waveform) Shape(theta float64) float64 {
	switch w {
	case Sine:
		return math.Sin(theta)
	case Square:
		s := math.Sin(theta)
		if s > 0 {
			return 1
		} else if s < 0 {
			return -1
		}
		return 0
	case Triangle:
		return math.Asin(math.Sin(theta)) * 2 / math.Pi
	case Sawtooth:
		// Fractional ramp over one cycle, starting at zero like a WebAudio sawtooth.
		c := theta/(2*math.Pi) + 0.5
		return 2*(c-math.Floor(c)) - 1
	}
	return 0
}
