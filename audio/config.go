package audio

import (
	"time"

	"github.com/simukka/cymatics-kiosk/common"
)

// Config holds the tone engine tunables.
type Config struct {
	// Gain envelope
	TargetGain float64 // Amplitude reached by a start fade (0.0 - 1.0)
	RampTime   float64 // Seconds for gain and frequency transitions

	// Analyser
	FFTSize int // Time-domain window length, also the snapshot length

	// Frequency range (Hz)
	MinFrequency     float64
	MaxFrequency     float64
	DefaultFrequency float64
	DefaultWaveform  Waveform

	// Preview
	PreviewDuration time.Duration // Used when PreviewFrequency gets no duration
	RestartDelay    time.Duration // Pause before the pre-preview tone comes back

	// Software graph only
	SampleRate float64
}

// ClampFrequency limits f to the configured range.
func (c Config) ClampFrequency(f float64) float64 {
	return common.Clamp(f, c.MinFrequency, c.MaxFrequency)
}

// Ramp returns RampTime as a duration for the scheduler.
func (c Config) Ramp() time.Duration {
	return time.Duration(c.RampTime * float64(time.Second))
}
