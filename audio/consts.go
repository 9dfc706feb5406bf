package audio

import "time"

// DefaultConfig is the configuration the kiosk ships with.
var DefaultConfig = Config{
	TargetGain: 0.5,
	RampTime:   0.1,

	FFTSize: 2048,

	MinFrequency:     20,
	MaxFrequency:     2000,
	DefaultFrequency: 440,
	DefaultWaveform:  Sine,

	PreviewDuration: 500 * time.Millisecond,
	RestartDelay:    100 * time.Millisecond,

	SampleRate: 48000,
}

// ClampFrequency limits f to the range of DefaultConfig.
func ClampFrequency(f float64) float64 {
	return DefaultConfig.ClampFrequency(f)
}
