package audio

import (
	dsptime "github.com/cwbudde/algo-dsp/stats/time"
)

// Level summarizes a time-domain window.
type Level struct {
	RMS           float64
	RMSdB         float64
	Peak          float64
	PeakdB        float64
	ZeroCrossings int
	Length        int
}

// Measure computes level statistics for samples. An empty window measures as
// silence with -Inf decibels.
func Measure(samples []float32) Level {
	s := dsptime.Calculate(widen(samples))
	return Level{
		RMS:           s.RMS,
		RMSdB:         s.RMS_dB,
		Peak:          s.Peak,
		PeakdB:        s.Peak_dB,
		ZeroCrossings: s.ZeroCrossings,
		Length:        s.Length,
	}
}

// Frequency estimates the fundamental from zero crossings, assuming the window
// was captured at sampleRate.
func (l Level) Frequency(sampleRate float64) float64 {
	if l.Length == 0 {
		return 0
	}
	return float64(l.ZeroCrossings) / 2 / (float64(l.Length) / sampleRate)
}

// Normalize scales v in place so its peak does not exceed 1 and returns the
// original peak. Quiet signals are left alone.
func Normalize(v []float64) float64 {
	peak := dsptime.Peak(v)
	if peak > 1 {
		for i := range v {
			v[i] /= peak
		}
	}
	return peak
}

func widen(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}
