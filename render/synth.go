package render

import (
	"math"

	"github.com/simukka/cymatics-kiosk/audio"
)

// Sample evaluates the display waveform at time t: amp * shape(t * freq).
func Sample(w audio.Waveform, freq, amp, t float64) float64 {
	return amp * w.Shape(t*freq)
}

// Sweep fills dst with one pass across the display. Column i sits at
// t = i/len(dst)*2π + elapsed, so the pattern drifts as time passes.
func Sweep(dst []float64, w audio.Waveform, freq, amp, elapsed float64) {
	n := float64(len(dst))
	for i := range dst {
		dst[i] = Sample(w, freq, amp, float64(i)/n*2*math.Pi+elapsed)
	}
}
