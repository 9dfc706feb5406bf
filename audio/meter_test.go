package audio

import (
	"math"
	"testing"
)

func TestMeasure_Sine(t *testing.T) {
	const rate = 8000.0
	samples := make([]float32, 4000)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*100*float64(i)/rate+0.1))
	}
	l := Measure(samples)
	if math.Abs(l.Peak-0.5) > 0.01 {
		t.Errorf("Expected peak 0.5, got %v", l.Peak)
	}
	if math.Abs(l.RMS-0.5/math.Sqrt2) > 0.01 {
		t.Errorf("Expected RMS %v, got %v", 0.5/math.Sqrt2, l.RMS)
	}
	if f := l.Frequency(rate); math.Abs(f-100) > 2 {
		t.Errorf("Expected 100 Hz, got %v", f)
	}
}

func TestMeasure_Empty(t *testing.T) {
	l := Measure(nil)
	if l.Length != 0 || !math.IsInf(l.RMSdB, -1) {
		t.Errorf("Expected silent stats, got %+v", l)
	}
	if l.Frequency(8000) != 0 {
		t.Error("Expected no frequency for an empty window")
	}
}

func TestNormalize(t *testing.T) {
	v := []float64{0.5, -2, 1}
	if peak := Normalize(v); peak != 2 {
		t.Errorf("Expected peak 2, got %v", peak)
	}
	if v[1] != -1 || v[0] != 0.25 {
		t.Errorf("Expected values scaled by the peak, got %v", v)
	}

	quiet := []float64{0.2, -0.4}
	Normalize(quiet)
	if quiet[1] != -0.4 {
		t.Errorf("Expected quiet signals untouched, got %v", quiet)
	}
}
