package render

import (
	"math"
	"testing"
)

func TestDialMapping_RoundTrip(t *testing.T) {
	m := NewDialMapping(20, 2000)
	for f := 20.0; f <= 2000; f *= 1.07 {
		got := m.AngleToFrequency(m.FrequencyToAngle(f))
		if math.Abs(got-f) > 1e-6*f {
			t.Errorf("Round trip of %v gave %v", f, got)
		}
	}
	for _, f := range []float64{20, 2000} {
		if got := m.AngleToFrequency(m.FrequencyToAngle(f)); math.Abs(got-f) > 1e-6*f {
			t.Errorf("Expected range end %v to survive the round trip, got %v", f, got)
		}
	}
}

func TestDialMapping_MarkerAngleFor440(t *testing.T) {
	m := NewDialMapping(20, 2000)
	want := -math.Pi/2 + (math.Log(440)-math.Log(20))/(math.Log(2000)-math.Log(20))*2*math.Pi
	if got := m.FrequencyToAngle(440); math.Abs(got-want) > 1e-12 {
		t.Errorf("FrequencyToAngle(440) = %v, expected %v", got, want)
	}
}

func TestDialMapping_AngleToFrequency(t *testing.T) {
	m := NewDialMapping(20, 2000)
	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{"top is the minimum", -math.Pi / 2, 20},
		{"right is a quarter turn", 0, 20 * math.Pow(100, 0.25)},
		{"bottom is half way", math.Pi / 2, 200},
		{"wraps past a full turn", -math.Pi/2 + 2*math.Pi + math.Pi, 200},
		{"wraps negative angles", -math.Pi/2 - math.Pi, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.AngleToFrequency(tt.angle); math.Abs(got-tt.expected) > 1e-9*tt.expected {
				t.Errorf("AngleToFrequency(%v) = %v, expected %v", tt.angle, got, tt.expected)
			}
		})
	}
}

func TestDialMapping_FrequencyAt(t *testing.T) {
	m := NewDialMapping(20, 2000)
	if got := m.FrequencyAt(100, 150, 200, 200); got != 200 {
		t.Errorf("Expected 200 Hz straight below the center, got %v", got)
	}
	if got := m.FrequencyAt(150, 100, 200, 200); got != 63.2 {
		t.Errorf("Expected 63.2 Hz to the right of the center, got %v", got)
	}
}

func TestDial_ActiveSegments(t *testing.T) {
	d := NewDial(newRecorder(300, 300), NewDialMapping(20, 2000), DefaultDialConfig)
	f := d.SegmentFrequency(20)
	active := d.ActiveSegments(f + 3)
	found := false
	for _, i := range active {
		if i == 20 {
			found = true
		}
		if math.Abs(d.SegmentFrequency(i)-(f+3)) >= 10 {
			t.Errorf("Segment %d is outside the highlight threshold", i)
		}
	}
	if !found {
		t.Errorf("Expected segment 20 to be active, got %v", active)
	}
}

func TestDial_Draw(t *testing.T) {
	rec := newRecorder(300, 200)
	d := NewDial(rec, NewDialMapping(20, 2000), DefaultDialConfig)
	d.Draw(440)

	if len(rec.sectors) != 60 {
		t.Fatalf("Expected 60 segments, got %d", len(rec.sectors))
	}
	active := 0
	for _, c := range rec.sectors {
		if c == Theme.SegmentActive {
			active++
		}
	}
	if active != len(d.ActiveSegments(440)) {
		t.Errorf("Expected %d highlighted segments, got %d", len(d.ActiveSegments(440)), active)
	}

	if len(rec.circles) != 1 {
		t.Fatalf("Expected one marker, got %d", len(rec.circles))
	}
	angle := NewDialMapping(20, 2000).FrequencyToAngle(440)
	wantX, wantY := 150+math.Cos(angle)*90, 100+math.Sin(angle)*90
	if m := rec.circles[0]; math.Abs(m.X-wantX) > 1e-9 || math.Abs(m.Y-wantY) > 1e-9 {
		t.Errorf("Marker at %v, expected (%v, %v)", m, wantX, wantY)
	}
}
