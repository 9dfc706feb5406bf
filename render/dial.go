package render

import (
	"math"

	"github.com/simukka/cymatics-kiosk/common"
)

// DialConfig describes the dial geometry relative to half the surface's
// smaller side.
type DialConfig struct {
	Segments        int
	InnerRadius     float64
	OuterRadius     float64
	MarkerSize      float64
	HighlightWithin float64 // Hz
}

// DefaultDialConfig matches the kiosk's dial artwork.
var DefaultDialConfig = DialConfig{
	Segments:        60,
	InnerRadius:     0.6,
	OuterRadius:     0.9,
	MarkerSize:      0.05,
	HighlightWithin: 10,
}

// DialMapping converts between dial angles and frequencies on a log scale.
// The lowest frequency sits at RotationOffset and the scale runs one full
// turn clockwise.
type DialMapping struct {
	MinFreq        float64
	MaxFreq        float64
	RotationOffset float64
}

// NewDialMapping returns a mapping over [min, max] starting at the top.
func NewDialMapping(min, max float64) DialMapping {
	return DialMapping{MinFreq: min, MaxFreq: max, RotationOffset: -math.Pi / 2}
}

const turn = 2 * math.Pi

// AngleToFrequency maps an angle in radians to a frequency. An angle exactly
// one turn past the offset maps to MaxFreq rather than wrapping to MinFreq.
func (m DialMapping) AngleToFrequency(angle float64) float64 {
	u := angle - m.RotationOffset
	switch {
	case u > turn && u-turn < 1e-9:
		u = turn
	case u < 0 && u > -1e-9:
		u = 0
	case u < 0 || u > turn:
		u = math.Mod(u, turn)
		if u < 0 {
			u += turn
		}
	}
	lnMin, lnMax := math.Log(m.MinFreq), math.Log(m.MaxFreq)
	return math.Exp(lnMin + u/turn*(lnMax-lnMin))
}

// FrequencyToAngle is the inverse of AngleToFrequency for f in range.
func (m DialMapping) FrequencyToAngle(f float64) float64 {
	f = common.Clamp(f, m.MinFreq, m.MaxFreq)
	lnMin, lnMax := math.Log(m.MinFreq), math.Log(m.MaxFreq)
	return m.RotationOffset + (math.Log(f)-lnMin)/(lnMax-lnMin)*turn
}

// FrequencyAt maps a pointer position on a w x h dial to a frequency rounded
// to 0.1 Hz.
func (m DialMapping) FrequencyAt(x, y, w, h float64) float64 {
	angle := math.Atan2(y-h/2, x-w/2)
	return common.Clamp(common.Round1(m.AngleToFrequency(angle)), m.MinFreq, m.MaxFreq)
}

// Dial draws the segmented frequency ring and the current-frequency marker.
type Dial struct {
	surface Surface
	mapping DialMapping
	cfg     DialConfig
}

// NewDial creates a dial drawing on s.
func NewDial(s Surface, m DialMapping, cfg DialConfig) *Dial {
	return &Dial{surface: s, mapping: m, cfg: cfg}
}

// Mapping returns the dial's angle mapping.
func (d *Dial) Mapping() DialMapping {
	return d.mapping
}

// FrequencyAt maps a pointer position on the dial surface to a frequency.
func (d *Dial) FrequencyAt(x, y float64) float64 {
	w, h := d.surface.Size()
	return d.mapping.FrequencyAt(x, y, w, h)
}

// SegmentAngle is the start angle of segment i.
func (d *Dial) SegmentAngle(i int) float64 {
	return float64(i) / float64(d.cfg.Segments) * turn
}

// SegmentFrequency is the frequency at the start of segment i.
func (d *Dial) SegmentFrequency(i int) float64 {
	return d.mapping.AngleToFrequency(d.SegmentAngle(i))
}

// ActiveSegments lists the segments close enough to f to be highlighted.
func (d *Dial) ActiveSegments(f float64) []int {
	var active []int
	for i := 0; i < d.cfg.Segments; i++ {
		if math.Abs(d.SegmentFrequency(i)-f) < d.cfg.HighlightWithin {
			active = append(active, i)
		}
	}
	return active
}

func (d *Dial) geometry() (cx, cy, radius float64) {
	w, h := d.surface.Size()
	return w / 2, h / 2, math.Min(w, h) / 2
}

// MarkerPosition returns where the marker for f is drawn.
func (d *Dial) MarkerPosition(f float64) (x, y float64) {
	cx, cy, radius := d.geometry()
	angle := d.mapping.FrequencyToAngle(f)
	r := radius * d.cfg.OuterRadius
	return cx + math.Cos(angle)*r, cy + math.Sin(angle)*r
}

// Draw repaints the whole dial for frequency f.
func (d *Dial) Draw(f float64) {
	s := d.surface
	cx, cy, radius := d.geometry()
	inner, outer := radius*d.cfg.InnerRadius, radius*d.cfg.OuterRadius

	s.SetAlpha(1)
	s.Fill(Theme.DialBackground)

	step := turn / float64(d.cfg.Segments)
	for i := 0; i < d.cfg.Segments; i++ {
		a := d.SegmentAngle(i)
		if math.Abs(d.SegmentFrequency(i)-f) < d.cfg.HighlightWithin {
			s.Sector(cx, cy, inner, outer, a, a+step, Theme.SegmentActive, Theme.SegmentGlow)
		} else {
			s.Sector(cx, cy, inner, outer, a, a+step, Theme.SegmentInactive, 0)
		}
	}

	mx, my := d.MarkerPosition(f)
	s.Circle(mx, my, radius*d.cfg.MarkerSize, Theme.MarkerColor, Theme.MarkerGlow)
}
