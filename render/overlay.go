package render

import (
	"fmt"
	"math"

	"github.com/simukka/cymatics-kiosk/audio"
)

// StatsOverlay displays frame rate and signal level over the waveform.
type StatsOverlay struct {
	Visible bool

	// FPS tracking
	FrameCount    int
	LastFPSUpdate float64
	CurrentFPS    float64

	// Level returns the latest level measurement; nil hides the meter.
	Level func() audio.Level

	// Position and styling
	PanelX      float64
	PanelY      float64
	LineHeight  float64
	PanelWidth  float64
	PanelHeight float64
}

// NewStatsOverlay creates a hidden overlay in the top-left corner.
func NewStatsOverlay(level func() audio.Level) *StatsOverlay {
	return &StatsOverlay{
		Level:       level,
		PanelX:      8,
		PanelY:      8,
		LineHeight:  16,
		PanelWidth:  160,
		PanelHeight: 72,
	}
}

// Toggle toggles the overlay visibility.
func (s *StatsOverlay) Toggle() {
	s.Visible = !s.Visible
}

// UpdateFPS counts a frame at currentTime (ms) and refreshes the rate once a
// second.
func (s *StatsOverlay) UpdateFPS(currentTime float64) {
	s.FrameCount++

	elapsed := currentTime - s.LastFPSUpdate
	if elapsed >= 1000 {
		s.CurrentFPS = float64(s.FrameCount) / (elapsed / 1000)
		s.FrameCount = 0
		s.LastFPSUpdate = currentTime
	}
}

// Render draws the overlay panel.
func (s *StatsOverlay) Render(surface Surface) {
	if !s.Visible {
		return
	}
	surface.FillRect(s.PanelX, s.PanelY, s.PanelWidth, s.PanelHeight, Theme.OverlayBackground)

	x, y := s.PanelX+8, s.PanelY+s.LineHeight
	surface.Text(x, y, fmt.Sprintf("FPS: %.0f", s.CurrentFPS), Theme.OverlayText)
	if s.Level == nil {
		return
	}

	l := s.Level()
	y += s.LineHeight
	surface.Text(x, y, "RMS: "+formatDB(l.RMSdB), Theme.OverlayText)
	y += s.LineHeight
	surface.Text(x, y, "Peak: "+formatDB(l.PeakdB), Theme.OverlayText)

	// Peak meter along the bottom edge
	width := (s.PanelWidth - 16) * math.Min(1, l.Peak)
	surface.FillRect(x, s.PanelY+s.PanelHeight-10, width, 4, Theme.OverlayMeter)
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", v)
}
