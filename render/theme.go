package render

// Theme holds all visual styling constants for easy customization.
var Theme = struct {
	// Waveform display
	WaveBackground string
	WaveFadeAlpha  float64
	WaveActive     string
	WaveIdle       string
	WaveLineWidth  float64
	WaveGlow       float64

	// Dial
	DialBackground   string
	SegmentActive    string
	SegmentInactive  string
	SegmentGlow      float64
	MarkerColor      string
	MarkerGlow       float64

	// Stats overlay
	OverlayBackground string
	OverlayText       string
	OverlayMeter      string
	OverlayFont       string
}{
	// Waveform display - cyan on charcoal
	WaveBackground: "#232323",
	WaveFadeAlpha:  0.35,
	WaveActive:     "#00E7FF",
	WaveIdle:       "#FF00E7",
	WaveLineWidth:  2,
	WaveGlow:       10,

	// Dial - cyan segments, dark inactive ring
	DialBackground:  "#232323",
	SegmentActive:   "#00E7FF",
	SegmentInactive: "#2A2A2A",
	SegmentGlow:     10,
	MarkerColor:     "#00E7FF",
	MarkerGlow:      15,

	// Stats overlay
	OverlayBackground: "rgba(0,0,0,0.75)",
	OverlayText:       "#0AF",
	OverlayMeter:      "#FF00E7",
	OverlayFont:       "12px Consolas,monospace",
}
