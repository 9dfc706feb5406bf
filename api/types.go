package api

import (
	"math"

	"github.com/simukka/cymatics-kiosk/audio"
)

// StatusSuccess is the status string the backend uses for good results.
const StatusSuccess = "success"

// Tone is the selection sent when an experiment starts.
type Tone struct {
	Frequency float64 `json:"frequency"`
	Waveform  string  `json:"waveform"`
}

// Experiment is the backend's current experiment.
type Experiment struct {
	Status    string  `json:"status,omitempty"`
	SessionID string  `json:"session_id,omitempty"`
	Frequency float64 `json:"frequency"`
	Waveform  string  `json:"waveform,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
}

// WaveformOrDefault parses the experiment's waveform, falling back to sine
// for missing or unknown names.
func (e Experiment) WaveformOrDefault() audio.Waveform {
	w, err := audio.ParseWaveform(e.Waveform)
	if err != nil {
		return audio.Sine
	}
	return w
}

// RecordRequest starts a recording of the given length in seconds.
type RecordRequest struct {
	Frequency float64 `json:"frequency"`
	Duration  float64 `json:"duration"`
}

// StopResult is returned when a recording stops.
type StopResult struct {
	Status    string `json:"status,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
	VideoPath string `json:"videoPath,omitempty"`
}

// Result is the outcome of the last experiment.
type Result struct {
	Status    string  `json:"status"`
	Frequency float64 `json:"frequency"`
	ImagePath string  `json:"imagePath"`
	VideoPath string  `json:"videoPath,omitempty"`
}

// OK reports whether the backend has a result to show.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// Submission is the contact form sent to save an experiment.
type Submission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	OptIn     bool   `json:"optIn"`
	SendImage bool   `json:"sendImage"`
	SendVideo bool   `json:"sendVideo"`
}

type usedFrequencies struct {
	Frequencies []float64 `json:"frequencies"`
}

type suggestion struct {
	Frequency float64 `json:"frequency"`
	IsNew     bool    `json:"is_new"`
}

// History is the set of whole-hertz frequencies already explored.
type History map[int]struct{}

// NewHistory builds a history, rounding each frequency to the nearest hertz.
func NewHistory(freqs []float64) History {
	h := make(History, len(freqs))
	for _, f := range freqs {
		h[int(math.Round(f))] = struct{}{}
	}
	return h
}

// Contains reports whether f rounds to an explored frequency.
func (h History) Contains(f float64) bool {
	_, ok := h[int(math.Round(f))]
	return ok
}
