package page

import "github.com/simukka/cymatics-kiosk/api"

const (
	StatusExplored   = "Previously explored frequency"
	StatusUnexplored = "Unexplored frequency!"
)

// FrequencyStatus returns the indicator text and CSS class for f.
func FrequencyStatus(h api.History, f float64) (text, class string) {
	if h.Contains(f) {
		return StatusExplored, "used"
	}
	return StatusUnexplored, "new"
}
