package page

import (
	"regexp"

	"github.com/simukka/cymatics-kiosk/api"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// ContactForm is the collection page form.
type ContactForm struct {
	Name      string
	Email     string
	Phone     string
	OptIn     bool
	SendImage bool
	SendVideo bool
}

// Validate requires an email address or a phone number and checks the format
// of whichever are given.
func (f ContactForm) Validate() error {
	if f.Email == "" && f.Phone == "" {
		return &ValidationError{Message: "Please provide either an email address or phone number"}
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if f.Phone != "" && !ValidPhone(f.Phone) {
		return &ValidationError{Field: "phone", Message: "Please enter a valid phone number"}
	}
	return nil
}

// Submission converts the form to the save request.
func (f ContactForm) Submission() api.Submission {
	return api.Submission{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		OptIn:     f.OptIn,
		SendImage: f.SendImage,
		SendVideo: f.SendVideo,
	}
}

// ValidEmail accepts a single @ with a dotted domain and no whitespace.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidPhone accepts an optional leading + and at least ten digits, spaces
// or dashes.
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// ContactRequirements reports which contact inputs are still required given
// their current values. Filling either one releases the other.
func ContactRequirements(email, phone string) (emailRequired, phoneRequired bool) {
	switch {
	case email != "":
		return true, false
	case phone != "":
		return false, true
	}
	return true, true
}
