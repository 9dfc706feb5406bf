package page

import "errors"

// ErrValidation matches every form validation failure.
var ErrValidation = errors.New("validation failure")

// ValidationError reports the first invalid field of a form. Message is
// shown to the visitor as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
