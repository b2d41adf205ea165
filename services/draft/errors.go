package draft

// ValidationError blocks progression; the draft stays unmodified and no
// pricing call is issued.
type ValidationError struct {
	Code    string
	Message string
}

// Error returns the rider-facing message; Code stays out of the string so
// handlers can surface the message verbatim.
func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "validationError",
		Message: msg,
	}
}

// IsValidationError reports whether err is a draft validation failure.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
