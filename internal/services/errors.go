package services

// ValidationError reports bad or missing caller input. It is an expected,
// user-correctable outcome, not a fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}
