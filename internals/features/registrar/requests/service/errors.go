package service

// ValidationError is bad or missing input. It is always surfaced before the
// persist step, so a submission that fails validation leaves no side effects.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "Missing required field: " + field}
}
