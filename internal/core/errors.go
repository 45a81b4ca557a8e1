package core

// ValidationError reports caller-supplied arguments violating a precondition.
// Always raised before any database round trip.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a targeted lookup or update that matched zero rows.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
