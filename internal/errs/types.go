package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError reports malformed, missing or out-of-range input.
type ValidationError struct {
	ErrorMessage
}

type NotFoundError struct {
	ErrorMessage
}

// AlreadyExistsError is the conflict tag, e.g. a second plan for the same month.
type AlreadyExistsError struct {
	ErrorMessage
}

// PermissionError means the caller does not own the resource.
type PermissionError struct {
	ErrorMessage
}

// MalformedTimestampError is raised for a stored timestamp none of the known shapes can decode.
// Aggregations recover from it per record.
type MalformedTimestampError struct {
	ErrorMessage
	Raw any
}

// DatabaseError wraps a failure of the document store.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewPermissionError(message string) *PermissionError {
	return &PermissionError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMalformedTimestampError(raw any) *MalformedTimestampError {
	return &MalformedTimestampError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("malformed timestamp: %v", raw)},
		Raw:          raw,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", message, err)},
		Operation:    operation,
		Err:          err,
	}
}
