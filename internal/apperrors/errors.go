package apperrors

import "fmt"

// ValidationError reports missing or malformed required input. It maps to a
// 400 response and is safe to show to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// StorageError reports a failed document store operation. It maps to a 500
// response; the wrapped cause is logged but never sent to the caller.
type StorageError struct {
	Op  string // "put" or "list"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// InitializationError means the store client never came up at startup. Data
// endpoints fail fast with it; the process itself keeps serving static assets.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("store not initialized: %v", e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}
