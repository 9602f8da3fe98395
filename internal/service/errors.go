package service

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when a job does not exist or belongs to a
	// different user. The two cases are deliberately indistinguishable.
	ErrJobNotFound = errors.New("job not found")

	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = errors.New("no fields to update")
)

// JobServiceError wraps unexpected failures in job operations.
type JobServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *JobServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("job service %s failed: %s", e.Operation, e.Message)
}

func (e *JobServiceError) Unwrap() error {
	return e.Err
}

// NewJobServiceError creates a JobServiceError.
func NewJobServiceError(operation, message string, err error) *JobServiceError {
	return &JobServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
