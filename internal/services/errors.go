package services

import (
	"errors"
	"fmt"
)

var (
	ErrCaseNotFound = errors.New("court case not found")
	ErrCaseTrashed  = errors.New("court case is in the trash; restore it before editing")
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError is reported to the caller as-is and never retried.
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

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UpstreamError wraps a failed call to the upload service or the auth
// provider.
type UpstreamError struct {
	Service string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}
