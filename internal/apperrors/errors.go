package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error carrying the wire code and HTTP status it renders as.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code, so every copy of a kind satisfies errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && e.Code == t.Code
}

func kind(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	ErrNotFound          = kind("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation        = kind("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrUnauthorized      = kind("UNAUTHORIZED", http.StatusUnauthorized, "authentication required")
	ErrForbidden         = kind("FORBIDDEN", http.StatusForbidden, "admin access required")
	ErrConflict          = kind("CONFLICT", http.StatusConflict, "conflict")
	ErrInvalidTransition = kind("INVALID_TRANSITION", http.StatusConflict, "resource already moderated")
	ErrInvalidCredential = kind("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid credentials")
	ErrRateLimited       = kind("RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests, "too many requests, please try again later")
	ErrInternal          = kind("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// Clone returns a copy of k, with message replacing the default when set.
func Clone(k *Error, message string) *Error {
	e := *k
	if message != "" {
		e.Message = message
	}
	return &e
}

// Wrap attaches a cause to a copy of k.
func Wrap(k *Error, err error, message string) *Error {
	e := Clone(k, message)
	e.Err = err
	return e
}

// FromError returns err's *Error, or ErrInternal wrapping it.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ErrInternal, err, "")
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAuthorization covers both missing identity and insufficient role.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidTransition)
}
