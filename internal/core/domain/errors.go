package domain

import (
	"errors"
	"fmt"
)

// Category sentinels for access gate rejections. Every *AuthError unwraps to
// exactly one of them.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrAccountDisabled = errors.New("account disabled")
)

// AuthFailureReason tags why the access gate rejected a request.
type AuthFailureReason string

const (
	ReasonNoCredentials    AuthFailureReason = "no_credentials"
	ReasonBadSignature     AuthFailureReason = "malformed_or_bad_signature"
	ReasonExpired          AuthFailureReason = "expired"
	ReasonMissingSubject   AuthFailureReason = "missing_subject"
	ReasonUnknownPrincipal AuthFailureReason = "unknown_principal"
	ReasonDisabled         AuthFailureReason = "disabled_account"
)

// AuthError is a rejection produced by the access gate. Clients only ever see
// the collapsed category; Reason and Err are for logs, metrics and tests.
type AuthError struct {
	Reason AuthFailureReason
	Err    error
}

// NewAuthError builds a rejection for reason with an optional cause.
func NewAuthError(reason AuthFailureReason, cause error) *AuthError {
	return &AuthError{Reason: reason, Err: cause}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.category(), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.category(), e.Reason)
}

func (e *AuthError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.category(), e.Err}
	}
	return []error{e.category()}
}

func (e *AuthError) category() error {
	switch e.Reason {
	case ReasonNoCredentials:
		return ErrUnauthenticated
	case ReasonDisabled:
		return ErrAccountDisabled
	default:
		return ErrInvalidToken
	}
}

// FieldViolation describes one invalid request field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports a malformed request body or form.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	msg := "validation failed: " + e.Violations[0].Message
	for _, v := range e.Violations[1:] {
		msg += "; " + v.Message
	}
	return msg
}
