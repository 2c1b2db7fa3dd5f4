// Package apperr defines the closed set of failure kinds produced by the
// question/answer core. Every failure surfaced by the repository and service
// layers is an *Error carrying exactly one Kind plus the data needed to render
// it; translation to HTTP status codes and user-facing messages happens in the
// handlers package.
//
// Matching follows the sentinel style used across the codebase:
//
//	if errors.Is(err, apperr.ErrUnauthorized) {
//	    // ...
//	}
//
// Is compares kinds only, so a sentinel matches any *Error of the same kind
// regardless of the cause it carries.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies a failure class.
type Kind uint8

const (
	// KindUnknown is reported by KindOf for errors outside the taxonomy.
	KindUnknown Kind = iota
	KindParse
	KindMissingParameters
	KindUnauthorized
	KindWrongCredential
	KindCredentialDecode
	KindPersistence
	KindUniqueViolation
	KindExternalService
	KindExternalUnavailable
)

var kindNames = [...]string{
	KindUnknown:             "unknown",
	KindParse:               "parse_error",
	KindMissingParameters:   "missing_parameters",
	KindUnauthorized:        "unauthorized",
	KindWrongCredential:     "wrong_credential",
	KindCredentialDecode:    "credential_decode_failure",
	KindPersistence:         "persistence_failure",
	KindUniqueViolation:     "unique_constraint_violation",
	KindExternalService:     "external_service_failure",
	KindExternalUnavailable: "external_service_unavailable",
}

// String returns the snake_case name of the kind, used as a log field and a
// metric label.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Error is a classified failure.
//
// Fields beyond Kind are populated only for the kinds that need them:
//   - Raw:     the unparsable input (KindParse)
//   - Status:  the upstream HTTP status (KindExternalService)
//   - Message: the upstream error message (KindExternalService)
//   - Cause:   the underlying error, kept for logs and errors.As inspection
type Error struct {
	Kind    Kind
	Raw     string
	Status  int
	Message string
	Cause   error
}

// Error renders the full internal description, cause included. It is meant
// for logs; user-facing text comes from the handlers layer.
func (e *Error) Error() string {
	var s string
	switch e.Kind {
	case KindParse:
		s = fmt.Sprintf("cannot parse parameter %q", e.Raw)
	case KindExternalService:
		s = fmt.Sprintf("external service failure: status %d: %s", e.Status, e.Message)
	default:
		s = e.Kind.String()
	}
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

// Unwrap exposes the cause for errors.Is/errors.As traversal.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is matching, one per kind.
var (
	ErrParse               = &Error{Kind: KindParse}
	ErrMissingParameters   = &Error{Kind: KindMissingParameters}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized}
	ErrWrongCredential     = &Error{Kind: KindWrongCredential}
	ErrCredentialDecode    = &Error{Kind: KindCredentialDecode}
	ErrPersistence         = &Error{Kind: KindPersistence}
	ErrUniqueViolation     = &Error{Kind: KindUniqueViolation}
	ErrExternalService     = &Error{Kind: KindExternalService}
	ErrExternalUnavailable = &Error{Kind: KindExternalUnavailable}
)

// ParseError reports input that could not be converted, e.g. a non-numeric
// pagination parameter.
func ParseError(raw string, cause error) *Error {
	return &Error{Kind: KindParse, Raw: raw, Cause: cause}
}

// MissingParameters reports a request lacking a required parameter.
func MissingParameters() *Error { return &Error{Kind: KindMissingParameters} }

// Unauthorized reports a principal that may not perform the operation.
func Unauthorized() *Error { return &Error{Kind: KindUnauthorized} }

// WrongCredential reports a password that does not match the account.
func WrongCredential() *Error { return &Error{Kind: KindWrongCredential} }

// CredentialDecode reports a credential or session token that could not be
// decoded or verified.
func CredentialDecode(cause error) *Error {
	return &Error{Kind: KindCredentialDecode, Cause: cause}
}

// Persistence reports a failed database read or write.
func Persistence(cause error) *Error {
	return &Error{Kind: KindPersistence, Cause: cause}
}

// UniqueViolation reports an insert rejected by a uniqueness constraint.
func UniqueViolation(cause error) *Error {
	return &Error{Kind: KindUniqueViolation, Cause: cause}
}

// ExternalService reports a non-success answer from a third-party API.
func ExternalService(status int, message string) *Error {
	return &Error{Kind: KindExternalService, Status: status, Message: message}
}

// ExternalUnavailable reports a third-party API that could not be reached.
func ExternalUnavailable(cause error) *Error {
	return &Error{Kind: KindExternalUnavailable, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
