package services

import (
	"errors"
	"fmt"
)

// Kind classifies why a request was rejected.
type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindRoleDenied        Kind = "role_denied"
	KindOwnershipDenied   Kind = "ownership_denied"
	KindNotFound          Kind = "not_found"
	KindValidationFailed  Kind = "validation_failed"
	KindImageUploadFailed Kind = "image_upload_failed"
	KindDuplicateKey      Kind = "duplicate_key"
	KindInternal          Kind = "internal"
)

// Error is the rejection returned by every service entry point. Message is
// safe to show to the caller; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
	ErrRoleDenied        = &Error{Kind: KindRoleDenied, Message: "access denied"}
	ErrOwnershipDenied   = &Error{Kind: KindOwnershipDenied, Message: "you can only manage products in your own shops"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrValidationFailed  = &Error{Kind: KindValidationFailed, Message: "validation failed"}
	ErrImageUploadFailed = &Error{Kind: KindImageUploadFailed, Message: "image upload failed"}
	ErrDuplicateKey      = &Error{Kind: KindDuplicateKey, Message: "already exists"}
)

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Validation builds a ValidationFailed error. Exported for the HTTP layer,
// which rejects malformed form fields before they reach a service.
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidationFailed, fmt.Sprintf(format, args...), nil)
}

func notFound(what string) *Error {
	return newError(KindNotFound, what+" not found", nil)
}

func internal(msg string, err error) *Error {
	return newError(KindInternal, msg, err)
}

// KindOf returns the kind of err, KindInternal for foreign errors and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(KindOf(err))
}
