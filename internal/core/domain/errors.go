package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal server error")

	ErrInvalidCredentials  = &Error{Kind: KindUnauthorized, Message: "invalid email or password"}
	ErrInvalidToken        = &Error{Kind: KindUnauthorized, Message: "invalid or expired token"}
	ErrInvalidRefreshToken = &Error{Kind: KindUnauthorized, Message: "invalid or expired refresh token"}
	ErrEmailTaken          = &Error{Kind: KindConflict, Message: "email already registered", Err: ErrConflict}
	ErrInsufficientRole    = &Error{Kind: KindForbidden, Message: "insufficient permissions", Err: ErrForbidden}
	ErrNoOrganization      = &Error{Kind: KindForbidden, Message: "user does not belong to an organization", Err: ErrForbidden}
)

// Error is an application error that carries the category used to pick the
// HTTP status and a message that is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(what string) error {
	return &Error{Kind: KindNotFound, Message: what + " not found", Err: ErrNotFound}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message, Err: ErrForbidden}
}

// KindOf classifies err. Bare store sentinels are recognised so repositories
// do not have to know about presentation.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	}
	return KindInternal
}

// PublicMessage is the message a client may see for err.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal && appErr.Message != "" {
		return appErr.Message
	}
	switch KindOf(err) {
	case KindNotFound:
		return ErrNotFound.Error()
	case KindConflict:
		return ErrConflict.Error()
	case KindUnauthorized:
		return ErrUnauthorized.Error()
	case KindForbidden:
		return ErrForbidden.Error()
	}
	return ErrInternal.Error()
}
