package domain

import (
	"errors"
	"strings"
)

// Kind classifies a domain failure so callers can pick a user-facing response.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindExpired    Kind = "expired"
	KindDependency Kind = "dependency"
)

// Error is the error type returned by the invitation services. Reasons holds
// one or more human-readable messages; several may be reported together
// (e.g. "already invited" and "already a member").
type Error struct {
	Kind    Kind
	Reasons []string
	Err     error // Underlying cause, if any
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrForbidden  = &Error{Kind: KindForbidden}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrExpired    = &Error{Kind: KindExpired}
	ErrDependency = &Error{Kind: KindDependency}
)

func (e *Error) Error() string {
	msg := strings.Join(e.Reasons, "; ")
	switch {
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case msg == "":
		msg = string(e.Kind)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an *Error of the given kind with one or more reasons.
func NewError(kind Kind, reasons ...string) *Error {
	return &Error{Kind: kind, Reasons: reasons}
}

// WrapError builds an *Error of the given kind around a cause.
func WrapError(kind Kind, err error, reasons ...string) *Error {
	return &Error{Kind: kind, Reasons: reasons, Err: err}
}

// KindOf returns the Kind carried by err, or "" if err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ReasonsOf returns the reasons carried by err. Non-domain errors yield their
// message as a single reason.
func ReasonsOf(err error) []string {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) && len(de.Reasons) > 0 {
		return de.Reasons
	}
	return []string{err.Error()}
}
