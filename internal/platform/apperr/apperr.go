package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for propagation decisions.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindValidationFailed  Kind = "validation_failed"
	KindPersistenceFailed Kind = "persistence_failed"
	KindTimeout           Kind = "timeout"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind, so callers can test against the
// exported sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

var (
	NotFound          = &Error{Kind: KindNotFound}
	ValidationFailed  = &Error{Kind: KindValidationFailed}
	PersistenceFailed = &Error{Kind: KindPersistenceFailed}
	Timeout           = &Error{Kind: KindTimeout}
)

func NewNotFound(msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Msg: msg, Err: err}
}

func NewValidationFailed(msg string, err error) *Error {
	return &Error{Kind: KindValidationFailed, Msg: msg, Err: err}
}

func NewPersistenceFailed(msg string, err error) *Error {
	return &Error{Kind: KindPersistenceFailed, Msg: msg, Err: err}
}

func NewTimeout(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Msg: msg, Err: err}
}
