package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/logivex/l4scan/pkg/rawsock"
)

// ─── types ────────────────────────────────────────────────────────────────────

type PermissionError struct {
	Message string
}

// NetworkError is a fatal failure of a raw socket operation: acquiring the
// socket, sending a probe or waiting for a reply.
type NetworkError struct {
	Target  string
	Message string
	Err     error
}

type InputError struct {
	Field   string
	Message string
}

// ─── error interfaces ─────────────────────────────────────────────────────────

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Message)
}

func (e *NetworkError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	if e.Target != "" {
		return fmt.Sprintf("network error [%s]: %s", e.Target, msg)
	}
	return fmt.Sprintf("network error: %s", msg)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

// ─── constructors ─────────────────────────────────────────────────────────────

func Permission(msg string) error {
	return &PermissionError{Message: msg}
}

func Network(target, msg string) error {
	return &NetworkError{Target: target, Message: msg}
}

// Wrap classifies a raw socket failure: privilege problems become a
// PermissionError, everything else a NetworkError carrying err.
func Wrap(target, msg string, err error) error {
	var perm *rawsock.PermissionErr
	if stderrors.As(err, &perm) {
		return &PermissionError{Message: perm.Op}
	}
	return &NetworkError{Target: target, Message: msg, Err: err}
}

func Input(field, msg string) error {
	return &InputError{Field: field, Message: msg}
}

// ─── classification ───────────────────────────────────────────────────────────

// IsInput reports whether err is, or wraps, an InputError.
func IsInput(err error) bool {
	var e *InputError
	return stderrors.As(err, &e)
}

// IsPermission reports whether err is, or wraps, a PermissionError.
func IsPermission(err error) bool {
	var e *PermissionError
	return stderrors.As(err, &e)
}
