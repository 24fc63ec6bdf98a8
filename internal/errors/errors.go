// Package errors wraps github.com/go-errors/errors so that every error
// crossing a package boundary carries the stack of where it was raised.
package errors

import (
	"errors"
	"fmt"

	errorsGo "github.com/go-errors/errors"
)

var ErrUnsupported = errors.ErrUnsupported

type Error = errorsGo.Error

func As(err error, target any) bool { return errorsGo.As(err, target) }

func Is(err, target error) bool { return errorsGo.Is(err, target) }

func Unwrap(err error) error { return errorsGo.Unwrap(err) }

// New returns a sentinel-style error without a captured stack.
func New(msg string) error { return errors.New(msg) }

// Wrap attaches the caller's stack to err. It returns nil for nil and keeps
// the original stack if err already carries one.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errGo, ok := err.(*errorsGo.Error); ok {
		return errGo
	}
	return errorsGo.Wrap(err, 1)
}

// WrapPrefix is Wrap with a message prefix, as in "set mode: <err>".
func WrapPrefix(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return errorsGo.WrapPrefix(err, prefix, 1)
}

// Errorf formats an error and captures the caller's stack. %w is honoured.
func Errorf(format string, a ...any) error { return errorsGo.Wrap(fmt.Errorf(format, a...), 1) }

// Stack returns the formatted stack of err, or nil if it has none.
func Stack(err error) []byte {
	var errGo *errorsGo.Error
	if errorsGo.As(err, &errGo) {
		return errGo.Stack()
	}
	return nil
}
