// Package errors provides the coded error type used throughout the node.
//
// Every error carries an ERR code. Is compares codes rather than messages, so a
// caller can test for a category (for example ErrConfiguration) anywhere in a
// chain of wrapped errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

type Error struct {
	code       ERR
	message    string
	wrappedErr error
	data       *ErrData
}

// New creates a coded error. When the last param is an error it becomes the
// wrapped error; the remaining params format the message.
func New(code ERR, message string, params ...interface{}) *Error {
	e := &Error{code: code}

	if n := len(params); n > 0 {
		if err, ok := params[n-1].(error); ok {
			e.wrappedErr = err
			params = params[:n-1]
		}
	}

	switch _, known := ERR_name[int32(code)]; {
	case !known:
		e.message = "invalid error code"
	case len(params) > 0:
		e.message = fmt.Sprintf(message, params...)
	default:
		e.message = message
	}

	return e
}

func (e *Error) Error() string {
	// predefined errors can be wrapped as typed nils
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Error: %s (error code: %d), Message: %v", e.code.Enum(), e.code, e.message)

	if e.wrappedErr != nil {
		fmt.Fprintf(&sb, ", Wrapped err: %v", e.wrappedErr)
	}

	if e.data != nil {
		fmt.Fprintf(&sb, ", Data: %s", e.data.Error())
	}

	return sb.String()
}

// Is reports whether e, or an *Error it wraps directly, has the code of
// target. Other targets match on message text.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}

	targetErr, ok := target.(*Error)
	if !ok {
		return strings.Contains(e.Error(), target.Error())
	}

	for cur := e; cur != nil; {
		if cur.code == targetErr.code {
			return true
		}

		next, ok := cur.wrappedErr.(*Error)
		if !ok {
			return false
		}

		cur = next
	}

	return false
}

func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	if e.wrappedErr == nil {
		return false
	}

	return errors.As(e.wrappedErr, target)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

// SetData attaches a key/value pair that is printed with the error.
func (e *Error) SetData(key string, value interface{}) {
	if e.data == nil {
		e.data = &ErrData{}
	}

	e.data.SetData(key, value)
}

func (e *Error) GetData(key string) interface{} {
	return e.data.GetData(key)
}

// Is is a passthrough to the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a passthrough to the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is a passthrough to the standard library errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
