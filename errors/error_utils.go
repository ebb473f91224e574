package errors

import (
	"context"
	"errors"
)

// IsContextError reports whether err comes from a cancelled or expired
// context, either directly or through an *Error carrying a context code.
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var tErr *Error
	for As(err, &tErr) {
		if tErr.Code() == ERR_CONTEXT_CANCELED || tErr.Code() == ERR_CONTEXT {
			return true
		}

		if err = tErr.Unwrap(); err == nil {
			return false
		}
	}

	return false
}
