package errors

import (
	"fmt"
)

// ErrData holds the key/value context attached to an *Error.
type ErrData map[string]interface{}

func (e *ErrData) Error() string {
	return fmt.Sprintf(" %v", *e)
}

func (e *ErrData) SetData(key string, value interface{}) {
	if e == nil {
		return
	}

	(*e)[key] = value
}

// GetData returns nil for a missing key or a nil receiver.
func (e *ErrData) GetData(key string) interface{} {
	if e == nil {
		return nil
	}

	return (*e)[key]
}
