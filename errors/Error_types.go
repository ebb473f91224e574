package errors

var (
	ErrUnknown         = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound        = New(ERR_NOT_FOUND, "not found")
	ErrProcessing      = New(ERR_PROCESSING, "error processing")
	ErrConfiguration   = New(ERR_CONFIGURATION, "configuration error")
	ErrContext         = New(ERR_CONTEXT, "context error")
	ErrContextCanceled = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrBlockInvalid    = New(ERR_BLOCK_INVALID, "block invalid")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
