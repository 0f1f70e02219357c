package errors

import (
	"errors"
)

// As is errors.As for *Error targets
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// GetCode extracts the error code. Errors from outside this package are
// Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage extracts the message without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsAborted checks if an error is an aborted error
func IsAborted(err error) bool { return GetCode(err) == CodeAborted }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// IsRetryable reports whether err is a transient storage or concurrency
// failure. A level up whose commit fails this way can be committed again.
func IsRetryable(err error) bool {
	return err != nil && GetCode(err).Retryable()
}
