package common

import (
	"fmt"
	"runtime"
)

// SystemError signals an unrecoverable defect or environment failure. The
// engine panics with it on malformed input (e.g. a kind value outside the
// defined set); it is not a recoverable condition.
type SystemError struct {
	Message string
}

func (e SystemError) Error() string {
	return fmt.Sprintf("system error: %s", e.Message)
}

func NewSystemError(err error) error {
	return SystemError{Message: err.Error()}
}

// NewInternalError marks a bug in the commonizer itself, carrying the caller
// position so the report points at the defect.
func NewInternalError(message string) error {
	_, file, line, _ := runtime.Caller(1)
	return internalError{message: message, file: file, line: line}
}

type internalError struct {
	message string
	file    string
	line    int
}

func (e internalError) Error() string {
	return fmt.Sprintf("%s at %s:%d", e.message, e.file, e.line)
}
