// Package common provides shared constants, types, and utilities
// used across the wg-toggle application.
package common

import "errors"

// Sentinel errors for wg-toggle operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorage            = errors.New("storage error")

	// Toggle errors.
	ErrPathListUnavailable    = errors.New("path list unavailable")
	ErrExternalCommandFailure = errors.New("external command failed")
	ErrExternalCommandSpawn   = errors.New("external command could not be started")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
