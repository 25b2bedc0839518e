package cli

import (
	"errors"
	"fmt"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/store"
)

// ExitCode is the process exit status for a failed command.
type ExitCode int

const (
	ExitSuccess      ExitCode = 0
	ExitGeneralError ExitCode = 1
	// ExitInvalidInput covers unreadable job files, bad lengths and bad flags.
	ExitInvalidInput ExitCode = 2
	// ExitOversizeCut is returned when a cut does not fit a board and joining is off.
	ExitOversizeCut  ExitCode = 3
	ExitNotFound     ExitCode = 4
	ExitIOError      ExitCode = 5
)

// CLIError carries an exit code alongside the message shown to the user.
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// engineError maps a packing or planning failure to a CLIError.
func engineError(message string, err error) *CLIError {
	var oversize *model.OversizeCutError
	switch {
	case errors.As(err, &oversize):
		return WrapCLIError(ExitOversizeCut, message, err)
	case errors.Is(err, model.ErrInvalidLength):
		return WrapCLIError(ExitInvalidInput, message, err)
	case errors.Is(err, store.ErrNotFound):
		return WrapCLIError(ExitNotFound, message, err)
	}
	return WrapCLIError(ExitGeneralError, message, err)
}
