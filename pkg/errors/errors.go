package errors

import (
	"errors"
	"fmt"
)

// Taxonomy for the market-data surface. Every failure an operation can
// report wraps one of these sentinels so callers can classify with Is.

var (
	// ErrFetch indicates a non-success upstream HTTP status or an
	// unparsable response body
	ErrFetch = errors.New("upstream fetch failed")

	// ErrStream indicates a connection-level failure on the trade feed
	ErrStream = errors.New("trade stream failed")

	// ErrParse indicates a malformed message on the trade feed
	ErrParse = errors.New("malformed feed message")

	// ErrInvalidInput indicates invalid tool arguments
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")
)

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
