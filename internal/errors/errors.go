package errors

import (
	"errors"
	"fmt"
)

// Common error types for the OAuth bridge and content renderer
var (
	// Bridge errors
	ErrMissingCode   = errors.New("missing code")
	ErrNoAccessToken = errors.New("provider response has no access token")
	ErrUpstream      = errors.New("token endpoint request failed")

	// Content errors
	ErrUnknownPage    = errors.New("unknown page")
	ErrBundleStatus   = errors.New("unexpected bundle status")
	ErrInvalidBundle  = errors.New("invalid content bundle")
	ErrNoPageKey      = errors.New("page has no data-cms-page attribute")
	ErrInvalidSources = errors.New("invalid content sources")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
