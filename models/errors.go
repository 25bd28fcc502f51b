package models

import "errors"

// Error taxonomy shared by the pricing core, the repositories and the controllers.
// Callers wrap these with fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrInvalidInput covers negative costs, non-positive quantities and malformed date ranges
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidChannelConfig is a configuration defect (e.g. commission rate >= 1)
	ErrInvalidChannelConfig = errors.New("invalid channel config")
	// ErrNotFound is returned for unknown channel keys and missing referenced records
	ErrNotFound = errors.New("not found")
)
