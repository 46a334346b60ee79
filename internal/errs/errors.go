package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	// ErrNotFound signals an operation referencing an unknown customer or
	// transaction id. Deletes treat it as a no-op; reports surface it.
	ErrNotFound = errors.New("not_found")
	// ErrValidation signals missing required user input (customer name or
	// mobile, transaction customer or date). The store is left unchanged.
	ErrValidation = errors.New("validation_error")
	// ErrInvalidPeriod signals an incomplete reporting-period specification.
	ErrInvalidPeriod = errors.New("invalid_period")
)
