package search

import (
	"errors"
	"fmt"
)

// ValidationError reports a criteria or paging field that fails its bounds
// check. It is the only error kind this package produces; anything else a
// caller sees came from its own collaborators.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
