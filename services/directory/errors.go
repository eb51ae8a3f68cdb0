package directory

import "fmt"

// DuplicateEmailError indicates that another doctor already uses the email.
type DuplicateEmailError struct {
	Email string
}

func (e DuplicateEmailError) Error() string {
	return fmt.Sprintf("a doctor with email %s already exists", e.Email)
}

// InvalidFieldError reports a registration or update field that failed validation.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
