package model

import "errors"

// ValidationError marks a rejected input. The caller can fix it and retry, state is untouched.
type ValidationError struct {
	message string
}

func (e ValidationError) Error() string { return e.message }

func NewValidationError(msg string) error {
	return ValidationError{message: msg}
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
