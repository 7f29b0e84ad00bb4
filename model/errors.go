package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrBodyTooLong = fmt.Errorf("message body exceeds %d characters", MaxBodyLength)

// ValidationError reports a message that violates a field rule.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid message: %v", e.Err)
	}
	return fmt.Sprintf("invalid message %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Err: err}
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch {
	case fe.Field() == "Body" && fe.Tag() == "max":
		return &ValidationError{Field: "message", Err: ErrBodyTooLong}
	case fe.Tag() == "required":
		return &ValidationError{Field: field, Err: fmt.Errorf("%s is required", field)}
	default:
		return &ValidationError{Field: field, Err: fmt.Errorf("failed %q rule", fe.Tag())}
	}
}
