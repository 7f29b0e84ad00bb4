// Package identity checks the phone-number identities callers act as, and the
// registration rules the interactive front end applies before that.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// CountryCode prefixes every accepted phone number.
const CountryCode = "+27"

const passwordSpecials = `@#$%*&?/\{}()><.,:`

var (
	ErrInvalidPhone    = fmt.Errorf("phone number must be %s followed by 9 digits", CountryCode)
	ErrInvalidUsername = errors.New("username must contain an underscore and be at most 5 characters")
	ErrInvalidPassword = errors.New("password needs at least 8 characters, a capital letter, a number and a special character")

	phonePattern = regexp.MustCompile(`^` + regexp.QuoteMeta(CountryCode) + `\d{9}$`)

	validate = newValidator()
)

// Registration is the set of credentials captured on first use.
type Registration struct {
	Name     string
	Surname  string
	Username string `validate:"required,username"`
	Password string `validate:"required,password"`
	Phone    string `validate:"required,phone"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}))
	must(v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.Contains(s, "_") && len([]rune(s)) <= 5
	}))
	must(v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// IsPhone reports whether s has the accepted phone-number shape.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidatePhone returns ErrInvalidPhone for anything IsPhone rejects.
func ValidatePhone(s string) error {
	if !IsPhone(s) {
		return fmt.Errorf("%q: %w", s, ErrInvalidPhone)
	}
	return nil
}

// ValidateRegistration checks every rule and reports the first field that fails.
func ValidateRegistration(r Registration) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	switch fieldErrs[0].Field() {
	case "Username":
		return ErrInvalidUsername
	case "Password":
		return ErrInvalidPassword
	default:
		return ErrInvalidPhone
	}
}

func isStrongPassword(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var hasUpper, hasNumber, hasSpecial bool
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasNumber = true
		case strings.ContainsRune(passwordSpecials, char):
			hasSpecial = true
		}
	}
	return hasUpper && hasNumber && hasSpecial
}
