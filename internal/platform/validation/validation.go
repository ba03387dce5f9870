// Package validation registers the custom binding tags used by request bodies
// and turns validator errors into client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagPassword is the binding tag enforcing the password policy.
const TagPassword = "password"

// MsgPasswordWeak is returned when a password fails the policy.
const MsgPasswordWeak = "Password is too weak."

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom tags on gin's default validator engine.
// It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin validator engine is not go-playground/validator")
			return
		}
		registerErr = v.RegisterValidation(TagPassword, validatePassword)
	})
	return registerErr
}

func validatePassword(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

// StrongPassword reports whether s contains an uppercase letter, a lowercase letter,
// and at least one digit or non-word character, with no line breaks.
func StrongPassword(s string) bool {
	var upper, lower, digitOrSymbol bool
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digitOrSymbol = true
		case r != '_':
			digitOrSymbol = true
		}
	}
	return upper && lower && digitOrSymbol
}

// Message maps a binding error to the text sent back to the client.
// Password policy failures get a dedicated message; everything else lists the
// failing fields.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == TagPassword {
			return MsgPasswordWeak
		}
		fields = append(fields, describe(fe))
	}
	return strings.Join(fields, "; ")
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
