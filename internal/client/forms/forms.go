// Package forms holds the input structs of the auth screens and validates
// them before anything reaches the network.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every FieldErrors value returned as an error.
var ErrInvalid = errors.New("invalid input")

// FieldErrors maps a JSON field name to its first validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == ErrInvalid }

// Err returns nil when there are no errors and fe otherwise.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// set keeps the first message reported for a field.
func (fe FieldErrors) set(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Form is implemented by every input struct of this package.
type Form interface {
	// Normalize trims the fields the server expects trimmed.
	Normalize()
}

type crossChecker interface {
	crossCheck(fe FieldErrors)
}

// Validate normalizes f in place and returns its field errors. The result is
// empty when f may be submitted.
func Validate(f Form) FieldErrors {
	f.Normalize()
	fe := structErrors(f)
	if c, ok := f.(crossChecker); ok {
		c.crossCheck(fe)
	}
	return fe
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var messages = map[string]string{
	"email.required":           "Email is required",
	"email.email":              "Enter a valid email address",
	"username.required":        "Username is required",
	"username.min":             "Username should have at least 3 character",
	"password.required":        "Password is required",
	"password.min":             "Password should have at least 8 letters",
	"confirmPassword.required": "Password is required",
	"confirmPassword.min":      "Confirm Password should have at least 8 letters",
	"otp.required":             "Otp is required",
	"otp.len":                  "Enter a valid otp",
}

func structErrors(f Form) FieldErrors {
	fe := FieldErrors{}

	err := validate.Struct(f)
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.set("form", err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.set(e.Field(), message(e.Field(), e.Tag()))
	}
	return fe
}

func message(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}
