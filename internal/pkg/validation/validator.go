// Package validation wraps go-playground/validator with the field rules the
// CRM mutations need: RFC-style email checking and the phone number pattern.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phonePattern accepts an optional leading '+', one digit, then at least
// seven further characters drawn from digits, hyphens, and spaces.
var phonePattern = regexp.MustCompile(`^\+?\d[\d\-\s]{7,}$`)

// Validator bundles a configured validator.Validate instance. It is safe for
// concurrent use and should be created once and shared.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom "crm_phone" rule registered.
func New() *Validator {
	v := validator.New()
	// RegisterValidation only errors on an empty tag name.
	_ = v.RegisterValidation("crm_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Email reports whether s is a well-formed, non-empty email address.
func (va *Validator) Email(s string) bool {
	return va.v.Var(s, "required,email") == nil
}

// Phone reports whether s matches the phone number pattern. The caller
// decides whether an absent phone is allowed; this only judges non-empty
// values.
func (va *Validator) Phone(s string) bool {
	return va.v.Var(s, "crm_phone") == nil
}
