// Package validator provides a Validator type for accumulating field-level
// validation errors, either by hand with Check or from struct tags with Struct.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// tags is shared by every Validator. validator/v10 caches struct metadata
// per instance, so a single package-level instance is the intended usage.
var tags = newTagValidator()

func newTagValidator() *playground.Validate {
	v := playground.New()
	// Report fields by their JSON name so messages match the wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return lowerFirst(fld.Name)
		}
		return name
	})
	return v
}

// Validator holds field names mapped to their validation error messages.
// A Validator with no errors is considered valid.
type Validator struct {
	Errors map[string]string
	order  []string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if no errors have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// The first failure for a key wins.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
		v.order = append(v.order, key)
	}
}

// Check adds an error for key with message only when ok is false.
//
//	v.Check(name != "", "name", "name is required")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// First returns the earliest recorded error. ok is false when v is valid.
func (v *Validator) First() (key, message string, ok bool) {
	if len(v.order) == 0 {
		return "", "", false
	}
	key = v.order[0]
	return key, v.Errors[key], true
}

// Struct runs the `validate` struct tags of s and records every failing
// field in struct field order. The returned error is non-nil only when s
// cannot be validated at all (for example, it is not a struct).
func (v *Validator) Struct(s any) error {
	err := tags.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate struct: %w", err)
	}

	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), message(fe))
	}
	return nil
}

func message(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "ltefield", "ltfield":
		return field + " exceeds " + lowerFirst(fe.Param())
	case "gtefield", "gtfield":
		return field + " is below " + lowerFirst(fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
