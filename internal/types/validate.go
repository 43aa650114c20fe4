package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared: a *validator.Validate caches struct metadata, so
// building one per call (as a request handler might) wastes that cache.
var validate = newValidator()

// newValidator adds "finite" (no NaN or infinity) to the built-in tags.
func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			return isFinite(f.Float())
		}
		return true
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the validate:"..." tags on v and turns any failures into
// a single human-readable error, e.g.
//
//	field Name is required, field Email must be a valid email address
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var msgs []string
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid URL", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		case "finite":
			msgs = append(msgs, fmt.Sprintf("field %s must be a finite number", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return fmt.Errorf("validation failed: %s", strings.Join(msgs, ", "))
}
