package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Tent9481/product-apis/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Validate the value inside optional update fields; null and absent
	// both count as empty.
	v.RegisterCustomTypeFunc(nullableValue[string], model.Nullable[string]{})
	v.RegisterCustomTypeFunc(nullableValue[float64], model.Nullable[float64]{})
	v.RegisterCustomTypeFunc(nullableValue[int], model.Nullable[int]{})
	return v
}

func nullableValue[T any](field reflect.Value) any {
	n, ok := field.Interface().(model.Nullable[T])
	if !ok || n.Value == nil {
		return nil
	}
	return *n.Value
}

// validateRequest checks s against its validate tags and converts failures
// into a *model.ValidationError keyed by JSON field path.
func validateRequest(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fieldPath(fe)] = msgForTag(fe)
	}
	return &model.ValidationError{Fields: fields}
}

// fieldPath drops the root struct name from the namespace: brand.name, price.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
