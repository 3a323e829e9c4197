package validator

import (
	"fmt"
	"math"
	"reflect"

	"github.com/shadyar-bakr/storefront/internal/apperr"
)

// Required fails when value is nil, a nil pointer/map/slice, or the empty
// string.
func Required(value any, field string) error {
	if isMissing(value) {
		return apperr.Validation(fmt.Sprintf("%s is required", field), map[string]any{"field": field})
	}
	return nil
}

// Email performs a shape check only: no whitespace, a single @ and a dot in
// the domain part.
func Email(email string) error {
	if !Matches(email, EmailRX) {
		return apperr.Validation("Invalid email format", map[string]any{"field": "email"})
	}
	return nil
}

// PositiveNumber accepts zero and every positive value. NaN fails.
func PositiveNumber(value float64, field string) error {
	if math.IsNaN(value) || value < 0 {
		return apperr.Validation(fmt.Sprintf("%s must be a positive number", field), map[string]any{"field": field})
	}
	return nil
}

func isMissing(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return true
		}
		if rv.Kind() == reflect.Pointer {
			return isMissing(rv.Elem().Interface())
		}
	}
	return false
}
