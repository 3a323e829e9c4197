package validator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadyar-bakr/storefront/internal/apperr"
)

func requireValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	require.Equal(t, message, apperr.From(err).Message())
}

func TestRequired(t *testing.T) {
	var nilPtr *string
	empty := ""
	x := "x"

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "nil", value: nil, wantErr: true},
		{name: "typed nil pointer", value: nilPtr, wantErr: true},
		{name: "empty string", value: "", wantErr: true},
		{name: "pointer to empty string", value: &empty, wantErr: true},
		{name: "nil slice", value: []string(nil), wantErr: true},
		{name: "value", value: "x", wantErr: false},
		{name: "pointer to value", value: &x, wantErr: false},
		{name: "zero number", value: 0, wantErr: false},
		{name: "false", value: false, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required(tt.value, "Name")
			if tt.wantErr {
				requireValidation(t, err, "Name is required")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmail(t *testing.T) {
	require.NoError(t, Email("a@b.com"))
	require.NoError(t, Email("admin@example.com"))

	for _, bad := range []string{"not-an-email", "", "a@b", "a b@c.com", "a@@b.com", "@b.com"} {
		requireValidation(t, Email(bad), "Invalid email format")
	}
}

func TestPositiveNumber(t *testing.T) {
	require.NoError(t, PositiveNumber(0, "Price"))
	require.NoError(t, PositiveNumber(299.99, "Price"))
	require.NoError(t, PositiveNumber(math.Inf(1), "Price"))

	requireValidation(t, PositiveNumber(-1, "Price"), "Price must be a positive number")
	requireValidation(t, PositiveNumber(math.NaN(), "Price"), "Price must be a positive number")
	requireValidation(t, PositiveNumber(math.Inf(-1), "Price"), "Price must be a positive number")
}

func TestValidator(t *testing.T) {
	v := New()
	require.True(t, v.Valid())
	require.NoError(t, v.Err())

	v.Check(false, "name", "must be provided")
	v.Check(false, "name", "must not be more than 500 bytes long")
	v.Check(true, "price", "must be positive")

	require.False(t, v.Valid())
	require.Equal(t, map[string]string{"name": "must be provided"}, v.Errors)

	err := v.Err()
	requireValidation(t, err, "validation failed")
	require.Equal(t, map[string]any{"name": "must be provided"}, apperr.From(err).Context())
}

func TestHelpers(t *testing.T) {
	require.True(t, PermittedValue("name", "name", "price-low"))
	require.False(t, PermittedValue("color", "name", "price-low"))
	require.True(t, Unique([]string{"a", "b"}))
	require.False(t, Unique([]string{"a", "a"}))
	require.True(t, Matches("a@b.com", EmailRX))
}
