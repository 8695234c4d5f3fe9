package validate_test

import (
	"testing"

	"github.com/cedarhq/taskboard/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsFirstFailurePerField(t *testing.T) {
	t.Parallel()

	v := validate.New()
	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "must be shorter than 255 characters")

	err := v.Err()
	require.Error(t, err)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "must be provided", verr.Fields["title"])
}

func TestEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		email string
		ok    bool
	}{
		{"john@example.com", true},
		{"j.doe+tag@sub.example.co", true},
		{"", false},
		{"not-an-email", false},
		{"@example.com", false},
	}

	for _, tc := range cases {
		v := validate.New()
		v.Email(tc.email)
		require.Equal(t, tc.ok, v.Valid(), "email %q", tc.email)
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	v := validate.New()
	v.Password("short")
	require.False(t, v.Valid())

	v = validate.New()
	v.Password("long enough password")
	require.True(t, v.Valid())
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	v := validate.New()
	v.OneOf("admin", "role", "admin", "user")
	require.True(t, v.Valid())

	v = validate.New()
	v.OneOf("root", "role", "admin", "user")
	require.False(t, v.Valid())
}

func TestValidValidatorReturnsNilError(t *testing.T) {
	t.Parallel()

	v := validate.New()
	v.Required("something", "title")
	require.NoError(t, v.Err())
}
