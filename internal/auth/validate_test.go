package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name      string
		user      string
		email     string
		password  string
		wantField string
	}{
		{name: "valid", user: "Ann", email: "ann@x.io", password: "pw1"},
		{name: "name at limit in runes", user: strings.Repeat("名", MaxNameLength), email: "ann@x.io", password: "pw1"},
		{name: "password at limit", user: "Ann", email: "ann@x.io", password: strings.Repeat("p", MaxPasswordLength)},
		{name: "multibyte password at limit", user: "Ann", email: "ann@x.io", password: strings.Repeat("😀", MaxPasswordLength)},
		{name: "missing name", user: "", email: "ann@x.io", password: "pw1", wantField: "name"},
		{name: "name too long", user: strings.Repeat("a", MaxNameLength+1), email: "ann@x.io", password: "pw1", wantField: "name"},
		{name: "bad email", user: "Ann", email: "not-an-email", password: "pw1", wantField: "email"},
		{name: "missing email", user: "Ann", email: "", password: "pw1", wantField: "email"},
		{name: "missing password", user: "Ann", email: "ann@x.io", password: "", wantField: "password"},
		{name: "password too long", user: "Ann", email: "ann@x.io", password: strings.Repeat("p", MaxPasswordLength+1), wantField: "password"},
		{name: "first field wins", user: "", email: "bad", password: "", wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := ValidateRegistration(tt.user, tt.email, tt.password)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.user, reg.Name)
				assert.Equal(t, tt.email, reg.Email)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Reason)
		})
	}
}

func TestValidateEmailOnly(t *testing.T) {
	email, err := ValidateEmailOnly("ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", email)

	_, err = ValidateEmailOnly("ann")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
}
