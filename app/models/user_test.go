package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSetAndCheckPassword(t *testing.T) {
	u := &User{Email: "a@b.com", Role: ROLE_USER}

	require.NoError(t, u.SetPassword("s3cret-pass"))
	assert.NotEqual(t, "s3cret-pass", u.Password)

	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCheckPasswordHashWithInvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("anything", "not-a-bcrypt-hash"))
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid user", User{Email: "a@b.com", Role: ROLE_USER}, false},
		{"valid admin", User{Email: "admin@b.com", Role: ROLE_ADMIN}, false},
		{"missing email", User{Role: ROLE_USER}, true},
		{"malformed email", User{Email: "not-an-email", Role: ROLE_USER}, true},
		{"unknown role", User{Email: "a@b.com", Role: "superuser"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: ROLE_ADMIN}).IsAdmin())
	assert.False(t, (&User{Role: ROLE_USER}).IsAdmin())
}
