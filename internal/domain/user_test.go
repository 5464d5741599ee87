package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("learner@example.com", "a-long-enough-password")
		require.NoError(t, err)

		assert.Equal(t, "learner@example.com", user.Email)
		assert.Equal(t, "a-long-enough-password", user.Password)
		assert.Empty(t, user.HashedPassword)
	})

	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"empty email", "", "a-long-enough-password", ErrEmptyEmail},
		{"invalid email", "not-an-email", "a-long-enough-password", ErrInvalidEmail},
		{"empty password", "learner@example.com", "", ErrEmptyPassword},
		{"short password", "learner@example.com", "tooshort", ErrPasswordTooShort},
		{"long password", "learner@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateFromStorage(t *testing.T) {
	t.Parallel()

	user, err := NewUser("learner@example.com", "a-long-enough-password")
	require.NoError(t, err)

	// A user loaded from storage carries only the hash.
	user.Password = ""
	user.HashedPassword = "$2a$10$somethinghashed"
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
