package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret-that-is-32-chars-long!!",
		TokenLifetimeMin: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		service, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("short secret is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too short"
		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := service.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		_, err := service.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		_, err := service.ValidateToken(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()
		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "a-completely-different-32-char-key!"
		other, err := NewJWTService(otherCfg)
		require.NoError(t, err)

		token, err := other.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		_, err = service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateTokenExpiry(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := service.(*hmacJWTService)
	require.True(t, ok)

	issueTime := time.Now().UTC()
	impl.timeFunc = func() time.Time { return issueTime }

	token, err := impl.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	t.Run("valid within lifetime", func(t *testing.T) {
		impl.timeFunc = func() time.Time { return issueTime.Add(30 * time.Minute) }
		_, err := impl.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
	})

	t.Run("expired past lifetime and skew", func(t *testing.T) {
		impl.timeFunc = func() time.Time { return issueTime.Add(63 * time.Minute) }
		_, err := impl.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("clock skew tolerated", func(t *testing.T) {
		impl.timeFunc = func() time.Time { return issueTime.Add(61 * time.Minute) }
		_, err := impl.ValidateToken(context.Background(), token)
		assert.NoError(t, err, "one minute past expiry is within the allowed skew")
	})
}
