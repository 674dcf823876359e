package identity

import (
	"context"
	"errors"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(secret string) *jwtIdentityService {
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: secret, ExpTimeInHour: 1}}
	return NewJWTIdentityService(cfg, zap.NewNop()).(*jwtIdentityService)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	return customErr.StatusCode
}

func TestJWTIdentityService(t *testing.T) {
	ctx := context.Background()
	svc := newTestService("test-secret")
	doctor := models.Identity{UserID: "doctor-1", Role: models.RoleDoctor, DisplayName: "Dr. Who"}

	t.Run("Issued token authenticates back to the same identity", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, doctor)
		require.NoError(t, err)

		identity, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, doctor, *identity)
	})

	t.Run("Bearer prefix is accepted", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, doctor)
		require.NoError(t, err)

		identity, err := svc.Authenticate(ctx, constvars.AuthorizationBearerPrefix+token)
		require.NoError(t, err)
		assert.Equal(t, "doctor-1", identity.UserID)
	})

	t.Run("Missing token is unauthorized", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "")
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		token, err := newTestService("other-secret").IssueToken(ctx, doctor)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, token)
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := Claims{
			Role: "doctor",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "doctor-1",
				ExpiresAt: jwt.NewNumericDate(past),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, token)
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("Unknown role is rejected", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, models.Identity{UserID: "nurse-1", Role: models.Role("nurse")})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, token)
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))
	})
}
