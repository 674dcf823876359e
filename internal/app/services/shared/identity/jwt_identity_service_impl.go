package identity

import (
	"context"
	"fmt"
	"strings"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Claims carried by access tokens. Subject holds the user id.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type jwtIdentityService struct {
	Log    *zap.Logger
	secret []byte
	ttl    time.Duration
}

func NewJWTIdentityService(cfg *config.InternalConfig, logger *zap.Logger) contracts.IdentityService {
	return &jwtIdentityService{
		Log:    logger,
		secret: []byte(cfg.JWT.Secret),
		ttl:    time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour,
	}
}

func (s *jwtIdentityService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	token = strings.TrimSpace(strings.TrimPrefix(token, constvars.AuthorizationBearerPrefix))
	if token == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		s.Log.Info("jwtIdentityService.Authenticate rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	if claims.Subject == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("token has no subject"))
	}

	role, ok := models.ParseRole(claims.Role)
	if !ok {
		return nil, exceptions.ErrUnknownRole(nil, claims.Role)
	}

	return &models.Identity{
		UserID:      claims.Subject,
		Role:        role,
		DisplayName: claims.Name,
	}, nil
}

func (s *jwtIdentityService) IssueToken(ctx context.Context, identity models.Identity) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("jwtIdentityService.IssueToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
		zap.String(constvars.LoggingRoleKey, identity.Role.String()),
	)

	now := time.Now().UTC()
	claims := Claims{
		Role: identity.Role.String(),
		Name: identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}
