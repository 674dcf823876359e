package middlewares

import (
	"net/http"
	"strings"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into an identity stored on the
// request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))

		identity, err := m.IdentityService.Authenticate(r.Context(), token)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "authentication_failed", utils.GetRequestID(r.Context()), "low",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := utils.SetIdentityToContext(r.Context(), *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles rejects identities whose role is not listed. It must run after
// Authenticate.
func (m *Middlewares) RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.LogSecurityEvent(m.Log, "role_not_allowed", utils.GetRequestID(r.Context()), "medium",
				zap.String(constvars.LoggingUserIDKey, identity.UserID),
				zap.String(constvars.LoggingRoleKey, identity.Role.String()),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil, identity.Role.String()))
		})
	}
}
