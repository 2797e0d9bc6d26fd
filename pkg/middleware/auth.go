package middleware

import (
	"net/http"
	"strings"

	"yamdb/internal/data/repository"
	"yamdb/internal/permission"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
)

type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

// Authenticate resolves a Bearer token into the request actor. Requests
// without an Authorization header continue as anonymous; a header that
// does not resolve to an existing user is rejected with 401.
func Authenticate(tokens TokenValidator, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Rejected access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// role and staff flag are read fresh, the token may predate a role change
			user, err := userRepo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Error("Failed to load token user",
					zap.Error(err), zap.Int64("user_id", claims.UserID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "User not found")
				return
			}

			actor := &permission.Actor{
				ID:       user.ID,
				Username: user.Username,
				Role:     string(user.Role),
				IsStaff:  user.IsStaff,
			}

			next.ServeHTTP(w, r.WithContext(utils.SetActorContext(r.Context(), actor)))
		})
	}
}

// Permit applies a collection level permission check: 401 for anonymous
// callers and 403 for authenticated ones that pred rejects.
func Permit(pred permission.Predicate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := utils.GetActorFromContext(r.Context())

			if pred(permission.Request{Actor: actor, Method: r.Method}) {
				next.ServeHTTP(w, r)
				return
			}

			if !actor.IsAuthenticated() {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			logger.Warn("Permission denied",
				zap.Int64("user_id", actor.ID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			utils.ResponseForbidden(w, "You do not have permission to perform this action")
		})
	}
}
