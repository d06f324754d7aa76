package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/jwt"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
)

// SessionResolver maps a session token to the id of the logged in user.
// A zero id means the session does not exist or has expired.
type SessionResolver interface {
	GetUserID(ctx context.Context, token string) (int64, error)
}

type userIDKey struct{}

// AuthMiddleware returns a middleware that requires a valid Bearer session token
// and stores the user id in the request context.
func AuthMiddleware(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := jwt.BearerToken(r)
			if err != nil {
				logger.FromContext(ctx).Warnw("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := sessions.GetUserID(ctx, token)
			if err != nil {
				logger.FromContext(ctx).Errorw("failed to resolve session", "err", err)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if userID == 0 {
				logger.FromContext(ctx).Warnw("authorization failed", "err", "unknown session")
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the id stored by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok && id != 0
}
