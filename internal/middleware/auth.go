// Package middleware provides the HTTP middleware chain: CORS, request
// logging, metrics, rate limiting and the two-stage authorization gate.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nin-supply/commerce/internal/auth"
	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/logging"
	"github.com/nin-supply/commerce/internal/store"
)

type claimsKey struct{}

// ClaimsFrom extracts the verified token claims attached by RequireAuth.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}

// RequireAuth is the first authorization stage: it demands a Bearer token,
// verifies it, and attaches the decoded claims to the request context.
func RequireAuth(tokens *auth.TokenService, logger *logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteMessage(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httputil.WriteMessage(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				logger.WithContext(r.Context()).WithError(err).Warn("token verification failed")
				httputil.WriteMessage(w, http.StatusUnauthorized, "Token expired or unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			ctx = context.WithValue(ctx, logging.UserEmailKey, claims.Email)
			if claims.Role != "" {
				ctx = context.WithValue(ctx, logging.RoleKey, claims.Role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is the second stage: it loads the authenticated email's user
// record and passes only when the stored role is exactly "admin". An absent
// record is treated the same as a non-admin role.
func RequireAdmin(users store.UserStore, logger *logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFrom(r.Context())
			if claims == nil {
				httputil.WriteMessage(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			user, err := users.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				logger.WithContext(r.Context()).WithError(err).Warn("admin check lookup failed")
				httputil.WriteError(w, err)
				return
			}
			if user == nil || user.Role != store.RoleAdmin {
				httputil.WriteMessage(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
