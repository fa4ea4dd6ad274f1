package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/pattaya1/pattaya1_backend/pkg/auth"
	"github.com/pattaya1/pattaya1_backend/pkg/constants"
	"github.com/pattaya1/pattaya1_backend/pkg/json"
)

type contextKey string

// ClaimsKey holds the verified *auth.Claims for the current request.
const ClaimsKey contextKey = "claims"

// BearerToken extracts the raw token from an Authorization header.
// The bool is false when the header is missing or not a Bearer scheme.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") || len(header) <= 7 {
		return "", false
	}
	return header[7:], true
}

// Auth verifies the bearer token locally and puts the claims on the context.
// Used only for routes whose identity this service itself issued (auth/me).
func Auth(tokenManager auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidToken)
				return
			}

			claims, err := tokenManager.VerifyToken(token)
			if err != nil {
				json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthHeader rejects requests without a bearer header but performs no
// verification. Proxied write operations use it: the CMS validates the token,
// this layer only refuses to waste an upstream call on anonymous writes.
func RequireAuthHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := BearerToken(r); !ok {
			json.WriteError(w, http.StatusUnauthorized, constants.ErrMissingAuthHeader)
			return
		}
		next.ServeHTTP(w, r)
	})
}
