// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"infogen/internal/models"
	"infogen/internal/session"
	"infogen/internal/store"
)

const (
	bearerPrefix = "Bearer "

	// tokenPrefix marks tokens issued by the identity provider. Verification
	// is mocked: any token with this prefix resolves to the demo user.
	tokenPrefix = "clerk_"
)

// demoUser is the identity every valid token resolves to.
var demoUser = session.Data{
	UserID:   "user_123",
	Email:    "user@example.com",
	ImageURL: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=32&h=32&fit=crop&crop=face",
}

// VerifyToken resolves a bearer token to a user.
func VerifyToken(token string) (*session.Data, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token: %w", models.ErrUnauthenticated)
	}
	if !strings.HasPrefix(token, tokenPrefix) {
		return nil, fmt.Errorf("invalid token format: %w", models.ErrUnauthenticated)
	}
	user := demoUser
	return &user, nil
}

// BearerToken returns the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix)), true
}

// LoadAuth resolves the caller from a bearer token or, failing that, from
// the session cookie, and stores it in the request context. Anonymous
// requests pass through; a bearer token that does not verify is rejected.
// sessions may be nil, in which case cookies are ignored.
func LoadAuth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := BearerToken(r); ok {
				user, err := VerifyToken(token)
				if err != nil {
					writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
					return
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserKey, user)))
				return
			}

			if sessions != nil {
				user, err := sessions.Get(r.Context(), r)
				if err != nil {
					// Treat a Valkey failure as anonymous rather than failing the request.
					slog.Warn("session lookup failed", "error", err, "request_id", RequestIDFromCtx(r.Context()))
				}
				if user != nil {
					r = r.WithContext(context.WithValue(r.Context(), UserKey, user))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a user. Must be applied after
// LoadAuth in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromCtx(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromCtx returns the authenticated user, or nil for anonymous requests.
func UserFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(UserKey).(*session.Data)
	return data
}

// ScopeFromCtx returns the store scope for the caller. Anonymous callers
// get the zero Scope, which only sees ownerless rows.
func ScopeFromCtx(ctx context.Context) store.Scope {
	if user := UserFromCtx(ctx); user != nil {
		return store.UserScope(user.UserID)
	}
	return store.Scope{}
}
