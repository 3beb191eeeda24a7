package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	// SessionContextKey is the key used to store the session in context.
	SessionContextKey contextKey = "session"

	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "sakshya_session"
)

// Middleware requires a valid session and stores it in the request context.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := resolveSession(service, r)
			if session == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalMiddleware stores the session in context when a valid token is
// present but never rejects the request. Requests without a session run in
// guest mode.
func OptionalMiddleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := resolveSession(service, r); session != nil {
				ctx := context.WithValue(r.Context(), SessionContextKey, session)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext retrieves the session from the request context.
// The second return is false in guest mode.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*Session)
	return session, ok
}

func resolveSession(service Service, r *http.Request) *Session {
	token := extractToken(r)
	if token == "" {
		return nil
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		return nil
	}

	session, err := SessionFromClaims(claims)
	if err != nil {
		return nil
	}
	return session
}

// extractToken pulls the session token from the Authorization header or,
// failing that, the session cookie set by the login handler.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
