package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/NiteshMarwaha/vibetrader/internal/model"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "auth_token"

type contextKey string

const userKey contextKey = "user"

// UserLoader verifies a session token and resolves the user it names.
// *service.AuthService satisfies it.
type UserLoader interface {
	CurrentUser(ctx context.Context, token string) (model.UserResponse, error)
}

// SessionAuth returns middleware that gates protected routes. The token comes
// from the Authorization header (Bearer, takes precedence) or the session
// cookie. Every failure mode produces the same 401 body, before any handler
// logic runs.
func SessionAuth(auth UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			user, err := auth.CurrentUser(r.Context(), token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (model.UserResponse, bool) {
	user, ok := ctx.Value(userKey).(model.UserResponse)
	return user, ok
}

func tokenFromRequest(r *http.Request) string {
	// A Bearer header takes precedence; any other Authorization scheme is
	// ignored and the cookie is consulted instead.
	if header := r.Header.Get("Authorization"); header != "" {
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			return token
		}
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
