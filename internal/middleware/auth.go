package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/accountly/accountly-go/internal/crypto"
	"github.com/accountly/accountly-go/internal/model"
	"github.com/accountly/accountly-go/internal/repository"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

type contextKey string

const userKey contextKey = "user"

// Auth returns middleware that authenticates requests via the session
// cookie and attaches the resolved user record to the request context.
// Every failure mode (missing cookie, bad signature, expired token,
// unknown user) gets the same opaque rejection so callers cannot probe
// why authentication failed.
func Auth(secret string, store repository.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			claims, err := crypto.ValidateToken(cookie.Value, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			user, err := store.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
