package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type contextKey string

const userKey contextKey = "auth.user"

// UserFromContext returns the authenticated account name, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userKey).(string)
	return username, ok
}

func withUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// RequireSession protects HTML routes. Unauthenticated browsers get a
// redirect to the login page, not an error page.
func RequireSession(m *Manager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login/?next="+r.URL.Path, http.StatusFound)
				return
			}

			username, err := m.Verify(cookie.Value)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("stale session cookie")
				http.Redirect(w, r, "/login/?next="+r.URL.Path, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), username)))
		})
	}
}

// RequireToken protects API routes. Anonymous access is forbidden outright,
// never redirected.
func RequireToken(m *Manager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				forbid(w, "Authentication credentials were not provided.")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				forbid(w, "Authentication credentials were not provided.")
				return
			}

			username, err := m.Verify(tokenString)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected API token")
				forbid(w, "Invalid token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), username)))
		})
	}
}

func forbid(w http.ResponseWriter, detail string) {
	body := struct {
		Detail string `json:"detail"`
	}{Detail: detail}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(body)
}
