package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/sirupsen/logrus"
)

// Authenticator resolves a bearer token into a live session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// AuthMiddleware rejects requests without a valid bearer token and puts the
// session into the request context.
func AuthMiddleware(auth Authenticator, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "Authorization header missing")
				return
			}

			sess, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.WithField("path", r.URL.Path).Debugf("Rejected token: %v", err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

// OptionalAuth attaches the session when a valid token is present and lets
// every request through.
func OptionalAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if sess, err := auth.Authenticate(r.Context(), token); err == nil {
					r = r.WithContext(session.WithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
