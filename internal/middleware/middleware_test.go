package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth map[string]*models.Session

func (a staticAuth) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if s, ok := a[token]; ok {
		return s, nil
	}
	return nil, errors.New("unknown token")
}

func sessionEcho(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(s.UserID))
}

func TestAuthMiddleware(t *testing.T) {
	log, _ := test.NewNullLogger()
	auth := staticAuth{"good": {ID: "s1", UserID: "u1"}}
	h := AuthMiddleware(auth, log)(http.HandlerFunc(sessionEcho))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, `{"error":"Authorization header missing"}`},
		{"not bearer", "Basic good", http.StatusUnauthorized, `{"error":"Authorization header missing"}`},
		{"unknown", "Bearer bad", http.StatusUnauthorized, `{"error":"Invalid or expired token"}`},
		{"valid", "Bearer good", http.StatusOK, "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(staticAuth{"good": {UserID: "u1"}})(http.HandlerFunc(sessionEcho))

	for header, want := range map[string]string{"": "anonymous", "Bearer bad": "anonymous", "Bearer good": "u1"} {
		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	}
}

func TestLogging(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hi"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/todos/custom", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "POST", entry.Data["method"])
	assert.Equal(t, "/todos/custom", entry.Data["path"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, 2, entry.Data["bytes"])
}

func TestChain_RecoversPanics(t *testing.T) {
	log, hook := test.NewNullLogger()
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	chain := Chain(log)
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.NotEmpty(t, entry.Data["request_id"])
}
