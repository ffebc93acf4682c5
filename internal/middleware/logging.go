package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Logging logs every request once it has been served
func Logging(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
				"remote_addr": r.RemoteAddr,
			})
			if status >= http.StatusInternalServerError {
				entry.Error("HTTP request")
				return
			}
			entry.Info("HTTP request")
		})
	}
}

// Chain returns the middleware every request goes through, outermost first.
// Logging sits outside Recoverer so recovered panics are logged as 500s.
func Chain(log *logrus.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		Logging(log),
		chimw.Recoverer,
	}
}
