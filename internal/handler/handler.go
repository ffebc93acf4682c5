package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/service"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc           *service.Service
	log           *logrus.Logger
	resetRedirect string
}

func NewHandler(svc *service.Service, log *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{svc: svc, log: log, resetRedirect: cfg.ResetRedirectURL}
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v before writing the header. A value that cannot be
// encoded is logged and answered with a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.Errorf("Failed to encode %T response: %v", v, err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log.Debugf("Failed to write response: %v", err)
	}
}

// writeError maps service errors onto HTTP statuses. Anything unclassified
// is logged and reported as a 500 without details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUpstream):
		h.log.WithField("path", r.URL.Path).Warnf("Upstream failure: %v", err)
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	default:
		h.log.WithField("path", r.URL.Path).Errorf("Request failed: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

// currentSession returns the session put in the context by the auth middleware
func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	}
	return sess, ok
}
