package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

type addHoldingRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Dashboard returns the totals of the selected holdings
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Dashboard(r.Context(), sess.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// Portfolio lists the holdings at current prices
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Holdings(r.Context(), sess.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// AddHolding adds a coin or replaces its quantity
func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	var req addHoldingRequest
	if !h.decode(w, r, &req) {
		return
	}

	holding, err := h.svc.AddHolding(r.Context(), sess.UserID, req.Name, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, holding)
}

// ToggleHolding flips whether a holding counts on the dashboard
func (h *Handler) ToggleHolding(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	holding, err := h.svc.ToggleHolding(r.Context(), sess.UserID, mux.Vars(r)["coinID"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, holding)
}

// ResetPortfolio removes every holding
func (h *Handler) ResetPortfolio(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.svc.ResetPortfolio(r.Context(), sess.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
