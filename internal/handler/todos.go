package handler

import (
	"net/http"
	"strconv"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/gorilla/mux"
)

type customTodoRequest struct {
	Text string `json:"text"`
}

// ExportPlan projects the form and stores the result as a plan checklist
func (h *Handler) ExportPlan(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	var in models.CompoundingInput
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.Project(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	todo, err := h.svc.ExportPlan(r.Context(), sess.UserID, result)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, todo)
}

// PlanItems lists the plan checklist
func (h *Handler) PlanItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	items, err := h.svc.PlanItems(r.Context(), sess.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// TogglePlanItem flips the plan items up to the given index
func (h *Handler) TogglePlanItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid item index"})
		return
	}

	items, err := h.svc.TogglePlanItem(r.Context(), sess.UserID, index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// ResetPlan deletes the plan checklist
func (h *Handler) ResetPlan(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.svc.ResetPlan(r.Context(), sess.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CustomItems lists the user's own tasks
func (h *Handler) CustomItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	items, err := h.svc.CustomItems(r.Context(), sess.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// AddCustom creates a task
func (h *Handler) AddCustom(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	var req customTodoRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.svc.AddCustom(r.Context(), sess.UserID, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, item)
}

// ToggleCustom flips a task
func (h *Handler) ToggleCustom(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	item, err := h.svc.ToggleCustom(r.Context(), sess.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// DeleteCustom removes a task
func (h *Handler) DeleteCustom(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCustom(r.Context(), sess.UserID, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
