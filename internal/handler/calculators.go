package handler

import (
	"net/http"

	"github.com/Dan9191/crypto-companion/internal/models"
)

type compoundingResponse struct {
	*models.CompoundingResult
	TargetReached bool `json:"target_reached"`
}

// Compounding projects daily compounding growth
func (h *Handler) Compounding(w http.ResponseWriter, r *http.Request) {
	var in models.CompoundingInput
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.Project(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, compoundingResponse{CompoundingResult: result, TargetReached: result.Reached()})
}

// Position computes the outcome of a leveraged position
func (h *Handler) Position(w http.ResponseWriter, r *http.Request) {
	var in models.PositionInput
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.CalculatePosition(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
