package handler

import "net/http"

// ConverterAssets lists the tradable assets, filtered by ?q=
func (h *Handler) ConverterAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.ConverterAssets(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, assets)
}

// Convert converts ?amount= of ?from= into ?to=
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.Convert(r.Context(), q.Get("amount"), q.Get("from"), q.Get("to"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
