package http

import (
	"net/http"

	"github.com/contest/api/internal/core/ports"
)

type TallyHandler struct {
	service ports.TallyService
}

func NewTallyHandler(service ports.TallyService) *TallyHandler {
	return &TallyHandler{
		service: service,
	}
}

func (h *TallyHandler) Realtime(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Realtime(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *TallyHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Rebuild(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
