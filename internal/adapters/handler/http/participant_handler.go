package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
)

type ParticipantHandler struct {
	service ports.ParticipantService
}

func NewParticipantHandler(service ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		service: service,
	}
}

type addParticipantRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Photo    string `json:"photo,omitempty"`
}

func (h *ParticipantHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.AddParticipantInput{
		Name:     req.Name,
		Category: req.Category,
		Photo:    req.Photo,
	}

	participant, err := h.service.Add(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, participant)
}

func (h *ParticipantHandler) BulkReplace(w http.ResponseWriter, r *http.Request) {
	var entries []ports.ImportEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	count, err := h.service.BulkReplace(r.Context(), entries)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImport) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func (h *ParticipantHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.service.All(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func (h *ParticipantHandler) TopParticipants(w http.ResponseWriter, r *http.Request) {
	n := 3
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid n", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	participants, err := h.service.Top(r.Context(), n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func (h *ParticipantHandler) CategoryTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.CategoryTotals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *ParticipantHandler) ZeroVoteParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.service.WithZeroVotes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
