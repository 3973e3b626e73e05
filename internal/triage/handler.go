package triage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// HandleTriage serves POST /triage.
func (h *Handler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	var req TriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.svc.Process(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoSymptoms) {
			http.Error(w, "No symptoms provided", http.StatusBadRequest)
			return
		}
		http.Error(w, "Triage failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleReport serves GET /triage/{id}/report as a PDF download.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid audit id", http.StatusBadRequest)
		return
	}

	pdf, err := h.svc.Report(r.Context(), id)
	if err != nil {
		http.Error(w, "Report unavailable: "+err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=triage_report_%s.pdf", id))
	w.Write(pdf)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage", h.HandleTriage)
	r.Get("/triage/{id}/report", h.HandleReport)
}
