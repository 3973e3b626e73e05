package hospital

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// HandleRecommendGPS serves GET /recommend/gps?lat=&lng=&level=.
func (h *Handler) HandleRecommendGPS(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "lat and lng query parameters are required", http.StatusBadRequest)
		return
	}
	level := r.URL.Query().Get("level")
	if level == "" {
		level = "Emergency"
	}

	recs, err := h.svc.Recommend(r.Context(), level, lat, lng)
	if err != nil {
		if errors.Is(err, ErrFeedUnavailable) {
			writeJSON(w, Placeholder())
			return
		}
		http.Error(w, "Recommendation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"patient_location":    Coordinate{Lat: lat, Lng: lng},
		"top_recommendations": recs,
	})
}

// HandleRecommendRegion serves GET /recommend?location=.
func (h *Handler) HandleRecommendRegion(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = "Calgary"
	}

	rec, err := h.svc.RecommendByRegion(r.Context(), location)
	if err != nil {
		if errors.Is(err, ErrFeedUnavailable) {
			writeJSON(w, Placeholder())
			return
		}
		if errors.Is(err, ErrNoFacilities) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Recommendation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

// HandleWaitTimes serves GET /ed-waits.
func (h *Handler) HandleWaitTimes(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.svc.LatestWaitTimes(r.Context())
	if err != nil {
		if errors.Is(err, ErrFeedUnavailable) {
			writeJSON(w, Placeholder())
			return
		}
		http.Error(w, "Wait times unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, facilities)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/recommend", h.HandleRecommendRegion)
	r.Get("/recommend/gps", h.HandleRecommendGPS)
	r.Get("/ed-waits", h.HandleWaitTimes)
}
