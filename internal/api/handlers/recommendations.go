package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/acagil/borsabot/internal/tracker"
	"github.com/acagil/borsabot/pkg/logger"
)

// RecommendationHandler serves the persisted daily shortlists.
type RecommendationHandler struct {
	repo   *tracker.Repository
	logger *logger.Logger
}

// NewRecommendationHandler creates a recommendation handler.
func NewRecommendationHandler(repo *tracker.Repository, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{repo: repo, logger: log}
}

// GetLatest returns the most recent persisted recommendation set.
// GET /api/recommendations
func (h *RecommendationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	set, err := h.repo.LatestSet(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest recommendations")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve recommendations")
		return
	}
	if set == nil {
		respondError(w, http.StatusNotFound, "No recommendations stored yet")
		return
	}

	respondJSON(w, http.StatusOK, set)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
