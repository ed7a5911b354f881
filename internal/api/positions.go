package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nearby-labs/waypost/internal/models"
)

// positionRequest is the payload a device posts for each fix.
type positionRequest struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ingestPosition handles POST /api/positions. Fixes are accepted into the
// feed without waiting for evaluation; a fix that cannot be buffered is
// dropped, since the next one supersedes it.
func (s *Server) ingestPosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		s.writeError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}

	pos := models.Position{
		Coordinates: models.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude},
		Timestamp:   time.Now().UTC(),
	}
	if req.Timestamp != nil {
		pos.Timestamp = *req.Timestamp
	}

	if !s.positions.Publish(pos) {
		s.log.DebugContext(r.Context(), "position feed saturated, fix dropped")
	}

	w.WriteHeader(http.StatusAccepted)
}
