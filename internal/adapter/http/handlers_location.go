package adapthttp

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"dockify/internal/backend"
)

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	acc := accountFrom(r.Context())

	var req nearestRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID != 0 && req.UserID != acc.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	at := locationDTO{Latitude: req.Latitude, Longitude: req.Longitude}.toDomain()
	users, err := s.location.NearestUsers(r.Context(), acc.ID, at, float64(req.Radius))
	if errors.Is(err, backend.ErrInvalidLocation) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.log.Error("nearest users", zap.Int64("user_id", acc.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]nearestUserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, nearestUserDTO{
			UserID:   u.UserID,
			Location: locationDTO{Latitude: u.Location.Latitude, Longitude: u.Location.Longitude},
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHospitals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req nearestRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	at := locationDTO{Latitude: req.Latitude, Longitude: req.Longitude}.toDomain()
	hospitals, err := s.location.NearestHospitals(r.Context(), at, float64(req.Radius))
	if errors.Is(err, backend.ErrInvalidLocation) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.log.Error("nearest hospitals", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]locationDTO, 0, len(hospitals))
	for _, h := range hospitals {
		out = append(out, locationDTO{Latitude: h.Latitude, Longitude: h.Longitude})
	}
	writeJSON(w, http.StatusOK, out)
}
