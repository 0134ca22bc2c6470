package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"dockify/internal/backend"
	"dockify/internal/domain"
)

// handleMetrics lists the latest readings (GET) or stores a batch (POST).
// Both are limited to the signed-in account.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListMetrics(w, r)
	case http.MethodPost:
		s.handleUploadMetrics(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid user_id %q", raw))
			return
		}
		if id != acc.ID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	records, err := s.metrics.Latest(r.Context(), acc.ID)
	if err != nil {
		s.log.Error("latest metrics", zap.Int64("user_id", acc.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toMetricDTOs(records))
}

func (s *Server) handleUploadMetrics(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	var req uploadRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID != 0 && req.UserID != acc.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	in := make([]backend.MetricInput, 0, len(req.Metrics))
	for _, m := range req.Metrics {
		in = append(in, backend.MetricInput{Type: m.MetricType, Value: m.MetricValue})
	}
	var loc *domain.Location
	if req.Location != nil {
		l := req.Location.toDomain()
		loc = &l
	}

	n, err := s.metrics.Record(r.Context(), acc.ID, in, loc)
	switch {
	case errors.Is(err, backend.ErrInvalidMetrics), errors.Is(err, backend.ErrInvalidLocation):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.log.Error("record metrics", zap.Int64("user_id", acc.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.prom.uploaded.Add(float64(n))
	writeJSON(w, http.StatusCreated, map[string]any{"stored": n})
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	acc := accountFrom(r.Context())

	text, err := s.recs.Recommendation(r.Context(), acc.ID)
	if err != nil {
		s.log.Error("recommendation", zap.Int64("user_id", acc.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"recommendation": text})
}
