package backend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"dockify/internal/domain"
)

var (
	// ErrInvalidMetrics indicates an empty batch or an unreadable reading.
	ErrInvalidMetrics = errors.New("invalid metrics")
	// ErrInvalidLocation indicates coordinates out of range or a bad radius.
	ErrInvalidLocation = errors.New("invalid location")
)

// MetricInput is one reading as received on the wire.
type MetricInput struct {
	Type  string
	Value string
}

// MetricsService stores and lists health readings.
type MetricsService struct {
	metrics   domain.MetricRepository
	locations domain.LocationStore
	recs      domain.RecommendationStore
	now       func() time.Time
	log       *zap.Logger
}

// NewMetricsService creates a new metrics service. recs may be nil; when set,
// a user's cached recommendation is dropped after every upload.
func NewMetricsService(metrics domain.MetricRepository, locations domain.LocationStore, recs domain.RecommendationStore, log *zap.Logger) *MetricsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MetricsService{metrics: metrics, locations: locations, recs: recs, now: time.Now, log: log}
}

// Record validates and stores a batch of readings with an optional location.
func (s *MetricsService) Record(ctx context.Context, userID int64, in []MetricInput, loc *domain.Location) (int, error) {
	if len(in) == 0 {
		return 0, fmt.Errorf("%w: empty batch", ErrInvalidMetrics)
	}
	if loc != nil && !loc.IsValid() {
		return 0, ErrInvalidLocation
	}

	now := s.now().UTC()
	records := make([]domain.MetricRecord, 0, len(in))
	for _, m := range in {
		typ, ok := domain.ParseHealthMetricType(m.Type)
		if !ok {
			return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidMetrics, m.Type)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(m.Value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: bad value %q for %s", ErrInvalidMetrics, m.Value, typ)
		}
		records = append(records, domain.MetricRecord{
			UserID:     userID,
			Type:       typ,
			Value:      v,
			Unit:       typ.DefaultUnit(),
			RecordedAt: now,
		})
	}

	if err := s.metrics.AddMetrics(ctx, records); err != nil {
		return 0, fmt.Errorf("store metrics: %w", err)
	}
	if loc != nil {
		err := s.locations.UpsertLocation(ctx, domain.UserLocation{UserID: userID, Location: *loc, UpdatedAt: now})
		if err != nil {
			return 0, fmt.Errorf("store location: %w", err)
		}
	}
	if s.recs != nil {
		if err := s.recs.InvalidateRecommendation(ctx, userID); err != nil {
			s.log.Warn("recommendation cache invalidate failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return len(records), nil
}

// Latest returns the newest reading of each type for a user.
func (s *MetricsService) Latest(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	return s.metrics.LatestMetrics(ctx, userID)
}
