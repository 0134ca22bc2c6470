package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dockify/internal/domain"
)

// DefaultRecommendationTTL is used when NewRecommendationService is given a zero TTL.
const DefaultRecommendationTTL = time.Hour

const fallbackRecommendation = "Sync your health data to get a personalized recommendation."

// RecommendationService builds a short health tip from a user's latest readings.
type RecommendationService struct {
	metrics domain.MetricRepository
	cache   domain.RecommendationStore
	ttl     time.Duration
	log     *zap.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(metrics domain.MetricRepository, cache domain.RecommendationStore, ttl time.Duration, log *zap.Logger) *RecommendationService {
	if ttl <= 0 {
		ttl = DefaultRecommendationTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RecommendationService{metrics: metrics, cache: cache, ttl: ttl, log: log}
}

// Recommendation returns the cached tip for a user or builds a new one.
// Cache failures are logged and never fail the request.
func (s *RecommendationService) Recommendation(ctx context.Context, userID int64) (string, error) {
	if text, ok, err := s.cache.GetRecommendation(ctx, userID); err != nil {
		s.log.Warn("recommendation cache read failed", zap.Int64("user_id", userID), zap.Error(err))
	} else if ok {
		return text, nil
	}

	records, err := s.metrics.LatestMetrics(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("latest metrics: %w", err)
	}
	text := Recommend(records)

	if err := s.cache.SetRecommendation(ctx, userID, text, s.ttl); err != nil {
		s.log.Warn("recommendation cache write failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return text, nil
}

// Recommend applies the recommendation rules to a set of latest readings.
// The first matching rule wins.
func Recommend(records []domain.MetricRecord) string {
	latest := make(map[domain.HealthMetricType]float64, len(records))
	for _, r := range records {
		latest[r.Type] = r.Value
	}
	if len(latest) == 0 {
		return fallbackRecommendation
	}

	if v, ok := latest[domain.MetricBloodOxygen]; ok && v < 95 {
		return "Your blood oxygen is below 95%. Rest, breathe deeply and consult a doctor if it stays low."
	}
	if v, ok := latest[domain.MetricHeartRate]; ok && v > 100 {
		return "Your resting heart rate is high. Take a break, hydrate and avoid caffeine today."
	}
	if v, ok := latest[domain.MetricBloodPressureSystolic]; ok && v >= 140 {
		return "Your blood pressure is elevated. Reduce salt and keep an eye on it over the next days."
	}
	if v, ok := latest[domain.MetricSleepDuration]; ok && v < 7 {
		return fmt.Sprintf("You slept %.1f hours. Aim for 7 to 9 hours tonight.", v)
	}
	if v, ok := latest[domain.MetricSteps]; ok && v < 5000 {
		return fmt.Sprintf("Only %.0f steps so far. A 20 minute walk gets you much closer to 10000.", v)
	}
	if v, ok := latest[domain.MetricSteps]; ok && v >= 10000 {
		return "Great job reaching 10000 steps! Keep the streak going tomorrow."
	}
	return "Your readings look balanced. Keep up your current routine."
}
