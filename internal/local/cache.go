package local

import (
	"context"
	"sync"

	"dockify/internal/domain"
)

// MetricCache keeps the last metrics fetched from the backend. It is a
// last-write-wins store and is lost when the process exits.
type MetricCache struct {
	mu      sync.RWMutex
	metrics []domain.HealthMetric
}

// NewMetricCache creates an empty cache.
func NewMetricCache() *MetricCache {
	return &MetricCache{}
}

// SaveMetrics replaces the cached metrics.
func (c *MetricCache) SaveMetrics(_ context.Context, metrics []domain.HealthMetric) domain.Result[struct{}] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = append([]domain.HealthMetric(nil), metrics...)
	return domain.Success(struct{}{})
}

// CachedMetrics returns the cached metrics, or Local.NOT_FOUND when empty.
func (c *MetricCache) CachedMetrics(_ context.Context) domain.Result[[]domain.HealthMetric] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.metrics) == 0 {
		return domain.Failure[[]domain.HealthMetric](domain.LocalNotFound)
	}
	return domain.Success(append([]domain.HealthMetric(nil), c.metrics...))
}

// Clear empties the cache.
func (c *MetricCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = nil
}

// RecommendationCache keeps the last recommendation fetched.
type RecommendationCache struct {
	mu  sync.RWMutex
	rec *domain.Recommendation
}

// NewRecommendationCache creates an empty cache.
func NewRecommendationCache() *RecommendationCache {
	return &RecommendationCache{}
}

// SaveRecommendation replaces the cached recommendation.
func (c *RecommendationCache) SaveRecommendation(_ context.Context, rec domain.Recommendation) domain.Result[struct{}] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = &rec
	return domain.Success(struct{}{})
}

// CachedRecommendation returns the cached recommendation, or
// Local.NOT_FOUND.
func (c *RecommendationCache) CachedRecommendation(_ context.Context) domain.Result[domain.Recommendation] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rec == nil {
		return domain.Failure[domain.Recommendation](domain.LocalNotFound)
	}
	return domain.Success(*c.rec)
}
