package remote

import (
	"context"
	"net/http"
	"net/url"

	"dockify/internal/domain"
)

// HealthSource calls the metrics endpoints.
type HealthSource struct {
	c *Client
}

// NewHealthSource creates a HealthSource.
func NewHealthSource(c *Client) *HealthSource {
	return &HealthSource{c: c}
}

// GetHealthMetrics fetches the stored metrics of a user.
func (s *HealthSource) GetHealthMetrics(ctx context.Context, userID string) (domain.Result[[]HealthMetricDTO], error) {
	return SafeCall[[]HealthMetricDTO](ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Get(ctx, "/api/v1/metrics", url.Values{"user_id": {userID}})
	})
}

// CreateHealthMetrics uploads a batch of metrics.
func (s *HealthSource) CreateHealthMetrics(ctx context.Context, req HealthMetricsRequestDTO) (domain.Result[struct{}], error) {
	return SafeCallEmpty(ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Post(ctx, "/api/v1/metrics", req)
	})
}
