package remote

import (
	"context"
	"net/http"

	"dockify/internal/domain"
)

// RecommendationSource calls the recommendation endpoint.
type RecommendationSource struct {
	c *Client
}

// NewRecommendationSource creates a RecommendationSource.
func NewRecommendationSource(c *Client) *RecommendationSource {
	return &RecommendationSource{c: c}
}

// GetRecommendation fetches advice for the signed-in user.
func (s *RecommendationSource) GetRecommendation(ctx context.Context) (domain.Result[RecommendationDTO], error) {
	return SafeCall[RecommendationDTO](ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Get(ctx, "/api/v1/recommendation", nil)
	})
}
