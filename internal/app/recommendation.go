package app

import (
	"context"

	"dockify/internal/domain"
)

// RecommendationService encapsulates recommendation use cases.
type RecommendationService struct {
	repo domain.RecommendationRepository
}

// NewRecommendationService creates a RecommendationService.
func NewRecommendationService(repo domain.RecommendationRepository) *RecommendationService {
	return &RecommendationService{repo: repo}
}

// Recommendation returns the latest advice for the signed-in user.
func (s *RecommendationService) Recommendation(ctx context.Context) (domain.Result[domain.Recommendation], error) {
	return s.repo.GetRecommendation(ctx)
}
