package domain

import (
	"context"
	"time"
)

// Recommendation is advice generated by the backend from the user's
// latest metrics.
type Recommendation struct {
	Text        string
	GeneratedAt time.Time
}

// RecommendationRepository is the client port for recommendations.
type RecommendationRepository interface {
	GetRecommendation(ctx context.Context) (Result[Recommendation], error)
}

// RecommendationCache stores generated recommendation text per user on
// the backend. Get reports a miss with ok=false.
type RecommendationCache interface {
	Get(ctx context.Context, userID int64) (text string, ok bool, err error)
	Set(ctx context.Context, userID int64, text string, ttl time.Duration) error
	Invalidate(ctx context.Context, userID int64) error
}
