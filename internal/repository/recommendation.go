package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dockify/internal/domain"
	"dockify/internal/remote"
)

// RecommendationRemote is the backend side of recommendations.
type RecommendationRemote interface {
	GetRecommendation(ctx context.Context) (domain.Result[remote.RecommendationDTO], error)
}

// RecommendationCache is the local fallback for recommendations.
type RecommendationCache interface {
	SaveRecommendation(ctx context.Context, rec domain.Recommendation) domain.Result[struct{}]
	CachedRecommendation(ctx context.Context) domain.Result[domain.Recommendation]
}

// RecommendationRepository implements domain.RecommendationRepository.
type RecommendationRepository struct {
	remote RecommendationRemote
	cache  RecommendationCache
	now    func() time.Time
	log    *zap.Logger
}

var _ domain.RecommendationRepository = (*RecommendationRepository)(nil)

// NewRecommendationRepository creates a RecommendationRepository.
func NewRecommendationRepository(r RecommendationRemote, c RecommendationCache, log *zap.Logger) *RecommendationRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecommendationRepository{remote: r, cache: c, now: time.Now, log: log}
}

// GetRecommendation fetches a fresh recommendation, falling back to the
// cached one when the backend fails.
func (r *RecommendationRepository) GetRecommendation(ctx context.Context) (domain.Result[domain.Recommendation], error) {
	res, err := r.remote.GetRecommendation(ctx)
	if err != nil {
		return domain.Result[domain.Recommendation]{}, err
	}
	if dto, ok := res.Data(); ok {
		rec := domain.Recommendation{Text: dto.Recommendation, GeneratedAt: r.now()}
		r.cache.SaveRecommendation(ctx, rec).OnError(func(e domain.DataError) {
			r.log.Warn("cache recommendation", zap.Error(e))
		})
		return domain.Success(rec), nil
	}

	cached := r.cache.CachedRecommendation(ctx)
	if cached.IsSuccess() {
		r.log.Warn("serving cached recommendation", zap.Error(res.Err()))
		return cached, nil
	}
	return domain.Failure[domain.Recommendation](res.Err()), nil
}
