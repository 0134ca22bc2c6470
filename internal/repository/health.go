// Package repository combines remote, local and platform sources behind
// the domain repository ports.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"dockify/internal/domain"
	"dockify/internal/platform"
	"dockify/internal/remote"
)

// HealthRemote is the backend side of health data.
type HealthRemote interface {
	GetHealthMetrics(ctx context.Context, userID string) (domain.Result[[]remote.HealthMetricDTO], error)
	CreateHealthMetrics(ctx context.Context, req remote.HealthMetricsRequestDTO) (domain.Result[struct{}], error)
}

// MetricCache is the local fallback for health data.
type MetricCache interface {
	SaveMetrics(ctx context.Context, metrics []domain.HealthMetric) domain.Result[struct{}]
	CachedMetrics(ctx context.Context) domain.Result[[]domain.HealthMetric]
}

// HealthPlatform is the device health API.
type HealthPlatform interface {
	Platform() string
	IsAvailable(ctx context.Context) bool
	HasPermissions(ctx context.Context, types []domain.HealthMetricType) bool
	RequestPermissions(ctx context.Context, types []domain.HealthMetricType) (bool, error)
	Read(ctx context.Context, types []domain.HealthMetricType) ([]domain.HealthMetric, error)
}

// HealthRepository implements domain.HealthRepository.
type HealthRepository struct {
	remote   HealthRemote
	cache    MetricCache
	platform HealthPlatform
	log      *zap.Logger
}

var _ domain.HealthRepository = (*HealthRepository)(nil)

// NewHealthRepository creates a HealthRepository.
func NewHealthRepository(r HealthRemote, c MetricCache, p HealthPlatform, log *zap.Logger) *HealthRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthRepository{remote: r, cache: c, platform: p, log: log}
}

// GetHealthMetrics fetches the user's metrics from the backend and caches
// them. When the backend fails, the last cached metrics are served instead;
// with an empty cache the backend error is returned.
func (r *HealthRepository) GetHealthMetrics(ctx context.Context, userID string) (domain.Result[[]domain.HealthMetric], error) {
	res, err := r.remote.GetHealthMetrics(ctx, userID)
	if err != nil {
		return domain.Result[[]domain.HealthMetric]{}, err
	}
	if dtos, ok := res.Data(); ok {
		metrics := remote.MetricsFromDTO(dtos)
		r.cache.SaveMetrics(ctx, metrics).OnError(func(e domain.DataError) {
			r.log.Warn("cache metrics", zap.Error(e))
		})
		return domain.Success(metrics), nil
	}

	cached := r.cache.CachedMetrics(ctx)
	if cached.IsSuccess() {
		r.log.Warn("serving cached metrics", zap.Error(res.Err()))
		return cached, nil
	}
	return domain.Failure[[]domain.HealthMetric](res.Err()), nil
}

// SyncHealthData uploads data to the backend.
func (r *HealthRepository) SyncHealthData(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error) {
	req, ok := remote.HealthDataToDTO(data)
	if !ok {
		return domain.Failure[struct{}](domain.AuthUnauthorized), nil
	}
	res, err := r.remote.CreateHealthMetrics(ctx, req)
	if err != nil {
		return res, err
	}
	res.OnError(func(e domain.DataError) {
		r.log.Warn("upload metrics", zap.Int("count", len(data.Metrics)), zap.Error(e))
	})
	return res, nil
}

// ReadPlatformHealthData reads the device after checking availability and
// permission, and normalizes every reading to its type's default unit.
func (r *HealthRepository) ReadPlatformHealthData(ctx context.Context, types []domain.HealthMetricType) (domain.Result[[]domain.HealthMetric], error) {
	if !r.platform.IsAvailable(ctx) {
		return domain.Failure[[]domain.HealthMetric](r.PlatformUnavailableError()), nil
	}
	if !r.platform.HasPermissions(ctx, types) {
		return domain.Failure[[]domain.HealthMetric](domain.HealthPermissionDenied), nil
	}

	raw, err := r.platform.Read(ctx, types)
	switch {
	case errors.Is(err, context.Canceled):
		return domain.Result[[]domain.HealthMetric]{}, err
	case errors.Is(err, platform.ErrMalformedReading):
		r.log.Warn("platform read", zap.Error(err))
		return domain.Failure[[]domain.HealthMetric](domain.HealthInvalidDataFormat), nil
	case err != nil:
		r.log.Warn("platform read", zap.Error(err))
		return domain.Failure[[]domain.HealthMetric](domain.HealthDataNotFound), nil
	}

	metrics := make([]domain.HealthMetric, 0, len(raw))
	for _, m := range raw {
		metrics = append(metrics, domain.NormalizeMetric(m))
	}
	return domain.Success(metrics), nil
}

// HasHealthPermissions reports whether read access to types is granted.
func (r *HealthRepository) HasHealthPermissions(ctx context.Context, types []domain.HealthMetricType) bool {
	return r.platform.HasPermissions(ctx, types)
}

// RequestHealthPermissions prompts for read access to types.
func (r *HealthRepository) RequestHealthPermissions(ctx context.Context, types []domain.HealthMetricType) (bool, error) {
	return r.platform.RequestPermissions(ctx, types)
}

// IsHealthPlatformAvailable reports whether the device has a health API.
func (r *HealthRepository) IsHealthPlatformAvailable(ctx context.Context) bool {
	return r.platform.IsAvailable(ctx)
}

// PlatformUnavailableError names the missing health API for this device.
func (r *HealthRepository) PlatformUnavailableError() domain.HealthError {
	if r.platform.Platform() == platform.IOS {
		return domain.HealthKitNotAvailable
	}
	return domain.HealthConnectNotAvailable
}
