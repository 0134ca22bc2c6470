package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"dockify/internal/domain"
)

// HealthService encapsulates health data use cases.
type HealthService struct {
	repo domain.HealthRepository
	now  func() time.Time
}

// NewHealthService creates a HealthService backed by the given repository.
func NewHealthService(repo domain.HealthRepository) *HealthService {
	return &HealthService{repo: repo, now: time.Now}
}

// Metrics returns the metrics stored on the backend for userID.
func (s *HealthService) Metrics(ctx context.Context, userID string) (domain.Result[[]domain.HealthMetric], error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Failure[[]domain.HealthMetric](domain.AuthUnauthorized), nil
	}
	return s.repo.GetHealthMetrics(ctx, userID)
}

// ReadPlatform reads types from the device health API. Asking for nothing
// returns nothing without touching the device.
func (s *HealthService) ReadPlatform(ctx context.Context, types []domain.HealthMetricType) (domain.Result[[]domain.HealthMetric], error) {
	if len(types) == 0 {
		return domain.Success([]domain.HealthMetric{}), nil
	}
	if !s.repo.IsHealthPlatformAvailable(ctx) {
		return domain.Failure[[]domain.HealthMetric](s.repo.PlatformUnavailableError()), nil
	}
	if !s.repo.HasHealthPermissions(ctx, types) {
		return domain.Failure[[]domain.HealthMetric](domain.HealthPermissionDenied), nil
	}
	return s.repo.ReadPlatformHealthData(ctx, types)
}

// Sync reads types from the device and uploads them for userID. A read
// failure never reaches the backend.
func (s *HealthService) Sync(ctx context.Context, userID string, types []domain.HealthMetricType, loc *domain.Location) (domain.Result[struct{}], error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Failure[struct{}](domain.AuthUnauthorized), nil
	}
	if len(types) == 0 {
		return domain.Failure[struct{}](domain.HealthDataNotFound), nil
	}

	read, err := s.ReadPlatform(ctx, types)
	if err != nil {
		return domain.Result[struct{}]{}, err
	}
	metrics, ok := read.Data()
	if !ok {
		return domain.AsEmpty(read), nil
	}
	if len(metrics) == 0 {
		return domain.Failure[struct{}](domain.HealthDataNotFound), nil
	}

	return s.Upload(ctx, domain.HealthData{UserID: userID, Metrics: metrics, Location: loc})
}

// Upload sends already read data to the backend.
func (s *HealthService) Upload(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error) {
	if strings.TrimSpace(data.UserID) == "" {
		return domain.Failure[struct{}](domain.AuthUnauthorized), nil
	}
	if data.Location != nil && !data.Location.IsValid() {
		data.Location = nil
	}
	if data.SyncedAt.IsZero() {
		data.SyncedAt = s.now()
	}
	return s.repo.SyncHealthData(ctx, data)
}

// IsPlatformAvailable reports whether the device has a health API.
func (s *HealthService) IsPlatformAvailable(ctx context.Context) bool {
	return s.repo.IsHealthPlatformAvailable(ctx)
}

// PlatformUnavailableError names the missing health API of this device.
func (s *HealthService) PlatformUnavailableError() domain.HealthError {
	return s.repo.PlatformUnavailableError()
}

// HasPermissions reports whether read access to types is granted.
func (s *HealthService) HasPermissions(ctx context.Context, types []domain.HealthMetricType) bool {
	return s.repo.HasHealthPermissions(ctx, types)
}

// RequestPermissions prompts for read access and reports whether it was
// granted. A failing prompt is Health.PERMISSION_DENIED.
func (s *HealthService) RequestPermissions(ctx context.Context, types []domain.HealthMetricType) (domain.Result[bool], error) {
	if !s.repo.IsHealthPlatformAvailable(ctx) {
		return domain.Failure[bool](s.repo.PlatformUnavailableError()), nil
	}
	granted, err := s.repo.RequestHealthPermissions(ctx, types)
	if errors.Is(err, context.Canceled) {
		return domain.Result[bool]{}, err
	}
	if err != nil {
		return domain.Failure[bool](domain.HealthPermissionDenied), nil
	}
	return domain.Success(granted), nil
}
