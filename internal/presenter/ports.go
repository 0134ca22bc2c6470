package presenter

import (
	"context"

	"dockify/internal/domain"
)

// Session resolves the signed-in user.
type Session interface {
	CurrentUserID(ctx context.Context) domain.Result[string]
}

// HealthUseCases are the health operations a presenter drives.
type HealthUseCases interface {
	ReadPlatform(ctx context.Context, types []domain.HealthMetricType) (domain.Result[[]domain.HealthMetric], error)
	Sync(ctx context.Context, userID string, types []domain.HealthMetricType, loc *domain.Location) (domain.Result[struct{}], error)
	Upload(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error)
	IsPlatformAvailable(ctx context.Context) bool
	HasPermissions(ctx context.Context, types []domain.HealthMetricType) bool
	RequestPermissions(ctx context.Context, types []domain.HealthMetricType) (domain.Result[bool], error)
}

// RecommendationUseCases fetch advice for the signed-in user.
type RecommendationUseCases interface {
	Recommendation(ctx context.Context) (domain.Result[domain.Recommendation], error)
}

// LocationUseCases are the location operations a presenter drives.
type LocationUseCases interface {
	CurrentLocation(ctx context.Context) (domain.Result[domain.Location], error)
	NearestUsers(ctx context.Context, loc domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error)
	NearestHospitals(ctx context.Context, loc domain.Location, radius float64) (domain.Result[[]domain.Hospital], error)
	RequestPermission(ctx context.Context) (domain.Result[bool], error)
	HasPermission(ctx context.Context) bool
	IsLocationEnabled(ctx context.Context) bool
}

// AuthUseCases are the sign-in operations the auth forms drive.
type AuthUseCases interface {
	Login(ctx context.Context, email, password string) (domain.Result[domain.User], error)
	Register(ctx context.Context, reg domain.Registration) (domain.Result[string], error)
}
