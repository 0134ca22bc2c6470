package app

import (
	"context"

	"dockify/internal/domain"
)

type mockAuthRepo struct {
	loginCalls    int
	registerCalls int

	loginFn    func(ctx context.Context, creds domain.Credentials) (domain.Result[domain.User], error)
	registerFn func(ctx context.Context, reg domain.Registration) (domain.Result[string], error)
	userFn     func(ctx context.Context) domain.Result[domain.User]
}

func (m *mockAuthRepo) Login(ctx context.Context, creds domain.Credentials) (domain.Result[domain.User], error) {
	m.loginCalls++
	if m.loginFn != nil {
		return m.loginFn(ctx, creds)
	}
	return domain.Success(domain.User{ID: "1", Email: creds.Email}), nil
}

func (m *mockAuthRepo) Register(ctx context.Context, reg domain.Registration) (domain.Result[string], error) {
	m.registerCalls++
	if m.registerFn != nil {
		return m.registerFn(ctx, reg)
	}
	return domain.Success("1"), nil
}

func (m *mockAuthRepo) Logout(context.Context) domain.Result[struct{}] {
	return domain.Success(struct{}{})
}

func (m *mockAuthRepo) GetCurrentUser(ctx context.Context) domain.Result[domain.User] {
	if m.userFn != nil {
		return m.userFn(ctx)
	}
	return domain.Failure[domain.User](domain.LocalNotFound)
}

func (m *mockAuthRepo) IsLoggedIn(ctx context.Context) bool {
	return m.GetCurrentUser(ctx).IsSuccess()
}

type mockHealthRepo struct {
	available   bool
	permission  bool
	ios         bool
	readCalls   int
	uploadCalls int

	metricsFn func(ctx context.Context, userID string) (domain.Result[[]domain.HealthMetric], error)
	readFn    func(ctx context.Context, types []domain.HealthMetricType) (domain.Result[[]domain.HealthMetric], error)
	syncFn    func(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error)
	requestFn func(ctx context.Context, types []domain.HealthMetricType) (bool, error)
}

func (m *mockHealthRepo) GetHealthMetrics(ctx context.Context, userID string) (domain.Result[[]domain.HealthMetric], error) {
	if m.metricsFn != nil {
		return m.metricsFn(ctx, userID)
	}
	return domain.Success([]domain.HealthMetric{}), nil
}

func (m *mockHealthRepo) SyncHealthData(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error) {
	m.uploadCalls++
	if m.syncFn != nil {
		return m.syncFn(ctx, data)
	}
	return domain.Success(struct{}{}), nil
}

func (m *mockHealthRepo) ReadPlatformHealthData(ctx context.Context, types []domain.HealthMetricType) (domain.Result[[]domain.HealthMetric], error) {
	m.readCalls++
	if m.readFn != nil {
		return m.readFn(ctx, types)
	}
	return domain.Success([]domain.HealthMetric{}), nil
}

func (m *mockHealthRepo) HasHealthPermissions(context.Context, []domain.HealthMetricType) bool {
	return m.permission
}

func (m *mockHealthRepo) RequestHealthPermissions(ctx context.Context, types []domain.HealthMetricType) (bool, error) {
	if m.requestFn != nil {
		return m.requestFn(ctx, types)
	}
	return m.permission, nil
}

func (m *mockHealthRepo) IsHealthPlatformAvailable(context.Context) bool { return m.available }

func (m *mockHealthRepo) PlatformUnavailableError() domain.HealthError {
	if m.ios {
		return domain.HealthKitNotAvailable
	}
	return domain.HealthConnectNotAvailable
}

type mockLocationRepo struct {
	permission bool
	enabled    bool
	remoteCall int

	usersFn     func(ctx context.Context, loc domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error)
	hospitalsFn func(ctx context.Context, loc domain.Location, radius float64) (domain.Result[[]domain.Hospital], error)
	requestFn   func(ctx context.Context) (bool, error)
}

func (m *mockLocationRepo) GetCurrentLocation(context.Context) (domain.Result[domain.Location], error) {
	return domain.Success(domain.Location{Latitude: 43.24, Longitude: 76.91}), nil
}

func (m *mockLocationRepo) ObserveLocation(context.Context) <-chan domain.Result[domain.Location] {
	ch := make(chan domain.Result[domain.Location], 1)
	ch <- domain.Success(domain.Location{Latitude: 1, Longitude: 1})
	close(ch)
	return ch
}

func (m *mockLocationRepo) HasLocationPermission(context.Context) bool { return m.permission }

func (m *mockLocationRepo) RequestLocationPermission(ctx context.Context) (bool, error) {
	if m.requestFn != nil {
		return m.requestFn(ctx)
	}
	return m.permission, nil
}

func (m *mockLocationRepo) IsLocationEnabled(context.Context) bool { return m.enabled }

func (m *mockLocationRepo) GetNearestUsers(ctx context.Context, loc domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error) {
	m.remoteCall++
	if m.usersFn != nil {
		return m.usersFn(ctx, loc, radius, userID)
	}
	return domain.Success([]domain.NearbyUser{}), nil
}

func (m *mockLocationRepo) GetNearestHospitals(ctx context.Context, loc domain.Location, radius float64) (domain.Result[[]domain.Hospital], error) {
	m.remoteCall++
	if m.hospitalsFn != nil {
		return m.hospitalsFn(ctx, loc, radius)
	}
	return domain.Success([]domain.Hospital{}), nil
}
