package backend

import (
	"context"
	"time"

	"dockify/internal/domain"
)

type mockAccountRepo struct {
	createFn     func(ctx context.Context, a domain.Account) (*domain.Account, error)
	byEmailFn    func(ctx context.Context, email string) (*domain.Account, error)
	byUsernameFn func(ctx context.Context, username string) (*domain.Account, error)
	byIDFn       func(ctx context.Context, id int64) (*domain.Account, error)
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, a domain.Account) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	a.ID = 1
	return &a, nil
}

func (m *mockAccountRepo) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepo) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockAccountRepo) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, s domain.AccountSession) error
	byTokenFn       func(ctx context.Context, token string) (*domain.AccountSession, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context, now time.Time) error
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, s domain.AccountSession) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockSessionRepo) SessionByToken(ctx context.Context, token string) (*domain.AccountSession, error) {
	if m.byTokenFn != nil {
		return m.byTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return nil
}

type mockMetricRepo struct {
	added    []domain.MetricRecord
	addFn    func(ctx context.Context, records []domain.MetricRecord) error
	latestFn func(ctx context.Context, userID int64) ([]domain.MetricRecord, error)
}

func (m *mockMetricRepo) AddMetrics(ctx context.Context, records []domain.MetricRecord) error {
	m.added = append(m.added, records...)
	if m.addFn != nil {
		return m.addFn(ctx, records)
	}
	return nil
}

func (m *mockMetricRepo) LatestMetrics(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

type mockLocationStore struct {
	upserts   []domain.UserLocation
	locations []domain.UserLocation
	hospitals []domain.Location
	listErr   error
}

func (m *mockLocationStore) UpsertLocation(_ context.Context, loc domain.UserLocation) error {
	m.upserts = append(m.upserts, loc)
	return nil
}

func (m *mockLocationStore) ListLocations(context.Context) ([]domain.UserLocation, error) {
	return m.locations, m.listErr
}

func (m *mockLocationStore) ListHospitals(context.Context) ([]domain.Location, error) {
	return m.hospitals, m.listErr
}

func (m *mockLocationStore) AddHospitals(_ context.Context, h []domain.Location) error {
	m.hospitals = append(m.hospitals, h...)
	return nil
}

type mockRecStore struct {
	data    map[int64]string
	ttls    map[int64]time.Duration
	getErr        error
	invalidateErr error
	setCall       int
}

func newMockRecStore() *mockRecStore {
	return &mockRecStore{data: map[int64]string{}, ttls: map[int64]time.Duration{}}
}

func (m *mockRecStore) GetRecommendation(_ context.Context, userID int64) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[userID]
	return v, ok, nil
}

func (m *mockRecStore) SetRecommendation(_ context.Context, userID int64, text string, ttl time.Duration) error {
	m.setCall++
	m.data[userID] = text
	m.ttls[userID] = ttl
	return nil
}

func (m *mockRecStore) InvalidateRecommendation(_ context.Context, userID int64) error {
	if m.invalidateErr != nil {
		return m.invalidateErr
	}
	delete(m.data, userID)
	return nil
}
