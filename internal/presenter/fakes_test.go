package presenter

import (
	"context"
	"testing"
	"time"

	"dockify/internal/domain"
)

type fakeSession struct{ id string }

func (f fakeSession) CurrentUserID(context.Context) domain.Result[string] {
	if f.id == "" {
		return domain.Failure[string](domain.AuthUnauthorized)
	}
	return domain.Success(f.id)
}

type fakeHealth struct {
	available  bool
	permission bool
	grant      bool

	readCalls    int
	requestCalls int
	uploads      []domain.HealthData

	readFn   func(ctx context.Context) (domain.Result[[]domain.HealthMetric], error)
	uploadFn func(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error)
	syncFn   func(ctx context.Context, userID string, loc *domain.Location) (domain.Result[struct{}], error)
}

func (f *fakeHealth) ReadPlatform(ctx context.Context, _ []domain.HealthMetricType) (domain.Result[[]domain.HealthMetric], error) {
	f.readCalls++
	if f.readFn != nil {
		return f.readFn(ctx)
	}
	return domain.Success([]domain.HealthMetric{}), nil
}

func (f *fakeHealth) Sync(ctx context.Context, userID string, _ []domain.HealthMetricType, loc *domain.Location) (domain.Result[struct{}], error) {
	if f.syncFn != nil {
		return f.syncFn(ctx, userID, loc)
	}
	return domain.Success(struct{}{}), nil
}

func (f *fakeHealth) Upload(ctx context.Context, data domain.HealthData) (domain.Result[struct{}], error) {
	f.uploads = append(f.uploads, data)
	if f.uploadFn != nil {
		return f.uploadFn(ctx, data)
	}
	return domain.Success(struct{}{}), nil
}

func (f *fakeHealth) IsPlatformAvailable(context.Context) bool { return f.available }

func (f *fakeHealth) HasPermissions(context.Context, []domain.HealthMetricType) bool {
	return f.permission
}

func (f *fakeHealth) RequestPermissions(context.Context, []domain.HealthMetricType) (domain.Result[bool], error) {
	f.requestCalls++
	if f.grant {
		f.permission = true
	}
	return domain.Success(f.grant), nil
}

type fakeRecs struct{ text string }

func (f fakeRecs) Recommendation(context.Context) (domain.Result[domain.Recommendation], error) {
	if f.text == "" {
		return domain.Failure[domain.Recommendation](domain.NetworkServerError), nil
	}
	return domain.Success(domain.Recommendation{Text: f.text}), nil
}

type fakeLocation struct {
	enabled    bool
	permission bool
	grant      bool
	loc        domain.Location
	locErr     domain.DataError

	usersFn     func(ctx context.Context, loc domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error)
	hospitalsFn func(ctx context.Context, loc domain.Location, radius float64) (domain.Result[[]domain.Hospital], error)
}

func (f *fakeLocation) CurrentLocation(context.Context) (domain.Result[domain.Location], error) {
	if f.locErr != nil {
		return domain.Failure[domain.Location](f.locErr), nil
	}
	return domain.Success(f.loc), nil
}

func (f *fakeLocation) NearestUsers(ctx context.Context, loc domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error) {
	if f.usersFn != nil {
		return f.usersFn(ctx, loc, radius, userID)
	}
	return domain.Success([]domain.NearbyUser{}), nil
}

func (f *fakeLocation) NearestHospitals(ctx context.Context, loc domain.Location, radius float64) (domain.Result[[]domain.Hospital], error) {
	if f.hospitalsFn != nil {
		return f.hospitalsFn(ctx, loc, radius)
	}
	return domain.Success([]domain.Hospital{}), nil
}

func (f *fakeLocation) RequestPermission(context.Context) (domain.Result[bool], error) {
	if f.grant {
		f.permission = true
	}
	return domain.Success(f.grant), nil
}

func (f *fakeLocation) HasPermission(context.Context) bool { return f.permission }

func (f *fakeLocation) IsLocationEnabled(context.Context) bool { return f.enabled }

type fakeAuth struct {
	loginCalls    int
	registerCalls int
	loginErr      domain.DataError
	registerErr   domain.DataError
}

func (f *fakeAuth) Login(context.Context, string, string) (domain.Result[domain.User], error) {
	f.loginCalls++
	if f.loginErr != nil {
		return domain.Failure[domain.User](f.loginErr), nil
	}
	return domain.Success(domain.User{ID: "1"}), nil
}

func (f *fakeAuth) Register(context.Context, domain.Registration) (domain.Result[string], error) {
	f.registerCalls++
	if f.registerErr != nil {
		return domain.Failure[string](f.registerErr), nil
	}
	return domain.Success("2"), nil
}

// drain returns every effect emitted so far.
func drain(ch <-chan Effect) []Effect {
	var out []Effect
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}
