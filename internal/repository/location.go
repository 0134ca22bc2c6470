package repository

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dockify/internal/domain"
	"dockify/internal/platform"
	"dockify/internal/remote"
)

// LocationRemote is the backend side of location search.
type LocationRemote interface {
	NearestUsers(ctx context.Context, req remote.NearestUsersRequestDTO) (domain.Result[[]remote.NearestUserDTO], error)
	NearestHospitals(ctx context.Context, req remote.NearestHospitalsRequestDTO) (domain.Result[[]remote.HospitalDTO], error)
}

// LocationPlatform is the device location provider.
type LocationPlatform interface {
	CurrentLocation(ctx context.Context) (domain.Location, error)
	Observe(ctx context.Context) <-chan platform.Fix
	HasPermission(ctx context.Context) bool
	RequestPermission(ctx context.Context) (bool, error)
	IsLocationEnabled(ctx context.Context) bool
}

// LocationRepository implements domain.LocationRepository.
type LocationRepository struct {
	remote   LocationRemote
	platform LocationPlatform
	log      *zap.Logger
}

var _ domain.LocationRepository = (*LocationRepository)(nil)

// NewLocationRepository creates a LocationRepository.
func NewLocationRepository(r LocationRemote, p LocationPlatform, log *zap.Logger) *LocationRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocationRepository{remote: r, platform: p, log: log}
}

// GetCurrentLocation checks permission, then location services, then asks
// the provider for a fix.
func (r *LocationRepository) GetCurrentLocation(ctx context.Context) (domain.Result[domain.Location], error) {
	if de, ok := r.gate(ctx); !ok {
		return domain.Failure[domain.Location](de), nil
	}
	loc, err := r.platform.CurrentLocation(ctx)
	if errors.Is(err, context.Canceled) {
		return domain.Result[domain.Location]{}, err
	}
	return r.fixResult(loc, err), nil
}

// ObserveLocation streams fixes until ctx is cancelled. Missing permission
// or disabled location services are reported as the only element before the
// channel closes. A failed fix is reported and the stream continues.
func (r *LocationRepository) ObserveLocation(ctx context.Context) <-chan domain.Result[domain.Location] {
	out := make(chan domain.Result[domain.Location], 1)
	if de, ok := r.gate(ctx); !ok {
		out <- domain.Failure[domain.Location](de)
		close(out)
		return out
	}

	fixes := r.platform.Observe(ctx)
	go func() {
		defer close(out)
		for fix := range fixes {
			select {
			case out <- r.fixResult(fix.Location, fix.Err):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (r *LocationRepository) gate(ctx context.Context) (domain.LocationError, bool) {
	if !r.platform.HasPermission(ctx) {
		return domain.LocationPermissionDenied, false
	}
	if !r.platform.IsLocationEnabled(ctx) {
		return domain.LocationGPSDisabled, false
	}
	return 0, true
}

func (r *LocationRepository) fixResult(loc domain.Location, err error) domain.Result[domain.Location] {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.Failure[domain.Location](domain.LocationTimeout)
	case err != nil:
		r.log.Warn("location fix", zap.Error(err))
		return domain.Failure[domain.Location](domain.LocationUnavailable)
	case !loc.IsValid():
		return domain.Failure[domain.Location](domain.LocationUnavailable)
	}
	return domain.Success(loc)
}

// HasLocationPermission reports whether location access is granted.
func (r *LocationRepository) HasLocationPermission(ctx context.Context) bool {
	return r.platform.HasPermission(ctx)
}

// RequestLocationPermission prompts for location access.
func (r *LocationRepository) RequestLocationPermission(ctx context.Context) (bool, error) {
	return r.platform.RequestPermission(ctx)
}

// IsLocationEnabled reports whether location services are on.
func (r *LocationRepository) IsLocationEnabled(ctx context.Context) bool {
	return r.platform.IsLocationEnabled(ctx)
}

// GetNearestUsers lists users within radiusMeters of loc, excluding userID.
func (r *LocationRepository) GetNearestUsers(ctx context.Context, loc domain.Location, radiusMeters float64, userID string) (domain.Result[[]domain.NearbyUser], error) {
	uid, err := strconv.Atoi(strings.TrimSpace(userID))
	if err != nil {
		return domain.Failure[[]domain.NearbyUser](domain.AuthUnauthorized), nil
	}
	res, err := r.remote.NearestUsers(ctx, remote.NearestUsersRequestDTO{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Radius:    int(math.Round(radiusMeters)),
		UserID:    uid,
	})
	if err != nil {
		return domain.Result[[]domain.NearbyUser]{}, err
	}
	return domain.Map(res, func(ds []remote.NearestUserDTO) []domain.NearbyUser {
		users := remote.NearbyUsersFromDTO(ds)
		out := users[:0]
		for _, u := range users {
			if u.Location.IsValid() && u.UserID != userID {
				out = append(out, u)
			}
		}
		return out
	}), nil
}

// GetNearestHospitals lists hospitals within radiusMeters of loc.
func (r *LocationRepository) GetNearestHospitals(ctx context.Context, loc domain.Location, radiusMeters float64) (domain.Result[[]domain.Hospital], error) {
	res, err := r.remote.NearestHospitals(ctx, remote.NearestHospitalsRequestDTO{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Radius:    int(math.Round(radiusMeters)),
	})
	if err != nil {
		return domain.Result[[]domain.Hospital]{}, err
	}
	return domain.Map(res, remote.HospitalsFromDTO), nil
}
