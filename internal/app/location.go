package app

import (
	"context"
	"errors"
	"strings"

	"dockify/internal/domain"
)

// DefaultRadiusMeters is the search radius used by the nearby screen.
const DefaultRadiusMeters = 5000.0

// LocationService encapsulates location use cases.
type LocationService struct {
	repo domain.LocationRepository
}

// NewLocationService creates a LocationService backed by the given repository.
func NewLocationService(repo domain.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// CurrentLocation returns one fix from the device.
func (s *LocationService) CurrentLocation(ctx context.Context) (domain.Result[domain.Location], error) {
	return s.repo.GetCurrentLocation(ctx)
}

// Observe streams fixes until ctx is cancelled. A permission or location
// services failure is delivered once and ends the stream.
func (s *LocationService) Observe(ctx context.Context) <-chan domain.Result[domain.Location] {
	return s.repo.ObserveLocation(ctx)
}

// NearestUsers lists other users within radius meters of loc.
func (s *LocationService) NearestUsers(ctx context.Context, loc domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error) {
	if !loc.IsValid() || radius <= 0 {
		return domain.Failure[[]domain.NearbyUser](domain.LocationUnavailable), nil
	}
	if strings.TrimSpace(userID) == "" {
		return domain.Failure[[]domain.NearbyUser](domain.AuthUnauthorized), nil
	}
	return s.repo.GetNearestUsers(ctx, loc, radius, userID)
}

// NearestHospitals lists hospitals within radius meters of loc.
func (s *LocationService) NearestHospitals(ctx context.Context, loc domain.Location, radius float64) (domain.Result[[]domain.Hospital], error) {
	if !loc.IsValid() || radius <= 0 {
		return domain.Failure[[]domain.Hospital](domain.LocationUnavailable), nil
	}
	return s.repo.GetNearestHospitals(ctx, loc, radius)
}

// RequestPermission prompts for location access unless it is already
// granted, and reports the outcome.
func (s *LocationService) RequestPermission(ctx context.Context) (domain.Result[bool], error) {
	if s.repo.HasLocationPermission(ctx) {
		return domain.Success(true), nil
	}
	granted, err := s.repo.RequestLocationPermission(ctx)
	if errors.Is(err, context.Canceled) {
		return domain.Result[bool]{}, err
	}
	if err != nil {
		return domain.Failure[bool](domain.LocationPermissionDenied), nil
	}
	return domain.Success(granted), nil
}

// HasPermission reports whether location access is granted.
func (s *LocationService) HasPermission(ctx context.Context) bool {
	return s.repo.HasLocationPermission(ctx)
}

// IsLocationEnabled reports whether location services are on.
func (s *LocationService) IsLocationEnabled(ctx context.Context) bool {
	return s.repo.IsLocationEnabled(ctx)
}
