package backend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dockify/internal/domain"
)

// LocationService answers proximity queries.
type LocationService struct {
	store domain.LocationStore
	now   func() time.Time
}

// NewLocationService creates a new location service.
func NewLocationService(store domain.LocationStore) *LocationService {
	return &LocationService{store: store, now: time.Now}
}

// NearestUsers records the caller's position and returns the other users
// within radius meters, closest first.
func (s *LocationService) NearestUsers(ctx context.Context, userID int64, at domain.Location, radius float64) ([]domain.UserLocation, error) {
	if !at.IsValid() || radius <= 0 {
		return nil, ErrInvalidLocation
	}
	err := s.store.UpsertLocation(ctx, domain.UserLocation{UserID: userID, Location: at, UpdatedAt: s.now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("store location: %w", err)
	}

	all, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make([]domain.UserLocation, 0, len(all))
	for _, l := range all {
		if l.UserID == userID {
			continue
		}
		if at.DistanceMeters(l.Location) <= radius {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return at.DistanceMeters(out[i].Location) < at.DistanceMeters(out[j].Location)
	})
	return out, nil
}

// NearestHospitals returns the catalogued hospitals within radius meters,
// closest first.
func (s *LocationService) NearestHospitals(ctx context.Context, at domain.Location, radius float64) ([]domain.Location, error) {
	if !at.IsValid() || radius <= 0 {
		return nil, ErrInvalidLocation
	}
	all, err := s.store.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	out := make([]domain.Location, 0, len(all))
	for _, h := range all {
		if at.DistanceMeters(h) <= radius {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return at.DistanceMeters(out[i]) < at.DistanceMeters(out[j])
	})
	return out, nil
}

// SeedHospitals adds hospitals to the catalogue.
func (s *LocationService) SeedHospitals(ctx context.Context, hospitals []domain.Location) error {
	for _, h := range hospitals {
		if !h.IsValid() {
			return fmt.Errorf("%w: hospital at %v,%v", ErrInvalidLocation, h.Latitude, h.Longitude)
		}
	}
	return s.store.AddHospitals(ctx, hospitals)
}
