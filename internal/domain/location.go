package domain

import (
	"context"
	"math"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// IsValid reports whether the coordinates are within [-90,90] and
// [-180,180]. NaN is never valid.
func (l Location) IsValid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between l and o using
// the haversine formula.
func (l Location) DistanceMeters(o Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := o.Latitude * math.Pi / 180
	dLat := (o.Latitude - l.Latitude) * math.Pi / 180
	dLon := (o.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// NearbyUser is another user reported near the caller.
type NearbyUser struct {
	UserID   string
	Location Location
}

// Hospital is a medical facility near the caller.
type Hospital struct {
	Location Location
}

// LocationRepository is the client port for location data.
type LocationRepository interface {
	GetCurrentLocation(ctx context.Context) (Result[Location], error)
	ObserveLocation(ctx context.Context) <-chan Result[Location]
	HasLocationPermission(ctx context.Context) bool
	RequestLocationPermission(ctx context.Context) (bool, error)
	IsLocationEnabled(ctx context.Context) bool
	GetNearestUsers(ctx context.Context, loc Location, radiusMeters float64, userID string) (Result[[]NearbyUser], error)
	GetNearestHospitals(ctx context.Context, loc Location, radiusMeters float64) (Result[[]Hospital], error)
}
