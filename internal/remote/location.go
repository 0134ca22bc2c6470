package remote

import (
	"context"
	"net/http"

	"dockify/internal/domain"
)

// LocationSource calls the location search endpoints.
type LocationSource struct {
	c *Client
}

// NewLocationSource creates a LocationSource.
func NewLocationSource(c *Client) *LocationSource {
	return &LocationSource{c: c}
}

// NearestUsers lists users within the radius of a point.
func (s *LocationSource) NearestUsers(ctx context.Context, req NearestUsersRequestDTO) (domain.Result[[]NearestUserDTO], error) {
	return SafeCall[[]NearestUserDTO](ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Post(ctx, "/api/v1/location/nearest", req)
	})
}

// NearestHospitals lists hospitals within the radius of a point.
func (s *LocationSource) NearestHospitals(ctx context.Context, req NearestHospitalsRequestDTO) (domain.Result[[]HospitalDTO], error) {
	return SafeCall[[]HospitalDTO](ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Post(ctx, "/api/v1/location/hospitals", req)
	})
}
