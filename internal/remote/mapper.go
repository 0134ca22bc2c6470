package remote

import (
	"math"
	"strconv"
	"strings"

	"dockify/internal/domain"
)

// MetricToDTO encodes a metric for the wire. The unit is implied by the type.
func MetricToDTO(m domain.HealthMetric) HealthMetricDTO {
	return HealthMetricDTO{
		MetricType:  string(m.Type),
		MetricValue: strconv.FormatFloat(m.Value, 'f', -1, 64),
	}
}

// MetricFromDTO decodes a wire metric. It reports false for an unknown
// type or a value that is not a finite number.
func MetricFromDTO(d HealthMetricDTO) (domain.HealthMetric, bool) {
	t, ok := domain.ParseHealthMetricType(d.MetricType)
	if !ok {
		return domain.HealthMetric{}, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(d.MetricValue), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.HealthMetric{}, false
	}
	return domain.HealthMetric{Type: t, Value: v, Unit: t.DefaultUnit()}, true
}

// MetricsFromDTO decodes a list, dropping entries MetricFromDTO rejects.
func MetricsFromDTO(ds []HealthMetricDTO) []domain.HealthMetric {
	out := make([]domain.HealthMetric, 0, len(ds))
	for _, d := range ds {
		if m, ok := MetricFromDTO(d); ok {
			out = append(out, m)
		}
	}
	return out
}

// HealthDataToDTO builds the upload body. It reports false when the user id
// is not numeric.
func HealthDataToDTO(data domain.HealthData) (HealthMetricsRequestDTO, bool) {
	uid, err := strconv.Atoi(strings.TrimSpace(data.UserID))
	if err != nil {
		return HealthMetricsRequestDTO{}, false
	}
	req := HealthMetricsRequestDTO{
		UserID:  uid,
		Metrics: make([]HealthMetricDTO, 0, len(data.Metrics)),
	}
	for _, m := range data.Metrics {
		req.Metrics = append(req.Metrics, MetricToDTO(m))
	}
	if data.Location != nil {
		l := LocationToDTO(*data.Location)
		req.Location = &l
	}
	return req, true
}

// LocationToDTO encodes a location.
func LocationToDTO(l domain.Location) LocationDTO {
	return LocationDTO{Latitude: l.Latitude, Longitude: l.Longitude}
}

// LocationFromDTO decodes a location.
func LocationFromDTO(d LocationDTO) domain.Location {
	return domain.Location{Latitude: d.Latitude, Longitude: d.Longitude}
}

// UserFromDTO decodes an account.
func UserFromDTO(d UserDTO) domain.User {
	return domain.User{
		ID:        strconv.Itoa(d.ID),
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		CreatedAt: d.CreatedAt,
	}
}

// RegistrationToDTO encodes a registration.
func RegistrationToDTO(r domain.Registration) RegisterRequestDTO {
	return RegisterRequestDTO{
		Email:     r.Email,
		Password:  r.Password,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// NearbyUsersFromDTO decodes the nearest users response.
func NearbyUsersFromDTO(ds []NearestUserDTO) []domain.NearbyUser {
	out := make([]domain.NearbyUser, 0, len(ds))
	for _, d := range ds {
		out = append(out, domain.NearbyUser{
			UserID:   strconv.Itoa(d.UserID),
			Location: LocationFromDTO(d.Location),
		})
	}
	return out
}

// HospitalsFromDTO decodes the nearest hospitals response.
func HospitalsFromDTO(ds []HospitalDTO) []domain.Hospital {
	out := make([]domain.Hospital, 0, len(ds))
	for _, d := range ds {
		out = append(out, domain.Hospital{
			Location: domain.Location{Latitude: d.Latitude, Longitude: d.Longitude},
		})
	}
	return out
}
