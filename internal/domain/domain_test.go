package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"dockify/internal/domain"
)

func TestLocationIsValid(t *testing.T) {
	tests := []struct {
		name string
		loc  domain.Location
		want bool
	}{
		{"origin", domain.Location{}, true},
		{"north pole", domain.Location{Latitude: 90, Longitude: 0}, true},
		{"south pole", domain.Location{Latitude: -90, Longitude: 0}, true},
		{"east antimeridian", domain.Location{Latitude: 0, Longitude: 180}, true},
		{"west antimeridian", domain.Location{Latitude: 0, Longitude: -180}, true},
		{"all corners", domain.Location{Latitude: -90, Longitude: 180}, true},
		{"latitude above", domain.Location{Latitude: 91, Longitude: 0}, false},
		{"latitude below", domain.Location{Latitude: -91, Longitude: 0}, false},
		{"longitude above", domain.Location{Latitude: 0, Longitude: 181}, false},
		{"longitude below", domain.Location{Latitude: 0, Longitude: -181}, false},
		{"barely above", domain.Location{Latitude: 90.000001, Longitude: 0}, false},
		{"nan", domain.Location{Latitude: math.NaN(), Longitude: 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.loc.IsValid())
		})
	}
}

func TestDistanceMeters(t *testing.T) {
	almaty := domain.Location{Latitude: 43.2389, Longitude: 76.8897}
	astana := domain.Location{Latitude: 51.1694, Longitude: 71.4491}

	assert.InDelta(t, 0, almaty.DistanceMeters(almaty), 0.001)
	assert.InDelta(t, 970_000, almaty.DistanceMeters(astana), 15_000)
	assert.InDelta(t, almaty.DistanceMeters(astana), astana.DistanceMeters(almaty), 0.001)
}

func TestParseHealthMetricType(t *testing.T) {
	for _, mt := range domain.AllMetricTypes() {
		got, ok := domain.ParseHealthMetricType(string(mt))
		assert.True(t, ok, mt)
		assert.Equal(t, mt, got)

		got, ok = domain.ParseHealthMetricType(mt.DisplayName())
		assert.True(t, ok, mt.DisplayName())
		assert.Equal(t, mt, got)

		assert.NotEmpty(t, mt.DefaultUnit())
	}

	got, ok := domain.ParseHealthMetricType("heart rate")
	assert.True(t, ok)
	assert.Equal(t, domain.MetricHeartRate, got)

	_, ok = domain.ParseHealthMetricType("GLUCOSE")
	assert.False(t, ok)
}

func TestAllDataErrorsAreDistinct(t *testing.T) {
	all := domain.AllDataErrors()
	assert.Len(t, all, 25)

	seen := map[string]bool{}
	for _, e := range all {
		assert.False(t, seen[e.Error()], "duplicate %s", e)
		seen[e.Error()] = true
	}
	assert.Equal(t, "network: REQUEST_TIMEOUT", domain.NetworkRequestTimeout.Error())
	assert.Equal(t, "health: HEALTHKIT_NOT_AVAILABLE", domain.HealthKitNotAvailable.Error())
}

func TestFilterMetrics(t *testing.T) {
	metrics := []domain.HealthMetric{
		{Type: domain.MetricSteps, Value: 4000},
		{Type: domain.MetricHeartRate, Value: 70},
		{Type: domain.MetricDistance, Value: 3.1},
	}
	got := domain.FilterMetrics(metrics, domain.MetricDistance, domain.MetricSteps)
	assert.Equal(t, []domain.HealthMetric{metrics[0], metrics[2]}, got)

	m, ok := domain.FindMetric(metrics, domain.MetricHeartRate)
	assert.True(t, ok)
	assert.Equal(t, 70.0, m.Value)

	_, ok = domain.FindMetric(metrics, domain.MetricWeight)
	assert.False(t, ok)
}
