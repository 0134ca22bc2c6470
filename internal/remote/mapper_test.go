package remote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockify/internal/domain"
)

func TestMetricDTORoundTrip(t *testing.T) {
	values := []float64{0, 1, 4000, 72.5, 0.1, 1e-9, 123456789.125, -3.25}
	for _, mt := range domain.AllMetricTypes() {
		for _, v := range values {
			in := domain.HealthMetric{Type: mt, Value: v, Unit: mt.DefaultUnit()}

			b, err := json.Marshal(MetricToDTO(in))
			require.NoError(t, err)
			var dto HealthMetricDTO
			require.NoError(t, json.Unmarshal(b, &dto))

			out, ok := MetricFromDTO(dto)
			require.True(t, ok, "%s %v", mt, v)
			assert.Equal(t, in.Type, out.Type)
			assert.Equal(t, in.Value, out.Value)
			assert.Equal(t, in.Unit, out.Unit)
		}
	}
}

func TestMetricsFromDTODropsInvalid(t *testing.T) {
	got := MetricsFromDTO([]HealthMetricDTO{
		{MetricType: "STEPS", MetricValue: "4000"},
		{MetricType: "GLUCOSE", MetricValue: "5.5"},
		{MetricType: "HEART_RATE", MetricValue: "fast"},
		{MetricType: "Heart Rate", MetricValue: " 64 "},
		{MetricType: "WEIGHT", MetricValue: "NaN"},
		{MetricType: "WEIGHT", MetricValue: "+Inf"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, domain.HealthMetric{Type: domain.MetricSteps, Value: 4000, Unit: "steps"}, got[0])
	assert.Equal(t, domain.HealthMetric{Type: domain.MetricHeartRate, Value: 64, Unit: "bpm"}, got[1])
}

func TestHealthDataToDTO(t *testing.T) {
	loc := domain.Location{Latitude: 43.2, Longitude: 76.9}
	req, ok := HealthDataToDTO(domain.HealthData{
		UserID:   "42",
		Metrics:  []domain.HealthMetric{{Type: domain.MetricSteps, Value: 4000}},
		Location: &loc,
	})
	require.True(t, ok)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":42,"metrics":[{"metric_type":"STEPS","metric_value":"4000"}],"location":{"latitude":43.2,"longitude":76.9}}`, string(b))

	req, ok = HealthDataToDTO(domain.HealthData{UserID: "42"})
	require.True(t, ok)
	b, _ = json.Marshal(req)
	assert.JSONEq(t, `{"user_id":42,"metrics":[]}`, string(b))

	_, ok = HealthDataToDTO(domain.HealthData{UserID: "alice"})
	assert.False(t, ok)
}

func TestUserFromDTO(t *testing.T) {
	var resp LoginResponseDTO
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":7,"username":"dias","first_name":"Dias","last_name":"J","email":"d@x.io","created_at":"2025-01-01T00:00:00Z"},"token":"abc"}`), &resp))

	u := UserFromDTO(resp.User)
	assert.Equal(t, domain.User{ID: "7", Username: "dias", Email: "d@x.io", FirstName: "Dias", LastName: "J", CreatedAt: "2025-01-01T00:00:00Z"}, u)
	assert.Equal(t, "abc", resp.Token)
}
