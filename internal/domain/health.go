package domain

import (
	"context"
	"strings"
	"time"
)

// HealthMetricType is the kind of a health reading. Its value is the wire
// name used by the backend.
type HealthMetricType string

// Supported metric types.
const (
	MetricSteps                  HealthMetricType = "STEPS"
	MetricHeartRate              HealthMetricType = "HEART_RATE"
	MetricBloodPressureSystolic  HealthMetricType = "BLOOD_PRESSURE_SYSTOLIC"
	MetricBloodPressureDiastolic HealthMetricType = "BLOOD_PRESSURE_DIASTOLIC"
	MetricBloodOxygen            HealthMetricType = "BLOOD_OXYGEN"
	MetricSleepDuration          HealthMetricType = "SLEEP_DURATION"
	MetricCaloriesBurned         HealthMetricType = "CALORIES_BURNED"
	MetricDistance               HealthMetricType = "DISTANCE"
	MetricWeight                 HealthMetricType = "WEIGHT"
	MetricHeight                 HealthMetricType = "HEIGHT"
	MetricBodyTemperature        HealthMetricType = "BODY_TEMPERATURE"
	MetricRespiratoryRate        HealthMetricType = "RESPIRATORY_RATE"
)

type metricInfo struct {
	display string
	unit    string
}

var metricInfos = map[HealthMetricType]metricInfo{
	MetricSteps:                  {"Steps", "steps"},
	MetricHeartRate:              {"Heart Rate", "bpm"},
	MetricBloodPressureSystolic:  {"Systolic Blood Pressure", "mmHg"},
	MetricBloodPressureDiastolic: {"Diastolic Blood Pressure", "mmHg"},
	MetricBloodOxygen:            {"Blood Oxygen", "%"},
	MetricSleepDuration:          {"Sleep Duration", "hours"},
	MetricCaloriesBurned:         {"Calories Burned", "kcal"},
	MetricDistance:               {"Distance", "km"},
	MetricWeight:                 {"Weight", "kg"},
	MetricHeight:                 {"Height", "cm"},
	MetricBodyTemperature:        {"Body Temperature", "°C"},
	MetricRespiratoryRate:        {"Respiratory Rate", "breaths/min"},
}

// AllMetricTypes returns every metric type in declaration order.
func AllMetricTypes() []HealthMetricType {
	return []HealthMetricType{
		MetricSteps,
		MetricHeartRate,
		MetricBloodPressureSystolic,
		MetricBloodPressureDiastolic,
		MetricBloodOxygen,
		MetricSleepDuration,
		MetricCaloriesBurned,
		MetricDistance,
		MetricWeight,
		MetricHeight,
		MetricBodyTemperature,
		MetricRespiratoryRate,
	}
}

// Valid reports whether t is a known metric type.
func (t HealthMetricType) Valid() bool {
	_, ok := metricInfos[t]
	return ok
}

// DisplayName returns the human readable name of t.
func (t HealthMetricType) DisplayName() string {
	return metricInfos[t].display
}

// DefaultUnit returns the unit values of t are expressed in.
func (t HealthMetricType) DefaultUnit() string {
	return metricInfos[t].unit
}

// ParseHealthMetricType matches s against the wire name or the display name
// of every type, ignoring case.
func ParseHealthMetricType(s string) (HealthMetricType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllMetricTypes() {
		if strings.EqualFold(string(t), s) || strings.EqualFold(t.DisplayName(), s) {
			return t, true
		}
	}
	return "", false
}

// HealthMetric is a single reading.
type HealthMetric struct {
	Type      HealthMetricType
	Value     float64
	Unit      string
	Timestamp *time.Time
}

// HealthData is the payload of one upload to the backend.
type HealthData struct {
	UserID   string
	Metrics  []HealthMetric
	Location *Location
	SyncedAt time.Time
}

// FindMetric returns the first metric of type t.
func FindMetric(metrics []HealthMetric, t HealthMetricType) (HealthMetric, bool) {
	for _, m := range metrics {
		if m.Type == t {
			return m, true
		}
	}
	return HealthMetric{}, false
}

// FilterMetrics returns the metrics whose type is one of types, keeping
// their order.
func FilterMetrics(metrics []HealthMetric, types ...HealthMetricType) []HealthMetric {
	out := make([]HealthMetric, 0, len(metrics))
	for _, m := range metrics {
		for _, t := range types {
			if m.Type == t {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// HealthRepository is the client port for health data.
type HealthRepository interface {
	GetHealthMetrics(ctx context.Context, userID string) (Result[[]HealthMetric], error)
	SyncHealthData(ctx context.Context, data HealthData) (Result[struct{}], error)
	ReadPlatformHealthData(ctx context.Context, types []HealthMetricType) (Result[[]HealthMetric], error)
	HasHealthPermissions(ctx context.Context, types []HealthMetricType) bool
	RequestHealthPermissions(ctx context.Context, types []HealthMetricType) (bool, error)
	IsHealthPlatformAvailable(ctx context.Context) bool
	// PlatformUnavailableError is the Health error reported when the
	// platform health API is missing on this device.
	PlatformUnavailableError() HealthError
}
