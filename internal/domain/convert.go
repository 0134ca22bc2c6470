package domain

import "strings"

const (
	kgToLb   = 2.2046226218
	kmToMile = 0.621371192
	inToCm   = 2.54
)

// ConvertUnit converts v between two units of the same dimension.
// Returns v unchanged if from == to or if the pair is unrecognised.
func ConvertUnit(v float64, from, to string) float64 {
	from, to = canonicalUnit(from), canonicalUnit(to)
	if from == to {
		return v
	}
	switch from + ">" + to {
	case "kg>lb":
		return v * kgToLb
	case "lb>kg":
		return v / kgToLb
	case "km>mi":
		return v * kmToMile
	case "mi>km":
		return v / kmToMile
	case "m>km":
		return v / 1000
	case "km>m":
		return v * 1000
	case "in>cm":
		return v * inToCm
	case "cm>in":
		return v / inToCm
	case "m>cm":
		return v * 100
	case "°F>°C":
		return (v - 32) * 5 / 9
	case "°C>°F":
		return v*9/5 + 32
	case "min>hours":
		return v / 60
	case "hours>min":
		return v * 60
	case "cal>kcal":
		return v / 1000
	}
	return v
}

func canonicalUnit(u string) string {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "kg", "kilograms":
		return "kg"
	case "lb", "lbs", "pounds":
		return "lb"
	case "km", "kilometers":
		return "km"
	case "mi", "miles":
		return "mi"
	case "m", "meters":
		return "m"
	case "cm":
		return "cm"
	case "in", "inches":
		return "in"
	case "°c", "c", "celsius":
		return "°C"
	case "°f", "f", "fahrenheit":
		return "°F"
	case "h", "hr", "hours":
		return "hours"
	case "min", "minutes":
		return "min"
	case "kcal":
		return "kcal"
	case "cal":
		return "cal"
	}
	return u
}

// NormalizeMetric expresses m in the default unit of its type. A metric
// without a unit is assumed to already use the default.
func NormalizeMetric(m HealthMetric) HealthMetric {
	want := m.Type.DefaultUnit()
	if m.Unit == "" || want == "" {
		m.Unit = want
		return m
	}
	m.Value = ConvertUnit(m.Value, m.Unit, want)
	m.Unit = want
	return m
}
