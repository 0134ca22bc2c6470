package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dockify/internal/domain"
)

type hospitalsFile struct {
	Hospitals []struct {
		Name      string  `yaml:"name"`
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
	} `yaml:"hospitals"`
}

// LoadHospitals reads the hospital catalogue seed. An empty path yields no
// hospitals.
func LoadHospitals(path string) ([]domain.Location, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hospitals: %w", err)
	}
	var f hospitalsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse hospitals %s: %w", path, err)
	}
	out := make([]domain.Location, 0, len(f.Hospitals))
	for _, h := range f.Hospitals {
		out = append(out, domain.Location{Latitude: h.Latitude, Longitude: h.Longitude})
	}
	return out, nil
}
