// Package platform provides the device-side health and location sources.
// A Device is described by a YAML profile so the client can run on any
// host; the profile stands in for Health Connect, HealthKit and the OS
// location provider.
package platform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Platform names.
const (
	Android = "android"
	IOS     = "ios"
)

var (
	// ErrMalformedReading indicates a profile reading that cannot be
	// interpreted.
	ErrMalformedReading = errors.New("malformed reading")
	// ErrNoFix indicates that the device has no location to report.
	ErrNoFix = errors.New("no location fix")
)

// Reading is one stored health sample.
type Reading struct {
	Type  string     `yaml:"type"`
	Value *float64   `yaml:"value"`
	Unit  string     `yaml:"unit,omitempty"`
	At    *time.Time `yaml:"at,omitempty"`
}

// HealthProfile describes the health API of the device.
type HealthProfile struct {
	Available bool          `yaml:"available"`
	Granted   []string      `yaml:"granted"`
	Readings  []Reading     `yaml:"readings"`
	ReadDelay time.Duration `yaml:"read_delay,omitempty"`
}

// LocationProfile describes the location provider of the device.
type LocationProfile struct {
	Enabled      bool          `yaml:"enabled"`
	Permission   bool          `yaml:"permission"`
	Latitude     *float64      `yaml:"latitude,omitempty"`
	Longitude    *float64      `yaml:"longitude,omitempty"`
	Interval     time.Duration `yaml:"interval,omitempty"`
	JitterMeters float64       `yaml:"jitter_meters,omitempty"`
}

// Profile is the full device description.
type Profile struct {
	Platform string          `yaml:"platform"`
	Health   HealthProfile   `yaml:"health"`
	Location LocationProfile `yaml:"location"`
}

// Prompter asks the user to confirm a permission request.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// AutoPrompter answers every request with its own value.
type AutoPrompter bool

// Confirm implements Prompter.
func (a AutoPrompter) Confirm(context.Context, string) (bool, error) { return bool(a), nil }

// Device is a simulated phone.
type Device struct {
	mu       sync.Mutex
	path     string
	profile  Profile
	prompter Prompter
}

// NewDevice creates an in-memory device.
func NewDevice(p Profile, prompter Prompter) *Device {
	if p.Platform == "" {
		p.Platform = Android
	}
	if prompter == nil {
		prompter = AutoPrompter(false)
	}
	return &Device{profile: p, prompter: prompter}
}

// LoadDevice reads a profile from path. A missing file yields
// DefaultProfile, which is written back once a permission is granted.
func LoadDevice(path string, prompter Prompter) (*Device, error) {
	p := DefaultProfile()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read device profile: %w", err)
	default:
		p = Profile{}
		if err := yaml.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("parse device profile %s: %w", path, err)
		}
	}
	d := NewDevice(p, prompter)
	d.path = path
	return d, nil
}

// DefaultProfile is an available device with sample readings and no
// permissions granted yet.
func DefaultProfile() Profile {
	f := func(v float64) *float64 { return &v }
	return Profile{
		Platform: Android,
		Health: HealthProfile{
			Available: true,
			Readings: []Reading{
				{Type: "STEPS", Value: f(6450), Unit: "steps"},
				{Type: "HEART_RATE", Value: f(72), Unit: "bpm"},
				{Type: "BLOOD_OXYGEN", Value: f(98), Unit: "%"},
				{Type: "SLEEP_DURATION", Value: f(440), Unit: "min"},
				{Type: "CALORIES_BURNED", Value: f(310), Unit: "kcal"},
				{Type: "DISTANCE", Value: f(4.6), Unit: "km"},
				{Type: "WEIGHT", Value: f(74.2), Unit: "kg"},
			},
		},
		Location: LocationProfile{
			Enabled:   true,
			Latitude:  f(43.2389),
			Longitude: f(76.8897),
			Interval:  time.Second,
		},
	}
}

// Platform returns the device platform name.
func (d *Device) Platform() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.profile.Platform
}

// Health returns the health API of the device.
func (d *Device) Health() *Health { return &Health{d: d} }

// Location returns the location provider of the device.
func (d *Device) Location() *Location { return &Location{d: d} }

// save persists the profile. Callers hold d.mu.
func (d *Device) save() error {
	if d.path == "" {
		return nil
	}
	b, err := yaml.Marshal(d.profile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(d.path, b, 0o600)
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
