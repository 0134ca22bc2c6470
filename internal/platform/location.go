package platform

import (
	"context"
	"math"
	"math/rand"
	"time"

	"dockify/internal/domain"
)

// Location is the device location provider.
type Location struct {
	d *Device
}

// IsLocationEnabled reports whether location services are switched on.
func (l *Location) IsLocationEnabled(context.Context) bool {
	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	return l.d.profile.Location.Enabled
}

// HasPermission reports whether the app may read the location.
func (l *Location) HasPermission(context.Context) bool {
	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	return l.d.profile.Location.Permission
}

// RequestPermission asks the user for location access.
func (l *Location) RequestPermission(ctx context.Context) (bool, error) {
	if l.HasPermission(ctx) {
		return true, nil
	}
	ok, err := l.d.prompter.Confirm(ctx, "Allow dockify to access your location?")
	if err != nil || !ok {
		return false, err
	}

	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	l.d.profile.Location.Permission = true
	if err := l.d.save(); err != nil {
		return false, err
	}
	return true, nil
}

// CurrentLocation returns one fix, jittered by the configured radius.
func (l *Location) CurrentLocation(ctx context.Context) (domain.Location, error) {
	if err := ctx.Err(); err != nil {
		return domain.Location{}, err
	}
	l.d.mu.Lock()
	p := l.d.profile.Location
	l.d.mu.Unlock()

	if p.Latitude == nil || p.Longitude == nil {
		return domain.Location{}, ErrNoFix
	}
	loc := domain.Location{Latitude: *p.Latitude, Longitude: *p.Longitude}
	if p.JitterMeters > 0 {
		loc = jitter(loc, p.JitterMeters)
	}
	return loc, nil
}

// Fix is one reading of the location stream. Err is set when the device
// could not produce a position.
type Fix struct {
	Location domain.Location
	Err      error
}

// Observe streams fixes at the configured interval until ctx is done. The
// channel is closed and the underlying ticker released on cancellation.
func (l *Location) Observe(ctx context.Context) <-chan Fix {
	l.d.mu.Lock()
	interval := l.d.profile.Location.Interval
	l.d.mu.Unlock()
	if interval <= 0 {
		interval = time.Second
	}

	out := make(chan Fix)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			loc, err := l.CurrentLocation(ctx)
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- Fix{Location: loc, Err: err}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func jitter(loc domain.Location, meters float64) domain.Location {
	const metersPerDegree = 111_320.0
	r := meters * math.Sqrt(rand.Float64())
	theta := rand.Float64() * 2 * math.Pi
	dLat := r * math.Cos(theta) / metersPerDegree
	dLon := r * math.Sin(theta) / (metersPerDegree * math.Max(math.Cos(loc.Latitude*math.Pi/180), 1e-6))
	return domain.Location{
		Latitude:  math.Max(-90, math.Min(90, loc.Latitude+dLat)),
		Longitude: math.Max(-180, math.Min(180, loc.Longitude+dLon)),
	}
}
