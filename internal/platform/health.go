package platform

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"dockify/internal/domain"
)

// Health is the device health API: Health Connect on Android, HealthKit on
// iOS.
type Health struct {
	d *Device
}

// Platform returns the device platform name.
func (h *Health) Platform() string { return h.d.Platform() }

// IsAvailable reports whether the health API exists on the device.
func (h *Health) IsAvailable(context.Context) bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.profile.Health.Available
}

// HasPermissions reports whether read access to every type is granted.
func (h *Health) HasPermissions(_ context.Context, types []domain.HealthMetricType) bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.hasAll(types)
}

func (h *Health) hasAll(types []domain.HealthMetricType) bool {
	for _, t := range types {
		if !slices.Contains(h.d.profile.Health.Granted, string(t)) {
			return false
		}
	}
	return true
}

// RequestPermissions asks the user to grant read access to types and
// reports whether all of them are granted afterwards.
func (h *Health) RequestPermissions(ctx context.Context, types []domain.HealthMetricType) (bool, error) {
	if h.HasPermissions(ctx, types) {
		return true, nil
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.DisplayName())
	}
	ok, err := h.d.prompter.Confirm(ctx, fmt.Sprintf("Allow dockify to read %s?", strings.Join(names, ", ")))
	if err != nil || !ok {
		return false, err
	}

	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	for _, t := range types {
		if !slices.Contains(h.d.profile.Health.Granted, string(t)) {
			h.d.profile.Health.Granted = append(h.d.profile.Health.Granted, string(t))
		}
	}
	if err := h.d.save(); err != nil {
		return false, fmt.Errorf("save device profile: %w", err)
	}
	return true, nil
}

// Read returns the stored samples of the requested types, in profile order.
// Readings carry the unit they were recorded in.
func (h *Health) Read(ctx context.Context, types []domain.HealthMetricType) ([]domain.HealthMetric, error) {
	h.d.mu.Lock()
	p := h.d.profile.Health
	h.d.mu.Unlock()

	if err := wait(ctx, p.ReadDelay); err != nil {
		return nil, err
	}

	var out []domain.HealthMetric
	for _, r := range p.Readings {
		t, ok := domain.ParseHealthMetricType(r.Type)
		if !ok || r.Value == nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedReading, r.Type)
		}
		if !slices.Contains(types, t) {
			continue
		}
		out = append(out, domain.HealthMetric{
			Type:      t,
			Value:     *r.Value,
			Unit:      r.Unit,
			Timestamp: r.At,
		})
	}
	return out, nil
}
