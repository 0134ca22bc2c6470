package postgres

import (
	"context"

	"dockify/internal/domain"
)

// UpsertLocation replaces the last known location of a user.
func (d *DB) UpsertLocation(ctx context.Context, loc domain.UserLocation) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO user_locations (user_id, latitude, longitude, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, updated_at = EXCLUDED.updated_at`,
		loc.UserID, loc.Location.Latitude, loc.Location.Longitude, loc.UpdatedAt,
	)
	return err
}

// ListLocations returns the last known location of every user.
func (d *DB) ListLocations(ctx context.Context) ([]domain.UserLocation, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT user_id, latitude, longitude, updated_at FROM user_locations")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []domain.UserLocation
	for rows.Next() {
		var l domain.UserLocation
		if err := rows.Scan(&l.UserID, &l.Location.Latitude, &l.Location.Longitude, &l.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// ListHospitals returns the hospital catalogue.
func (d *DB) ListHospitals(ctx context.Context) ([]domain.Location, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT latitude, longitude FROM hospitals ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// AddHospitals extends the hospital catalogue. Known coordinates are skipped.
func (d *DB) AddHospitals(ctx context.Context, hospitals []domain.Location) error {
	for _, h := range hospitals {
		_, err := d.sql.ExecContext(ctx,
			"INSERT INTO hospitals (latitude, longitude) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			h.Latitude, h.Longitude,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
