package postgres

import (
	"context"
	"fmt"

	"dockify/internal/domain"
)

// AddMetrics inserts a batch of readings in one transaction.
func (d *DB) AddMetrics(ctx context.Context, records []domain.MetricRecord) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO health_metrics (user_id, metric_type, value, unit, recorded_at) VALUES ($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.UserID, string(r.Type), r.Value, r.Unit, r.RecordedAt); err != nil {
			return fmt.Errorf("insert %s: %w", r.Type, err)
		}
	}
	return tx.Commit()
}

// LatestMetrics returns the newest reading of each type for a user.
func (d *DB) LatestMetrics(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT DISTINCT ON (metric_type) user_id, metric_type, value, unit, recorded_at
		FROM health_metrics
		WHERE user_id = $1
		ORDER BY metric_type, recorded_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byType := make(map[domain.HealthMetricType]domain.MetricRecord)
	for rows.Next() {
		var (
			r   domain.MetricRecord
			typ string
		)
		if err := rows.Scan(&r.UserID, &typ, &r.Value, &r.Unit, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Type = domain.HealthMetricType(typ)
		byType[r.Type] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]domain.MetricRecord, 0, len(byType))
	for _, t := range domain.AllMetricTypes() {
		if r, ok := byType[t]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}
