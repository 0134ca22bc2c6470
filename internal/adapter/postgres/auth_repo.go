// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dockify/internal/domain"
)

const accountColumns = "id, username, email, first_name, last_name, password_hash, created_at"

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAccount inserts a new account.
func (d *DB) CreateAccount(ctx context.Context, a domain.Account) (*domain.Account, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	created, err := scanAccount(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, email, first_name, last_name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+accountColumns,
		a.Username, a.Email, a.FirstName, a.LastName, a.PasswordHash, a.CreatedAt,
	))
	if err != nil {
		return nil, mapConflict(err)
	}
	return created, nil
}

// AccountByEmail retrieves an account by email, ignoring case.
func (d *DB) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE lower(email) = lower($1)", email))
}

// AccountByUsername retrieves an account by username.
func (d *DB) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE username = $1", username))
}

// AccountByID retrieves an account by ID.
func (d *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE id = $1", id))
}

// CreateSession creates a new session.
func (d *DB) CreateSession(ctx context.Context, s domain.AccountSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, user_agent, ip, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		s.Token, s.UserID, s.UserAgent, s.IP, s.ExpiresAt, s.CreatedAt,
	)
	return err
}

// SessionByToken retrieves a session by token.
func (d *DB) SessionByToken(ctx context.Context, token string) (*domain.AccountSession, error) {
	var s domain.AccountSession
	err := d.sql.QueryRowContext(ctx,
		"SELECT token, user_id, user_agent, ip, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession deletes a session by token.
func (d *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpiredSessions deletes all sessions expired at now.
func (d *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", now)
	return err
}
