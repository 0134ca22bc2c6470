package domain

import (
	"context"
	"errors"
	"time"
)

// ErrConflict is returned by storage when a unique field is already taken.
var ErrConflict = errors.New("conflict")

// Account is a registered user as stored on the backend.
type Account struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountSession is an issued bearer token.
type AccountSession struct {
	Token     string
	UserID    int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// MetricRecord is a stored reading on the backend.
type MetricRecord struct {
	UserID     int64
	Type       HealthMetricType
	Value      float64
	Unit       string
	RecordedAt time.Time
}

// UserLocation is the last location reported by a user.
type UserLocation struct {
	UserID    int64
	Location  Location
	UpdatedAt time.Time
}

// AccountRepository defines the port for account persistence operations.
// Lookups return nil, nil when nothing matches.
type AccountRepository interface {
	CreateAccount(ctx context.Context, a Account) (*Account, error)
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	AccountByUsername(ctx context.Context, username string) (*Account, error)
	AccountByID(ctx context.Context, id int64) (*Account, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	CreateSession(ctx context.Context, s AccountSession) error
	SessionByToken(ctx context.Context, token string) (*AccountSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

// MetricRepository defines the port for metric persistence operations.
type MetricRepository interface {
	AddMetrics(ctx context.Context, records []MetricRecord) error
	// LatestMetrics returns the newest record of each type for a user.
	LatestMetrics(ctx context.Context, userID int64) ([]MetricRecord, error)
}

// LocationStore defines the port for user location and hospital lookups.
type LocationStore interface {
	UpsertLocation(ctx context.Context, loc UserLocation) error
	ListLocations(ctx context.Context) ([]UserLocation, error)
	ListHospitals(ctx context.Context) ([]Location, error)
	AddHospitals(ctx context.Context, hospitals []Location) error
}

// RecommendationStore caches generated recommendation text per user.
type RecommendationStore interface {
	// GetRecommendation reports false when nothing is cached.
	GetRecommendation(ctx context.Context, userID int64) (string, bool, error)
	SetRecommendation(ctx context.Context, userID int64, text string, ttl time.Duration) error
	InvalidateRecommendation(ctx context.Context, userID int64) error
}
