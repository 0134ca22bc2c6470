// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"dockify/internal/domain"
)

type cachedText struct {
	text      string
	expiresAt time.Time
}

// DB implements an in-memory database storage.
type DB struct {
	mu        sync.Mutex
	accounts  []*domain.Account
	sessions  map[string]*domain.AccountSession
	metrics   []domain.MetricRecord
	locations map[int64]domain.UserLocation
	hospitals []domain.Location
	recs      map[int64]cachedText

	accountIDCounter int64
	now              func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions:  make(map[string]*domain.AccountSession),
		locations: make(map[int64]domain.UserLocation),
		recs:      make(map[int64]cachedText),
		now:       time.Now,
	}
}

// Ensure interfaces are met.
var (
	_ domain.AccountRepository   = (*DB)(nil)
	_ domain.SessionRepository   = (*DB)(nil)
	_ domain.MetricRepository    = (*DB)(nil)
	_ domain.LocationStore       = (*DB)(nil)
	_ domain.RecommendationStore = (*DB)(nil)
)

// --- AccountRepository ---

// CreateAccount stores a new account. Email and username are unique.
func (db *DB) CreateAccount(ctx context.Context, a domain.Account) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.accounts {
		if strings.EqualFold(u.Email, a.Email) || u.Username == a.Username {
			return nil, domain.ErrConflict
		}
	}

	db.accountIDCounter++
	a.ID = db.accountIDCounter
	if a.CreatedAt.IsZero() {
		a.CreatedAt = db.now().UTC()
	}
	stored := a
	db.accounts = append(db.accounts, &stored)
	return &a, nil
}

// AccountByEmail retrieves an account by email.
func (db *DB) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return db.find(func(a *domain.Account) bool { return strings.EqualFold(a.Email, email) }), nil
}

// AccountByUsername retrieves an account by username.
func (db *DB) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return db.find(func(a *domain.Account) bool { return a.Username == username }), nil
}

// AccountByID retrieves an account by ID.
func (db *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return db.find(func(a *domain.Account) bool { return a.ID == id }), nil
}

func (db *DB) find(match func(*domain.Account) bool) *domain.Account {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if match(a) {
			cp := *a
			return &cp
		}
	}
	// Return nil if not found
	return nil
}

// --- SessionRepository ---

// CreateSession stores a new session.
func (db *DB) CreateSession(ctx context.Context, s domain.AccountSession) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sessions[s.Token] = &s
	return nil
}

// SessionByToken retrieves a session by token.
func (db *DB) SessionByToken(ctx context.Context, token string) (*domain.AccountSession, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// DeleteSession deletes a session.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, token)
	return nil
}

// DeleteExpiredSessions deletes all sessions expired at now.
func (db *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for k, v := range db.sessions {
		if now.After(v.ExpiresAt) {
			delete(db.sessions, k)
		}
	}
	return nil
}

// --- MetricRepository ---

// AddMetrics appends a batch of readings.
func (db *DB) AddMetrics(ctx context.Context, records []domain.MetricRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.metrics = append(db.metrics, records...)
	return nil
}

// LatestMetrics returns the newest reading of each type for a user, in
// metric type order. Later inserts win ties.
func (db *DB) LatestMetrics(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	latest := make(map[domain.HealthMetricType]domain.MetricRecord)
	for _, m := range db.metrics {
		if m.UserID != userID {
			continue
		}
		if cur, ok := latest[m.Type]; !ok || !m.RecordedAt.Before(cur.RecordedAt) {
			latest[m.Type] = m
		}
	}

	result := make([]domain.MetricRecord, 0, len(latest))
	for _, t := range domain.AllMetricTypes() {
		if m, ok := latest[t]; ok {
			result = append(result, m)
		}
	}
	return result, nil
}

// --- LocationStore ---

// UpsertLocation replaces the last known location of a user.
func (db *DB) UpsertLocation(ctx context.Context, loc domain.UserLocation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.locations[loc.UserID] = loc
	return nil
}

// ListLocations returns the last known location of every user.
func (db *DB) ListLocations(ctx context.Context) ([]domain.UserLocation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.UserLocation, 0, len(db.locations))
	for _, l := range db.locations {
		result = append(result, l)
	}
	return result, nil
}

// ListHospitals returns the hospital catalogue.
func (db *DB) ListHospitals(ctx context.Context) ([]domain.Location, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Location, len(db.hospitals))
	copy(result, db.hospitals)
	return result, nil
}

// AddHospitals extends the hospital catalogue.
func (db *DB) AddHospitals(ctx context.Context, hospitals []domain.Location) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.hospitals = append(db.hospitals, hospitals...)
	return nil
}

// --- RecommendationStore ---

// GetRecommendation returns an unexpired cached recommendation.
func (db *DB) GetRecommendation(ctx context.Context, userID int64) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.recs[userID]
	if !ok {
		return "", false, nil
	}
	if db.now().After(c.expiresAt) {
		delete(db.recs, userID)
		return "", false, nil
	}
	return c.text, true, nil
}

// SetRecommendation caches a recommendation for ttl.
func (db *DB) SetRecommendation(ctx context.Context, userID int64, text string, ttl time.Duration) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.recs[userID] = cachedText{text: text, expiresAt: db.now().Add(ttl)}
	return nil
}

// InvalidateRecommendation drops a cached recommendation.
func (db *DB) InvalidateRecommendation(ctx context.Context, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.recs, userID)
	return nil
}
