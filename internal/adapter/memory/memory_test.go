package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"dockify/internal/domain"
)

func TestAccountRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	a, err := db.CreateAccount(ctx, domain.Account{Username: "dias", Email: "dias@dockify.kz"})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if a.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be populated")
	}

	// Duplicates
	if _, err := db.CreateAccount(ctx, domain.Account{Username: "other", Email: "DIAS@dockify.kz"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for email, got %v", err)
	}
	if _, err := db.CreateAccount(ctx, domain.Account{Username: "dias", Email: "x@y.kz"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for username, got %v", err)
	}

	got, _ := db.AccountByEmail(ctx, "Dias@Dockify.kz")
	if got == nil || got.ID != a.ID {
		t.Errorf("AccountByEmail: got %+v", got)
	}
	got, _ = db.AccountByUsername(ctx, "dias")
	if got == nil || got.ID != a.ID {
		t.Errorf("AccountByUsername: got %+v", got)
	}
	got, _ = db.AccountByID(ctx, a.ID)
	if got == nil || got.Email != "dias@dockify.kz" {
		t.Errorf("AccountByID: got %+v", got)
	}

	// Missing returns nil, nil
	got, err = db.AccountByID(ctx, 999)
	if err != nil || got != nil {
		t.Errorf("expected nil, nil; got %+v, %v", got, err)
	}

	// Callers cannot mutate stored rows
	got, _ = db.AccountByID(ctx, a.ID)
	got.Username = "mutated"
	again, _ := db.AccountByID(ctx, a.ID)
	if again.Username != "dias" {
		t.Error("stored account was mutated through a returned pointer")
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Now()

	_ = db.CreateSession(ctx, domain.AccountSession{Token: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)})
	_ = db.CreateSession(ctx, domain.AccountSession{Token: "dead", UserID: 1, ExpiresAt: now.Add(-time.Hour)})

	s, err := db.SessionByToken(ctx, "live")
	if err != nil || s == nil || s.UserID != 1 {
		t.Fatalf("SessionByToken: %+v, %v", s, err)
	}

	if err := db.DeleteExpiredSessions(ctx, now); err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if s, _ := db.SessionByToken(ctx, "dead"); s != nil {
		t.Error("expected expired session to be deleted")
	}

	_ = db.DeleteSession(ctx, "live")
	if s, _ := db.SessionByToken(ctx, "live"); s != nil {
		t.Error("expected session to be deleted")
	}
}

func TestMetricRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	err := db.AddMetrics(ctx, []domain.MetricRecord{
		{UserID: 1, Type: domain.MetricHeartRate, Value: 60, RecordedAt: t0},
		{UserID: 1, Type: domain.MetricSteps, Value: 1000, RecordedAt: t0},
		{UserID: 2, Type: domain.MetricSteps, Value: 9, RecordedAt: t0},
	})
	if err != nil {
		t.Fatalf("AddMetrics: %v", err)
	}
	_ = db.AddMetrics(ctx, []domain.MetricRecord{
		{UserID: 1, Type: domain.MetricSteps, Value: 4000, RecordedAt: t0.Add(time.Hour)},
	})

	latest, err := db.LatestMetrics(ctx, 1)
	if err != nil {
		t.Fatalf("LatestMetrics: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 records, got %d", len(latest))
	}
	if latest[0].Type != domain.MetricSteps || latest[0].Value != 4000 {
		t.Errorf("expected newest steps first, got %+v", latest[0])
	}
	if latest[1].Type != domain.MetricHeartRate {
		t.Errorf("expected heart rate second, got %+v", latest[1])
	}

	// Other user sees nothing of user 1
	other, _ := db.LatestMetrics(ctx, 3)
	if len(other) != 0 {
		t.Error("expected 0 records for unknown user")
	}
}

func TestLocationStore(t *testing.T) {
	db := New()
	ctx := context.Background()

	_ = db.UpsertLocation(ctx, domain.UserLocation{UserID: 1, Location: domain.Location{Latitude: 1}})
	_ = db.UpsertLocation(ctx, domain.UserLocation{UserID: 1, Location: domain.Location{Latitude: 2}})
	_ = db.UpsertLocation(ctx, domain.UserLocation{UserID: 2, Location: domain.Location{Latitude: 3}})

	locs, _ := db.ListLocations(ctx)
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	for _, l := range locs {
		if l.UserID == 1 && l.Location.Latitude != 2 {
			t.Errorf("expected upsert to replace, got %+v", l)
		}
	}

	_ = db.AddHospitals(ctx, []domain.Location{{Latitude: 5}, {Latitude: 6}})
	hs, _ := db.ListHospitals(ctx)
	if len(hs) != 2 {
		t.Errorf("expected 2 hospitals, got %d", len(hs))
	}
}

func TestRecommendationStore(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Now()
	db.now = func() time.Time { return now }

	if _, ok, _ := db.GetRecommendation(ctx, 1); ok {
		t.Error("expected miss on empty cache")
	}

	_ = db.SetRecommendation(ctx, 1, "walk", time.Minute)
	text, ok, err := db.GetRecommendation(ctx, 1)
	if err != nil || !ok || text != "walk" {
		t.Errorf("expected hit, got %q %v %v", text, ok, err)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := db.GetRecommendation(ctx, 1); ok {
		t.Error("expected expired entry to miss")
	}

	_ = db.SetRecommendation(ctx, 1, "walk", time.Minute)
	_ = db.InvalidateRecommendation(ctx, 1)
	if _, ok, _ := db.GetRecommendation(ctx, 1); ok {
		t.Error("expected invalidated entry to miss")
	}
}
