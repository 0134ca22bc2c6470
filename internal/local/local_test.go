package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockify/internal/domain"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	s := NewSessionStore(path)

	assert.Equal(t, domain.LocalNotFound, s.Load(ctx).Err())
	assert.False(t, s.HasSession(ctx))
	assert.Empty(t, s.Token())

	sess := domain.Session{
		User: domain.User{
			ID: "7", Username: "dias", Email: "d@x.io",
			FirstName: "Dias", LastName: "J", CreatedAt: "2025-01-01T00:00:00Z",
		},
		Token: "secret",
	}
	require.True(t, s.Save(ctx, sess).IsSuccess())
	assert.True(t, s.HasSession(ctx))
	assert.Equal(t, "secret", s.Token())

	got, ok := NewSessionStore(path).Load(ctx).Data()
	require.True(t, ok)
	assert.Equal(t, sess, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.True(t, s.Clear(ctx).IsSuccess())
	assert.Equal(t, domain.LocalNotFound, s.Load(ctx).Err())
	assert.True(t, s.Clear(ctx).IsSuccess())
}

func TestSessionStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user_id: [unterminated"), 0o600))

	assert.Equal(t, domain.LocalReadError, NewSessionStore(path).Load(context.Background()).Err())
}

func TestSessionStoreWriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s := NewSessionStore(filepath.Join(blocker, "session.yaml"))
	assert.Equal(t, domain.LocalWriteError, s.Save(context.Background(), domain.Session{User: domain.User{ID: "1"}}).Err())
}

func TestMetricCache(t *testing.T) {
	ctx := context.Background()
	c := NewMetricCache()
	assert.Equal(t, domain.LocalNotFound, c.CachedMetrics(ctx).Err())

	in := []domain.HealthMetric{{Type: domain.MetricSteps, Value: 1}}
	c.SaveMetrics(ctx, in)
	in[0].Value = 99

	got, ok := c.CachedMetrics(ctx).Data()
	require.True(t, ok)
	assert.Equal(t, 1.0, got[0].Value)

	c.SaveMetrics(ctx, []domain.HealthMetric{{Type: domain.MetricHeartRate, Value: 60}})
	got, _ = c.CachedMetrics(ctx).Data()
	require.Len(t, got, 1)
	assert.Equal(t, domain.MetricHeartRate, got[0].Type)

	c.Clear(ctx)
	assert.True(t, c.CachedMetrics(ctx).IsError())
}

func TestRecommendationCache(t *testing.T) {
	ctx := context.Background()
	c := NewRecommendationCache()
	assert.Equal(t, domain.LocalNotFound, c.CachedRecommendation(ctx).Err())

	c.SaveRecommendation(ctx, domain.Recommendation{Text: "walk"})
	got, ok := c.CachedRecommendation(ctx).Data()
	require.True(t, ok)
	assert.Equal(t, "walk", got.Text)
}
