package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("DOCKIFY_CONFIG", "")
	t.Setenv("DOCKIFY_BASE_URL", "")
	t.Setenv("DOCKIFY_TIMEOUT", "")

	c, err := LoadClient("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, "session.yaml", filepath.Base(c.SessionFile))
}

func TestLoadClientFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dockify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://api.example.com\ntimeout: 5s\ndevice_file: /tmp/device.yaml\n"), 0o600))

	t.Setenv("DOCKIFY_BASE_URL", "")
	t.Setenv("DOCKIFY_TIMEOUT", "")
	c, err := LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", c.BaseURL)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, "/tmp/device.yaml", c.DeviceFile)

	t.Setenv("DOCKIFY_BASE_URL", "https://override.example.com")
	c, err = LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", c.BaseURL)
}

func TestLoadClientRejectsBadValues(t *testing.T) {
	t.Setenv("DOCKIFY_CONFIG", "")

	t.Setenv("DOCKIFY_BASE_URL", "localhost:8080/api")
	_, err := LoadClient("")
	assert.Error(t, err)

	t.Setenv("DOCKIFY_BASE_URL", "")
	t.Setenv("DOCKIFY_TIMEOUT", "soon")
	_, err = LoadClient("")
	assert.Error(t, err)

	t.Setenv("DOCKIFY_TIMEOUT", "-1s")
	_, err = LoadClient("")
	assert.Error(t, err)
}

func TestLoadServer(t *testing.T) {
	t.Setenv("DOCKIFY_CONFIG", "")
	t.Setenv("ADDR", ":9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("LOGIN_RATE_PER_MIN", "3")

	s, err := LoadServer("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.Addr)
	assert.Equal(t, 2*time.Hour, s.SessionTTL)
	assert.Equal(t, time.Hour, s.RecommendationTTL)
	assert.Equal(t, 3, s.LoginRatePerMin)
	assert.False(t, s.OIDC.Enabled())
}

func TestLoadServerRedis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis_addr: cache:6379\nredis_password: from-file\nredis_db: 2\n"), 0o600))
	t.Setenv("REDIS_PASSWORD", "")

	s, err := LoadServer(path)
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", s.RedisAddr)
	assert.Equal(t, "from-file", s.RedisPassword)
	assert.Equal(t, 2, s.RedisDB)

	t.Setenv("REDIS_PASSWORD", "from-env")
	t.Setenv("REDIS_DB", "-1")
	_, err = LoadServer(path)
	assert.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	s, err = LoadServer(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.RedisPassword)
	assert.Equal(t, 0, s.RedisDB)
}

func TestServerValidateOIDC(t *testing.T) {
	s := DefaultServer()
	s.OIDC.Issuer = "https://auth.example.com"
	assert.Error(t, s.Validate())

	s.OIDC.ClientID = "dockify"
	s.OIDC.RedirectURL = "http://localhost:8080/api/v1/sso/callback"
	assert.NoError(t, s.Validate())
}
