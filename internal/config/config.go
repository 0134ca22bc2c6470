// Package config loads client and server settings from defaults, an
// optional YAML file, an optional .env file and the environment, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Client configures the dockify command-line client.
type Client struct {
	BaseURL     string        `yaml:"base_url"`
	SessionFile string        `yaml:"session_file"`
	DeviceFile  string        `yaml:"device_file"`
	Timeout     time.Duration `yaml:"timeout"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
}

// OIDC configures single sign-on. It is enabled when Issuer is set.
type OIDC struct {
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool { return o.Issuer != "" }

// Server configures the dockify backend.
type Server struct {
	Addr              string        `yaml:"addr"`
	DatabaseURL       string        `yaml:"database_url"`
	RedisAddr         string        `yaml:"redis_addr"`
	RedisPassword     string        `yaml:"redis_password"`
	RedisDB           int           `yaml:"redis_db"`
	RecommendationTTL time.Duration `yaml:"recommendation_ttl"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	LoginRatePerMin   int           `yaml:"login_rate_per_min"`
	HospitalsFile     string        `yaml:"hospitals_file"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	OIDC              OIDC          `yaml:"oidc"`
}

// DefaultClient returns the client defaults.
func DefaultClient() Client {
	dir := defaultDir()
	return Client{
		BaseURL:     "http://localhost:8080",
		SessionFile: filepath.Join(dir, "session.yaml"),
		DeviceFile:  filepath.Join(dir, "device.yaml"),
		Timeout:     30 * time.Second,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// DefaultServer returns the server defaults.
func DefaultServer() Server {
	return Server{
		Addr:              ":8080",
		RecommendationTTL: time.Hour,
		SessionTTL:        24 * time.Hour,
		LoginRatePerMin:   10,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// LoadClient builds the client configuration. path may be empty, in which
// case DOCKIFY_CONFIG is consulted.
func LoadClient(path string) (*Client, error) {
	c := DefaultClient()
	if err := loadFile(path, &c); err != nil {
		return nil, err
	}
	_ = godotenv.Load()

	c.BaseURL = getEnv("DOCKIFY_BASE_URL", c.BaseURL)
	c.SessionFile = getEnv("DOCKIFY_SESSION_FILE", c.SessionFile)
	c.DeviceFile = getEnv("DOCKIFY_DEVICE_FILE", c.DeviceFile)
	c.LogLevel = getEnv("DOCKIFY_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("DOCKIFY_LOG_FORMAT", c.LogFormat)
	var err error
	if c.Timeout, err = getDuration("DOCKIFY_TIMEOUT", c.Timeout); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the client configuration.
func (c *Client) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base url %q must be absolute", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.SessionFile == "" {
		return errors.New("session file is required")
	}
	return nil
}

// LoadServer builds the server configuration. path may be empty, in which
// case DOCKIFY_CONFIG is consulted.
func LoadServer(path string) (*Server, error) {
	s := DefaultServer()
	if err := loadFile(path, &s); err != nil {
		return nil, err
	}
	_ = godotenv.Load()

	s.Addr = getEnv("ADDR", s.Addr)
	s.DatabaseURL = getEnv("DATABASE_URL", s.DatabaseURL)
	s.RedisAddr = getEnv("REDIS_ADDR", s.RedisAddr)
	s.RedisPassword = getEnv("REDIS_PASSWORD", s.RedisPassword)
	s.HospitalsFile = getEnv("HOSPITALS_FILE", s.HospitalsFile)
	s.LogLevel = getEnv("LOG_LEVEL", s.LogLevel)
	s.LogFormat = getEnv("LOG_FORMAT", s.LogFormat)
	s.OIDC.Issuer = getEnv("OIDC_ISSUER", s.OIDC.Issuer)
	s.OIDC.ClientID = getEnv("OIDC_CLIENT_ID", s.OIDC.ClientID)
	s.OIDC.ClientSecret = getEnv("OIDC_CLIENT_SECRET", s.OIDC.ClientSecret)
	s.OIDC.RedirectURL = getEnv("OIDC_REDIRECT_URL", s.OIDC.RedirectURL)

	var err error
	if s.RecommendationTTL, err = getDuration("RECOMMENDATION_TTL", s.RecommendationTTL); err != nil {
		return nil, err
	}
	if s.SessionTTL, err = getDuration("SESSION_TTL", s.SessionTTL); err != nil {
		return nil, err
	}
	if s.LoginRatePerMin, err = getInt("LOGIN_RATE_PER_MIN", s.LoginRatePerMin); err != nil {
		return nil, err
	}
	if s.RedisDB, err = getInt("REDIS_DB", s.RedisDB); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the server configuration.
func (s *Server) Validate() error {
	if s.Addr == "" {
		return errors.New("ADDR is required")
	}
	if s.SessionTTL <= 0 || s.RecommendationTTL <= 0 {
		return errors.New("SESSION_TTL and RECOMMENDATION_TTL must be positive")
	}
	if s.LoginRatePerMin <= 0 {
		return errors.New("LOGIN_RATE_PER_MIN must be positive")
	}
	if s.RedisDB < 0 {
		return errors.New("REDIS_DB must not be negative")
	}
	if s.OIDC.Enabled() && (s.OIDC.ClientID == "" || s.OIDC.RedirectURL == "") {
		return errors.New("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required when OIDC_ISSUER is set")
	}
	return nil
}

func loadFile(path string, dst any) error {
	if path == "" {
		path = os.Getenv("DOCKIFY_CONFIG")
	}
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dockify"
	}
	return filepath.Join(home, ".dockify")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
