// Package adapthttp implements the HTTP adapter for the backend services.
package adapthttp

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"dockify/internal/backend"
)

// OIDCConfig holds the single sign-on provider. The zero value disables SSO.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// NewOIDCConfig discovers issuer and builds the OAuth2 configuration.
func NewOIDCConfig(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, err
	}
	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Options wires a Server.
type Options struct {
	Auth            *backend.AuthService
	Metrics         *backend.MetricsService
	Location        *backend.LocationService
	Recommendations *backend.RecommendationService
	OIDC            OIDCConfig
	// LoginRatePerMin limits login and register calls per client IP. Zero
	// disables the limit.
	LoginRatePerMin int
	// Ready is probed by /api/v1/health. Nil means always ready.
	Ready    func(ctx context.Context) error
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc    *backend.AuthService
	metrics    *backend.MetricsService
	location   *backend.LocationService
	recs       *backend.RecommendationService
	oidcConfig OIDCConfig
	limiter    *ipLimiter
	ready      func(ctx context.Context) error
	log        *zap.Logger
	prom       *promMetrics
}

// New creates a Server wired to the given application services.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		authSvc:    opts.Auth,
		metrics:    opts.Metrics,
		location:   opts.Location,
		recs:       opts.Recommendations,
		oidcConfig: opts.OIDC,
		ready:      opts.Ready,
		log:        log,
		prom:       newPromMetrics(reg),
	}
	if opts.LoginRatePerMin > 0 {
		s.limiter = newIPLimiter(opts.LoginRatePerMin)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", s.handleHealth)
	api.HandleFunc("/config", s.handleConfig)

	api.Handle("/login", s.rateLimit(http.HandlerFunc(s.handleLogin)))
	api.Handle("/register", s.rateLimit(http.HandlerFunc(s.handleRegister)))
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/sso/login", s.handleSSOLogin)
	api.HandleFunc("/sso/callback", s.handleSSOCallback)

	api.Handle("/metrics", s.authMiddleware(http.HandlerFunc(s.handleMetrics)))
	api.Handle("/recommendation", s.authMiddleware(http.HandlerFunc(s.handleRecommendation)))
	api.Handle("/location/nearest", s.authMiddleware(http.HandlerFunc(s.handleNearest)))
	api.Handle("/location/hospitals", s.authMiddleware(http.HandlerFunc(s.handleHospitals)))

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", api))
	root.Handle("/metrics", s.prom.handler())

	return s.requestID(s.loggingMiddleware(s.prom.instrument(withNoCache(root))))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
