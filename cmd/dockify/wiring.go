package main

import (
	"os"

	"go.uber.org/zap"

	"dockify/internal/app"
	"dockify/internal/config"
	"dockify/internal/local"
	"dockify/internal/logging"
	"dockify/internal/platform"
	"dockify/internal/remote"
	"dockify/internal/repository"
)

// client holds the use cases shared by every command.
type client struct {
	cfg    *config.Client
	log    *zap.Logger
	device *platform.Device
	prompt *terminalPrompter

	auth     *app.AuthService
	health   *app.HealthService
	location *app.LocationService
	recs     *app.RecommendationService
}

func newClient(path string, yes, verbose bool) (*client, error) {
	cfg, err := config.LoadClient(path)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	sessions := local.NewSessionStore(cfg.SessionFile)
	prompt := newTerminalPrompter(os.Stdin, os.Stderr, yes)
	device, err := platform.LoadDevice(cfg.DeviceFile, prompt)
	if err != nil {
		return nil, err
	}

	rc := remote.NewClient(remote.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Token:   sessions.Token,
		Logger:  log.Named("remote"),
	})

	authRepo := repository.NewAuthRepository(remote.NewAuthSource(rc), sessions, log.Named("auth"))
	healthRepo := repository.NewHealthRepository(remote.NewHealthSource(rc), local.NewMetricCache(), device.Health(), log.Named("health"))
	locationRepo := repository.NewLocationRepository(remote.NewLocationSource(rc), device.Location(), log.Named("location"))
	recRepo := repository.NewRecommendationRepository(remote.NewRecommendationSource(rc), local.NewRecommendationCache(), log.Named("recommendation"))

	return &client{
		cfg:      cfg,
		log:      log,
		device:   device,
		prompt:   prompt,
		auth:     app.NewAuthService(authRepo),
		health:   app.NewHealthService(healthRepo),
		location: app.NewLocationService(locationRepo),
		recs:     app.NewRecommendationService(recRepo),
	}, nil
}

func (c *client) close() {
	_ = c.log.Sync()
}
