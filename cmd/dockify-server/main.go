package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	adapthttp "dockify/internal/adapter/http"
	"dockify/internal/adapter/memory"
	"dockify/internal/adapter/postgres"
	adaptredis "dockify/internal/adapter/redis"
	"dockify/internal/backend"
	"dockify/internal/config"
	"dockify/internal/domain"
	"dockify/internal/logging"
)

// storage is everything the backend services persist through.
type storage interface {
	domain.AccountRepository
	domain.SessionRepository
	domain.MetricRepository
	domain.LocationStore
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Server, log *zap.Logger) error {
	var (
		store  storage
		checks []func(context.Context) error
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer func() { _ = db.Close() }()
		store = db
		checks = append(checks, db.Ping)
		log.Info("using postgres storage")
	} else {
		store = memory.New()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	var recCache domain.RecommendationStore
	if cfg.RedisAddr != "" {
		cache, err := adaptredis.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("redis open: %w", err)
		}
		defer func() { _ = cache.Close() }()
		recCache = cache
		checks = append(checks, cache.Ping)
		log.Info("using redis recommendation cache", zap.String("addr", cfg.RedisAddr))
	} else {
		recCache = memory.New()
	}

	authSvc := backend.NewAuthService(store, store, cfg.SessionTTL)
	locationSvc := backend.NewLocationService(store)

	hospitals, err := config.LoadHospitals(cfg.HospitalsFile)
	if err != nil {
		return err
	}
	if len(hospitals) > 0 {
		existing, err := store.ListHospitals(ctx)
		if err != nil {
			return fmt.Errorf("list hospitals: %w", err)
		}
		if len(existing) == 0 {
			if err := locationSvc.SeedHospitals(ctx, hospitals); err != nil {
				return fmt.Errorf("seed hospitals: %w", err)
			}
			log.Info("seeded hospitals", zap.Int("count", len(hospitals)))
		}
	}

	var oidcCfg adapthttp.OIDCConfig
	if cfg.OIDC.Enabled() {
		oidcCfg, err = adapthttp.NewOIDCConfig(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return fmt.Errorf("oidc discovery: %w", err)
		}
		log.Info("sso enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := adapthttp.New(adapthttp.Options{
		Auth:            authSvc,
		Metrics:         backend.NewMetricsService(store, store, recCache, log.Named("metrics")),
		Location:        locationSvc,
		Recommendations: backend.NewRecommendationService(store, recCache, cfg.RecommendationTTL, log.Named("recommendation")),
		OIDC:            oidcCfg,
		LoginRatePerMin: cfg.LoginRatePerMin,
		Ready: func(ctx context.Context) error {
			for _, check := range checks {
				if err := check(ctx); err != nil {
					return err
				}
			}
			return nil
		},
		Logger:   log.Named("http"),
		Registry: reg,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := authSvc.PruneSessions(ctx); err != nil {
					log.Warn("prune sessions", zap.Error(err))
				}
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
