// cmd/funnel-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"healthquote-funnel/internal/common/camunda"
	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/database"
	"healthquote-funnel/internal/common/leadservice"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/observability"
	"healthquote-funnel/internal/content"
	"healthquote-funnel/internal/geo"
	"healthquote-funnel/internal/server"
	"healthquote-funnel/internal/session"

	// API endpoints
	cs "healthquote-funnel/internal/endpoints/content/content-search"
	ac "healthquote-funnel/internal/endpoints/lead/arrival-create"
	ls "healthquote-funnel/internal/endpoints/lead/lead-submit"
	of "healthquote-funnel/internal/endpoints/lead/offers-fetch"
	gl "healthquote-funnel/internal/endpoints/location/geocode-lookup"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting funnel server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("leadServiceMode", cfg.LeadService.Mode),
	)

	obs := observability.New(observability.Options{
		ServiceName:    "funnel-server",
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		Logger:         log,
	})
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var readiness []server.ReadinessCheck

	// --- Session cache: Redis when configured, process memory otherwise ---
	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second
	var cache session.Cache = session.NewMemoryCache(sessionTTL)
	var geoCache redis.Cmdable
	if cfg.Session.Store == "redis" {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		zapLog.Info("Redis connected successfully")

		cache = session.NewRedisCache(rc.Client, sessionTTL)
		geoCache = rc.Client
		readiness = append(readiness, server.ReadinessCheck{Name: "redis", Check: rc.Ping})
	}

	// --- Lead service ---
	leads := leadservice.NewClient(leadservice.Config{
		BaseURL:         cfg.LeadService.BaseURL,
		SiteID:          cfg.LeadService.SiteID,
		DefaultSourceID: cfg.LeadService.DefaultSourceID,
		Mode:            cfg.LeadService.Mode,
		Timeout:         config.GetDuration(cfg.LeadService.Timeout),
		MaxRetries:      cfg.LeadService.MaxRetries,
	}, log, obs.Tracer())

	// --- Follow-up process (optional) ---
	var processes ls.ProcessStarter
	if cfg.Camunda.Enabled {
		var zc *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			zc, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				ConnectionTimeout:      10 * time.Second,
				RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 5, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			// submissions still go through; the follow-up is best effort
			zapLog.Error("zeebe unavailable, lead follow-up disabled", zap.Error(err))
		} else {
			defer zc.Close()
			processes = zc
			readiness = append(readiness, server.ReadinessCheck{Name: "zeebe", Check: zc.HealthCheck})
			zapLog.Info("Zeebe client connected successfully")
		}
	}

	// --- Content ---
	store := content.NewStore(cfg.Content.PagesDir, log)
	if err := store.Load(); err != nil {
		zapLog.Fatal("content load failed", zap.Error(err))
	}
	zapLog.Info("Content loaded", zap.Int("pages", store.Len()))

	nav, err := content.LoadNavigation(filepath.Join(cfg.Content.DataDir, "navigation.json"))
	if err != nil {
		zapLog.Warn("navigation unavailable, using defaults", zap.Error(err))
		nav = content.DefaultNavigation()
	}

	var primary content.Searcher = content.NewMemorySearcher(store)
	var fallback content.Searcher
	if cfg.Database.Elasticsearch.Enabled {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err == nil {
			err = esClient.Ping(ctx)
		}
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, searching loaded pages", zap.Error(err))
		} else {
			fallback = primary
			primary = content.NewElasticSearcher(esClient.Client, cfg.Database.Elasticsearch.PagesIndex, log)
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- API endpoints ---
	arrivals, err := ac.NewHandler(ac.HandlerOptions{AppConfig: cfg, Client: leads, Logger: log})
	if err != nil {
		zapLog.Fatal("failed to create arrival-create handler", zap.Error(err))
	}

	submit, err := ls.NewHandler(ls.HandlerOptions{
		AppConfig:     cfg,
		Client:        leads,
		Processes:     processes,
		Observability: obs,
		Logger:        log,
	})
	if err != nil {
		zapLog.Fatal("failed to create lead-submit handler", zap.Error(err))
	}

	offers, err := of.NewHandler(of.HandlerOptions{AppConfig: cfg, Client: leads, Logger: log})
	if err != nil {
		zapLog.Fatal("failed to create offers-fetch handler", zap.Error(err))
	}

	geocode, err := gl.NewHandler(gl.HandlerOptions{
		AppConfig: cfg,
		Locator:   geo.NewService(geoCache, 24*time.Hour, log),
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create geocode-lookup handler", zap.Error(err))
	}

	search, err := cs.NewHandler(cs.HandlerOptions{
		AppConfig: cfg,
		Primary:   primary,
		Fallback:  fallback,
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create content-search handler", zap.Error(err))
	}

	deps := server.Dependencies{
		Config:        cfg,
		Logger:        log,
		Cache:         cache,
		Content:       store,
		Navigation:    nav,
		Observability: obs,
		Search:        search,
		Readiness:     readiness,
	}
	if arrivals.IsEnabled() {
		deps.Arrivals = arrivals
	}
	if submit.IsEnabled() {
		deps.Leads = submit
	}
	if offers.IsEnabled() {
		deps.Offers = offers
	}
	if geocode.IsEnabled() {
		deps.Geocode = geocode
	}
	if !search.IsEnabled() {
		deps.Search = nil
	}

	srv, err := server.New(deps)
	if err != nil {
		zapLog.Fatal("server setup failed", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("http server failed", zap.Error(err))
	}
	zapLog.Info("Funnel server stopped gracefully")
}
