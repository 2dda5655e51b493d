// cmd/lead-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	awsx "healthquote-funnel/internal/common/aws"
	"healthquote-funnel/internal/common/camunda"
	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/database"
	"healthquote-funnel/internal/common/logger"

	// Lead follow-up workers
	ljr "healthquote-funnel/internal/workers/lead/lead-journal-record"
	ln "healthquote-funnel/internal/workers/lead/lead-notify"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting lead worker...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Zeebe Client with retry ---
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
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.EnsureJournalSchema(ctx); err != nil {
		zapLog.Fatal("journal schema failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init AWS notification clients ---
	notifyCfg := ln.ConfigFromApp(cfg)
	var sesClient awsx.SESService
	var snsClient awsx.SNSService
	if notifyCfg.EmailEnabled || notifyCfg.SMSEnabled {
		awsCfg, err := awsx.LoadConfig(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		if notifyCfg.EmailEnabled {
			sesClient = awsx.NewSESClient(awsCfg)
		}
		if notifyCfg.SMSEnabled {
			snsClient = awsx.NewSNSClient(awsCfg)
		}
		zapLog.Info("AWS clients initialized",
			zap.Bool("ses", notifyCfg.EmailEnabled),
			zap.Bool("sns", notifyCfg.SMSEnabled),
		)
	}

	// --- Register Workers ---
	var workers []*camunda.Worker

	journalCfg := ljr.ConfigFromApp(cfg)
	if journalCfg.Enabled {
		if err := journalCfg.Validate(); err != nil {
			zapLog.Fatal("invalid lead-journal-record config", zap.Error(err))
		}
		handler := ljr.NewHandler(journalCfg, pg.DB, log)
		workers = append(workers, startWorker(zc, ljr.TaskType, config.GetWorkerConfig(cfg, "lead-journal-record"), handler, log))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", ljr.TaskType))
	}

	if notifyCfg.Enabled {
		if err := notifyCfg.Validate(); err != nil {
			zapLog.Fatal("invalid lead-notify config", zap.Error(err))
		}
		handler := ln.NewHandler(notifyCfg, sesClient, snsClient, log)
		workers = append(workers, startWorker(zc, ln.TaskType, config.GetWorkerConfig(cfg, "lead-notify"), handler, log))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", ln.TaskType))
	}
	zapLog.Info("Lead workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := pg.Ping(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		if err := zc.HealthCheck(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	healthSrv := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	if err := zc.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Lead worker stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log logger.Logger) *camunda.Worker {
	return camunda.OpenWorker(client.GetClient(), camunda.WorkerOptions{
		JobType:       taskType,
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       config.GetDuration(wcfg.Timeout),
	}, handler, log)
}

func writeStatus(w http.ResponseWriter, status int, state string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": state,
		"time":   time.Now().Format(time.RFC3339),
	})
}
