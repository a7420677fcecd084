// cmd/promptcraft/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"promptcraft/internal/common/camunda"
	"promptcraft/internal/common/config"
	"promptcraft/internal/common/database"
	"promptcraft/internal/common/logger"
	"promptcraft/internal/common/observability"
	"promptcraft/internal/history"
	"promptcraft/internal/prompt/intent"
	"promptcraft/internal/prompt/orchestrator"
	"promptcraft/internal/prompt/vagueness"
	"promptcraft/internal/providers"
	"promptcraft/internal/providers/cache"
	"promptcraft/internal/server"
	enhance "promptcraft/internal/workers/prompt/enhance-prompt"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled: %w", operationName, ctx.Err())
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "promptcraft: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).Named(cfg.App.Name)
	defer func() { _ = log.Sync() }()

	log.Info("Starting promptcraft", map[string]interface{}{
		"version": cfg.App.Version,
		"mode":    cfg.Pipeline.Mode,
		"backend": cfg.Providers.Backend,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("OpenTelemetry metrics disabled", map[string]interface{}{"error": err})
	}
	defer func() { _ = obs.Shutdown(context.Background()) }()

	strategy, err := intent.ParseStrategy(cfg.Pipeline.Scoring)
	if err != nil {
		return err
	}

	opts := []orchestrator.Option{
		orchestrator.WithScorer(intent.NewScorer(nil, strategy)),
		orchestrator.WithObservability(obs),
		orchestrator.WithDefaultMode(cfg.Pipeline.Mode),
		orchestrator.WithTimeout(config.GetDuration(cfg.Pipeline.Timeout)),
	}
	var serverOpts []server.Option

	// --- History (PostgreSQL) ---
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(ctx, func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 10, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			return err
		}
		defer pg.Close()

		store := history.NewStore(pg.DB)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, orchestrator.WithRecorder(store))
		serverOpts = append(serverOpts,
			server.WithHistory(store),
			server.WithReadinessCheck("postgres", pg.Ping),
		)
		log.Info("PostgreSQL connected successfully", nil)
	}

	// --- Pipeline ---
	var pipeline *orchestrator.Pipeline
	if cfg.Providers.Credentialed() {
		provider, err := providers.New(ctx, cfg.Providers)
		if err != nil {
			return fmt.Errorf("provider init failed: %w", err)
		}

		var embedder vagueness.Embedder = provider
		if cfg.Database.Redis.Enabled {
			rc := database.NewRedis(cfg.Database.Redis)
			err = retryWithBackoff(ctx, func() error {
				return rc.Ping(ctx)
			}, 10, 2*time.Second, log, "Redis connection")
			if err != nil {
				return err
			}
			defer rc.Close()

			ttl := time.Duration(cfg.Cache.EmbeddingTTL) * time.Second
			embedder = cache.NewRedisEmbedder(provider, rc.Client, ttl, log)
			serverOpts = append(serverOpts, server.WithReadinessCheck("redis", rc.Ping))
			log.Info("Redis embedding cache enabled", nil)
		}

		analyzer := vagueness.NewAnalyzer(embedder, log.Named("vagueness"))
		go func() {
			n := analyzer.Warm(ctx)
			log.Info("Curated embeddings warmed", map[string]interface{}{"count": n})
		}()

		pipeline, err = orchestrator.NewWithBackend(orchestrator.Backend{
			Completer: provider,
			Analyzer:  analyzer,
		}, log, opts...)
		if err != nil {
			return err
		}
		log.Info("Generative backend configured", map[string]interface{}{"provider": provider.Name()})
	} else {
		pipeline = orchestrator.NewUnconfigured(log, opts...)
		log.Warn("No generative backend API key set; backend mode returns a configuration stub", map[string]interface{}{
			"backend": cfg.Providers.Backend,
		})
	}

	var wg sync.WaitGroup

	// --- Zeebe worker ---
	if cfg.Camunda.Enabled && config.IsWorkerEnabled(cfg, enhance.TaskType) {
		var zeebe *camunda.Client
		err = retryWithBackoff(ctx, func() error {
			var err error
			zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
			return err
		}, 10, 2*time.Second, log, "Zeebe client initialization")
		if err != nil {
			return err
		}

		wcfg := config.GetWorkerConfig(cfg, enhance.TaskType)
		handler := enhance.NewHandler(&enhance.Config{
			Timeout: config.GetDuration(wcfg.Timeout),
		}, pipeline, log)

		w := camunda.NewWorker(zeebe.GetClient(), enhance.TaskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler, log)
		w.Start()
		serverOpts = append(serverOpts, server.WithReadinessCheck("zeebe", zeebe.HealthCheck))

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			w.Stop(shutdownCtx)
			if err := zeebe.Close(); err != nil {
				log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
			}
		}()
	}

	// --- HTTP API ---
	if cfg.Server.Enabled {
		serverOpts = append(serverOpts, server.WithRequestTimeout(config.GetDuration(cfg.Server.RequestTimeout)))
		srv := server.New(pipeline, log, serverOpts...)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.ListenAndServe(ctx, cfg.Server.Address); err != nil {
				log.Error("HTTP server failed", map[string]interface{}{"error": err})
				stop()
			}
		}()
	}

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping...", nil)
	wg.Wait()
	log.Info("promptcraft stopped gracefully", nil)
	return nil
}
