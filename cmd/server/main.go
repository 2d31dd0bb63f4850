// Command server runs the rizz calculator web front-end.
//
// @title Rizz Web API
// @version 1.0
// @description JSON endpoints of the rizz calculator web front-end.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rizzcalc/rizz-web/internal/backend"
	"github.com/rizzcalc/rizz-web/internal/config"
	_ "github.com/rizzcalc/rizz-web/internal/docs"
	"github.com/rizzcalc/rizz-web/internal/handlers"
	"github.com/rizzcalc/rizz-web/internal/intake"
	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/results"
	"github.com/rizzcalc/rizz-web/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Result cache: Redis when configured, otherwise in-process
	var (
		store       results.Store
		redisClient *redis.Client
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		store = results.NewRedisStore(redisClient, cfg.ResultTTL)
		sugar.Infow("Using Redis result cache", "ttl", cfg.ResultTTL)
	} else {
		store = results.NewMemoryStore(cfg.ResultTTL)
		sugar.Infow("Using in-memory result cache", "ttl", cfg.ResultTTL)
	}

	// History: Postgres when configured
	var (
		history logic.HistoryStore = logic.NopHistoryStore{}
		pgPool  *pgxpool.Pool
	)
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		if err := logic.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		pgPool = pool
		history = logic.NewHistoryStore(pool)
		sugar.Info("History enabled")
	}

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logger,
	})

	analysis := logic.NewAnalysisService(client, store, history, intake.NewValidator(cfg.MaxUploadBytes), logger)
	leaderboard := logic.NewLeaderboardService(client, logger)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:      cfg.WorkerCount,
		QueueSize:        cfg.QueueSize,
		JobTTL:           cfg.JobTTL,
		JobTimeout:       cfg.BackendTimeout + 5*time.Second,
		ProgressInterval: cfg.ProgressInterval,
		ProgressStep:     cfg.ProgressStep,
		Analyzer:         analysis,
		Logger:           logger,
	})
	pool.Start(ctx)

	h := handlers.New(handlers.Config{
		Queue:          pool,
		Postgres:       pgPool,
		Redis:          redisClient,
		Logger:         logger,
		Analysis:       analysis,
		Leaderboard:    leaderboard,
		History:        history,
		PublicURL:      cfg.PublicURL,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Routes(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 30*time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("Server starting", "port", cfg.Port, "backend", client.BaseURL(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sugar.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		pool.Stop()
		return err
	})

	return g.Wait()
}
