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

	"mediguide/internal/auth"
	"mediguide/internal/chatbot"
	"mediguide/internal/disease"
	"mediguide/internal/events"
	"mediguide/internal/hospitals"
	apphttp "mediguide/internal/http"
	"mediguide/internal/http/router"
	"mediguide/internal/notification"
	"mediguide/internal/searchtrigger"
	"mediguide/platform/cache"
	"mediguide/platform/config"
	"mediguide/platform/db"
	"mediguide/platform/logger"
	"mediguide/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	dashboardCache, closeCache := initCache(ctx, cfg, log)
	defer closeCache()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notification.New(log).RegisterHandlers(eventBus)

	diseaseModule, err := disease.NewModule(cfg, val)
	if err != nil {
		log.Error("failed to load disease catalog", "error", err)
		panic("failed to load disease catalog: " + err.Error())
	}

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			searchtrigger.NewModule(log),
			auth.NewModule(pool, cfg, eventBus, val, log),
			hospitals.NewModule(pool, dashboardCache, cfg, eventBus, val, log),
			diseaseModule,
			chatbot.NewModule(cfg, val, log),
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		eventBus.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

// initCache connects to Redis when REDIS_URL is set. Any failure falls back
// to an uncached dashboard.
func initCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (cache.Cache, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; dashboard caching disabled")
		return cache.Noop{}, func() {}
	}

	var redisCache *cache.RedisCache
	if err := withRetry(ctx, log, "redis connection", 3, time.Second, func() error {
		c, err := cache.NewRedis(ctx, cfg)
		if err != nil {
			return err
		}
		redisCache = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis; dashboard caching disabled", "error", err)
		return cache.Noop{}, func() {}
	}

	log.Info("redis cache connected", "ttl", cfg.GetDashboardCacheTTL().String())
	return redisCache, func() {
		_ = redisCache.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
