// cmd/mentor-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"career-mentor/internal/catalog"
	"career-mentor/internal/common/config"
	"career-mentor/internal/common/database"
	"career-mentor/internal/common/logger"
	"career-mentor/internal/common/observability"
	"career-mentor/internal/engine"
	"career-mentor/internal/server"
	"career-mentor/internal/session"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting mentor server...",
		zap.String("sessionStore", cfg.Engine.SessionStore),
		zap.String("catalogSource", cfg.Engine.CatalogSource),
	)

	obs := observability.New("mentor-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Session store ---
	var store session.Store
	switch cfg.Engine.SessionStore {
	case "redis":
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb.Client, cfg.Engine.SessionTTLDuration())
		zapLog.Info("Redis session store connected")
	default:
		store = session.NewMemoryStore(cfg.Engine.SessionTTLDuration())
		zapLog.Info("In-memory session store initialized")
	}

	// --- Career catalog ---
	var careerCatalog catalog.Catalog
	switch cfg.Engine.CatalogSource {
	case "postgres":
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
		careerCatalog = catalog.NewPostgresCatalog(pg.DB)
		zapLog.Info("PostgreSQL career catalog connected")
	default:
		careerCatalog = catalog.NewStaticCatalog()
		zapLog.Info("Static career catalog initialized")
	}

	eng := engine.New(store, careerCatalog, log, engine.Options{
		HistoryLimit: cfg.Engine.HistoryLimit,
		StoreName:    cfg.Engine.SessionStore,
		Obs:          obs,
	})

	srv := server.New(eng, log, cfg.Server)

	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Mentor server stopped gracefully")
}
