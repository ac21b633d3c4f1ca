// cmd/basket/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"basketservice/internal/basket"
	"basketservice/internal/config"
	"basketservice/internal/observability"
	"basketservice/internal/server"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "basket service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:          observability.LogLevel(cfg.LogLevel),
		Format:         observability.LogFormat(cfg.LogFormat),
		Output:         os.Stdout,
		AddSource:      cfg.IsProduction(),
		ServiceName:    "basket",
		ServiceVersion: cfg.Version,
	})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, logger, observability.TracingConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: "basket",
		Environment: cfg.AppEnv,
		Version:     cfg.Version,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		logger.Warn("otel tracing disabled", "error", err)
	}
	defer shutdownTracing(context.Background())

	shutdownMetrics, err := observability.InitMetrics(ctx, logger, observability.MetricsConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: "basket",
		Environment: cfg.AppEnv,
		Version:     cfg.Version,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		Interval:    cfg.OTelMetricsInterval,
	})
	if err != nil {
		logger.Warn("otel metrics disabled", "error", err)
	}
	defer shutdownMetrics(context.Background())

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics, err := observability.NewBasketMetrics(otel.Meter("basketservice/basket"))
	if err != nil {
		return err
	}

	svc := basket.NewService(store, logger, metrics)
	handler := basket.NewHandler(svc, logger)
	router := server.NewRouter(handler, logger, server.Options{
		RateLimit: cfg.RateLimitRPS,
		RateBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting basket service", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down basket service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (basket.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		store := basket.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return basket.NewRedisStore(client, cfg.RedisTTL), func() { client.Close() }, nil

	default:
		logger.Warn("using in-memory basket store; baskets are lost on restart")
		return basket.NewMemoryStore(), func() {}, nil
	}
}
