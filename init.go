package main

import (
	"context"
	"fmt"

	"github.com/tournevent/shipit/internal/config"
	"github.com/tournevent/shipit/internal/telemetry"
	"github.com/tournevent/shipit/internal/webhook"
	"github.com/tournevent/shipit/pkg/shipit"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version, cfg.Attributes()...)
}

func initShipitClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *shipit.Client {
	return shipit.New(cfg.Shipit(), logger, tracer)
}

// initDispatcher registers the log handler and, when REDIS_URL is set, the
// Redis publisher. The returned func releases the Redis connection.
func initDispatcher(ctx context.Context, cfg *config.Config, logger *otelzap.Logger) (*webhook.Dispatcher, func(), error) {
	dispatcher := webhook.NewDispatcher(logger)
	dispatcher.Register(webhook.NewLogHandler(logger))

	if cfg.RedisURL == "" {
		return dispatcher, func() {}, nil
	}

	rdb, err := webhook.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	dispatcher.Register(webhook.NewRedisPublisher(rdb, cfg.RedisChannel, logger))
	logger.Info("Publishing webhook events to Redis", zap.String("channel", cfg.RedisChannel))

	return dispatcher, func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}, nil
}
