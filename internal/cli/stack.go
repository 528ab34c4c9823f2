package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hermine-app/insights/internal/adapters/mongo"
	"github.com/hermine-app/insights/internal/adapters/otel"
	"github.com/hermine-app/insights/internal/adapters/rediscache"
	"github.com/hermine-app/insights/internal/analytics"
	"github.com/hermine-app/insights/internal/infrastructure/config"
	"github.com/hermine-app/insights/internal/logging"
	"github.com/hermine-app/insights/internal/snapshot"
)

// stack wires the store, cache, metrics and service together for the
// commands.
type stack struct {
	cfg     *config.Server
	logger  logging.Logger
	store   *mongo.Store
	service *analytics.Service
	close   []func(context.Context)
}

func buildStack(ctx context.Context) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(zerolog.InfoLevel)

	store, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	s := &stack{cfg: cfg, logger: logger, store: store}
	s.close = append(s.close, func(ctx context.Context) { _ = store.Close(ctx) })

	ttl := time.Duration(cfg.SnapshotTTL) * time.Second
	var provider analytics.SnapshotProvider = store

	if cfg.Redis.Addr != "" {
		cache := rediscache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger.Zerolog())
		if err := cache.Ping(ctx); err != nil {
			logger.Error("redis unreachable, running without cache: " + err.Error())
			_ = cache.Close()
		} else {
			provider = snapshot.NewCachedProvider(provider, cache, ttl, logger)
			s.close = append(s.close, func(context.Context) { _ = cache.Close() })
		}
	}
	provider = snapshot.NewMemoizer(provider, ttl)

	var recorder analytics.PassRecorder
	exporter, err := otel.NewExporter(ctx, otel.LoadConfig())
	if err != nil {
		recorder = otel.NewNoOpExporter()
	} else {
		recorder = exporter
		s.close = append(s.close, func(ctx context.Context) { _ = exporter.Close(ctx) })
	}

	s.service = analytics.NewService(provider, store, logger, recorder)
	return s, nil
}

func (s *stack) shutdown(ctx context.Context) {
	for i := len(s.close) - 1; i >= 0; i-- {
		s.close[i](ctx)
	}
}
