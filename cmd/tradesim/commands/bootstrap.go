package commands

import (
	"context"
	"fmt"

	"github.com/wonny/tradesim/internal/market"
	"github.com/wonny/tradesim/internal/metrics"
	"github.com/wonny/tradesim/internal/strategyconfig"
	"github.com/wonny/tradesim/pkg/config"
	"github.com/wonny/tradesim/pkg/database"
	"github.com/wonny/tradesim/pkg/logger"
	"github.com/wonny/tradesim/pkg/redis"
)

// app holds the wired dependencies shared by commands
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB
	redis  *redis.Client
	repo   *market.PriceRepository
	prices *market.CachedPriceSource
	store  *metrics.Store
	params *strategyconfig.Config
}

// loadConfig loads configuration and applies the global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if strategyFile != "" {
		cfg.Simulation.StrategyFile = strategyFile
	}
	return cfg, nil
}

// bootstrap connects PostgreSQL and Redis and builds the price source,
// metrics store and strategy parameters
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg)

	params, err := strategyconfig.LoadOrDefault(cfg.Simulation.StrategyFile)
	if err != nil {
		return nil, fmt.Errorf("load strategy parameters: %w", err)
	}
	if params.Simulation.InitialCash <= 0 {
		params.Simulation.InitialCash = cfg.Simulation.InitialCash
	}
	for _, w := range strategyconfig.CheckWarnings(params) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	repo := market.NewPriceRepository(db.Pool)
	cache := redis.NewCache(rdb, "tradesim")

	return &app{
		cfg:    cfg,
		log:    log,
		db:     db,
		redis:  rdb,
		repo:   repo,
		prices: market.NewCachedPriceSource(repo, cache, cfg.Redis.PriceCacheTTL, log),
		store:  metrics.NewStore(db, log),
		params: params,
	}, nil
}

// Close releases connections
func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
	a.db.Close()
}

// pipeline builds the metrics pipeline after making sure its table exists.
// It reads the repository directly so stored metrics never come from a
// cached series.
func (a *app) pipeline(ctx context.Context) (*metrics.Pipeline, error) {
	if err := a.store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return metrics.NewPipeline(a.repo, a.store, a.log), nil
}
