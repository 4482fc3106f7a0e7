package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/config"
	"github.com/kailas-cloud/docsearch/internal/db"
	dbElastic "github.com/kailas-cloud/docsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/docsearch/internal/db/redis"
	"github.com/kailas-cloud/docsearch/internal/metrics"
	indexrepo "github.com/kailas-cloud/docsearch/internal/repository/index"
	"github.com/kailas-cloud/docsearch/internal/seed"
	provisionuc "github.com/kailas-cloud/docsearch/internal/usecase/provision"
)

// newEngine creates the driver selected by search.driver.
func newEngine(cfg config.SearchConfig) (db.Engine, error) {
	switch cfg.Driver {
	case config.DriverElasticsearch:
		s, err := dbElastic.NewStore(dbElastic.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create elasticsearch store: %w", err)
		}
		return s, nil
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown search driver %q", cfg.Driver)
	}
}

// connect creates the instrumented engine and waits until it answers.
func connect(ctx context.Context, cfg config.SearchConfig, logger *zap.Logger) (db.Engine, error) {
	base, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	engine := metrics.InstrumentEngine(base, cfg.Driver)

	if err := engine.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		engine.Close()
		return nil, fmt.Errorf("search engine not ready: %w", err)
	}
	logger.Info("Connected to search engine",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return engine, nil
}

// provisionIndex loads the configured seed set into a freshly created index.
func provisionIndex(ctx context.Context, cfg config.Config, engine db.Engine) (int, error) {
	docs, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return 0, fmt.Errorf("load seed: %w", err)
	}
	svc := provisionuc.New(indexrepo.New(engine), cfg.Search.Index)
	return svc.Provision(ctx, docs)
}
