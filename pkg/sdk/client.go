package docsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/docsearch/internal/db"
	dbElastic "github.com/kailas-cloud/docsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/docsearch/internal/db/redis"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	indexrepo "github.com/kailas-cloud/docsearch/internal/repository/index"
	searchrepo "github.com/kailas-cloud/docsearch/internal/repository/search"
	"github.com/kailas-cloud/docsearch/internal/seed"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	provisionuc "github.com/kailas-cloud/docsearch/internal/usecase/provision"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
)

const (
	driverElasticsearch = "elasticsearch"
	driverRedis         = "redis"

	defaultIndex            = "my_documents"
	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, swapped for fakes in tests.
type provisionUseCase interface {
	Provision(ctx context.Context, docs []document.Document) (int, error)
}

type searchUseCase interface {
	Hits(ctx context.Context, req *request.Request) ([]result.Hit, error)
}

// Client is the docsearch SDK entry point.
type Client struct {
	engine       db.Engine
	index        string
	pageSize     int
	provisionSvc provisionUseCase
	searchSvc    searchUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client and waits for the engine to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		index:            defaultIndex,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docsearch: engine address required (use WithElasticsearch or WithRedis)")
	}
	if !db.IsValidIndexName(cfg.index) {
		return nil, fmt.Errorf("docsearch: invalid index name %q", cfg.index)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	engine, err := createEngine(cfg)
	if err != nil {
		return nil, err
	}

	if err := engine.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		engine.Close()
		return nil, fmt.Errorf("docsearch: engine not ready: %w", err)
	}

	return wireClient(engine, cfg, obs), nil
}

func createEngine(cfg *clientConfig) (db.Engine, error) {
	switch cfg.driver {
	case driverElasticsearch:
		s, err := dbElastic.NewStore(elasticConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("docsearch: create elasticsearch store: %w", err)
		}
		return s, nil
	case driverRedis:
		s, err := dbRedis.NewStore(redisConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("docsearch: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("docsearch: unknown driver %q", cfg.driver)
	}
}

func elasticConfig(cfg *clientConfig) dbElastic.Config {
	return dbElastic.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	}
}

func redisConfig(cfg *clientConfig) dbRedis.Config {
	return dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	}
}

func wireClient(engine db.Engine, cfg *clientConfig, obs *observer) *Client {
	return &Client{
		engine:       engine,
		index:        cfg.index,
		pageSize:     cfg.pageSize,
		provisionSvc: provisionuc.New(indexrepo.New(engine), cfg.index),
		searchSvc:    searchuc.New(searchrepo.New(engine), cfg.index),
		healthSvc:    healthuc.New(engine, engine, cfg.index),
		obs:          obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.engine != nil {
		c.engine.Close()
	}
}

// Index returns the name of the index the client reads and provisions.
func (c *Client) Index() string { return c.index }

// Provision drops and recreates the index, then bulk-loads docs.
// With no docs the built-in seed set is loaded. Returns the number loaded.
func (c *Client) Provision(ctx context.Context, docs []Document) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("provision", start, err, "index", c.index, "documents", n) }()

	domDocs, err := c.toDomain(docs)
	if err != nil {
		return 0, err
	}

	n, err = c.provisionSvc.Provision(ctx, domDocs)
	if err != nil {
		return 0, fmt.Errorf("provision: %w", err)
	}
	return n, nil
}

func (c *Client) toDomain(docs []Document) ([]document.Document, error) {
	if len(docs) == 0 {
		return seed.Default(), nil
	}

	out := make([]document.Document, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		d, err := documentToDomain(docs[i])
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if _, dup := seen[d.ID()]; dup {
			return nil, fmt.Errorf("document %d: %w: duplicate id %q", i, ErrInvalidDocument, d.ID())
		}
		seen[d.ID()] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

// Search runs a keyword query over title and content. contentType filters
// by exact category when non-empty. Results are in relevance order.
func (c *Client) Search(ctx context.Context, query, contentType string) (results []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "content_type", contentType, "results", len(results)) }()

	req, err := request.New(query, contentType, c.pageSize)
	if err != nil {
		return nil, err
	}

	hits, err := c.searchSvc.Hits(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results = make([]Result, len(hits))
	for i := range hits {
		results[i] = resultFromHit(&hits[i])
	}
	return results, nil
}

// DefaultDocuments returns the built-in seed set.
func DefaultDocuments() []Document {
	docs := seed.Default()
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = documentFromDomain(&docs[i])
	}
	return out
}
