package hireboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/hireboard/internal/db"
	"github.com/kailas-cloud/hireboard/internal/db/memory"
	dbPostgres "github.com/kailas-cloud/hireboard/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/hireboard/internal/db/redis"
	"github.com/kailas-cloud/hireboard/internal/domain"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	"github.com/kailas-cloud/hireboard/internal/logger"
	recordrepo "github.com/kailas-cloud/hireboard/internal/repository/record"
	analyticsuc "github.com/kailas-cloud/hireboard/internal/usecase/analytics"
	collectionuc "github.com/kailas-cloud/hireboard/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/hireboard/internal/usecase/health"
	"github.com/kailas-cloud/hireboard/internal/usecase/listing"
	recorduc "github.com/kailas-cloud/hireboard/internal/usecase/record"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "hireboard:"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrUnknownCollection = domain.ErrUnknownCollection
	ErrInvalidRecord     = domain.ErrInvalidRecord
	ErrInvalidQuery      = domain.ErrInvalidQuery
)

// FieldError reports the field an insert was rejected on.
type FieldError = domain.FieldError

// Client types.
type (
	CollectionSummary = collectionuc.Summary
	ListParams        = listing.Params
	ListResult        = listing.Result
	DeadlineParams    = listing.DeadlineParams
	ReportParams      = analyticsuc.ReportParams
	Report            = analyticsuc.Report
	Dashboard         = analyticsuc.Dashboard
)

// HealthStatus represents the aggregated store health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"/"skipped"
}

// Client runs listings, inserts and reports against a record store.
type Client struct {
	store       db.Store
	collections *collectionuc.Service
	listing     *listing.Service
	records     *recorduc.Service
	analytics   *analyticsuc.Service
	health      *healthuc.Service
	obs         *observer
}

// Open creates a Client and waits for the store to become ready.
func Open(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("hireboard: database not ready: %w", err)
	}
	if err := prepareStore(ctx, cfg, store); err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "":
		return nil, errors.New("hireboard: store required (use WithMemory, WithRedis, WithValkey or WithPostgres)")
	case "memory":
		return memory.NewStore(), nil
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("hireboard: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case "postgres":
		s, err := dbPostgres.NewStore(ctx, dbPostgres.Config{URL: cfg.url})
		if err != nil {
			return nil, fmt.Errorf("hireboard: create postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("hireboard: unknown driver %q", cfg.driver)
	}
}

// prepareStore runs schema setup and seeding against a ready store.
func prepareStore(ctx context.Context, cfg *clientConfig, store db.Store) error {
	if s, ok := store.(interface{ EnsureSchema(context.Context) error }); ok {
		if err := s.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("hireboard: ensure schema: %w", err)
		}
	}
	if cfg.seed {
		if _, err := memory.Seed(ctx, store, memory.Fixtures()); err != nil {
			return fmt.Errorf("hireboard: seed store: %w", err)
		}
	}
	return nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	catalog := domcol.Default()

	var repoOpts []recordrepo.Option
	if cfg.now != nil {
		repoOpts = append(repoOpts, recordrepo.WithClock(cfg.now))
	}
	repo := recordrepo.New(store, repoOpts...)

	listSvc := listing.New(repo, catalog)
	if cfg.maxLimit > 0 {
		listSvc = listSvc.WithLimits(cfg.defaultLimit, cfg.maxLimit)
	}
	recSvc := recorduc.New(repo, catalog)
	anSvc := analyticsuc.New(repo, analyticsuc.DefaultSettings())
	if cfg.now != nil {
		listSvc = listSvc.WithClock(cfg.now)
		recSvc = recSvc.WithClock(cfg.now)
		anSvc = anSvc.WithClock(cfg.now)
	}

	return &Client{
		store:       store,
		collections: collectionuc.New(catalog, store),
		listing:     listSvc,
		records:     recSvc,
		analytics:   anSvc,
		health:      healthuc.New(store, store, domcol.Applications),
		obs:         obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health checks the store and the applications collection.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

// Collections describes every built-in collection with its record count.
func (c *Client) Collections(ctx context.Context) (_ []CollectionSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collections", start, err) }()
	return c.collections.List(c.ctx(ctx))
}

// List filters one collection.
func (c *Client) List(ctx context.Context, collection string, p ListParams) (_ ListResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list", start, err) }()
	return c.listing.List(c.ctx(ctx), collection, p)
}

// Get returns one record or ErrNotFound.
func (c *Client) Get(ctx context.Context, collection, id string) (_ Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()
	return c.listing.Get(c.ctx(ctx), collection, id)
}

// Insert validates fields against the collection, fills defaults and
// stores the record with a fresh id.
func (c *Client) Insert(ctx context.Context, collection string, fields map[string]any) (_ Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("insert", start, err) }()
	return c.records.Insert(c.ctx(ctx), collection, fields)
}

// Deadlines ranks a collection's records by its deadline field.
func (c *Client) Deadlines(ctx context.Context, collection string, p DeadlineParams) (_ []Deadline, err error) {
	start := time.Now()
	defer func() { c.obs.observe("deadlines", start, err) }()
	return c.listing.Deadlines(c.ctx(ctx), collection, p)
}

// Report computes the applications analytics report.
func (c *Client) Report(ctx context.Context, p ReportParams) (_ Report, err error) {
	start := time.Now()
	defer func() { c.obs.observe("report", start, err) }()
	return c.analytics.Report(c.ctx(ctx), p)
}

// Dashboard computes the applications summary as of asOf (zero = now).
func (c *Client) Dashboard(ctx context.Context, asOf time.Time) (_ Dashboard, err error) {
	start := time.Now()
	defer func() { c.obs.observe("dashboard", start, err) }()
	return c.analytics.Dashboard(c.ctx(ctx), asOf)
}

// ctx attaches the client logger so repository warnings reach it.
func (c *Client) ctx(ctx context.Context) context.Context {
	if c.obs == nil || c.obs.logger == nil {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.obs.logger)
}
