package ncosearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kailas-cloud/ncosearch/internal/db"
	"github.com/kailas-cloud/ncosearch/internal/db/memory"
	dbRedis "github.com/kailas-cloud/ncosearch/internal/db/redis"
	"github.com/kailas-cloud/ncosearch/internal/db/sqlite"
	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
	auditrepo "github.com/kailas-cloud/ncosearch/internal/repository/audit"
	recordrepo "github.com/kailas-cloud/ncosearch/internal/repository/record"
	synonymrepo "github.com/kailas-cloud/ncosearch/internal/repository/synonym"
	audituc "github.com/kailas-cloud/ncosearch/internal/usecase/audit"
	healthuc "github.com/kailas-cloud/ncosearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/ncosearch/internal/usecase/index"
	ingestuc "github.com/kailas-cloud/ncosearch/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/ncosearch/internal/usecase/search"
	synonymuc "github.com/kailas-cloud/ncosearch/internal/usecase/synonym"
)

const (
	driverMemory = "memory"
	driverSQLite = "sqlite"
	driverValkey = "valkey"
	driverRedis  = "redis"

	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, swapped for mocks in tests.
type ingestUseCase interface {
	Ingest(ctx context.Context, src ingestuc.Source) (int, error)
}

type indexUseCase interface {
	Build(ctx context.Context) (int, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string, topK int) (searchuc.Response, error)
}

type synonymUseCase interface {
	Add(ctx context.Context, anchor, term string) (domsyn.Entry, error)
	List(ctx context.Context) ([]domsyn.Entry, error)
	Delete(ctx context.Context, id string) error
}

type auditUseCase interface {
	List(ctx context.Context, limit *int) ([]domaudit.Entry, error)
}

// Client is the ncosearch SDK entry point.
type Client struct {
	store     db.Store
	ingestSvc ingestUseCase
	indexSvc  indexUseCase
	searchSvc searchUseCase
	synSvc    synonymUseCase
	auditSvc  auditUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. Without a storage option the client keeps its state
// in memory. The provided context is used for the initial readiness check.
// If the store already holds a vocabulary, the index is built from it.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:        driverMemory,
		workers:       domidx.DefaultWorkers,
		bidirectional: true,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ncosearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c := wireClient(store, cfg, obs)
	if _, err := c.indexSvc.Build(ctx); err != nil && !errors.Is(err, ErrEmptyVocabulary) {
		store.Close()
		return nil, fmt.Errorf("ncosearch: initial index build: %w", err)
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverSQLite:
		if cfg.sqlitePath == "" {
			return nil, errors.New("ncosearch: sqlite path required")
		}
		s, err := sqlite.NewStore(cfg.sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("ncosearch: create sqlite store: %w", err)
		}
		return s, nil
	case driverValkey, driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("ncosearch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("ncosearch: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	records := recordrepo.New(store)
	active := domidx.NewActive()

	synSvc := synonymuc.New(synonymrepo.New(store), nil)
	auditSvc := audituc.New(auditrepo.New(store), 0)

	searchCfg := searchuc.DefaultConfig()
	searchCfg.Bidirectional = cfg.bidirectional
	if cfg.maxTopK > 0 {
		searchCfg.MaxTopK = cfg.maxTopK
		if searchCfg.DefaultTopK > cfg.maxTopK {
			searchCfg.DefaultTopK = cfg.maxTopK
		}
	}

	return &Client{
		store:     store,
		ingestSvc: ingestuc.New(records, nil),
		indexSvc:  indexuc.New(records, active, cfg.workers, nil),
		searchSvc: searchuc.New(synSvc, auditSvc, active, searchCfg, nil),
		synSvc:    synSvc,
		auditSvc:  auditSvc,
		healthSvc: healthuc.New(store, active),
		obs:       obs,
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
	call := c.obs.begin(opPing)
	defer func() { call.end(err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Ingest replaces the vocabulary with the records read from r. The format is
// taken from name's extension (.csv, .json, .xlsx). The index is not rebuilt.
func (c *Client) Ingest(ctx context.Context, name string, r io.Reader) (n int, err error) {
	call := c.obs.begin(opIngest)
	defer func() { call.end(err) }()

	n, err = c.ingestSvc.Ingest(ctx, ingestuc.Source{Name: name, Body: r})
	if err != nil {
		return 0, fmt.Errorf("ingest: %w", err)
	}
	call.records = n
	return n, nil
}

// IngestFile ingests a vocabulary file from disk.
func (c *Client) IngestFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("open vocabulary: %w", err)
	}
	defer func() { _ = f.Close() }()
	return c.Ingest(ctx, filepath.Base(path), f)
}

// BuildIndex rebuilds the index from the most recently ingested vocabulary
// and publishes it atomically.
func (c *Client) BuildIndex(ctx context.Context) (n int, err error) {
	call := c.obs.begin(opBuildIndex)
	defer func() { call.end(err) }()

	n, err = c.indexSvc.Build(ctx)
	if err != nil {
		return 0, fmt.Errorf("build index: %w", err)
	}
	call.records = n
	return n, nil
}

// Search ranks vocabulary entries for query and records the search in the audit trail.
func (c *Client) Search(ctx context.Context, query string, topK int) (resp SearchResponse, err error) {
	call := c.obs.begin(opSearch)
	defer func() { call.end(err) }()

	r, err := c.searchSvc.Search(ctx, query, topK)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	call.results, call.expanded = len(r.Results), r.Expanded

	results := make([]Result, len(r.Results))
	for i := range r.Results {
		h := &r.Results[i]
		results[i] = Result{
			Code:        h.Code(),
			Title:       h.Title(),
			Description: h.Description(),
			Path:        h.Path(),
			Confidence:  h.Confidence(),
		}
	}
	return SearchResponse{Message: r.Message, Expanded: r.Expanded, Results: results}, nil
}

// AddSynonym stores a new anchor -> term mapping.
func (c *Client) AddSynonym(ctx context.Context, anchor, term string) (s Synonym, err error) {
	call := c.obs.begin(opAddSynonym)
	defer func() { call.end(err) }()

	e, err := c.synSvc.Add(ctx, anchor, term)
	if err != nil {
		return Synonym{}, fmt.Errorf("add synonym: %w", err)
	}
	return synonymFromDomain(&e), nil
}

// Synonyms lists synonym entries in creation order.
func (c *Client) Synonyms(ctx context.Context) (out []Synonym, err error) {
	call := c.obs.begin(opListSynonyms)
	defer func() { call.end(err) }()

	entries, err := c.synSvc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list synonyms: %w", err)
	}
	out = make([]Synonym, len(entries))
	for i := range entries {
		out[i] = synonymFromDomain(&entries[i])
	}
	return out, nil
}

// DeleteSynonym removes a synonym entry. Unknown ids are ignored.
func (c *Client) DeleteSynonym(ctx context.Context, id string) (err error) {
	call := c.obs.begin(opDeleteSynonym)
	defer func() { call.end(err) }()

	if err = c.synSvc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete synonym: %w", err)
	}
	return nil
}

// Audit returns the newest limit audit entries in chronological order.
// limit 0 returns the whole trail.
func (c *Client) Audit(ctx context.Context, limit int) (out []AuditEntry, err error) {
	call := c.obs.begin(opAudit)
	defer func() { call.end(err) }()

	if limit < 0 {
		return nil, fmt.Errorf("audit: %w: limit must be non-negative", ErrInvalidRequest)
	}
	entries, err := c.auditSvc.List(ctx, &limit)
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}
	out = make([]AuditEntry, len(entries))
	for i := range entries {
		out[i] = auditFromDomain(&entries[i])
	}
	return out, nil
}

func synonymFromDomain(e *domsyn.Entry) Synonym {
	return Synonym{
		ID:        e.ID(),
		For:       e.For(),
		Term:      e.Term(),
		CreatedAt: time.UnixMilli(e.CreatedAt()).UTC(),
	}
}

func auditFromDomain(e *domaudit.Entry) AuditEntry {
	hits := make([]AuditHit, len(e.Hits()))
	for i, h := range e.Hits() {
		hits[i] = AuditHit{Code: h.Code, Title: h.Title, Confidence: h.Confidence}
	}
	return AuditEntry{
		ID:       e.ID(),
		At:       time.UnixMilli(e.At()).UTC(),
		Query:    e.Query(),
		Expanded: e.Expanded(),
		TopK:     e.TopK(),
		Results:  hits,
	}
}
