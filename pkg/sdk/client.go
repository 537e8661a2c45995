package docgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
	"github.com/kailas-cloud/docgate/internal/engine"
	analyticsrepo "github.com/kailas-cloud/docgate/internal/repository/analytics"
	documentrepo "github.com/kailas-cloud/docgate/internal/repository/document"
	indexrepo "github.com/kailas-cloud/docgate/internal/repository/index"
	searchrepo "github.com/kailas-cloud/docgate/internal/repository/search"
	analyticsuc "github.com/kailas-cloud/docgate/internal/usecase/analytics"
	bulkuc "github.com/kailas-cloud/docgate/internal/usecase/bulk"
	documentuc "github.com/kailas-cloud/docgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docgate/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docgate/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type documentUseCase interface {
	Create(ctx context.Context, doc *domdoc.Document) (documentuc.Created, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Update(ctx context.Context, doc *domdoc.Document) (domdoc.Document, error)
	Delete(ctx context.Context, id string) (int, error)
	ClearAll(ctx context.Context, confirm string) (int64, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req query.Request) (result.Result, error)
	SearchFees(ctx context.Context, q string, from, size *int) (result.Result, error)
}

type bulkUseCase interface {
	Load(ctx context.Context, docs []domdoc.Document) (dombatch.Report, error)
	LoadSeed(ctx context.Context) (dombatch.Report, error)
}

type analyticsUseCase interface {
	Dashboard(ctx context.Context) (domanalytics.Dashboard, error)
}

type indexUseCase interface {
	Ensure(ctx context.Context, name string, desc mapping.Descriptor) (indexuc.Status, error)
	Mapping(ctx context.Context, name string) (mapping.Descriptor, error)
	UpdateMapping(ctx context.Context, name string, desc mapping.Descriptor) error
	Delete(ctx context.Context, name, confirm string) error
}

// Client is the docgate SDK entry point.
type Client struct {
	provider     *engine.Provider
	store        *engine.Lazy
	docSvc       documentUseCase
	searchSvc    searchUseCase
	bulkSvc      bulkUseCase
	analyticsSvc analyticsUseCase
	indexSvc     indexUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a docgate Client and waits for the engine to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.host == "" {
		return nil, errors.New("docgate: engine host required (use WithEngine)")
	}
	if cfg.index == "" {
		return nil, errors.New("docgate: index required (use WithIndex)")
	}

	engineCfg := engine.Config{
		Host:           cfg.host,
		Port:           cfg.port,
		Username:       cfg.username,
		Password:       cfg.password,
		UseTLS:         cfg.useTLS,
		VerifyTLS:      cfg.verifyTLS,
		PoolSize:       cfg.poolSize,
		RequestTimeout: cfg.timeout,
	}
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("docgate: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg, cfg.index)
	if err != nil {
		return nil, err
	}

	provider := engine.NewProvider(engineCfg, nil, nil)
	store := engine.NewLazy(provider)
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		provider.Close()
		return nil, fmt.Errorf("docgate: engine not ready: %w", err)
	}

	c := wireClient(store, cfg, obs)
	c.provider = provider
	c.healthSvc = healthuc.New(store, provider)
	return c, nil
}

func wireClient(store *engine.Lazy, cfg *clientConfig, obs *observer) *Client {
	searchIndex := cfg.searchIndex
	if searchIndex == "" {
		searchIndex = cfg.index
	}
	analyticsIndex := cfg.analyticsIndex
	if analyticsIndex == "" {
		analyticsIndex = cfg.index
	}

	docRepo := documentrepo.New(store, cfg.refresh)

	bulkSvc := bulkuc.New(docRepo, cfg.index).WithSeedFile(cfg.seedFile)
	if cfg.maxBatchSize > 0 {
		bulkSvc = bulkSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}

	return &Client{
		store:     store,
		docSvc:    documentuc.New(docRepo, cfg.index),
		searchSvc: searchuc.New(searchrepo.New(store), cfg.index, searchIndex).WithExactField(cfg.exactField),
		bulkSvc:   bulkSvc,
		analyticsSvc: analyticsuc.New(analyticsrepo.New(store), analyticsIndex,
			domanalytics.DefaultFields()),
		indexSvc:  indexuc.New(indexrepo.New(store)),
		healthSvc: healthuc.New(store, nil),
		obs:       obs,
	}
}

// Close releases the engine connection.
func (c *Client) Close() {
	if c.provider != nil {
		c.provider.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Documents returns the single-document service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{svc: c.docSvc, obs: c.obs}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Bulk returns the bulk ingestion service.
func (c *Client) Bulk() *BulkService {
	return &BulkService{svc: c.bulkSvc, obs: c.obs}
}

// Analytics returns the dashboard service.
func (c *Client) Analytics() *AnalyticsService {
	return &AnalyticsService{svc: c.analyticsSvc, obs: c.obs}
}

// Indexes returns the index management service.
func (c *Client) Indexes() *IndexService {
	return &IndexService{svc: c.indexSvc, obs: c.obs}
}
