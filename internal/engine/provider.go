package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docgate/internal/metrics"
)

// Factory constructs a store from config.
type Factory func(cfg Config) (Store, error)

type handle struct {
	store Store
}

// Provider owns the single process-wide engine connection.
// The first Get constructs it; every later caller observes the same instance.
// A failed construction is not cached, so the next Get retries.
// After Close no connection is ever constructed again.
type Provider struct {
	cfg     Config
	factory Factory
	logger  *zap.Logger

	mu      sync.Mutex
	current atomic.Pointer[handle]
	closed  atomic.Bool
}

// NewProvider creates a provider. A nil factory selects NewStore.
func NewProvider(cfg Config, factory Factory, logger *zap.Logger) *Provider {
	if factory == nil {
		factory = NewStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{cfg: cfg, factory: factory, logger: logger}
}

// Get returns the shared connection, constructing it on first use.
func (p *Provider) Get() (Store, error) {
	if h := p.current.Load(); h != nil {
		return h.store, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed.Load() {
		return nil, &Error{Op: OpConnect, Err: ErrClosed}
	}
	if h := p.current.Load(); h != nil {
		return h.store, nil
	}

	store, err := p.factory(p.cfg)
	if err != nil {
		metrics.EngineConnectFailuresTotal.Inc()
		p.logger.Error("engine connection construction failed",
			zap.String("host", p.cfg.Host),
			zap.Int("port", p.cfg.Port),
			zap.Bool("use_tls", p.cfg.UseTLS),
			zap.Bool("verify_tls", p.cfg.VerifyTLS),
			zap.Error(err),
		)
		return nil, &Error{Op: OpConnect, Err: fmt.Errorf("%w: %w", ErrConnection, err)}
	}

	p.current.Store(&handle{store: store})
	p.logger.Info("engine connection constructed",
		zap.String("address", p.cfg.Address()),
		zap.Int("pool_size", p.cfg.PoolSize),
	)
	return store, nil
}

// Conn returns the connection without constructing it.
func (p *Provider) Conn() (Store, error) {
	if h := p.current.Load(); h != nil {
		return h.store, nil
	}
	if p.closed.Load() {
		return nil, ErrClosed
	}
	return nil, ErrNotInitialized
}

// Initialized reports whether a connection has been constructed.
func (p *Provider) Initialized() bool {
	return p.current.Load() != nil
}

// Close releases the connection if one was constructed. Later Get and Conn
// calls fail with ErrClosed.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed.Store(true)
	if h := p.current.Swap(nil); h != nil {
		h.store.Close()
	}
}
