package engine

import (
	"context"
	"time"
)

// Compile-time check: Lazy implements Store.
var _ Store = (*Lazy)(nil)

// Lazy implements Store by borrowing the provider's connection per call.
// Repositories hold a Lazy so the connection is built on first use.
type Lazy struct {
	p *Provider
}

// NewLazy creates a Lazy store over the provider.
func NewLazy(p *Provider) *Lazy {
	return &Lazy{p: p}
}

// Ping checks connectivity, constructing the connection if needed.
func (l *Lazy) Ping(ctx context.Context) error {
	s, err := l.p.Get()
	if err != nil {
		return err
	}
	return s.Ping(ctx) //nolint:wrapcheck // forwarding
}

// WaitForReady forwards to the shared connection.
func (l *Lazy) WaitForReady(ctx context.Context, timeout time.Duration) error {
	s, err := l.p.Get()
	if err != nil {
		return err
	}
	return s.WaitForReady(ctx, timeout) //nolint:wrapcheck // forwarding
}

// Close is a no-op; the provider owns the connection.
func (l *Lazy) Close() {}

func (l *Lazy) CreateIndex(ctx context.Context, name string, body []byte) error {
	s, err := l.p.Get()
	if err != nil {
		return err
	}
	return s.CreateIndex(ctx, name, body) //nolint:wrapcheck // forwarding
}

func (l *Lazy) DeleteIndex(ctx context.Context, name string) error {
	s, err := l.p.Get()
	if err != nil {
		return err
	}
	return s.DeleteIndex(ctx, name) //nolint:wrapcheck // forwarding
}

func (l *Lazy) IndexExists(ctx context.Context, name string) (bool, error) {
	s, err := l.p.Get()
	if err != nil {
		return false, err
	}
	return s.IndexExists(ctx, name) //nolint:wrapcheck // forwarding
}

func (l *Lazy) GetMapping(ctx context.Context, name string) ([]byte, error) {
	s, err := l.p.Get()
	if err != nil {
		return nil, err
	}
	return s.GetMapping(ctx, name) //nolint:wrapcheck // forwarding
}

func (l *Lazy) PutMapping(ctx context.Context, name string, body []byte) (bool, error) {
	s, err := l.p.Get()
	if err != nil {
		return false, err
	}
	return s.PutMapping(ctx, name, body) //nolint:wrapcheck // forwarding
}

func (l *Lazy) IndexDocument(ctx context.Context, req *IndexRequest) (*IndexResult, error) {
	s, err := l.p.Get()
	if err != nil {
		return nil, err
	}
	return s.IndexDocument(ctx, req) //nolint:wrapcheck // forwarding
}

func (l *Lazy) GetDocument(ctx context.Context, index, id string) (*Hit, error) {
	s, err := l.p.Get()
	if err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, index, id) //nolint:wrapcheck // forwarding
}

func (l *Lazy) DeleteDocument(ctx context.Context, index, id string) (bool, error) {
	s, err := l.p.Get()
	if err != nil {
		return false, err
	}
	return s.DeleteDocument(ctx, index, id) //nolint:wrapcheck // forwarding
}

func (l *Lazy) DeleteByQuery(ctx context.Context, index string, body []byte) (int64, error) {
	s, err := l.p.Get()
	if err != nil {
		return 0, err
	}
	return s.DeleteByQuery(ctx, index, body) //nolint:wrapcheck // forwarding
}

func (l *Lazy) Bulk(ctx context.Context, index string, body []byte, refresh string) (*BulkResponse, error) {
	s, err := l.p.Get()
	if err != nil {
		return nil, err
	}
	return s.Bulk(ctx, index, body, refresh) //nolint:wrapcheck // forwarding
}

func (l *Lazy) Search(ctx context.Context, index string, body []byte) (*SearchResponse, error) {
	s, err := l.p.Get()
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, index, body) //nolint:wrapcheck // forwarding
}
