package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain/search/mode"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
)

// DefaultExactField is the field an exact query targets when none is given.
const DefaultExactField = "name"

// Service orchestrates search across the default and fee indexes.
type Service struct {
	repo        Repository
	index       string
	feesIndex   string
	exactField  string
	defaultSize int
}

// New creates a search service. feesIndex backs SearchFees; an empty value
// falls back to index.
func New(repo Repository, index, feesIndex string) *Service {
	if feesIndex == "" {
		feesIndex = index
	}
	return &Service{
		repo:        repo,
		index:       index,
		feesIndex:   feesIndex,
		exactField:  DefaultExactField,
		defaultSize: query.DefaultSize,
	}
}

// WithExactField configures the default exact-match field.
func (s *Service) WithExactField(f string) *Service {
	if f != "" {
		s.exactField = f
	}
	return s
}

// WithDefaultSize configures the page size used when the caller gives none.
func (s *Service) WithDefaultSize(n int) *Service {
	if n > 0 {
		s.defaultSize = n
	}
	return s
}

// Search runs a query against the default index.
func (s *Service) Search(ctx context.Context, req query.Request) (result.Result, error) {
	return s.run(ctx, s.index, req)
}

// SearchFees runs a multi-match over the fee index. An empty q returns
// every fee, paged.
func (s *Service) SearchFees(ctx context.Context, q string, from, size *int) (result.Result, error) {
	return s.run(ctx, s.feesIndex, query.Request{
		Mode:  mode.MultiMatch,
		Query: q,
		From:  from,
		Size:  size,
	})
}

func (s *Service) run(ctx context.Context, index string, req query.Request) (result.Result, error) {
	m, err := mode.Parse(string(req.Mode))
	if err != nil {
		return result.Result{}, fmt.Errorf("build query: %w", err)
	}
	req.Mode = m
	if req.Mode == mode.Exact && req.Field == "" {
		req.Field = s.exactField
	}
	if req.Size == nil {
		size := s.defaultSize
		req.Size = &size
	}

	payload, err := query.Build(req)
	if err != nil {
		return result.Result{}, fmt.Errorf("build query: %w", err)
	}

	res, err := s.repo.Search(ctx, index, payload)
	if err != nil {
		return result.Result{}, fmt.Errorf("search: %w", err)
	}
	return res, nil
}
