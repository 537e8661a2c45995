package docgate

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docgate/internal/domain/search/mode"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
)

// SearchService runs queries.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Query runs a search against the client's index.
func (s *SearchService) Query(ctx context.Context, req SearchRequest) (res SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search", start, err) }()

	r, err := s.svc.Search(ctx, query.Request{
		Mode:   mode.Mode(req.Intent),
		Query:  req.Query,
		Field:  req.Field,
		Fields: req.Fields,
		From:   req.From,
		Size:   req.Size,
	})
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return fromInternalResult(&r)
}

// Fees runs a multi-field text search over the search index. An empty q
// returns every document, paged by from and size.
func (s *SearchService) Fees(ctx context.Context, q string, from, size *int) (res SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search_fees", start, err) }()

	r, err := s.svc.SearchFees(ctx, q, from, size)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search fees: %w", err)
	}
	return fromInternalResult(&r)
}

func fromInternalResult(r *result.Result) (SearchResult, error) {
	hits := r.Hits()
	out := make([]Hit, len(hits))
	for i := range hits {
		h := &hits[i]
		doc := h.Document()
		body, err := doc.Body()
		if err != nil {
			return SearchResult{}, fmt.Errorf("encode hit %s: %w", h.ID(), err)
		}
		out[i] = Hit{ID: h.ID(), Index: h.Index(), Score: h.Score(), Source: body}
	}
	return SearchResult{Total: r.Total(), Hits: out}, nil
}
