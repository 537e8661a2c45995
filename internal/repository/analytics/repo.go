package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
	"github.com/kailas-cloud/docgate/internal/engine"
	"github.com/kailas-cloud/docgate/internal/repository/engineerr"
)

// store is the consumer interface for aggregations (ISP).
type store interface {
	Search(ctx context.Context, index string, body []byte) (*engine.SearchResponse, error)
}

// Repo implements usecase/analytics.Repository.
type Repo struct {
	store store
}

// New creates an analytics repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Facet runs one facet aggregation and returns the raw aggregation results.
func (r *Repo) Facet(ctx context.Context, index string, f domanalytics.Facet) (domanalytics.Aggregations, error) {
	body, err := json.Marshal(f.Payload())
	if err != nil {
		return nil, fmt.Errorf("marshal facet %s: %w", f.Name, err)
	}
	resp, err := r.store.Search(ctx, index, body)
	if err != nil {
		return nil, fmt.Errorf("facet %s: %w", f.Name, engineerr.Translate(err))
	}
	if resp.Aggregations == nil {
		return domanalytics.Aggregations{}, nil
	}
	return resp.Aggregations, nil
}
