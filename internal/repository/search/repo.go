package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
	"github.com/kailas-cloud/docgate/internal/engine"
	"github.com/kailas-cloud/docgate/internal/repository/engineerr"
)

// store is the consumer interface for search (ISP).
type store interface {
	Search(ctx context.Context, index string, body []byte) (*engine.SearchResponse, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs the payload and returns normalized hits in engine order.
func (r *Repo) Search(ctx context.Context, index string, payload query.Payload) (result.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return result.Result{}, fmt.Errorf("marshal query: %w", err)
	}

	resp, err := r.store.Search(ctx, index, body)
	if err != nil {
		return result.Result{}, fmt.Errorf("search %s: %w", index, engineerr.Translate(err))
	}

	hits := make([]result.Hit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		var fields []domdoc.Field
		if len(h.Source) > 0 {
			fields, err = domdoc.ParseFields(h.Source)
			if err != nil {
				return result.Result{}, fmt.Errorf("parse hit %q: %w", h.ID,
					domain.NewRejected("hit_parse", err.Error()))
			}
		}
		doc := domdoc.Reconstruct(h.ID, fields, domdoc.Version{})
		hits = append(hits, result.NewHit(h.ID, h.Index, h.Score, doc))
	}
	return result.New(resp.Hits.Total.Value, hits), nil
}
