package search

import (
	"context"

	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Search(ctx context.Context, index string, payload query.Payload) (result.Result, error)
}
