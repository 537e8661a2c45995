package bulk

import (
	"context"

	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// BulkIndexer writes many documents in one engine request.
type BulkIndexer interface {
	BulkIndex(ctx context.Context, index string, docs []domdoc.Document) (dombatch.Report, error)
}

// SeedReader loads seed documents from a file.
type SeedReader func(path string) ([]domdoc.Document, error)
