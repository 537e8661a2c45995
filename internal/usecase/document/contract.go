package document

import (
	"context"

	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Create(ctx context.Context, index string, doc *domdoc.Document) (id string, err error)
	Get(ctx context.Context, index, id string) (domdoc.Document, error)
	Replace(ctx context.Context, index string, doc *domdoc.Document) (domdoc.Version, error)
	Delete(ctx context.Context, index, id string) (found bool, err error)
	DeleteAll(ctx context.Context, index string) (deleted int64, err error)
}
