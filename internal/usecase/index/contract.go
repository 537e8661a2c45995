package index

import (
	"context"

	"github.com/kailas-cloud/docgate/internal/domain/mapping"
)

// Repository defines the storage contract for index lifecycle.
type Repository interface {
	Create(ctx context.Context, name string, desc *mapping.Descriptor) error
	Exists(ctx context.Context, name string) (bool, error)
	Mapping(ctx context.Context, name string) (mapping.Descriptor, error)
	PutMapping(ctx context.Context, name string, desc *mapping.Descriptor) error
	Delete(ctx context.Context, name string) error
}
