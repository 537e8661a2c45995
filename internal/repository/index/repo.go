package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/engine"
	"github.com/kailas-cloud/docgate/internal/repository/engineerr"
)

// store is the consumer interface for index lifecycle (ISP).
type store interface {
	CreateIndex(ctx context.Context, name string, body []byte) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	GetMapping(ctx context.Context, name string) ([]byte, error)
	PutMapping(ctx context.Context, name string, body []byte) (bool, error)
}

// Repo implements usecase/index.Repository.
type Repo struct {
	store store
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create creates the index. An existing index yields ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, name string, desc *mapping.Descriptor) error {
	body, err := json.Marshal(desc.CreateBody())
	if err != nil {
		return fmt.Errorf("marshal index body: %w", err)
	}
	if err := r.store.CreateIndex(ctx, name, body); err != nil {
		if errors.Is(err, engine.ErrIndexExists) {
			return fmt.Errorf("index %q: %w", name, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create index %q: %w", name, engineerr.Translate(err))
	}
	return nil
}

// Exists reports whether the index is present.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check index %q: %w", name, engineerr.Translate(err))
	}
	return ok, nil
}

// Mapping returns the current field mapping of the index.
func (r *Repo) Mapping(ctx context.Context, name string) (mapping.Descriptor, error) {
	raw, err := r.store.GetMapping(ctx, name)
	if err != nil {
		return mapping.Descriptor{}, fmt.Errorf("get mapping of %q: %w", name, engineerr.Translate(err))
	}
	desc, err := mapping.Parse(raw)
	if err != nil {
		return mapping.Descriptor{}, domain.NewRejected("mapping_parse", err.Error())
	}
	return desc, nil
}

// PutMapping applies the descriptor's fields. An unacknowledged update is a rejection.
func (r *Repo) PutMapping(ctx context.Context, name string, desc *mapping.Descriptor) error {
	body, err := json.Marshal(desc.MappingBody())
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	ack, err := r.store.PutMapping(ctx, name, body)
	if err != nil {
		return fmt.Errorf("put mapping of %q: %w", name, engineerr.Translate(err))
	}
	if !ack {
		return fmt.Errorf("put mapping of %q: %w", name,
			domain.NewRejected("not_acknowledged", "mapping update was not acknowledged"))
	}
	return nil
}

// Delete removes the index and all its documents.
func (r *Repo) Delete(ctx context.Context, name string) error {
	if err := r.store.DeleteIndex(ctx, name); err != nil {
		return fmt.Errorf("delete index %q: %w", name, engineerr.Translate(err))
	}
	return nil
}
