package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
)

// Status is the outcome of Ensure.
type Status string

// Ensure outcomes.
const (
	StatusCreated       Status = "created"
	StatusAlreadyExists Status = "already_exists"
)

// DefaultShards is used when neither the caller nor config sets a shard count.
const DefaultShards = 1

// Service manages index creation, mappings and removal.
type Service struct {
	repo          Repository
	defaultShards int
}

// New creates an index service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultShards: DefaultShards}
}

// WithDefaultShards configures the shard count applied when a descriptor has none.
func (s *Service) WithDefaultShards(n int) *Service {
	if n > 0 {
		s.defaultShards = n
	}
	return s
}

// Ensure creates the index if it does not exist. An existing index is
// reported as StatusAlreadyExists, not as an error.
func (s *Service) Ensure(ctx context.Context, name string, desc mapping.Descriptor) (Status, error) {
	if err := mapping.ValidateIndexName(name); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	if desc.Shards == 0 {
		desc.Shards = s.defaultShards
	}
	if err := desc.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	if err := s.repo.Create(ctx, name, &desc); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return StatusAlreadyExists, nil
		}
		return "", fmt.Errorf("create index: %w", err)
	}
	return StatusCreated, nil
}

// Mapping returns the current field mapping of an index.
func (s *Service) Mapping(ctx context.Context, name string) (mapping.Descriptor, error) {
	if err := mapping.ValidateIndexName(name); err != nil {
		return mapping.Descriptor{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	desc, err := s.repo.Mapping(ctx, name)
	if err != nil {
		return mapping.Descriptor{}, fmt.Errorf("get mapping: %w", err)
	}
	return desc, nil
}

// UpdateMapping applies an additive mapping change. Changing the type of an
// existing field yields ErrInvalidArgument without calling the engine.
func (s *Service) UpdateMapping(ctx context.Context, name string, desc mapping.Descriptor) error {
	if err := mapping.ValidateIndexName(name); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	if len(desc.Fields) == 0 {
		return fmt.Errorf("mapping update needs at least one field: %w", domain.ErrInvalidArgument)
	}
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	current, err := s.repo.Mapping(ctx, name)
	if err != nil {
		return fmt.Errorf("get current mapping: %w", err)
	}
	if err := mapping.CheckAdditive(current, desc); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	if err := s.repo.PutMapping(ctx, name, &desc); err != nil {
		return fmt.Errorf("update mapping: %w", err)
	}
	return nil
}

// Delete removes an index. confirm must repeat the index name.
func (s *Service) Delete(ctx context.Context, name, confirm string) error {
	if err := mapping.ValidateIndexName(name); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	if confirm != name {
		return fmt.Errorf("confirmation %q does not match index %q: %w", confirm, name, domain.ErrInvalidArgument)
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	return nil
}

// Validate checks a document against the index mapping without writing it.
func (s *Service) Validate(ctx context.Context, name string, doc domdoc.Document) error {
	desc, err := s.Mapping(ctx, name)
	if err != nil {
		return err
	}
	if err := desc.Check(doc); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	return nil
}
