package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// ResultCreated is the outcome reported for a new document.
const ResultCreated = "created"

// Created is the outcome of Create.
type Created struct {
	ID     string
	Result string
}

// Service handles single-document operations against one index.
type Service struct {
	repo  Repository
	index string
}

// New creates a document service bound to index.
func New(repo Repository, index string) *Service {
	return &Service{repo: repo, index: index}
}

// Index returns the index the service writes to.
func (s *Service) Index() string { return s.index }

// Create stores a new document. A caller-supplied id that already exists
// yields ErrConflict and the stored document is left untouched.
func (s *Service) Create(ctx context.Context, doc *domdoc.Document) (Created, error) {
	id, err := s.repo.Create(ctx, s.index, doc)
	if err != nil {
		return Created{}, fmt.Errorf("create document: %w", err)
	}
	return Created{ID: id, Result: ResultCreated}, nil
}

// Get retrieves a document by id.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	if id == "" {
		return domdoc.Document{}, fmt.Errorf("document id is required: %w", domain.ErrInvalidArgument)
	}
	doc, err := s.repo.Get(ctx, s.index, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Update replaces an existing document's body. A missing document yields
// ErrNotFound without writing. The write is conditional on the version read,
// so a concurrent delete or write yields ErrConflict instead of re-creating.
func (s *Service) Update(ctx context.Context, doc *domdoc.Document) (domdoc.Document, error) {
	if doc.ID() == "" {
		return domdoc.Document{}, fmt.Errorf("document id is required: %w", domain.ErrInvalidArgument)
	}

	current, err := s.repo.Get(ctx, s.index, doc.ID())
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("read before update: %w", err)
	}

	next := doc.WithVersion(current.Version())
	v, err := s.repo.Replace(ctx, s.index, &next)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("update document: %w", err)
	}
	return next.WithVersion(v), nil
}

// Delete removes a document and reports how many were removed (0 or 1).
// Deleting something that is not there is not an error.
func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("document id is required: %w", domain.ErrInvalidArgument)
	}
	found, err := s.repo.Delete(ctx, s.index, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("delete document: %w", err)
	}
	if !found {
		return 0, nil
	}
	return 1, nil
}

// ClearAll removes every document in the index. confirm must repeat the
// index name.
func (s *Service) ClearAll(ctx context.Context, confirm string) (int64, error) {
	if confirm != s.index {
		return 0, fmt.Errorf("confirmation %q does not match index %q: %w",
			confirm, s.index, domain.ErrInvalidArgument)
	}
	n, err := s.repo.DeleteAll(ctx, s.index)
	if err != nil {
		return 0, fmt.Errorf("clear index: %w", err)
	}
	return n, nil
}
