package docgate

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docgate/internal/domain"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// DocumentService manages single documents in the client's index.
type DocumentService struct {
	svc documentUseCase
	obs *observer
}

// Create stores a new document and returns its id. An empty ID lets the
// engine assign one; an existing ID yields ErrConflict.
func (s *DocumentService) Create(ctx context.Context, doc Document) (id string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_create", start, err) }()

	d, err := toInternalDocument(doc)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	created, err := s.svc.Create(ctx, &d)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return created.ID, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_get", start, err) }()

	d, err := s.svc.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(&d)
}

// Update replaces an existing document's body. A missing document yields
// ErrNotFound; a concurrent change yields ErrConflict.
func (s *DocumentService) Update(ctx context.Context, doc Document) (updated Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_update", start, err) }()

	d, err := toInternalDocument(doc)
	if err != nil {
		return Document{}, fmt.Errorf("update document: %w", err)
	}
	out, err := s.svc.Update(ctx, &d)
	if err != nil {
		return Document{}, fmt.Errorf("update document: %w", err)
	}
	return fromInternalDocument(&out)
}

// Delete removes a document and reports whether it existed.
func (s *DocumentService) Delete(ctx context.Context, id string) (deleted bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_delete", start, err) }()

	n, err := s.svc.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return n > 0, nil
}

// ClearAll removes every document. confirm must repeat the index name.
func (s *DocumentService) ClearAll(ctx context.Context, confirm string) (n int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_clear", start, err) }()

	n, err = s.svc.ClearAll(ctx, confirm)
	if err != nil {
		return 0, fmt.Errorf("clear documents: %w", err)
	}
	return n, nil
}

func toInternalDocument(doc Document) (domdoc.Document, error) {
	body := doc.Body
	if len(body) == 0 {
		body = []byte("{}")
	}
	d, err := domdoc.FromJSON(doc.ID, body)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	return d, nil
}

func fromInternalDocument(d *domdoc.Document) (Document, error) {
	body, err := d.Body()
	if err != nil {
		return Document{}, fmt.Errorf("encode document %s: %w", d.ID(), err)
	}
	v := d.Version()
	return Document{
		ID:          d.ID(),
		Body:        body,
		SeqNo:       v.SeqNo,
		PrimaryTerm: v.PrimaryTerm,
	}, nil
}
