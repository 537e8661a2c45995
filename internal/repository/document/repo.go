package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
	"github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/engine"
	"github.com/kailas-cloud/docgate/internal/repository/engineerr"
)

// store is the consumer interface for documents (ISP).
type store interface {
	IndexDocument(ctx context.Context, req *engine.IndexRequest) (*engine.IndexResult, error)
	GetDocument(ctx context.Context, index, id string) (*engine.Hit, error)
	DeleteDocument(ctx context.Context, index, id string) (bool, error)
	DeleteByQuery(ctx context.Context, index string, body []byte) (int64, error)
	Bulk(ctx context.Context, index string, body []byte, refresh string) (*engine.BulkResponse, error)
}

var matchAllBody = []byte(`{"query":{"match_all":{}}}`)

// Repo implements usecase/document.Repository and usecase/bulk.Repository.
type Repo struct {
	store   store
	refresh string
}

// New creates a document repository. refresh is passed to write operations
// ("", "true", "false" or "wait_for").
func New(s store, refresh string) *Repo {
	return &Repo{store: s, refresh: refresh}
}

// Create writes a new document. With an id the write is create-only and an
// existing id yields ErrConflict. Returns the stored id.
func (r *Repo) Create(ctx context.Context, index string, doc *domdoc.Document) (string, error) {
	body, err := doc.Body()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	req := &engine.IndexRequest{Index: index, ID: doc.ID(), Body: body, Refresh: r.refresh}
	if doc.ID() != "" {
		req.OpType = engine.OpTypeCreate
	}

	res, err := r.store.IndexDocument(ctx, req)
	if err != nil {
		if errors.Is(err, engine.ErrVersionConflict) {
			return "", fmt.Errorf("document %q already exists: %w", doc.ID(), domain.ErrConflict)
		}
		return "", fmt.Errorf("create document in %s: %w", index, engineerr.Translate(err))
	}
	return res.ID, nil
}

// Get returns a document with its concurrency token.
func (r *Repo) Get(ctx context.Context, index, id string) (domdoc.Document, error) {
	hit, err := r.store.GetDocument(ctx, index, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document %q: %w", id, engineerr.Translate(err))
	}
	return hydrate(hit)
}

// Replace overwrites a document only if it is still at the expected version.
// A concurrent write or delete yields ErrConflict.
func (r *Repo) Replace(ctx context.Context, index string, doc *domdoc.Document) (domdoc.Version, error) {
	body, err := doc.Body()
	if err != nil {
		return domdoc.Version{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	req := &engine.IndexRequest{Index: index, ID: doc.ID(), Body: body, Refresh: r.refresh}
	if v := doc.Version(); v.Known() {
		req.IfSeqNo, req.IfPrimaryTerm = &v.SeqNo, &v.PrimaryTerm
	}

	res, err := r.store.IndexDocument(ctx, req)
	if err != nil {
		if errors.Is(err, engine.ErrVersionConflict) {
			return domdoc.Version{}, fmt.Errorf("document %q changed concurrently: %w", doc.ID(), domain.ErrConflict)
		}
		return domdoc.Version{}, fmt.Errorf("replace document %q: %w", doc.ID(), engineerr.Translate(err))
	}
	return domdoc.Version{SeqNo: res.SeqNo, PrimaryTerm: res.PrimaryTerm}, nil
}

// Delete removes a document. Returns false when it did not exist.
func (r *Repo) Delete(ctx context.Context, index, id string) (bool, error) {
	found, err := r.store.DeleteDocument(ctx, index, id)
	if err != nil {
		return false, fmt.Errorf("delete document %q: %w", id, engineerr.Translate(err))
	}
	return found, nil
}

// DeleteAll removes every document in the index and returns the count.
func (r *Repo) DeleteAll(ctx context.Context, index string) (int64, error) {
	n, err := r.store.DeleteByQuery(ctx, index, matchAllBody)
	if err != nil {
		return 0, fmt.Errorf("delete all in %s: %w", index, engineerr.Translate(err))
	}
	return n, nil
}

// BulkIndex writes all documents in one bulk request. The request is not
// transactional: each item succeeds or fails on its own.
func (r *Repo) BulkIndex(ctx context.Context, index string, docs []domdoc.Document) (batch.Report, error) {
	body, err := buildBulkBody(docs)
	if err != nil {
		return batch.Report{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	resp, err := r.store.Bulk(ctx, index, body, r.refresh)
	if err != nil {
		return batch.Report{}, fmt.Errorf("bulk into %s: %w", index, engineerr.Translate(err))
	}

	report, err := parseBulkResponse(resp, docs)
	if err != nil {
		return batch.Report{}, domain.NewRejected("bulk_response_mismatch", err.Error())
	}
	return report, nil
}
