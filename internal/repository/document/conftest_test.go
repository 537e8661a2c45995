package document

import (
	"context"
	"testing"

	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/engine"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	indexFn         func(ctx context.Context, req *engine.IndexRequest) (*engine.IndexResult, error)
	getFn           func(ctx context.Context, index, id string) (*engine.Hit, error)
	deleteFn        func(ctx context.Context, index, id string) (bool, error)
	deleteByQueryFn func(ctx context.Context, index string, body []byte) (int64, error)
	bulkFn          func(ctx context.Context, index string, body []byte, refresh string) (*engine.BulkResponse, error)
}

func (m *mockStore) IndexDocument(ctx context.Context, req *engine.IndexRequest) (*engine.IndexResult, error) {
	if m.indexFn != nil {
		return m.indexFn(ctx, req)
	}
	return &engine.IndexResult{ID: req.ID, Result: "created"}, nil
}

func (m *mockStore) GetDocument(ctx context.Context, index, id string) (*engine.Hit, error) {
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return nil, &engine.Error{Op: engine.OpGet, Status: 404, Err: engine.ErrDocumentNotFound}
}

func (m *mockStore) DeleteDocument(ctx context.Context, index, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id)
	}
	return false, nil
}

func (m *mockStore) DeleteByQuery(ctx context.Context, index string, body []byte) (int64, error) {
	if m.deleteByQueryFn != nil {
		return m.deleteByQueryFn(ctx, index, body)
	}
	return 0, nil
}

func (m *mockStore) Bulk(ctx context.Context, index string, body []byte, refresh string) (*engine.BulkResponse, error) {
	if m.bulkFn != nil {
		return m.bulkFn(ctx, index, body, refresh)
	}
	return &engine.BulkResponse{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "wait_for")
	return repo, ms
}

func testDocument(t *testing.T, id string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.FromJSON(id, []byte(`{"name":"Visa Classic","entity_name":"Acme Bank","fee":2.5}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	return doc
}
