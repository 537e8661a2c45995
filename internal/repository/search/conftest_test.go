package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/docgate/internal/engine"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, index string, body []byte) (*engine.SearchResponse, error)
}

func (m *mockStore) Search(ctx context.Context, index string, body []byte) (*engine.SearchResponse, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, body)
	}
	return &engine.SearchResponse{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
