package index

import (
	"context"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createFn     func(ctx context.Context, name string, body []byte) error
	deleteFn     func(ctx context.Context, name string) error
	existsFn     func(ctx context.Context, name string) (bool, error)
	getMappingFn func(ctx context.Context, name string) ([]byte, error)
	putMappingFn func(ctx context.Context, name string, body []byte) (bool, error)
}

func (m *mockStore) CreateIndex(ctx context.Context, name string, body []byte) error {
	if m.createFn != nil {
		return m.createFn(ctx, name, body)
	}
	return nil
}

func (m *mockStore) DeleteIndex(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) GetMapping(ctx context.Context, name string) ([]byte, error) {
	if m.getMappingFn != nil {
		return m.getMappingFn(ctx, name)
	}
	return []byte(`{}`), nil
}

func (m *mockStore) PutMapping(ctx context.Context, name string, body []byte) (bool, error) {
	if m.putMappingFn != nil {
		return m.putMappingFn(ctx, name, body)
	}
	return true, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
