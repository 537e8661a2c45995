package index

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/docgate/internal/domain"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/engine"
)

func TestCreate(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createFn = func(_ context.Context, name string, body []byte) error {
		if name != "fees" {
			t.Errorf("name = %q", name)
		}
		if string(body) != `{"settings":{"index":{"number_of_shards":4}}}` {
			t.Errorf("body = %s", body)
		}
		return nil
	}

	if err := repo.Create(context.Background(), "fees", &mapping.Descriptor{Shards: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createFn = func(_ context.Context, _ string, _ []byte) error {
		return &engine.Error{Op: engine.OpCreateIndex, Status: 400,
			Type: "resource_already_exists_exception", Err: engine.ErrIndexExists}
	}

	err := repo.Create(context.Background(), "fees", &mapping.Descriptor{Shards: 1})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreate_OtherRejection(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createFn = func(_ context.Context, _ string, _ []byte) error {
		return &engine.Error{Op: engine.OpCreateIndex, Status: 400,
			Type: "illegal_argument_exception", Reason: "Failed to parse value [0] for setting [index.number_of_shards]"}
	}

	err := repo.Create(context.Background(), "fees", &mapping.Descriptor{})
	if !errors.Is(err, domain.ErrEngineRejected) {
		t.Errorf("err = %v, want ErrEngineRejected", err)
	}
}

func TestMapping(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getMappingFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`{"properties":{"fee":{"type":"double"}}}`), nil
	}

	desc, err := repo.Mapping(context.Background(), "fees")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f, ok := desc.Lookup("fee"); !ok || f.Type != mapping.Double {
		t.Errorf("Lookup(fee) = %+v, %v", f, ok)
	}
}

func TestMapping_IndexMissing(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getMappingFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, &engine.Error{Op: engine.OpGetMapping, Status: 404, Err: engine.ErrIndexNotFound}
	}

	_, err := repo.Mapping(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPutMapping_NotAcknowledged(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.putMappingFn = func(_ context.Context, _ string, body []byte) (bool, error) {
		if string(body) != `{"properties":{"fee":{"type":"double"}}}` {
			t.Errorf("body = %s", body)
		}
		return false, nil
	}

	desc := &mapping.Descriptor{Fields: []mapping.Field{{Name: "fee", Type: mapping.Double}}}
	err := repo.PutMapping(context.Background(), "fees", desc)
	if !errors.Is(err, domain.ErrEngineRejected) {
		t.Errorf("err = %v, want ErrEngineRejected", err)
	}
}

func TestExistsAndDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(_ context.Context, name string) (bool, error) { return name == "fees", nil }
	ms.deleteFn = func(_ context.Context, _ string) error {
		return &engine.Error{Op: engine.OpDeleteIndex, Status: 404, Err: engine.ErrIndexNotFound}
	}

	ok, err := repo.Exists(context.Background(), "fees")
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}
	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}
}
