package document

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/docgate/internal/domain"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// --- Mocks ---

type mockDocRepo struct {
	createID     string
	createErr    error
	getResult    domdoc.Document
	getErr       error
	replaceVer   domdoc.Version
	replaceErr   error
	replaced     *domdoc.Document
	deleteFound  bool
	deleteErr    error
	deleteAllN   int64
	deleteAllErr error
	calls        []string
}

func (m *mockDocRepo) Create(_ context.Context, _ string, doc *domdoc.Document) (string, error) {
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return "", m.createErr
	}
	if m.createID != "" {
		return m.createID, nil
	}
	return doc.ID(), nil
}

func (m *mockDocRepo) Get(_ context.Context, _, _ string) (domdoc.Document, error) {
	m.calls = append(m.calls, "get")
	return m.getResult, m.getErr
}

func (m *mockDocRepo) Replace(_ context.Context, _ string, doc *domdoc.Document) (domdoc.Version, error) {
	m.calls = append(m.calls, "replace")
	m.replaced = doc
	return m.replaceVer, m.replaceErr
}

func (m *mockDocRepo) Delete(_ context.Context, _, _ string) (bool, error) {
	m.calls = append(m.calls, "delete")
	return m.deleteFound, m.deleteErr
}

func (m *mockDocRepo) DeleteAll(_ context.Context, _ string) (int64, error) {
	m.calls = append(m.calls, "delete_all")
	return m.deleteAllN, m.deleteAllErr
}

func makeDoc(t *testing.T, id, body string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.FromJSON(id, []byte(body))
	if err != nil {
		t.Fatalf("domdoc.FromJSON: %v", err)
	}
	return doc
}

// --- Create ---

func TestCreate_Success(t *testing.T) {
	repo := &mockDocRepo{}
	svc := New(repo, "fees")
	doc := makeDoc(t, "doc-1", `{"name":"x"}`)

	res, err := svc.Create(context.Background(), &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "doc-1" || res.Result != ResultCreated {
		t.Errorf("result = %+v", res)
	}
}

func TestCreate_EngineAssignedID(t *testing.T) {
	repo := &mockDocRepo{createID: "gen-42"}
	svc := New(repo, "fees")
	doc := makeDoc(t, "", `{"name":"x"}`)

	res, err := svc.Create(context.Background(), &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "gen-42" {
		t.Errorf("ID = %q", res.ID)
	}
}

func TestCreate_Conflict(t *testing.T) {
	repo := &mockDocRepo{createErr: fmt.Errorf("document %q already exists: %w", "doc-1", domain.ErrConflict)}
	svc := New(repo, "fees")
	doc := makeDoc(t, "doc-1", `{"name":"x"}`)

	_, err := svc.Create(context.Background(), &doc)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

// --- Get ---

func TestGet_EmptyID(t *testing.T) {
	repo := &mockDocRepo{}
	_, err := New(repo, "fees").Get(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if len(repo.calls) != 0 {
		t.Errorf("repo called: %v", repo.calls)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockDocRepo{getErr: domain.ErrNotFound}
	_, err := New(repo, "fees").Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// --- Update ---

func TestUpdate_UsesReadVersion(t *testing.T) {
	stored := makeDoc(t, "doc-1", `{"name":"old"}`)
	stored = stored.WithVersion(domdoc.Version{SeqNo: 9, PrimaryTerm: 3})
	repo := &mockDocRepo{getResult: stored, replaceVer: domdoc.Version{SeqNo: 10, PrimaryTerm: 3}}
	svc := New(repo, "fees")
	doc := makeDoc(t, "doc-1", `{"name":"new"}`)

	updated, err := svc.Update(context.Background(), &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.replaced == nil || repo.replaced.Version().SeqNo != 9 {
		t.Errorf("replace version = %+v", repo.replaced)
	}
	if updated.Version().SeqNo != 10 {
		t.Errorf("updated version = %+v", updated.Version())
	}
	if v, _ := updated.Get("name"); v.Text() != "new" {
		t.Errorf("name = %q", v.Text())
	}
}

func TestUpdate_MissingDoesNotWrite(t *testing.T) {
	repo := &mockDocRepo{getErr: domain.ErrNotFound}
	svc := New(repo, "fees")
	doc := makeDoc(t, "ghost", `{"name":"x"}`)

	_, err := svc.Update(context.Background(), &doc)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	for _, c := range repo.calls {
		if c == "replace" {
			t.Error("Replace called for missing document")
		}
	}
}

func TestUpdate_ConcurrentDelete(t *testing.T) {
	stored := makeDoc(t, "doc-1", `{"name":"old"}`)
	stored = stored.WithVersion(domdoc.Version{SeqNo: 1, PrimaryTerm: 1})
	repo := &mockDocRepo{getResult: stored, replaceErr: domain.ErrConflict}
	svc := New(repo, "fees")
	doc := makeDoc(t, "doc-1", `{"name":"new"}`)

	_, err := svc.Update(context.Background(), &doc)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestUpdate_EmptyID(t *testing.T) {
	svc := New(&mockDocRepo{}, "fees")
	doc := makeDoc(t, "", `{"name":"x"}`)
	if _, err := svc.Update(context.Background(), &doc); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		repo *mockDocRepo
		want int
	}{
		{"existing", &mockDocRepo{deleteFound: true}, 1},
		{"missing", &mockDocRepo{deleteFound: false}, 0},
		{"index missing", &mockDocRepo{deleteErr: domain.ErrNotFound}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.repo, "fees").Delete(context.Background(), "doc-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tt.want {
				t.Errorf("deleted = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestDelete_ConnectionError(t *testing.T) {
	repo := &mockDocRepo{deleteErr: domain.ErrConnection}
	if _, err := New(repo, "fees").Delete(context.Background(), "doc-1"); !errors.Is(err, domain.ErrConnection) {
		t.Errorf("err = %v, want ErrConnection", err)
	}
}

// --- ClearAll ---

func TestClearAll_RequiresConfirmation(t *testing.T) {
	repo := &mockDocRepo{deleteAllN: 5}
	svc := New(repo, "fees")

	if _, err := svc.ClearAll(context.Background(), "other"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if len(repo.calls) != 0 {
		t.Errorf("repo called without confirmation: %v", repo.calls)
	}

	n, err := svc.ClearAll(context.Background(), "fees")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("deleted = %d", n)
	}
}
