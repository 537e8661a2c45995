package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/docgate/internal/domain"
)

func TestRead(t *testing.T) {
	in := `[
		{"_id": "fee-1", "name": "Visa Classic", "fee": 12.5},
		{"name": "Visa Gold", "fee": 30}
	]`
	docs, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].ID() != "fee-1" {
		t.Errorf("docs[0].ID = %q", docs[0].ID())
	}
	if _, ok := docs[0].Get(IDField); ok {
		t.Error("_id kept in body")
	}
	if docs[1].ID() != "" {
		t.Errorf("docs[1].ID = %q, want empty", docs[1].ID())
	}
	body, _ := docs[1].Body()
	if string(body) != `{"name":"Visa Gold","fee":30}` {
		t.Errorf("body = %s", body)
	}
}

func TestRead_EmptyArray(t *testing.T) {
	docs, err := Read(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("docs = %v, want empty slice", docs)
	}
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an array", `{"name":"x"}`},
		{"scalar item", `[1]`},
		{"numeric id", `[{"_id": 7}]`},
		{"truncated", `[{"name":"x"}`},
		{"trailing data", `[] []`},
		{"empty input", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`[{"_id":"a","name":"A"}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	docs, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID() != "a" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
