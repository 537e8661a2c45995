// Package seed reads bulk seed files: a JSON array of objects, each of which
// may carry a string "_id" member naming the document.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kailas-cloud/docgate/internal/domain"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// IDField is the member promoted to the document identifier.
const IDField = "_id"

// ReadFile reads and parses the seed file at path.
func ReadFile(path string) ([]domdoc.Document, error) {
	f, err := os.Open(path) //nolint:gosec // operator-configured path
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	docs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return docs, nil
}

// Read parses a seed stream. Element order is preserved.
func Read(r io.Reader) ([]domdoc.Document, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read seed: %w: %w", domain.ErrInvalidArgument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("seed must be a JSON array: %w", domain.ErrInvalidArgument)
	}

	docs := make([]domdoc.Document, 0)
	for pos := 0; dec.More(); pos++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("seed item %d: %w: %w", pos, domain.ErrInvalidArgument, err)
		}
		doc, err := parseItem(raw)
		if err != nil {
			return nil, fmt.Errorf("seed item %d: %w", pos, err)
		}
		docs = append(docs, doc)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read seed: %w: %w", domain.ErrInvalidArgument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after seed array: %w", domain.ErrInvalidArgument)
	}
	return docs, nil
}

func parseItem(raw json.RawMessage) (domdoc.Document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return domdoc.Document{}, fmt.Errorf("item must be an object: %w", domain.ErrInvalidArgument)
	}

	fields, err := domdoc.ParseFields(raw)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	id := ""
	body := make([]domdoc.Field, 0, len(fields))
	for _, f := range fields {
		if f.Name != IDField {
			body = append(body, f)
			continue
		}
		// Date-shaped strings decode as dates; both carry their text.
		if k := f.Value.Kind(); k != domdoc.KindText && k != domdoc.KindDate {
			return domdoc.Document{}, fmt.Errorf("%s must be a string, got %s: %w",
				IDField, f.Value.Kind(), domain.ErrInvalidArgument)
		}
		id = f.Value.Text()
	}

	doc, err := domdoc.New(id, body)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	return doc, nil
}
