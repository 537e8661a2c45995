// Package query builds engine query payloads from caller intent.
// Builders are pure: they never perform I/O.
package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docgate/internal/domain"
	"github.com/kailas-cloud/docgate/internal/domain/search/mode"
)

// Paging defaults.
const (
	DefaultFrom = 0
	DefaultSize = 10
)

// KeywordSuffix addresses the unanalyzed sub-field of a text field.
const KeywordSuffix = ".keyword"

// DefaultFields are the multi-match targets when the caller names none.
var DefaultFields = []string{"name", "entity_name"}

// Payload is an engine query body.
type Payload map[string]any

// Request is the caller's search intent. Nil From/Size mean "unspecified".
type Request struct {
	Mode   mode.Mode
	Query  string
	Field  string
	Fields []string
	From   *int
	Size   *int
}

// Normalize applies defaults and rejects negative paging.
func (r Request) Normalize() (Request, error) {
	m, err := mode.Parse(string(r.Mode))
	if err != nil {
		return Request{}, err
	}
	r.Mode = m

	from, size := DefaultFrom, DefaultSize
	if r.From != nil {
		from = *r.From
	}
	if r.Size != nil {
		size = *r.Size
	}
	if from < 0 {
		return Request{}, fmt.Errorf("offset must be >= 0, got %d: %w", from, domain.ErrInvalidArgument)
	}
	if size < 0 {
		return Request{}, fmt.Errorf("size must be >= 0, got %d: %w", size, domain.ErrInvalidArgument)
	}
	r.From, r.Size = &from, &size

	if r.Mode == mode.MultiMatch && len(r.Fields) == 0 {
		r.Fields = DefaultFields
	}
	return r, nil
}

// Build normalizes the request and produces its payload.
func Build(r Request) (Payload, error) {
	r, err := r.Normalize()
	if err != nil {
		return nil, err
	}

	switch r.Mode {
	case mode.MatchAll:
		return MatchAll(*r.From, *r.Size), nil
	case mode.Exact:
		return Exact(r.Field, r.Query, *r.From, *r.Size)
	default:
		return MultiMatch(r.Query, r.Fields, *r.From, *r.Size), nil
	}
}

// MatchAll returns every document, paged.
func MatchAll(from, size int) Payload {
	return Payload{
		"from":  from,
		"size":  size,
		"query": map[string]any{"match_all": map[string]any{}},
	}
}

// Exact builds a term query on the keyword sub-field of field.
func Exact(field, q string, from, size int) (Payload, error) {
	if q == "" {
		return nil, fmt.Errorf("exact query text is required: %w", domain.ErrInvalidArgument)
	}
	if field == "" {
		return nil, fmt.Errorf("exact query field is required: %w", domain.ErrInvalidArgument)
	}
	if !strings.HasSuffix(field, KeywordSuffix) {
		field += KeywordSuffix
	}
	return Payload{
		"from": from,
		"size": size,
		"query": map[string]any{
			"term": map[string]any{field: q},
		},
	}, nil
}

// MultiMatch builds a relevance-ranked query over fields.
// An empty query degrades to MatchAll.
func MultiMatch(q string, fields []string, from, size int) Payload {
	if q == "" {
		return MatchAll(from, size)
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	targets := make([]string, len(fields))
	copy(targets, fields)
	return Payload{
		"from": from,
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": targets,
			},
		},
	}
}
