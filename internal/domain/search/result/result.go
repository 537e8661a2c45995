package result

import "github.com/kailas-cloud/docgate/internal/domain/document"

// Hit is a single search hit.
type Hit struct {
	id       string
	index    string
	score    *float64
	document document.Document
}

// NewHit creates a search hit. score is nil when the engine returned no relevance score.
func NewHit(id, index string, score *float64, doc document.Document) Hit {
	return Hit{id: id, index: index, score: score, document: doc}
}

// ID returns the document identifier.
func (h *Hit) ID() string { return h.id }

// Index returns the index the hit came from.
func (h *Hit) Index() string { return h.index }

// Score returns the relevance score, if any.
func (h *Hit) Score() *float64 { return h.score }

// Document returns the hit source.
func (h *Hit) Document() document.Document { return h.document }

// Result is a page of hits plus the total match count.
type Result struct {
	total int64
	hits  []Hit
}

// New creates a search result page.
func New(total int64, hits []Hit) Result {
	if hits == nil {
		hits = []Hit{}
	}
	return Result{total: total, hits: hits}
}

// Total returns the number of matching documents across all pages.
func (r *Result) Total() int64 { return r.total }

// Hits returns the hits of this page.
func (r *Result) Hits() []Hit { return r.hits }
