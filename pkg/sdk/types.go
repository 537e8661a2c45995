package docgate

import "encoding/json"

// Intent selects how a search query is built.
type Intent string

// Intent constants.
const (
	IntentMatchAll   Intent = "match_all"
	IntentExact      Intent = "exact"
	IntentMultiMatch Intent = "multi_match"
)

// Document is a stored document. Body is its JSON object.
// SeqNo and PrimaryTerm are zero until the engine has assigned them.
type Document struct {
	ID          string
	Body        json.RawMessage
	SeqNo       int64
	PrimaryTerm int64
}

// SearchRequest describes one search. Nil From/Size use the defaults.
type SearchRequest struct {
	Intent Intent
	Query  string
	Field  string
	Fields []string
	From   *int
	Size   *int
}

// Hit is one search match. Score is nil when the engine did not score.
type Hit struct {
	ID     string
	Index  string
	Score  *float64
	Source json.RawMessage
}

// SearchResult holds hits in engine order and the total match count.
type SearchResult struct {
	Total int64
	Hits  []Hit
}

// BulkItem is the outcome of one bulk item.
type BulkItem struct {
	Position   int
	ID         string
	OK         bool
	HTTPStatus int
	ErrorType  string
	Reason     string
}

// BulkReport is the outcome of a bulk load.
type BulkReport struct {
	Took   int64
	Errors bool
	Items  []BulkItem
}

// Failed returns the items that were not stored.
func (r BulkReport) Failed() []BulkItem {
	var out []BulkItem
	for _, it := range r.Items {
		if !it.OK {
			out = append(out, it)
		}
	}
	return out
}

// Bucket is one facet bucket.
type Bucket struct {
	Key         string
	KeyAsString string
	Count       int64
}

// Stats is a numeric summary.
type Stats struct {
	Count int64
	Min   float64
	Max   float64
	Avg   float64
	Sum   float64
}

// Dashboard is the analytics composite.
type Dashboard struct {
	TopEntities     []Bucket
	Categories      []Bucket
	AmountStats     Stats
	CreatedPerYear  []Bucket
	UpdatedPerYear  []Bucket
	AmountHistogram []Bucket
}

// FieldType is an index mapping type.
type FieldType string

// Field type constants.
const (
	FieldText    FieldType = "text"
	FieldKeyword FieldType = "keyword"
	FieldLong    FieldType = "long"
	FieldInteger FieldType = "integer"
	FieldFloat   FieldType = "float"
	FieldDouble  FieldType = "double"
	FieldDate    FieldType = "date"
	FieldBoolean FieldType = "boolean"
	FieldObject  FieldType = "object"
	FieldNested  FieldType = "nested"
)

// FieldSpec describes one mapped field. Keyword adds a "keyword" sub-field
// so the field supports exact matching and aggregations.
type FieldSpec struct {
	Name       string
	Type       FieldType
	Keyword    bool
	Properties []FieldSpec
}

// IndexSpec is the shard count and mapping of an index. Zero shards uses
// the default.
type IndexSpec struct {
	Shards int
	Fields []FieldSpec
}

// EnsureStatus reports whether Ensure created the index.
type EnsureStatus string

// Ensure outcomes.
const (
	EnsureCreated       EnsureStatus = "created"
	EnsureAlreadyExists EnsureStatus = "already_exists"
)
