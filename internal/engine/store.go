package engine

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade; consumers use narrow sub-interfaces
type Store interface {
	Pinger
	IndexManager
	DocumentStore
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, name string, body []byte) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	GetMapping(ctx context.Context, name string) ([]byte, error)
	PutMapping(ctx context.Context, name string, body []byte) (bool, error)
}

// DocumentStore provides single-document and bulk write operations.
type DocumentStore interface {
	IndexDocument(ctx context.Context, req *IndexRequest) (*IndexResult, error)
	GetDocument(ctx context.Context, index, id string) (*Hit, error)
	DeleteDocument(ctx context.Context, index, id string) (bool, error)
	DeleteByQuery(ctx context.Context, index string, body []byte) (int64, error)
	Bulk(ctx context.Context, index string, body []byte, refresh string) (*BulkResponse, error)
}

// Searcher runs query payloads.
type Searcher interface {
	Search(ctx context.Context, index string, body []byte) (*SearchResponse, error)
}

// OpType selects create-only or upsert semantics for IndexDocument.
type OpType string

// Index operation types.
const (
	OpTypeIndex  OpType = "index"
	OpTypeCreate OpType = "create"
)

// IndexRequest writes one document.
type IndexRequest struct {
	Index         string
	ID            string
	Body          []byte
	OpType        OpType
	IfSeqNo       *int64
	IfPrimaryTerm *int64
	Refresh       string
}

// IndexResult is the engine's write acknowledgement.
type IndexResult struct {
	Index       string `json:"_index"`
	ID          string `json:"_id"`
	Version     int64  `json:"_version"`
	Result      string `json:"result"`
	SeqNo       int64  `json:"_seq_no"`
	PrimaryTerm int64  `json:"_primary_term"`
}

// Hit is a stored document as returned by get and search.
type Hit struct {
	Index       string          `json:"_index"`
	ID          string          `json:"_id"`
	Score       *float64        `json:"_score"`
	SeqNo       int64           `json:"_seq_no"`
	PrimaryTerm int64           `json:"_primary_term"`
	Found       bool            `json:"found"`
	Source      json.RawMessage `json:"_source"`
}

// TotalHits is the hit count and whether it is exact ("eq") or a lower bound.
type TotalHits struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// SearchResponse is the subset of the search response the gateway uses.
type SearchResponse struct {
	Took     int64 `json:"took"`
	TimedOut bool  `json:"timed_out"`
	Hits     struct {
		Total TotalHits `json:"total"`
		Hits  []Hit     `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

// BulkItemResult is the outcome of one bulk action.
type BulkItemResult struct {
	Index  string      `json:"_index"`
	ID     string      `json:"_id"`
	Status int         `json:"status"`
	Result string      `json:"result"`
	Error  *ErrorCause `json:"error,omitempty"`
}

// BulkItem maps the action name to its result, e.g. {"index": {...}}.
type BulkItem map[string]BulkItemResult

// Result returns the single action result carried by the item.
func (b BulkItem) Result() BulkItemResult {
	for _, r := range b {
		return r
	}
	return BulkItemResult{}
}

// BulkResponse is the engine's bulk acknowledgement.
type BulkResponse struct {
	Took   int64      `json:"took"`
	Errors bool       `json:"errors"`
	Items  []BulkItem `json:"items"`
}
