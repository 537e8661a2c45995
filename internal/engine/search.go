package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// Search runs a query payload against the index.
func (c *Client) Search(ctx context.Context, index string, body []byte) (*SearchResponse, error) {
	var resp *opensearchapi.SearchResp
	_, err := c.call(ctx, OpSearch, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		resp, err = c.api.Search(ctx, &opensearchapi.SearchReq{
			Indices: []string{index},
			Body:    bytes.NewReader(body),
		})
		return resp.Inspect().Response, err
	})
	if err != nil {
		return nil, err
	}

	out := &SearchResponse{Took: int64(resp.Took), TimedOut: resp.Timeout}
	out.Hits.Total = TotalHits{Value: int64(resp.Hits.Total.Value), Relation: resp.Hits.Total.Relation}
	out.Hits.Hits = make([]Hit, len(resp.Hits.Hits))
	for i, h := range resp.Hits.Hits {
		score := float64(h.Score)
		out.Hits.Hits[i] = Hit{
			Index:  h.Index,
			ID:     h.ID,
			Score:  &score,
			Found:  true,
			Source: h.Source,
		}
		if h.SeqNo != nil && h.PrimaryTerm != nil {
			out.Hits.Hits[i].SeqNo = int64(*h.SeqNo)
			out.Hits.Hits[i].PrimaryTerm = int64(*h.PrimaryTerm)
		}
	}
	if len(resp.Aggregations) > 0 {
		if err := json.Unmarshal(resp.Aggregations, &out.Aggregations); err != nil {
			return nil, &Error{Op: OpSearch, Err: fmt.Errorf("decode aggregations: %w", err)}
		}
	}
	return out, nil
}

// Bulk sends one NDJSON body of action/document line pairs.
func (c *Client) Bulk(ctx context.Context, index string, body []byte, refresh string) (*BulkResponse, error) {
	var resp *opensearchapi.BulkResp
	_, err := c.call(ctx, OpBulk, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		resp, err = c.api.Bulk(ctx, opensearchapi.BulkReq{
			Index:  index,
			Body:   bytes.NewReader(body),
			Params: opensearchapi.BulkParams{Refresh: refresh},
		})
		return resp.Inspect().Response, err
	})
	if err != nil {
		return nil, err
	}

	out := &BulkResponse{Took: int64(resp.Took), Errors: resp.Errors, Items: make([]BulkItem, len(resp.Items))}
	for i, item := range resp.Items {
		converted := make(BulkItem, len(item))
		for action, r := range item {
			res := BulkItemResult{Index: r.Index, ID: r.ID, Status: r.Status, Result: r.Result}
			if r.Error != nil {
				res.Error = &ErrorCause{Type: r.Error.Type, Reason: r.Error.Reason}
			}
			converted[action] = res
		}
		out.Items[i] = converted
	}
	return out, nil
}
