package engine

import (
	"bytes"
	"context"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// CreateIndex creates an index with the given settings/mappings body.
// Returns ErrIndexExists (wrapped in *Error) when the index is already there.
func (c *Client) CreateIndex(ctx context.Context, name string, body []byte) error {
	_, err := c.call(ctx, OpCreateIndex, func(ctx context.Context) (*opensearch.Response, error) {
		resp, err := c.api.Indices.Create(ctx, opensearchapi.IndicesCreateReq{
			Index: name,
			Body:  bytes.NewReader(body),
		})
		return resp.Inspect().Response, err
	})
	return err
}

// DeleteIndex removes an index and all its documents.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	_, err := c.call(ctx, OpDeleteIndex, func(ctx context.Context) (*opensearch.Response, error) {
		resp, err := c.api.Indices.Delete(ctx, opensearchapi.IndicesDeleteReq{Indices: []string{name}})
		return resp.Inspect().Response, err
	})
	return err
}

// IndexExists checks whether the index is present.
func (c *Client) IndexExists(ctx context.Context, name string) (bool, error) {
	_, err := c.call(ctx, OpIndexExists, func(ctx context.Context) (*opensearch.Response, error) {
		return c.api.Indices.Exists(ctx, opensearchapi.IndicesExistsReq{Indices: []string{name}})
	})
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	}
	return false, err
}

// GetMapping returns the raw mapping object ({"properties": ...}) of the index.
func (c *Client) GetMapping(ctx context.Context, name string) ([]byte, error) {
	var out *opensearchapi.MappingGetResp
	_, err := c.call(ctx, OpGetMapping, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		out, err = c.api.Indices.Mapping.Get(ctx, &opensearchapi.MappingGetReq{Indices: []string{name}})
		return out.Inspect().Response, err
	})
	if err != nil {
		return nil, err
	}

	// Keyed by concrete index name, which differs from name for aliases.
	if m, ok := out.Indices[name]; ok {
		return m.Mappings, nil
	}
	for _, m := range out.Indices {
		return m.Mappings, nil
	}
	return nil, &Error{Op: OpGetMapping, Status: http.StatusNotFound, Err: ErrIndexNotFound}
}

// PutMapping applies a mapping update and returns the engine's acknowledgement.
func (c *Client) PutMapping(ctx context.Context, name string, body []byte) (bool, error) {
	var out *opensearchapi.MappingPutResp
	_, err := c.call(ctx, OpPutMapping, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		out, err = c.api.Indices.Mapping.Put(ctx, opensearchapi.MappingPutReq{
			Indices: []string{name},
			Body:    bytes.NewReader(body),
		})
		return out.Inspect().Response, err
	})
	if err != nil {
		return false, err
	}
	return out.Acknowledged, nil
}
