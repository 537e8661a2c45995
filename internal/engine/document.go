package engine

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// IndexDocument writes one document. With OpTypeCreate an existing id is a
// version conflict; with IfSeqNo/IfPrimaryTerm the write is conditional.
func (c *Client) IndexDocument(ctx context.Context, req *IndexRequest) (*IndexResult, error) {
	params := opensearchapi.IndexParams{
		OpType:  string(req.OpType),
		Refresh: req.Refresh,
	}
	if req.IfSeqNo != nil && req.IfPrimaryTerm != nil {
		seq, term := int(*req.IfSeqNo), int(*req.IfPrimaryTerm)
		params.IfSeqNo, params.IfPrimaryTerm = &seq, &term
	}

	var resp *opensearchapi.IndexResp
	_, err := c.call(ctx, OpIndex, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		resp, err = c.api.Index(ctx, opensearchapi.IndexReq{
			Index:      req.Index,
			DocumentID: url.PathEscape(req.ID),
			Body:       bytes.NewReader(req.Body),
			Params:     params,
		})
		return resp.Inspect().Response, err
	})
	if err != nil {
		return nil, err
	}
	return &IndexResult{
		Index:       resp.Index,
		ID:          resp.ID,
		Version:     int64(resp.Version),
		Result:      resp.Result,
		SeqNo:       int64(resp.SeqNo),
		PrimaryTerm: int64(resp.PrimaryTerm),
	}, nil
}

// GetDocument fetches one document by id.
func (c *Client) GetDocument(ctx context.Context, index, id string) (*Hit, error) {
	var resp *opensearchapi.DocumentGetResp
	_, err := c.call(ctx, OpGet, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		resp, err = c.api.Document.Get(ctx, opensearchapi.DocumentGetReq{Index: index, DocumentID: url.PathEscape(id)})
		return resp.Inspect().Response, err
	})
	if err != nil {
		if isNotFound(err) && !errors.Is(err, ErrIndexNotFound) {
			return nil, &Error{Op: OpGet, Status: http.StatusNotFound, Err: ErrDocumentNotFound}
		}
		return nil, err
	}
	if !resp.Found {
		return nil, &Error{Op: OpGet, Status: http.StatusNotFound, Err: ErrDocumentNotFound}
	}
	return &Hit{
		Index:       resp.Index,
		ID:          resp.ID,
		SeqNo:       int64(resp.SeqNo),
		PrimaryTerm: int64(resp.PrimaryTerm),
		Found:       true,
		Source:      resp.Source,
	}, nil
}

// DeleteDocument removes one document; found is false when it did not exist.
func (c *Client) DeleteDocument(ctx context.Context, index, id string) (bool, error) {
	var resp *opensearchapi.DocumentDeleteResp
	_, err := c.call(ctx, OpDelete, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		resp, err = c.api.Document.Delete(ctx, opensearchapi.DocumentDeleteReq{Index: index, DocumentID: url.PathEscape(id)})
		return resp.Inspect().Response, err
	})
	if err != nil {
		if isNotFound(err) && !errors.Is(err, ErrIndexNotFound) {
			return false, nil
		}
		return false, err
	}
	return resp.Result == "deleted", nil
}

// DeleteByQuery removes every document matching the query body.
func (c *Client) DeleteByQuery(ctx context.Context, index string, body []byte) (int64, error) {
	refresh := true
	var resp *opensearchapi.DocumentDeleteByQueryResp
	_, err := c.call(ctx, OpDeleteByQuery, func(ctx context.Context) (*opensearch.Response, error) {
		var err error
		resp, err = c.api.Document.DeleteByQuery(ctx, opensearchapi.DocumentDeleteByQueryReq{
			Indices: []string{index},
			Body:    bytes.NewReader(body),
			Params:  opensearchapi.DocumentDeleteByQueryParams{Conflicts: "proceed", Refresh: &refresh},
		})
		return resp.Inspect().Response, err
	})
	if err != nil {
		return 0, err
	}
	return int64(resp.Deleted), nil
}
