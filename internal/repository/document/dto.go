package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/engine"
)

// bulkMeta is the NDJSON action line: {"index":{"_id":"..."}}.
type bulkMeta struct {
	Index bulkTarget `json:"index"`
}

type bulkTarget struct {
	ID string `json:"_id,omitempty"`
}

// buildBulkBody encodes one action line plus one source line per document.
func buildBulkBody(docs []domdoc.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range docs {
		if err := enc.Encode(bulkMeta{Index: bulkTarget{ID: docs[i].ID()}}); err != nil {
			return nil, fmt.Errorf("encode action %d: %w", i, err)
		}
		body, err := docs[i].Body()
		if err != nil {
			return nil, fmt.Errorf("encode document %d: %w", i, err)
		}
		buf.Write(body)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// parseBulkResponse maps engine items to per-position outcomes.
func parseBulkResponse(resp *engine.BulkResponse, docs []domdoc.Document) (batch.Report, error) {
	if len(resp.Items) != len(docs) {
		return batch.Report{}, fmt.Errorf("bulk response has %d items for %d documents", len(resp.Items), len(docs))
	}

	items := make([]batch.Result, len(resp.Items))
	for i, item := range resp.Items {
		r := item.Result()
		id := r.ID
		if id == "" {
			id = docs[i].ID()
		}
		if r.Error != nil || r.Status >= http.StatusMultipleChoices {
			var errType, reason string
			if r.Error != nil {
				errType, reason = r.Error.Type, r.Error.Reason
			}
			items[i] = batch.NewError(i, id, r.Status, errType, reason)
			continue
		}
		items[i] = batch.NewOK(i, id, r.Status)
	}
	return batch.NewReport(resp.Took, resp.Errors, items), nil
}

// hydrate converts an engine hit into a domain document.
func hydrate(hit *engine.Hit) (domdoc.Document, error) {
	var fields []domdoc.Field
	if len(hit.Source) > 0 {
		f, err := domdoc.ParseFields(hit.Source)
		if err != nil {
			return domdoc.Document{}, fmt.Errorf("parse source of %q: %w", hit.ID, err)
		}
		fields = f
	}
	return domdoc.Reconstruct(hit.ID, fields, domdoc.Version{
		SeqNo:       hit.SeqNo,
		PrimaryTerm: hit.PrimaryTerm,
	}), nil
}
