package docgate

import (
	"context"
	"fmt"
	"time"

	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
)

// BulkService loads many documents per engine request.
type BulkService struct {
	svc bulkUseCase
	obs *observer
}

// Load writes docs in one bulk request. Item failures do not fail the call:
// inspect BulkReport.Errors and BulkReport.Failed.
func (s *BulkService) Load(ctx context.Context, docs []Document) (rep BulkReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("bulk_load", start, err) }()

	items := make([]domdoc.Document, len(docs))
	for i, doc := range docs {
		d, err := toInternalDocument(doc)
		if err != nil {
			return BulkReport{}, fmt.Errorf("bulk item %d: %w", i, err)
		}
		items[i] = d
	}

	r, err := s.svc.Load(ctx, items)
	if err != nil {
		return BulkReport{}, fmt.Errorf("bulk load: %w", err)
	}
	rep = fromInternalReport(r)
	s.obs.observeBulk(rep)
	return rep, nil
}

// LoadSeed loads the seed file configured with WithSeedFile.
func (s *BulkService) LoadSeed(ctx context.Context) (rep BulkReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("bulk_seed", start, err) }()

	r, err := s.svc.LoadSeed(ctx)
	if err != nil {
		return BulkReport{}, fmt.Errorf("load seed: %w", err)
	}
	rep = fromInternalReport(r)
	s.obs.observeBulk(rep)
	return rep, nil
}

func fromInternalReport(r dombatch.Report) BulkReport {
	items := make([]BulkItem, len(r.Items()))
	for i, it := range r.Items() {
		items[i] = BulkItem{
			Position:   it.Position(),
			ID:         it.ID(),
			OK:         it.Status() == dombatch.StatusOK,
			HTTPStatus: it.HTTPStatus(),
			ErrorType:  it.ErrorType(),
			Reason:     it.Reason(),
		}
	}
	return BulkReport{Took: r.Took(), Errors: r.Errors(), Items: items}
}
