package bulk

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docgate/internal/domain"
	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/seed"
)

// MaxBatchSize is the default item limit per Load call.
const MaxBatchSize = 10000

// Service loads documents in bulk with per-item outcome reporting.
type Service struct {
	docs         BulkIndexer
	index        string
	seedFile     string
	readSeed     SeedReader
	maxBatchSize int
	logger       *zap.Logger
}

// New creates a bulk service writing into index.
func New(docs BulkIndexer, index string) *Service {
	return &Service{
		docs:         docs,
		index:        index,
		readSeed:     seed.ReadFile,
		maxBatchSize: MaxBatchSize,
		logger:       zap.NewNop(),
	}
}

// WithSeedFile configures the file LoadSeed reads.
func (s *Service) WithSeedFile(path string) *Service {
	s.seedFile = path
	return s
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithLogger sets the logger used for partial-failure reports.
func (s *Service) WithLogger(l *zap.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Load writes docs in one bulk request. The returned report is complete even
// when some items failed; Report.Err exposes ErrPartialFailure for callers
// that want an error. Empty input returns an empty report without calling
// the engine.
func (s *Service) Load(ctx context.Context, docs []domdoc.Document) (dombatch.Report, error) {
	if len(docs) == 0 {
		return dombatch.NewReport(0, false, []dombatch.Result{}), nil
	}
	if len(docs) > s.maxBatchSize {
		return dombatch.Report{}, fmt.Errorf("batch of %d exceeds %d items: %w",
			len(docs), s.maxBatchSize, domain.ErrInvalidArgument)
	}

	report, err := s.docs.BulkIndex(ctx, s.index, docs)
	if err != nil {
		return dombatch.Report{}, fmt.Errorf("bulk load: %w", err)
	}

	if failed := report.Failed(); len(failed) > 0 {
		first := failed[0]
		s.logger.Warn("bulk load partially failed",
			zap.String("index", s.index),
			zap.Int("items", len(report.Items())),
			zap.Int("failed", len(failed)),
			zap.Int("first_position", first.Position()),
			zap.String("first_error_type", first.ErrorType()),
			zap.String("first_reason", first.Reason()),
		)
	}
	return report, nil
}

// LoadSeed reads the configured seed file and loads it.
func (s *Service) LoadSeed(ctx context.Context) (dombatch.Report, error) {
	if s.seedFile == "" {
		return dombatch.Report{}, fmt.Errorf("no seed file configured: %w", domain.ErrInvalidArgument)
	}

	docs, err := s.readSeed(s.seedFile)
	if err != nil {
		return dombatch.Report{}, fmt.Errorf("read seed: %w", err)
	}

	s.logger.Info("loading seed file",
		zap.String("path", s.seedFile),
		zap.Int("items", len(docs)),
	)
	return s.Load(ctx, docs)
}
