package analytics

import (
	"context"

	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
)

// Repository runs a single facet aggregation.
type Repository interface {
	Facet(ctx context.Context, index string, f domanalytics.Facet) (domanalytics.Aggregations, error)
}
