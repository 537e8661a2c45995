package docgate

import (
	"context"
	"fmt"
	"time"

	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
)

// AnalyticsService builds the fee dashboard.
type AnalyticsService struct {
	svc analyticsUseCase
	obs *observer
}

// Dashboard runs every facet concurrently; any facet failure fails the call.
func (s *AnalyticsService) Dashboard(ctx context.Context) (dash Dashboard, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dashboard", start, err) }()

	d, err := s.svc.Dashboard(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	return Dashboard{
		TopEntities:     fromInternalBuckets(d.TopEntities),
		Categories:      fromInternalBuckets(d.Categories),
		AmountStats:     Stats(d.AmountStats),
		CreatedPerYear:  fromInternalBuckets(d.CreatedPerYear),
		UpdatedPerYear:  fromInternalBuckets(d.UpdatedPerYear),
		AmountHistogram: fromInternalBuckets(d.AmountHistogram),
	}, nil
}

func fromInternalBuckets(in []domanalytics.Bucket) []Bucket {
	out := make([]Bucket, len(in))
	for i, b := range in {
		out[i] = Bucket{Key: b.Key, KeyAsString: b.KeyAsString, Count: b.Count}
	}
	return out
}
