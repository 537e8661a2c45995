package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/docgate/internal/domain"
	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
)

// Service builds the analytics dashboard.
type Service struct {
	repo   Repository
	index  string
	facets []domanalytics.Facet
}

// New creates an analytics service over index using the given field names.
func New(repo Repository, index string, fields domanalytics.Fields) *Service {
	return &Service{
		repo:   repo,
		index:  index,
		facets: domanalytics.Facets(fields),
	}
}

// Dashboard runs every facet concurrently. The first failure cancels the
// remaining requests and is returned.
func (s *Service) Dashboard(ctx context.Context) (domanalytics.Dashboard, error) {
	results := make([]domanalytics.Aggregations, len(s.facets))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range s.facets {
		i, f := i, f
		g.Go(func() error {
			aggs, err := s.repo.Facet(gctx, s.index, f)
			if err != nil {
				return fmt.Errorf("facet %s: %w", f.Name, err)
			}
			results[i] = aggs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domanalytics.Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}

	d := domanalytics.Empty()
	for i, f := range s.facets {
		if err := d.Set(f, results[i]); err != nil {
			return domanalytics.Dashboard{}, fmt.Errorf("facet %s: %w", f.Name,
				domain.NewRejected("aggregation_parse", err.Error()))
		}
	}
	return d, nil
}

// Facet runs one named facet and returns its slice of the dashboard.
func (s *Service) Facet(ctx context.Context, name string) (domanalytics.Dashboard, error) {
	for _, f := range s.facets {
		if f.Name != name {
			continue
		}
		aggs, err := s.repo.Facet(ctx, s.index, f)
		if err != nil {
			return domanalytics.Dashboard{}, fmt.Errorf("facet %s: %w", name, err)
		}
		d := domanalytics.Empty()
		if err := d.Set(f, aggs); err != nil {
			return domanalytics.Dashboard{}, fmt.Errorf("facet %s: %w", name,
				domain.NewRejected("aggregation_parse", err.Error()))
		}
		return d, nil
	}
	return domanalytics.Dashboard{}, fmt.Errorf("unknown facet %q: %w", name, domain.ErrNotFound)
}

// FacetNames lists the available facets in display order.
func (s *Service) FacetNames() []string {
	names := make([]string, len(s.facets))
	for i, f := range s.facets {
		names[i] = f.Name
	}
	return names
}
