package analytics

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Bucket is one flat facet bucket.
type Bucket struct {
	Key         string `json:"key"`
	KeyAsString string `json:"key_as_string,omitempty"`
	Count       int64  `json:"count"`
}

// Stats is a numeric summary. Min/Max/Avg are zero when Count is zero.
type Stats struct {
	Count int64   `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Sum   float64 `json:"sum"`
}

// Dashboard is the composite of all six facets.
type Dashboard struct {
	TopEntities     []Bucket `json:"top_entities"`
	Categories      []Bucket `json:"categories"`
	AmountStats     Stats    `json:"amount_stats"`
	CreatedPerYear  []Bucket `json:"created_per_year"`
	UpdatedPerYear  []Bucket `json:"updated_per_year"`
	AmountHistogram []Bucket `json:"amount_histogram"`
}

// Aggregations are the raw engine aggregation results keyed by name.
type Aggregations map[string]json.RawMessage

type rawBucket struct {
	Key         json.RawMessage `json:"key"`
	KeyAsString string          `json:"key_as_string"`
	DocCount    int64           `json:"doc_count"`
}

// ParseBuckets reshapes aggregations.<name>.buckets. A missing aggregation
// or missing buckets yields an empty slice.
func ParseBuckets(aggs Aggregations, name string) ([]Bucket, error) {
	raw, ok := aggs[name]
	if !ok || len(raw) == 0 {
		return []Bucket{}, nil
	}
	var agg struct {
		Buckets []rawBucket `json:"buckets"`
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return nil, fmt.Errorf("parse %s buckets: %w", name, err)
	}

	buckets := make([]Bucket, 0, len(agg.Buckets))
	for _, rb := range agg.Buckets {
		key, err := bucketKey(rb.Key)
		if err != nil {
			return nil, fmt.Errorf("parse %s bucket key: %w", name, err)
		}
		buckets = append(buckets, Bucket{Key: key, KeyAsString: rb.KeyAsString, Count: rb.DocCount})
	}
	return buckets, nil
}

// bucketKey renders string keys as-is and numeric keys in plain notation.
func bucketKey(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// ParseStats reshapes a stats aggregation. Missing values become zero.
func ParseStats(aggs Aggregations, name string) (Stats, error) {
	raw, ok := aggs[name]
	if !ok || len(raw) == 0 {
		return Stats{}, nil
	}
	var s struct {
		Count int64    `json:"count"`
		Min   *float64 `json:"min"`
		Max   *float64 `json:"max"`
		Avg   *float64 `json:"avg"`
		Sum   *float64 `json:"sum"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return Stats{}, fmt.Errorf("parse %s stats: %w", name, err)
	}
	return Stats{
		Count: s.Count,
		Min:   deref(s.Min),
		Max:   deref(s.Max),
		Avg:   deref(s.Avg),
		Sum:   deref(s.Sum),
	}, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Set stores one facet's parsed result into the dashboard.
func (d *Dashboard) Set(f Facet, aggs Aggregations) error {
	if f.Kind == KindStats {
		s, err := ParseStats(aggs, f.Name)
		if err != nil {
			return err
		}
		d.AmountStats = s
		return nil
	}

	buckets, err := ParseBuckets(aggs, f.Name)
	if err != nil {
		return err
	}
	switch f.Name {
	case TopEntities:
		d.TopEntities = buckets
	case Categories:
		d.Categories = buckets
	case CreatedPerYear:
		d.CreatedPerYear = buckets
	case UpdatedPerYear:
		d.UpdatedPerYear = buckets
	case AmountHistogram:
		d.AmountHistogram = buckets
	default:
		return fmt.Errorf("unknown facet %q", f.Name)
	}
	return nil
}

// Empty returns a dashboard with all facets present and empty.
func Empty() Dashboard {
	return Dashboard{
		TopEntities:     []Bucket{},
		Categories:      []Bucket{},
		CreatedPerYear:  []Bucket{},
		UpdatedPerYear:  []Bucket{},
		AmountHistogram: []Bucket{},
	}
}
