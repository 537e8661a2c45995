// Package analytics defines the fixed dashboard facets: their aggregation
// payloads and the reshaping of engine responses into flat buckets.
package analytics

import (
	"strings"

	"github.com/kailas-cloud/docgate/internal/domain/search/query"
)

// Facet names, also used as aggregation keys.
const (
	TopEntities     = "top_entities"
	Categories      = "categories"
	AmountStats     = "amount_stats"
	CreatedPerYear  = "created_per_year"
	UpdatedPerYear  = "updated_per_year"
	AmountHistogram = "amount_histogram"
)

// Facet sizing.
const (
	TopEntitiesSize     = 10
	CategoriesSize      = 100
	AmountHistogramStep = 10
	CalendarYear        = "year"
)

// Kind is the aggregation type.
type Kind string

// Aggregation kinds.
const (
	KindTerms         Kind = "terms"
	KindStats         Kind = "stats"
	KindDateHistogram Kind = "date_histogram"
	KindHistogram     Kind = "histogram"
)

// Fields names the document fields the facets aggregate over.
type Fields struct {
	Entity   string
	Category string
	Amount   string
	Created  string
	Updated  string
}

// DefaultFields returns the field names used by the visa fee documents.
func DefaultFields() Fields {
	return Fields{
		Entity:   "entity_name",
		Category: "category",
		Amount:   "fee",
		Created:  "created_at",
		Updated:  "updated_at",
	}
}

// Facet is one aggregation over one field.
type Facet struct {
	Name     string
	Kind     Kind
	Field    string
	Size     int
	Interval float64
	Calendar string
}

// Facets returns the six dashboard facets in display order.
func Facets(f Fields) []Facet {
	return []Facet{
		{Name: TopEntities, Kind: KindTerms, Field: keyword(f.Entity), Size: TopEntitiesSize},
		{Name: Categories, Kind: KindTerms, Field: keyword(f.Category), Size: CategoriesSize},
		{Name: AmountStats, Kind: KindStats, Field: f.Amount},
		{Name: CreatedPerYear, Kind: KindDateHistogram, Field: f.Created, Calendar: CalendarYear},
		{Name: UpdatedPerYear, Kind: KindDateHistogram, Field: f.Updated, Calendar: CalendarYear},
		{Name: AmountHistogram, Kind: KindHistogram, Field: f.Amount, Interval: AmountHistogramStep},
	}
}

func keyword(field string) string {
	if strings.HasSuffix(field, query.KeywordSuffix) {
		return field
	}
	return field + query.KeywordSuffix
}

// Payload builds a size=0 search carrying only this facet's aggregation.
func (f Facet) Payload() query.Payload {
	params := map[string]any{"field": f.Field}
	switch f.Kind {
	case KindTerms:
		params["size"] = f.Size
	case KindDateHistogram:
		params["calendar_interval"] = f.Calendar
	case KindHistogram:
		params["interval"] = f.Interval
	}
	return query.Payload{
		"size": 0,
		"aggs": map[string]any{
			f.Name: map[string]any{string(f.Kind): params},
		},
	}
}
