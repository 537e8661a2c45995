// Package mode names the query intents a search request can carry.
package mode

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docgate/internal/domain"
)

// Mode is the query intent.
type Mode string

// Query intents.
const (
	// MatchAll returns every document, paged.
	MatchAll Mode = "match_all"
	// Exact matches the unanalyzed keyword form of one field.
	Exact      Mode = "exact"
	MultiMatch Mode = "multi_match"
)

// Default is the intent of a request that names none.
const Default = MultiMatch

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == MatchAll || m == Exact || m == MultiMatch
}

// Parse resolves a caller-supplied intent. Surrounding space is ignored and
// an empty value selects Default; matching is case-sensitive.
func Parse(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown query intent %q: %w", s, domain.ErrInvalidArgument)
	}
	return m, nil
}
