// Package classify normalizes free-text categorical source values into
// canonical enum variants using the per-dataset synonym lists carried
// in the mapping table.
//
// Every family except country is a closed vocabulary: a value no
// synonym list claims raises UnknownCategoryError instead of silently
// defaulting, because a silent default would mis-classify buildings
// without surfacing the configuration gap.
package classify

import (
	"fmt"
	"strings"

	"lcaingest/pkg/mapping"
)

// UnknownCategoryError reports a raw value that no configured synonym
// of a closed enum family matches. Fixing it means extending the
// mapping table, so the message carries the family and the raw input.
type UnknownCategoryError struct {
	Dataset string
	Family  string
	Raw     string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("dataset %q: unknown %s: %q", e.Dataset, e.Family, e.Raw)
}

// Classifier matches raw values against the enum families of one
// mapping table.
type Classifier struct {
	table *mapping.Table
}

// New returns a classifier over the given table.
func New(table *mapping.Table) *Classifier {
	return &Classifier{table: table}
}

// Single classifies a raw value within a single-valued family and
// returns the matching variant name. Matching is case-insensitive
// membership in each variant's synonym list, in table order; the first
// matching variant wins. Overlapping synonym lists are a config defect
// caught by tests over the mapping data, not here.
func (c *Classifier) Single(family, raw string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, variant := range c.table.Family(family) {
		if matches(variant.Synonyms, needle) {
			return variant.Name, nil
		}
	}
	return "", &UnknownCategoryError{Dataset: c.table.Dataset, Family: family, Raw: raw}
}

// Multi classifies a raw value within a many-valued family (building
// typology) and returns every matching variant in table order.
func (c *Classifier) Multi(family, raw string) ([]string, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	var names []string
	for _, variant := range c.table.Family(family) {
		if matches(variant.Synonyms, needle) {
			names = append(names, variant.Name)
		}
	}
	if len(names) == 0 {
		return nil, &UnknownCategoryError{Dataset: c.table.Dataset, Family: family, Raw: raw}
	}
	return names, nil
}

func matches(synonyms []string, needle string) bool {
	for _, synonym := range synonyms {
		if strings.ToLower(synonym) == needle {
			return true
		}
	}
	return false
}
