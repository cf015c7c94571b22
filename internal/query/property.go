package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ziadkadry99/sdkview/internal/offset"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// UnknownType is reported for properties without a type descriptor.
const UnknownType = "Unknown"

// PropertyMatch is one hit of the global property search.
type PropertyMatch struct {
	PropName  string       `json:"prop_name"`
	ClassName string       `json:"class_name"`
	Category  sdk.Category `json:"category"`
	Type      string       `json:"type"`
	Offset    *uint64      `json:"offset,omitempty"`
	HexOffset string       `json:"hex_offset"`
}

// PropertyResults is the outcome of SearchGlobalProperties.
type PropertyResults struct {
	Results []PropertyMatch `json:"results"`
	Count   int             `json:"count"`
	Query   string          `json:"query"`
	// Empty is set when the query was blank.
	Empty bool `json:"empty"`
}

// Info is the status line shown above the results.
func (r PropertyResults) Info() string {
	if r.Empty {
		return ""
	}
	if r.Count == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", r.Count)
}

// Message is the placeholder shown when a non-blank query found nothing.
func (r PropertyResults) Message() string {
	if r.Empty || r.Count > 0 {
		return ""
	}
	return fmt.Sprintf("No properties found for %q", r.Query)
}

// SearchGlobalProperties finds every class and struct property whose name
// contains query, sorted by owning record then property name.
func SearchGlobalProperties(classes, structs []sdk.Record, query string) PropertyResults {
	q := NormalizeTerm(query)
	if q == "" {
		return PropertyResults{Results: []PropertyMatch{}, Empty: true}
	}

	results := make([]PropertyMatch, 0)
	for _, src := range []struct {
		cat  sdk.Category
		recs []sdk.Record
	}{
		{sdk.CategoryClasses, classes},
		{sdk.CategoryStructs, structs},
	} {
		for i := range src.recs {
			for _, p := range src.recs[i].Properties() {
				if !strings.Contains(strings.ToLower(p.Name), q) {
					continue
				}
				results = append(results, newPropertyMatch(src.cat, src.recs[i].Name, p))
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ClassName != results[j].ClassName {
			return results[i].ClassName < results[j].ClassName
		}
		return results[i].PropName < results[j].PropName
	})
	return PropertyResults{Results: results, Count: len(results), Query: strings.TrimSpace(query)}
}

func newPropertyMatch(c sdk.Category, owner string, p sdk.PropertyEntry) PropertyMatch {
	m := PropertyMatch{
		PropName:  p.Name,
		ClassName: owner,
		Category:  c,
		Type:      p.Type,
	}
	if m.Type == "" {
		m.Type = UnknownType
	}
	switch {
	case p.HasOffset:
		v := p.Offset
		m.Offset = &v
		m.HexOffset = offset.Hex(v)
	case p.OffsetRaw != nil:
		v := offset.Parse(p.OffsetRaw)
		m.Offset = &v
		m.HexOffset = offset.Hex(v)
	}
	return m
}
