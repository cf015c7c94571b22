// Package query implements the search operations over a loaded dataset: the
// per-category filter and the global property search. Every function here is
// pure; callers own the dataset and any view state.
package query

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/sdkview/internal/offset"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// MinTermLength is the shortest term that triggers filtering.
const MinTermLength = 2

// Match reason tags. Property reasons carry a truncated name suffix.
const (
	ReasonName        = "name"
	ReasonOffsetName  = "offset name"
	ReasonOffsetValue = "offset value"
	reasonProperty    = "property: "
	reasonOffsetIn    = "offset in "
)

const (
	propertyNameLimit = 20
	offsetNameLimit   = 15
	summaryReasons    = 2
)

// Flags selects which parts of a record the filter inspects.
type Flags struct {
	Names      bool `json:"names"`
	Properties bool `json:"properties"`
	Offsets    bool `json:"offsets"`
}

// DefaultFlags enables every filter.
func DefaultFlags() Flags {
	return Flags{Names: true, Properties: true, Offsets: true}
}

// FilterResult is the derived view of one category under a term and flags.
type FilterResult struct {
	// Visible holds the indexes of the visible records in dataset order.
	Visible []int
	// Reasons maps a visible record index to its distinct match reasons.
	Reasons map[int][]string
	// MatchCount is the number of matching records.
	MatchCount int
	// TotalMatches is the sum of raw, non-deduplicated reason counts.
	TotalMatches int
	// Applied is false when the term was empty or too short to filter on.
	Applied bool
}

// Summary renders the first two reasons of a record, with a trailing "..."
// when more exist.
func (r FilterResult) Summary(i int) string {
	reasons := r.Reasons[i]
	if len(reasons) <= summaryReasons {
		return strings.Join(reasons, ", ")
	}
	return strings.Join(reasons[:summaryReasons], ", ") + "..."
}

// Info is the status line shown under the search box.
func (r FilterResult) Info() string {
	if !r.Applied {
		return ""
	}
	if r.MatchCount == 0 {
		return "No matches found"
	}
	return fmt.Sprintf("Found %d items (%d matches)", r.MatchCount, r.TotalMatches)
}

// Highlighted reports whether record i matched the term.
func (r FilterResult) Highlighted(i int) bool {
	_, ok := r.Reasons[i]
	return ok
}

// NormalizeTerm trims and lowercases a raw search term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// FilterCategory filters the records of category c by term. Terms shorter
// than MinTermLength leave every record visible and unannotated with
// Applied set to false.
func FilterCategory(c sdk.Category, records []sdk.Record, term string, flags Flags) FilterResult {
	term = NormalizeTerm(term)
	if len([]rune(term)) < MinTermLength {
		return resetView(len(records))
	}

	res := FilterResult{
		Visible: make([]int, 0),
		Reasons: make(map[int][]string),
		Applied: true,
	}
	for i := range records {
		raw := recordReasons(c, &records[i], term, flags)
		if len(raw) == 0 {
			continue
		}
		res.Visible = append(res.Visible, i)
		res.Reasons[i] = dedupe(raw)
		res.MatchCount++
		res.TotalMatches += len(raw)
	}
	return res
}

func resetView(n int) FilterResult {
	res := FilterResult{
		Visible: make([]int, n),
		Reasons: make(map[int][]string),
	}
	for i := range res.Visible {
		res.Visible[i] = i
	}
	return res
}

func recordReasons(c sdk.Category, rec *sdk.Record, term string, flags Flags) []string {
	var reasons []string
	if flags.Names && contains(rec.Name, term) {
		reasons = append(reasons, ReasonName)
	}

	if c == sdk.CategoryOffsets {
		for _, o := range rec.Offsets() {
			if flags.Names && contains(o.Name, term) {
				reasons = append(reasons, ReasonOffsetName)
			}
			if flags.Offsets && strings.Contains(strings.ToLower(offset.Hex(offset.Parse(o.Value))), term) {
				reasons = append(reasons, ReasonOffsetValue)
			}
		}
		return reasons
	}

	if !flags.Properties && !flags.Offsets {
		return reasons
	}
	for _, e := range rec.Entries {
		switch v := e.(type) {
		case sdk.PropertyEntry:
			if flags.Properties && contains(v.Name, term) {
				reasons = append(reasons, reasonProperty+truncate(v.Name, propertyNameLimit))
			}
			if flags.Offsets && v.HasOffset && strings.Contains(offset.LowerHex(v.Offset), term) {
				reasons = append(reasons, reasonOffsetIn+truncate(v.Name, offsetNameLimit))
			}
		case sdk.EnumEntry:
			if !flags.Properties {
				continue
			}
			for _, ev := range v.Values {
				if contains(ev.Name, term) {
					reasons = append(reasons, reasonProperty+truncate(ev.Name, propertyNameLimit))
				}
			}
		case sdk.FunctionEntry:
			if flags.Properties && contains(v.Name, term) {
				reasons = append(reasons, reasonProperty+truncate(v.Name, propertyNameLimit))
			}
		}
	}
	return reasons
}

func contains(name, term string) bool {
	return name != "" && strings.Contains(strings.ToLower(name), term)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func dedupe(reasons []string) []string {
	seen := make(map[string]struct{}, len(reasons))
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
