// Package query evaluates sort and filter rules against record
// collections.
//
// Both entry points are pure: inputs are never mutated, and an empty
// rule set returns the input unchanged. Rules referencing unknown
// columns degrade (absent fields read as empty / sort lowest) rather
// than erroring.
package query

import (
	"slices"
	"strings"

	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/rule"
)

// Filter returns the records satisfying every rule (AND-combined). With
// no rules the input slice is returned as-is, preserving order. The
// input is never mutated.
func Filter(records []record.Record, rules []rule.Filter) []record.Record {
	if len(rules) == 0 {
		return records
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if matchesAll(r, rules) {
			out = append(out, r)
		}
	}
	return out
}

// matchesAll reports whether a record satisfies every filter rule.
func matchesAll(r record.Record, rules []rule.Filter) bool {
	for _, f := range rules {
		if !Matches(r, f) {
			return false
		}
	}
	return true
}

// Matches evaluates one filter rule against one record. Comparison is
// case-insensitive over the string coercion of the field; an absent
// field reads as "". An unknown relation matches nothing.
func Matches(r record.Record, f rule.Filter) bool {
	field := foldForMatch(fieldString(r[f.Column]))
	value := foldForMatch(f.Value)

	switch f.Relation {
	case rule.Equals:
		return field == value
	case rule.Contains:
		return strings.Contains(field, value)
	case rule.StartsWith:
		return strings.HasPrefix(field, value)
	case rule.EndsWith:
		return strings.HasSuffix(field, value)
	default:
		return false
	}
}

// Sort returns the records ordered by the tie-break chain: rules apply
// in list order and the first rule whose comparison discriminates
// decides. Records equal under every rule keep their relative input
// order. With no rules the input slice is returned as-is; otherwise a
// new slice is returned and the input is never mutated.
func Sort(records []record.Record, rules []rule.Sort) []record.Record {
	if len(rules) == 0 {
		return records
	}

	out := make([]record.Record, len(records))
	copy(out, records)

	slices.SortStableFunc(out, func(a, b record.Record) int {
		return compareChain(a, b, rules)
	})
	return out
}

// compareChain walks the tie-break chain until one rule discriminates.
func compareChain(a, b record.Record, rules []rule.Sort) int {
	for _, s := range rules {
		c := compareValues(a[s.Column], b[s.Column])
		if c == 0 {
			continue
		}
		if s.Direction == rule.Descending {
			return -c
		}
		return c
	}
	return 0
}
