// Package rule defines the value types for grid sort and filter criteria.
//
// Rules are plain immutable values. Consumers that hold rule slices copy
// them at the boundary so later mutation by the caller cannot change
// committed state.
package rule

import (
	"fmt"
	"strings"
)

// Direction is the ordering direction of a sort rule.
type Direction string

const (
	// Ascending orders smallest-first.
	Ascending Direction = "asc"
	// Descending orders largest-first.
	Descending Direction = "desc"
)

// ParseDirection converts a string form ("asc"/"desc", case-insensitive)
// into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q: must be asc or desc", s)
	}
}

// String returns the canonical short form.
func (d Direction) String() string { return string(d) }

// Relation is the comparison a filter rule applies between a record field
// and the rule's value.
type Relation string

const (
	// Equals matches when field and value are equal.
	Equals Relation = "equals"
	// Contains matches when the field contains the value as a substring.
	Contains Relation = "contains"
	// StartsWith matches when the field begins with the value.
	StartsWith Relation = "startswith"
	// EndsWith matches when the field ends with the value.
	EndsWith Relation = "endswith"
)

// ParseRelation converts a string form into a Relation. Accepted spellings
// are case-insensitive; "starts_with"/"ends_with" are also recognized.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equals", "eq":
		return Equals, nil
	case "contains":
		return Contains, nil
	case "startswith", "starts_with":
		return StartsWith, nil
	case "endswith", "ends_with":
		return EndsWith, nil
	default:
		return "", fmt.Errorf("unknown filter relation %q: must be one of equals, contains, startswith, endswith", s)
	}
}

// String returns the canonical form.
func (r Relation) String() string { return string(r) }

// Sort orders a record collection by one column.
//
// An ordered sequence of Sort rules forms a tie-break chain: rules apply
// in list order, and the first rule whose comparison discriminates decides
// the outcome. Records equal under every rule keep their relative input
// order (stable sort).
type Sort struct {
	Column    string    `json:"column" yaml:"column"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Filter restricts a record collection to rows whose Column field stands
// in Relation to Value. A set of filters is AND-combined; an empty set
// matches every record. Matching is case-insensitive string comparison
// after coercing both sides to string; an absent field reads as "".
type Filter struct {
	Column   string   `json:"column" yaml:"column"`
	Relation Relation `json:"relation" yaml:"relation"`
	Value    string   `json:"value" yaml:"value"`
}

// DefaultSortColumn is the column the default sort chain orders by.
const DefaultSortColumn = "dateCreated"

// DefaultSorters returns the sort chain a grid starts with: newest
// tickets first.
func DefaultSorters() []Sort {
	return []Sort{{Column: DefaultSortColumn, Direction: Descending}}
}

// CopySorters returns an independent copy of a sort chain. A nil input
// yields nil.
func CopySorters(sorters []Sort) []Sort {
	if sorters == nil {
		return nil
	}
	out := make([]Sort, len(sorters))
	copy(out, sorters)
	return out
}

// CopyFilters returns an independent copy of a filter set. A nil input
// yields nil.
func CopyFilters(filters []Filter) []Filter {
	if filters == nil {
		return nil
	}
	out := make([]Filter, len(filters))
	copy(out, filters)
	return out
}
