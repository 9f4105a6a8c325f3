package cli

import (
	"fmt"
	"strings"

	"github.com/helpdesklite/ticketgrid/internal/rule"
)

// parseSortSpecs converts "column:direction" specs into sort rules.
// The direction defaults to ascending when omitted.
func parseSortSpecs(specs []string) ([]rule.Sort, error) {
	var sorters []rule.Sort
	for _, spec := range specs {
		column, dirStr, hasDir := strings.Cut(spec, ":")
		if strings.TrimSpace(column) == "" {
			return nil, fmt.Errorf("invalid sort spec %q: expected column[:asc|desc]", spec)
		}

		direction := rule.Ascending
		if hasDir {
			var err error
			direction, err = rule.ParseDirection(dirStr)
			if err != nil {
				return nil, fmt.Errorf("invalid sort spec %q: %w", spec, err)
			}
		}
		sorters = append(sorters, rule.Sort{Column: strings.TrimSpace(column), Direction: direction})
	}
	return sorters, nil
}

// parseFilterSpecs converts "column:relation:value" specs into filter
// rules. The value may contain colons; only the first two split.
func parseFilterSpecs(specs []string) ([]rule.Filter, error) {
	var filters []rule.Filter
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid filter spec %q: expected column:relation:value", spec)
		}

		relation, err := rule.ParseRelation(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid filter spec %q: %w", spec, err)
		}
		filters = append(filters, rule.Filter{
			Column:   strings.TrimSpace(parts[0]),
			Relation: relation,
			Value:    parts[2],
		})
	}
	return filters, nil
}
