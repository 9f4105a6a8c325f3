// Package view loads named grid view definitions from CUE files.
//
// A view bundles a page size with default sort and filter rules so
// operators can keep reusable grid configurations next to their data:
//
//	view: "open-bugs": {
//		pageSize: 10
//		sorters: [{column: "dateCreated", direction: "desc"}]
//		filters: [{column: "subject", relation: "contains", value: "bug"}]
//	}
//
// Unknown columns are allowed - they degrade in the query evaluator -
// but directions, relations, and page sizes are validated at load
// time so a typo fails the load, not the first fetch.
package view

import "github.com/helpdesklite/ticketgrid/internal/rule"

// View is one named grid configuration.
type View struct {
	Name     string
	PageSize int
	Sorters  []rule.Sort
	Filters  []rule.Filter
}
