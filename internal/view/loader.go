package view

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/helpdesklite/ticketgrid/internal/rule"
)

// Load reads every CUE file in dir and returns the views declared
// under the top-level "view" struct, sorted by name. Validation
// failures in any view fail the whole load.
func Load(dir string) ([]View, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("views directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("views path %s is not a directory", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan views directory: %w", err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	relFiles := make([]string, len(cueFiles))
	for i, f := range cueFiles {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, fmt.Errorf("resolving CUE file path %s: %w", f, err)
		}
		relFiles[i] = rel
	}

	ctx := cuecontext.New()
	instances := load.Instances(relFiles, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	viewsVal := value.LookupPath(cue.ParsePath("view"))
	if !viewsVal.Exists() {
		return nil, fmt.Errorf("no top-level \"view\" struct in %s", dir)
	}

	iter, err := viewsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating views: %w", err)
	}

	var views []View
	for iter.Next() {
		name := iter.Label()
		v, err := parseView(name, iter.Value())
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", name, err)
		}
		views = append(views, v)
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("no views declared in %s", dir)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views, nil
}

// parseView decodes and validates one view struct.
func parseView(name string, v cue.Value) (View, error) {
	if strings.TrimSpace(name) == "" {
		return View{}, fmt.Errorf("view name must not be empty")
	}
	out := View{Name: name, PageSize: 10}

	if psVal := v.LookupPath(cue.ParsePath("pageSize")); psVal.Exists() {
		ps, err := psVal.Int64()
		if err != nil {
			return View{}, fmt.Errorf("pageSize: %w", err)
		}
		if ps < 1 {
			return View{}, fmt.Errorf("pageSize must be >= 1, got %d", ps)
		}
		out.PageSize = int(ps)
	}

	if sortersVal := v.LookupPath(cue.ParsePath("sorters")); sortersVal.Exists() {
		list, err := sortersVal.List()
		if err != nil {
			return View{}, fmt.Errorf("sorters: %w", err)
		}
		for list.Next() {
			s, err := parseSorter(list.Value())
			if err != nil {
				return View{}, fmt.Errorf("sorters[%d]: %w", len(out.Sorters), err)
			}
			out.Sorters = append(out.Sorters, s)
		}
	}

	if filtersVal := v.LookupPath(cue.ParsePath("filters")); filtersVal.Exists() {
		list, err := filtersVal.List()
		if err != nil {
			return View{}, fmt.Errorf("filters: %w", err)
		}
		for list.Next() {
			f, err := parseFilter(list.Value())
			if err != nil {
				return View{}, fmt.Errorf("filters[%d]: %w", len(out.Filters), err)
			}
			out.Filters = append(out.Filters, f)
		}
	}

	return out, nil
}

func parseSorter(v cue.Value) (rule.Sort, error) {
	column, err := stringField(v, "column")
	if err != nil {
		return rule.Sort{}, err
	}
	dirStr, err := stringField(v, "direction")
	if err != nil {
		return rule.Sort{}, err
	}
	direction, err := rule.ParseDirection(dirStr)
	if err != nil {
		return rule.Sort{}, err
	}
	return rule.Sort{Column: column, Direction: direction}, nil
}

func parseFilter(v cue.Value) (rule.Filter, error) {
	column, err := stringField(v, "column")
	if err != nil {
		return rule.Filter{}, err
	}
	relStr, err := stringField(v, "relation")
	if err != nil {
		return rule.Filter{}, err
	}
	relation, err := rule.ParseRelation(relStr)
	if err != nil {
		return rule.Filter{}, err
	}
	value, err := stringField(v, "value")
	if err != nil {
		return rule.Filter{}, err
	}
	return rule.Filter{Column: column, Relation: relation, Value: value}, nil
}

// stringField extracts a required string field from a CUE struct.
func stringField(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", fmt.Errorf("missing %q field", field)
	}
	s, err := fv.String()
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	if field == "column" && strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("column must not be empty")
	}
	return s, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
