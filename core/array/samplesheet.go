// core/array/samplesheet.go
package array

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Sample sheet columns, by header name (case-insensitive).
var sheetColumns = []string{"Sample_ID", "Group", "Slide", "Array_Row", "Array_Col"}

// LoadSampleSheet reads a CSV sample sheet. Sample IDs must be unique;
// duplicates are a fatal error because they would silently duplicate rows
// in every downstream join.
func LoadSampleSheet(path string) ([]Sample, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	r := csv.NewReader(fh)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: empty sample sheet", path)
	}

	col := make(map[string]int, len(recs[0]))
	for i, h := range recs[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range sheetColumns {
		if _, ok := col[strings.ToLower(want)]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, want)
		}
	}

	field := func(rec []string, name string) string {
		i := col[strings.ToLower(name)]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	seen := make(map[string]int, len(recs)-1)
	out := make([]Sample, 0, len(recs)-1)
	for ln, rec := range recs[1:] {
		s := Sample{
			ID:    field(rec, "Sample_ID"),
			Group: field(rec, "Group"),
			Slide: field(rec, "Slide"),
			Row:   field(rec, "Array_Row"),
			Col:   field(rec, "Array_Col"),
		}
		if s.ID == "" {
			return nil, fmt.Errorf("%s:%d empty Sample_ID", path, ln+2)
		}
		if s.Group == "" {
			return nil, fmt.Errorf("%s:%d sample %q has no group label", path, ln+2, s.ID)
		}
		if prev, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%s:%d duplicate Sample_ID %q (first at line %d)", path, ln+2, s.ID, prev)
		}
		seen[s.ID] = ln + 2
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}
	return out, nil
}
