// internal/matrixio/matrixio.go
// Package matrixio loads intensity matrices and checks them against the
// sample sheet before any analysis starts.
package matrixio

import (
	"fmt"
	"strings"

	"methdiff-core/array"
	"methdiff-core/matrix"
)

// Load reads a matrix (.tsv, .tsv.gz or .npy with sidecars) and verifies
// that every sheet sample has an intensity column. The result holds the
// sheet samples only, in sheet order: columns for samples outside the
// sheet are dropped here so they never reach the detection background,
// the QC union, or the normalization reference. Missing columns are a
// hard error.
func Load(path string, samples []array.Sample) (*matrix.Matrix, error) {
	m, err := matrix.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var missing []string
	ids := make([]string, 0, len(samples))
	for _, s := range samples {
		if _, ok := m.ColIndex(s.ID); !ok {
			missing = append(missing, s.ID)
			continue
		}
		ids = append(ids, s.ID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: no intensity column for sample(s) %s",
			path, strings.Join(missing, ", "))
	}
	return m.SelectColumns(ids)
}
