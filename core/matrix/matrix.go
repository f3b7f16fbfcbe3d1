// core/matrix/matrix.go
package matrix

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major float64 matrix with named rows and columns.
// Missing values are NaN; they propagate and are never coerced to zero.
// Row and column IDs are unique by construction.
type Matrix struct {
	RowIDs []string
	ColIDs []string
	data   []float64

	rowIdx map[string]int
	colIdx map[string]int
}

// New allocates a Matrix filled with NaN. It fails on duplicate IDs so a
// later join cannot silently duplicate rows.
func New(rowIDs, colIDs []string) (*Matrix, error) {
	ri, err := index(rowIDs, "row")
	if err != nil {
		return nil, err
	}
	ci, err := index(colIDs, "column")
	if err != nil {
		return nil, err
	}
	m := &Matrix{
		RowIDs: append([]string(nil), rowIDs...),
		ColIDs: append([]string(nil), colIDs...),
		data:   make([]float64, len(rowIDs)*len(colIDs)),
		rowIdx: ri,
		colIdx: ci,
	}
	for i := range m.data {
		m.data[i] = math.NaN()
	}
	return m, nil
}

func index(ids []string, kind string) (map[string]int, error) {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("empty %s ID at position %d", kind, i)
		}
		if prev, dup := idx[id]; dup {
			return nil, fmt.Errorf("duplicate %s ID %q (positions %d and %d)", kind, id, prev, i)
		}
		idx[id] = i
	}
	return idx, nil
}

func (m *Matrix) NRows() int { return len(m.RowIDs) }
func (m *Matrix) NCols() int { return len(m.ColIDs) }

// At returns the value at (row i, col j).
func (m *Matrix) At(i, j int) float64 { return m.data[i*len(m.ColIDs)+j] }

// Set stores v at (row i, col j).
func (m *Matrix) Set(i, j int, v float64) { m.data[i*len(m.ColIDs)+j] = v }

// Row returns row i as a shared slice; callers must not grow it.
func (m *Matrix) Row(i int) []float64 {
	w := len(m.ColIDs)
	return m.data[i*w : (i+1)*w]
}

// RowIndex resolves a row ID.
func (m *Matrix) RowIndex(id string) (int, bool) {
	i, ok := m.rowIdx[id]
	return i, ok
}

// ColIndex resolves a column ID.
func (m *Matrix) ColIndex(id string) (int, bool) {
	j, ok := m.colIdx[id]
	return j, ok
}

// Lookup fetches a value by IDs; NaN when either ID is absent.
func (m *Matrix) Lookup(rowID, colID string) float64 {
	i, ok := m.rowIdx[rowID]
	if !ok {
		return math.NaN()
	}
	j, ok := m.colIdx[colID]
	if !ok {
		return math.NaN()
	}
	return m.At(i, j)
}

// SelectColumns returns a copy restricted to the given columns, in the
// given order. Every requested ID must exist.
func (m *Matrix) SelectColumns(colIDs []string) (*Matrix, error) {
	out, err := New(m.RowIDs, colIDs)
	if err != nil {
		return nil, err
	}
	for j, id := range colIDs {
		src, ok := m.colIdx[id]
		if !ok {
			return nil, fmt.Errorf("no column %q", id)
		}
		for i := range m.RowIDs {
			out.Set(i, j, m.At(i, src))
		}
	}
	return out, nil
}

// SameShape reports whether b has identical row and column IDs in the same
// order. Stage boundaries use it to fail fast on mismatched inputs.
func (m *Matrix) SameShape(b *Matrix) bool {
	if len(m.RowIDs) != len(b.RowIDs) || len(m.ColIDs) != len(b.ColIDs) {
		return false
	}
	for i := range m.RowIDs {
		if m.RowIDs[i] != b.RowIDs[i] {
			return false
		}
	}
	for j := range m.ColIDs {
		if m.ColIDs[j] != b.ColIDs[j] {
			return false
		}
	}
	return true
}
