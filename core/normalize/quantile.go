// core/normalize/quantile.go

// Package normalize makes methylation fractions comparable across samples.
package normalize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"methdiff-core/matrix"
)

// Quantile performs cross-sample quantile normalization of the value
// matrix, independently within each stratum (probes of the same bead
// chemistry share a stratum; the two chemistries have different intensity
// distributions and must not be mixed).
//
// Per stratum, the reference distribution is the mean of the per-sample
// sorted values, linearly interpolated where samples disagree on their
// non-missing counts. Each cell is replaced by the reference value at its
// within-sample quantile. NaN cells stay NaN and never influence the
// reference. Output is deterministic: ties sort by row order.
func Quantile(vals *matrix.Matrix, stratumOf func(rowID string) string) *matrix.Matrix {
	out, _ := matrix.New(vals.RowIDs, vals.ColIDs)

	strata := make(map[string][]int)
	order := make([]string, 0, 2)
	for i, id := range vals.RowIDs {
		s := stratumOf(id)
		if _, seen := strata[s]; !seen {
			order = append(order, s)
		}
		strata[s] = append(strata[s], i)
	}

	for _, s := range order {
		normalizeStratum(vals, out, strata[s])
	}
	return out
}

type cell struct {
	row int
	v   float64
}

func normalizeStratum(vals, out *matrix.Matrix, rows []int) {
	nc := vals.NCols()

	// Per sample: non-missing cells sorted by value (row order breaks ties).
	ranked := make([][]cell, nc)
	maxN := 0
	for j := 0; j < nc; j++ {
		cs := make([]cell, 0, len(rows))
		for _, i := range rows {
			if v := vals.At(i, j); !math.IsNaN(v) {
				cs = append(cs, cell{row: i, v: v})
			}
		}
		sort.Slice(cs, func(a, b int) bool {
			if cs[a].v != cs[b].v {
				return cs[a].v < cs[b].v
			}
			return cs[a].row < cs[b].row
		})
		ranked[j] = cs
		if len(cs) > maxN {
			maxN = len(cs)
		}
	}
	if maxN == 0 {
		return
	}

	sorted := make([][]float64, nc)
	for j := 0; j < nc; j++ {
		vs := make([]float64, len(ranked[j]))
		for i, c := range ranked[j] {
			vs[i] = c.v
		}
		sorted[j] = vs
	}

	// Reference: mean across samples of each quantile of the sorted values.
	ref := make([]float64, maxN)
	for k := range ref {
		q := quantileOfRank(k, maxN)
		sum, n := 0.0, 0
		for j := 0; j < nc; j++ {
			if len(sorted[j]) == 0 {
				continue
			}
			sum += stat.Quantile(q, stat.LinInterp, sorted[j], nil)
			n++
		}
		ref[k] = sum / float64(n)
	}

	for j := 0; j < nc; j++ {
		cs := ranked[j]
		for r, c := range cs {
			q := quantileOfRank(r, len(cs))
			out.Set(c.row, j, stat.Quantile(q, stat.LinInterp, ref, nil))
		}
	}
}

func quantileOfRank(rank, n int) float64 {
	if n == 1 {
		return 0.5
	}
	return float64(rank) / float64(n-1)
}
