// core/detect/detect.go

// Package detect assigns a detection p-value to every (probe, sample) cell:
// the probability that a signal as bright as the probe's total intensity
// would arise from background alone. High values flag unreliable
// measurements; they are not hypothesis-test p-values.
package detect

import (
	"fmt"
	"math"
	"sort"

	"methdiff-core/matrix"
)

// DefaultBackgroundFraction is the share of dimmest probes per sample used
// as the empirical background distribution.
const DefaultBackgroundFraction = 0.05

// PValues computes a detection p-value matrix of the same shape as the
// signal matrices. Per sample, the background is the dimmest fraction of
// total (methylated+unmethylated) intensities; a cell's p-value is the
// add-one-smoothed upper-tail ECDF of its total against that background.
// Cells with missing signal get p = 1. Deterministic for a given input.
func PValues(meth, unmeth *matrix.Matrix, backgroundFraction float64) (*matrix.Matrix, error) {
	if !meth.SameShape(unmeth) {
		return nil, fmt.Errorf("methylated and unmethylated matrices disagree on probes or samples")
	}
	if backgroundFraction <= 0 || backgroundFraction > 1 {
		return nil, fmt.Errorf("background fraction must be in (0,1], got %g", backgroundFraction)
	}

	out, err := matrix.New(meth.RowIDs, meth.ColIDs)
	if err != nil {
		return nil, err
	}

	nr, nc := meth.NRows(), meth.NCols()
	totals := make([]float64, nr)
	for j := 0; j < nc; j++ {
		valid := totals[:0]
		for i := 0; i < nr; i++ {
			t := meth.At(i, j) + unmeth.At(i, j) // NaN propagates
			if !math.IsNaN(t) {
				valid = append(valid, t)
			}
		}
		if len(valid) == 0 {
			for i := 0; i < nr; i++ {
				out.Set(i, j, 1)
			}
			continue
		}
		bg := background(valid, backgroundFraction)
		for i := 0; i < nr; i++ {
			t := meth.At(i, j) + unmeth.At(i, j)
			if math.IsNaN(t) {
				out.Set(i, j, 1)
				continue
			}
			// count of background values >= t, add-one smoothed so a
			// p-value is never exactly 0
			ge := len(bg) - sort.SearchFloat64s(bg, t)
			out.Set(i, j, float64(ge+1)/float64(len(bg)+1))
		}
	}
	return out, nil
}

// background returns the dimmest fraction of the totals, sorted ascending.
// The input slice is reordered.
func background(totals []float64, fraction float64) []float64 {
	sort.Float64s(totals)
	k := int(fraction * float64(len(totals)))
	if k < 1 {
		k = 1
	}
	bg := make([]float64, k)
	copy(bg, totals[:k])
	return bg
}
