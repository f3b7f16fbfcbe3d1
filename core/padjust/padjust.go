// core/padjust/padjust.go

// Package padjust adjusts raw p-values for multiple testing. Both
// procedures return a slice aligned one-to-one with the input; NaN inputs
// (undefined tests) stay NaN and do not count toward N.
package padjust

import (
	"math"
	"sort"
)

// N reports the number of tests a slice represents: its defined (non-NaN)
// entries. Callers must pass the exact tested set, never the whole array.
func N(p []float64) int {
	n := 0
	for _, v := range p {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Bonferroni computes min(1, p*N) per entry.
func Bonferroni(p []float64) []float64 {
	n := float64(N(p))
	out := make([]float64, len(p))
	for i, v := range p {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		a := v * n
		if a > 1 {
			a = 1
		}
		out[i] = a
	}
	return out
}

// BenjaminiHochberg computes the step-up FDR adjustment: with p-values
// sorted ascending and ranked k=1..N, adjusted_(k) = min over j>=k of
// p_(j)*N/j, clipped to [0,1], then mapped back to the input order.
func BenjaminiHochberg(p []float64) []float64 {
	out := make([]float64, len(p))
	idx := make([]int, 0, len(p))
	for i, v := range p {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		idx = append(idx, i)
	}
	n := len(idx)
	if n == 0 {
		return out
	}
	sort.Slice(idx, func(a, b int) bool { return p[idx[a]] < p[idx[b]] })

	// Walk from the largest p down, carrying the running minimum.
	min := math.Inf(1)
	for k := n - 1; k >= 0; k-- {
		a := p[idx[k]] * float64(n) / float64(k+1)
		if a < min {
			min = a
		}
		v := min
		if v > 1 {
			v = 1
		}
		out[idx[k]] = v
	}
	return out
}
