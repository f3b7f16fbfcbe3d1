// core/ranktest/ranktest.go

// Package ranktest implements the two-sample Mann-Whitney U (Wilcoxon
// rank-sum) test.
//
// Method selection is fixed so p-values are reproducible to the last
// decimal: the exact U distribution is used when both groups have fewer
// than 50 observations and the pooled values contain no ties; otherwise
// the normal approximation with tie-corrected variance and a 0.5
// continuity correction is used. This mirrors the convention of the
// standard R implementation.
package ranktest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ExactLimit is the per-group size below which the exact distribution is
// used (absent ties).
const ExactLimit = 50

// Method records which p-value computation a Result used.
type Method string

const (
	MethodExact  Method = "exact"
	MethodNormal Method = "normal"
	MethodNone   Method = "none" // test undefined for this input
)

// Result is the outcome of one probe's test.
type Result struct {
	N1     int     // effective size of group 1 (NaN removed)
	N2     int     // effective size of group 2
	U      float64 // U statistic of group 1
	P      float64 // two-sided p-value; NaN when undefined
	Ties   bool
	Method Method
}

// MannWhitney runs the two-sided test of group1 against group2. NaN values
// are dropped from each group first; if either group ends up empty the
// result is undefined (P=NaN, Method=none) rather than an error, so one
// degenerate probe cannot abort a batch.
func MannWhitney(group1, group2 []float64) Result {
	a := dropNaN(group1)
	b := dropNaN(group2)
	r := Result{N1: len(a), N2: len(b), U: math.NaN(), P: math.NaN(), Method: MethodNone}
	if len(a) == 0 || len(b) == 0 {
		return r
	}

	ranks, tieSum, ties := midranks(a, b)
	r.Ties = ties

	// Rank sum of group 1 occupies the first len(a) slots.
	r1 := 0.0
	for _, rk := range ranks[:len(a)] {
		r1 += rk
	}
	n1, n2 := float64(len(a)), float64(len(b))
	u := r1 - n1*(n1+1)/2
	r.U = u

	if !ties && len(a) < ExactLimit && len(b) < ExactLimit {
		r.Method = MethodExact
		r.P = exactP(len(a), len(b), int(math.Round(u)))
		return r
	}

	r.Method = MethodNormal
	n := n1 + n2
	sigma2 := n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if sigma2 <= 0 {
		// Every pooled value identical: no ordering information.
		r.Method = MethodNone
		return r
	}
	z := u - n1*n2/2
	switch {
	case z > 0:
		z -= 0.5
	case z < 0:
		z += 0.5
	}
	z /= math.Sqrt(sigma2)
	p := 2 * distuv.UnitNormal.CDF(-math.Abs(z))
	if p > 1 {
		p = 1
	}
	r.P = p
	return r
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// midranks ranks the pooled sample (group a first, then b), assigning the
// average rank to ties. It also returns sum(t^3-t) over tie groups for the
// variance correction, and whether any tie occurred.
func midranks(a, b []float64) (ranks []float64, tieSum float64, ties bool) {
	n := len(a) + len(b)
	pooled := make([]float64, 0, n)
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)

	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	sort.Slice(ord, func(i, j int) bool { return pooled[ord[i]] < pooled[ord[j]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && pooled[ord[j]] == pooled[ord[i]] {
			j++
		}
		// positions i..j-1 share the midrank
		mid := float64(i+j+1) / 2 // average of ranks i+1..j
		for k := i; k < j; k++ {
			ranks[ord[k]] = mid
		}
		if t := float64(j - i); t > 1 {
			ties = true
			tieSum += t*t*t - t
		}
		i = j
	}
	return ranks, tieSum, ties
}
