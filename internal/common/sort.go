// internal/common/sort.go
package common

import (
	"math"
	"sort"

	"methdiff/internal/pipeline"
)

// LessResult defines a stable order for results (for -sort): ascending raw
// p-value, undefined tests last, probe ID as tiebreak.
func LessResult(a, b pipeline.Result) bool {
	pa, pb := a.Test.P, b.Test.P
	na, nb := math.IsNaN(pa), math.IsNaN(pb)
	switch {
	case na && nb:
		return a.Probe < b.Probe
	case na:
		return false
	case nb:
		return true
	}
	if pa != pb {
		return pa < pb
	}
	return a.Probe < b.Probe
}

func SortResults(rs []pipeline.Result) {
	sort.Slice(rs, func(i, j int) bool { return LessResult(rs[i], rs[j]) })
}
