// core/qc/qc.go

// Package qc filters probes whose measurements cannot be trusted.
package qc

import (
	"methdiff-core/matrix"
)

// FailedProbeSet is the set of probe IDs excluded from every downstream
// table. Exclusion is global: one bad sample removes the probe everywhere.
type FailedProbeSet map[string]struct{}

// Contains reports membership.
func (s FailedProbeSet) Contains(probe string) bool {
	_, ok := s[probe]
	return ok
}

// IDs returns the members in matrix row order, given the source matrix.
func (s FailedProbeSet) IDs(detp *matrix.Matrix) []string {
	out := make([]string, 0, len(s))
	for _, id := range detp.RowIDs {
		if s.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// FailedProbes returns every probe whose detection p-value exceeds the
// threshold on at least one sample. The threshold is a run parameter, not a
// constant: the canonical analysis reuses its significance level here
// rather than the usual detection default.
func FailedProbes(detp *matrix.Matrix, threshold float64) FailedProbeSet {
	failed := make(FailedProbeSet)
	for i, id := range detp.RowIDs {
		row := detp.Row(i)
		for _, p := range row {
			// detect assigns p=1 to missing cells, so a probe with any
			// unmeasured sample fails here as well.
			if p > threshold {
				failed[id] = struct{}{}
				break
			}
		}
	}
	return failed
}
