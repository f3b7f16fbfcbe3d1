// core/qc/summary.go
package qc

import (
	"math"

	mfstats "github.com/montanaflynn/stats"

	"methdiff-core/matrix"
)

// SampleSummary describes detection quality for one sample.
type SampleSummary struct {
	Sample   string
	NProbes  int
	NMissing int // cells with no measured intensity at all
	NFailed  int // measured cells over the threshold in this sample alone
	MedianP  float64
	Q3P      float64
}

// Summarize computes per-sample detection summaries for logging. meth and
// unmeth are the signal matrices the detection p-values were computed
// from, same shape as detp; a cell with no measured intensity counts as
// missing rather than failed, even though detection assigns it p = 1 and
// the global filter excludes it. The per-sample failure counts here are
// diagnostic only; the binding filter is the FailedProbes union.
func Summarize(detp, meth, unmeth *matrix.Matrix, threshold float64) []SampleSummary {
	out := make([]SampleSummary, 0, detp.NCols())
	for j, sample := range detp.ColIDs {
		s := SampleSummary{Sample: sample, NProbes: detp.NRows()}
		vals := make([]float64, 0, detp.NRows())
		for i := 0; i < detp.NRows(); i++ {
			if math.IsNaN(meth.At(i, j) + unmeth.At(i, j)) {
				s.NMissing++
				continue
			}
			p := detp.At(i, j)
			if p > threshold {
				s.NFailed++
			}
			vals = append(vals, p)
		}
		s.MedianP = math.NaN()
		s.Q3P = math.NaN()
		if len(vals) > 0 {
			if med, err := mfstats.Median(vals); err == nil {
				s.MedianP = med
			}
			if q, err := mfstats.Quartile(vals); err == nil {
				s.Q3P = q.Q3
			}
		}
		out = append(out, s)
	}
	return out
}
