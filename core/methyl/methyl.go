// core/methyl/methyl.go
package methyl

import (
	"fmt"
	"math"

	"methdiff-core/array"
	"methdiff-core/matrix"
)

// BetaOffset stabilizes the beta denominator for dim probes, matching the
// convention used by array preprocessing pipelines.
const BetaOffset = 100

// MOffset guards the log-ratio against zero intensities.
const MOffset = 1

// Signals holds per-(probe,sample) methylated/unmethylated intensities for
// the probes whose bead addresses were present in the scanned matrices.
// Probes without a usable address are listed in Skipped and appear nowhere
// downstream.
type Signals struct {
	Probes  []array.Probe // retained probes, annotation order
	Meth    *matrix.Matrix
	Unmeth  *matrix.Matrix
	Skipped []string // probe IDs absent from the intensity matrices
}

// Extract resolves bead addresses into methylated/unmethylated signal
// matrices indexed probe x sample.
//
// Type II probes read one bead in both channels: green carries the
// methylated signal, red the unmethylated. Type I probes read two beads in
// their declared channel: AddressB is the methylated allele, AddressA the
// unmethylated one. Missing intensities stay NaN.
func Extract(probes []array.Probe, red, grn *matrix.Matrix) (*Signals, error) {
	if !red.SameShape(grn) {
		return nil, fmt.Errorf("red and green matrices disagree on addresses or samples")
	}

	kept := make([]array.Probe, 0, len(probes))
	var skipped []string
	for _, p := range probes {
		if _, ok := red.RowIndex(p.AddressA); !ok {
			skipped = append(skipped, p.ID)
			continue
		}
		if p.Type == array.TypeI {
			if _, ok := red.RowIndex(p.AddressB); !ok {
				skipped = append(skipped, p.ID)
				continue
			}
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no annotated probe has intensities in the supplied matrices")
	}

	ids := make([]string, len(kept))
	for i, p := range kept {
		ids[i] = p.ID
	}
	meth, err := matrix.New(ids, red.ColIDs)
	if err != nil {
		return nil, err
	}
	unmeth, err := matrix.New(ids, red.ColIDs)
	if err != nil {
		return nil, err
	}

	for i, p := range kept {
		for j := range red.ColIDs {
			m, u := signalsAt(p, red, grn, j)
			meth.Set(i, j, m)
			unmeth.Set(i, j, u)
		}
	}
	return &Signals{Probes: kept, Meth: meth, Unmeth: unmeth, Skipped: skipped}, nil
}

func signalsAt(p array.Probe, red, grn *matrix.Matrix, col int) (meth, unmeth float64) {
	switch p.Type {
	case array.TypeII:
		a, _ := red.RowIndex(p.AddressA)
		return grn.At(a, col), red.At(a, col)
	default: // Type I, single declared channel
		ch := red
		if p.Channel == array.ChannelGrn {
			ch = grn
		}
		a, _ := ch.RowIndex(p.AddressA)
		b, _ := ch.RowIndex(p.AddressB)
		return ch.At(b, col), ch.At(a, col)
	}
}

// Beta computes methylation fractions M/(M+U+offset). Cells with missing or
// nonpositive total signal are NaN, never zero.
func Beta(s *Signals) *matrix.Matrix {
	out, _ := matrix.New(s.Meth.RowIDs, s.Meth.ColIDs)
	for i := 0; i < s.Meth.NRows(); i++ {
		for j := 0; j < s.Meth.NCols(); j++ {
			m, u := s.Meth.At(i, j), s.Unmeth.At(i, j)
			if math.IsNaN(m) || math.IsNaN(u) || m+u <= 0 {
				continue // stays NaN
			}
			out.Set(i, j, m/(m+u+BetaOffset))
		}
	}
	return out
}

// MValue computes log2 methylated/unmethylated ratios.
func MValue(s *Signals) *matrix.Matrix {
	out, _ := matrix.New(s.Meth.RowIDs, s.Meth.ColIDs)
	for i := 0; i < s.Meth.NRows(); i++ {
		for j := 0; j < s.Meth.NCols(); j++ {
			m, u := s.Meth.At(i, j), s.Unmeth.At(i, j)
			if math.IsNaN(m) || math.IsNaN(u) || m < 0 || u < 0 {
				continue
			}
			out.Set(i, j, math.Log2((m+MOffset)/(u+MOffset)))
		}
	}
	return out
}
