// core/join/join.go

// Package join assembles the long-format analysis table: one row per
// (probe, sample) that survived QC, carrying annotation, raw and
// normalized values.
package join

import (
	"fmt"

	"methdiff-core/array"
	"methdiff-core/matrix"
	"methdiff-core/qc"
)

// Row is one (probe, sample) observation of the joined table.
type Row struct {
	Probe string
	Chr   string
	Pos   int
	Type  array.ProbeType

	Sample string
	Group  string

	Beta     float64 // raw methylation fraction
	MVal     float64 // raw log-ratio
	NormBeta float64 // normalized methylation fraction
	DetP     float64 // detection p-value
}

// Build left-joins the annotation onto the value matrices and anti-joins
// the failed probe set. Every source must be keyed uniquely: probe IDs are
// unique by construction of the matrices, samples by the sheet loader, and
// the probe list is re-validated here because a duplicate key would
// silently duplicate rows instead of failing.
//
// Rows come out grouped by probe in probe order, samples in matrix column
// order, so downstream grouping never needs a re-sort.
func Build(probes []array.Probe, samples []array.Sample, beta, mval, norm, detp *matrix.Matrix, failed qc.FailedProbeSet) ([]Row, error) {
	for _, m := range []*matrix.Matrix{mval, norm, detp} {
		if !beta.SameShape(m) {
			return nil, fmt.Errorf("join: value matrices disagree on probes or samples")
		}
	}

	seen := make(map[string]struct{}, len(probes))
	for _, p := range probes {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("join: duplicate probe key %q in annotation", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	groupOf := make(map[string]string, len(samples))
	for _, s := range samples {
		if _, dup := groupOf[s.ID]; dup {
			return nil, fmt.Errorf("join: duplicate sample key %q in sheet", s.ID)
		}
		groupOf[s.ID] = s.Group
	}
	// Loaders subset matrices to sheet samples, so a leftover column here
	// means a miswired caller, not user input.
	for _, id := range beta.ColIDs {
		if _, ok := groupOf[id]; !ok {
			return nil, fmt.Errorf("join: sample %q has intensities but no sample-sheet entry", id)
		}
	}

	out := make([]Row, 0, len(probes)*len(beta.ColIDs))
	for _, p := range probes {
		if failed.Contains(p.ID) {
			continue // excluded globally, even on samples where it passed
		}
		ri, ok := beta.RowIndex(p.ID)
		if !ok {
			continue // annotation row without measurements: left join keeps nothing to add
		}
		for j, sid := range beta.ColIDs {
			out = append(out, Row{
				Probe:    p.ID,
				Chr:      p.Chr,
				Pos:      p.Pos,
				Type:     p.Type,
				Sample:   sid,
				Group:    groupOf[sid],
				Beta:     beta.At(ri, j),
				MVal:     mval.At(ri, j),
				NormBeta: norm.At(ri, j),
				DetP:     detp.At(ri, j),
			})
		}
	}
	return out, nil
}

// Probes returns the distinct probe IDs of rows, in first-seen order.
func Probes(rows []Row) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		if _, ok := seen[r.Probe]; ok {
			continue
		}
		seen[r.Probe] = struct{}{}
		out = append(out, r.Probe)
	}
	return out
}
