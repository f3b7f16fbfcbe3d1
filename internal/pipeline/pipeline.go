// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"methdiff-core/join"
	"methdiff-core/ranktest"
)

// Config controls the parallel testing stage.
type Config struct {
	Workers   int // worker goroutines (<=0 treated as 1; callers resolve NumCPU)
	BatchSize int // probes per job; 0 picks a default

	// OnProgress, when non-nil, is called from worker goroutines with the
	// number of probes just finished. It must be safe for concurrent use.
	OnProgress func(n int)
}

// Result is one probe's test outcome. PBH and PBonf are filled by the
// caller after the whole batch finishes, since both need the full p-value
// vector.
type Result struct {
	Probe string
	Chr   string
	Pos   int
	Test  ranktest.Result
	PBH   float64
	PBonf float64
}

type probeData struct {
	id       string
	chr      string
	pos      int
	caseVals []float64
	ctrlVals []float64
}

// Input is the per-probe view of the joined table, split into the two
// comparison groups.
type Input struct {
	probes []probeData
}

// NProbes reports how many tests Run will perform.
func (in *Input) NProbes() int { return len(in.probes) }

// BuildInput partitions the joined rows by probe and group. Rows arrive
// grouped by probe (the joiner's contract), so a single pass suffices.
// Group labels that match no sample at all are a configuration error.
func BuildInput(rows []join.Row, caseGroup, controlGroup string) (*Input, error) {
	if caseGroup == controlGroup {
		return nil, fmt.Errorf("case and control groups are both %q", caseGroup)
	}
	in := &Input{}
	nCase, nCtrl := 0, 0
	for i := 0; i < len(rows); {
		j := i
		for j < len(rows) && rows[j].Probe == rows[i].Probe {
			j++
		}
		pd := probeData{id: rows[i].Probe, chr: rows[i].Chr, pos: rows[i].Pos}
		for _, r := range rows[i:j] {
			switch r.Group {
			case caseGroup:
				pd.caseVals = append(pd.caseVals, r.NormBeta)
				nCase++
			case controlGroup:
				pd.ctrlVals = append(pd.ctrlVals, r.NormBeta)
				nCtrl++
			}
		}
		in.probes = append(in.probes, pd)
		i = j
	}
	if nCase == 0 {
		return nil, fmt.Errorf("group %q matches no sample", caseGroup)
	}
	if nCtrl == 0 {
		return nil, fmt.Errorf("group %q matches no sample", controlGroup)
	}
	return in, nil
}

// Run tests every probe independently across a worker pool. Each worker
// reads a disjoint slice of the input and writes a disjoint slot of the
// output, so no locking is needed and completion order is irrelevant; the
// returned slice is in input probe order regardless. Either every probe
// gets a result or Run returns an error.
func Run(ctx context.Context, cfg Config, in *Input) ([]Result, error) {
	n := len(in.probes)
	if n == 0 {
		return nil, nil
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	batch := cfg.BatchSize
	if batch < 1 {
		batch = 256
	}

	results := make([]Result, n)
	type span struct{ lo, hi int }
	jobs := make(chan span, workers*2)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case sp, ok := <-jobs:
					if !ok {
						return nil
					}
					for i := sp.lo; i < sp.hi; i++ {
						pd := &in.probes[i]
						results[i] = Result{
							Probe: pd.id,
							Chr:   pd.chr,
							Pos:   pd.pos,
							Test:  ranktest.MannWhitney(pd.caseVals, pd.ctrlVals),
						}
					}
					if cfg.OnProgress != nil {
						cfg.OnProgress(sp.hi - sp.lo)
					}
				}
			}
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for lo := 0; lo < n; lo += batch {
			hi := lo + batch
			if hi > n {
				hi = n
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- span{lo, hi}:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
