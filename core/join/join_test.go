package join

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"methdiff-core/array"
	"methdiff-core/matrix"
	"methdiff-core/qc"
)

type fixture struct {
	probes  []array.Probe
	samples []array.Sample
	beta    *matrix.Matrix
	mval    *matrix.Matrix
	norm    *matrix.Matrix
	detp    *matrix.Matrix
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	probeIDs := []string{"cg1", "cg2", "cg3"}
	sampleIDs := []string{"DS1", "WT1"}

	mk := func() *matrix.Matrix {
		m, err := matrix.New(probeIDs, sampleIDs)
		require.NoError(t, err)
		for i := range probeIDs {
			for j := range sampleIDs {
				m.Set(i, j, float64(i*10+j))
			}
		}
		return m
	}
	return fixture{
		probes: []array.Probe{
			{ID: "cg1", Chr: "chr21", Pos: 100, Type: array.TypeII},
			{ID: "cg2", Chr: "chr21", Pos: 200, Type: array.TypeI},
			{ID: "cg3", Chr: "chrX", Pos: 300, Type: array.TypeII},
		},
		samples: []array.Sample{
			{ID: "DS1", Group: "DS"},
			{ID: "WT1", Group: "WT"},
		},
		beta: mk(), mval: mk(), norm: mk(), detp: mk(),
	}
}

func TestBuildJoinsAnnotationAndGroups(t *testing.T) {
	f := newFixture(t)
	rows, err := Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, qc.FailedProbeSet{})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	r := rows[0]
	assert.Equal(t, "cg1", r.Probe)
	assert.Equal(t, "chr21", r.Chr)
	assert.Equal(t, "DS1", r.Sample)
	assert.Equal(t, "DS", r.Group)
	assert.Equal(t, 0.0, r.Beta)

	r = rows[3]
	assert.Equal(t, "cg2", r.Probe)
	assert.Equal(t, "WT1", r.Sample)
	assert.Equal(t, "WT", r.Group)
	assert.Equal(t, 11.0, r.NormBeta)
}

func TestBuildExcludesFailedProbesEverywhere(t *testing.T) {
	f := newFixture(t)
	failed := qc.FailedProbeSet{"cg2": {}}
	rows, err := Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, failed)
	require.NoError(t, err)
	for _, r := range rows {
		assert.NotEqual(t, "cg2", r.Probe, "failed probe must not appear on any sample")
	}
	assert.Len(t, rows, 4)
}

func TestBuildRoundTripProbeSet(t *testing.T) {
	// Grouping the joined table by probe reproduces annotation minus the
	// failed set, with nothing gained or lost.
	f := newFixture(t)
	failed := qc.FailedProbeSet{"cg3": {}}
	rows, err := Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, failed)
	require.NoError(t, err)
	assert.Equal(t, []string{"cg1", "cg2"}, Probes(rows))
}

func TestBuildFailsFastOnDuplicateKeys(t *testing.T) {
	f := newFixture(t)
	f.probes = append(f.probes, array.Probe{ID: "cg1", Chr: "chr1", Pos: 9})
	_, err := Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, qc.FailedProbeSet{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cg1")

	f = newFixture(t)
	f.samples = append(f.samples, array.Sample{ID: "DS1", Group: "DS"})
	_, err = Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, qc.FailedProbeSet{})
	assert.Error(t, err)
}

func TestBuildRejectsUnknownSample(t *testing.T) {
	// Loaders drop non-sheet columns before anything reaches Build; a
	// column without a sheet entry here means a caller skipped that step,
	// and silently defaulting its group would corrupt the comparison.
	f := newFixture(t)
	f.samples = f.samples[:1] // WT1 now has intensities but no sheet entry
	_, err := Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, qc.FailedProbeSet{})
	assert.Error(t, err)
}

func TestBuildRejectsShapeMismatch(t *testing.T) {
	f := newFixture(t)
	bad, err := matrix.New([]string{"cg1"}, []string{"DS1"})
	require.NoError(t, err)
	_, err = Build(f.probes, f.samples, f.beta, f.mval, bad, f.detp, qc.FailedProbeSet{})
	assert.Error(t, err)
}

func TestBuildKeepsMissingValues(t *testing.T) {
	f := newFixture(t)
	i, _ := f.norm.RowIndex("cg1")
	f.norm.Set(i, 0, math.NaN())
	rows, err := Build(f.probes, f.samples, f.beta, f.mval, f.norm, f.detp, qc.FailedProbeSet{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rows[0].NormBeta), "missing stays missing through the join")
	assert.False(t, math.IsNaN(rows[0].Beta))
}
