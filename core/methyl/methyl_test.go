package methyl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"methdiff-core/array"
	"methdiff-core/matrix"
)

func mustMatrix(t *testing.T, rows, cols []string) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(rows, cols)
	require.NoError(t, err)
	return m
}

func testProbes() []array.Probe {
	return []array.Probe{
		{ID: "cgII", Chr: "chr21", Pos: 100, Type: array.TypeII, AddressA: "a1"},
		{ID: "cgIRed", Chr: "chr21", Pos: 200, Type: array.TypeI, Channel: array.ChannelRed, AddressA: "a2", AddressB: "a3"},
		{ID: "cgIGrn", Chr: "chr21", Pos: 300, Type: array.TypeI, Channel: array.ChannelGrn, AddressA: "a4", AddressB: "a5"},
	}
}

func TestExtractChannelSelection(t *testing.T) {
	rows := []string{"a1", "a2", "a3", "a4", "a5"}
	red := mustMatrix(t, rows, []string{"s1"})
	grn := mustMatrix(t, rows, []string{"s1"})
	for i, v := range []float64{100, 200, 300, 400, 500} {
		red.Set(i, 0, v)
		grn.Set(i, 0, v+1000)
	}

	sig, err := Extract(testProbes(), red, grn)
	require.NoError(t, err)
	require.Len(t, sig.Probes, 3)
	assert.Empty(t, sig.Skipped)

	// Type II: green methylated, red unmethylated, AddressA.
	assert.Equal(t, 1100.0, sig.Meth.Lookup("cgII", "s1"))
	assert.Equal(t, 100.0, sig.Unmeth.Lookup("cgII", "s1"))
	// Type I Red: both alleles from the red channel.
	assert.Equal(t, 300.0, sig.Meth.Lookup("cgIRed", "s1"))
	assert.Equal(t, 200.0, sig.Unmeth.Lookup("cgIRed", "s1"))
	// Type I Grn: both alleles from the green channel.
	assert.Equal(t, 1500.0, sig.Meth.Lookup("cgIGrn", "s1"))
	assert.Equal(t, 1400.0, sig.Unmeth.Lookup("cgIGrn", "s1"))
}

func TestExtractSkipsAbsentAddresses(t *testing.T) {
	red := mustMatrix(t, []string{"a1"}, []string{"s1"})
	grn := mustMatrix(t, []string{"a1"}, []string{"s1"})
	red.Set(0, 0, 1)
	grn.Set(0, 0, 1)

	sig, err := Extract(testProbes(), red, grn)
	require.NoError(t, err)
	require.Len(t, sig.Probes, 1)
	assert.Equal(t, "cgII", sig.Probes[0].ID)
	assert.ElementsMatch(t, []string{"cgIRed", "cgIGrn"}, sig.Skipped)
}

func TestExtractShapeMismatch(t *testing.T) {
	red := mustMatrix(t, []string{"a1"}, []string{"s1"})
	grn := mustMatrix(t, []string{"a1"}, []string{"s2"})
	_, err := Extract(testProbes(), red, grn)
	assert.Error(t, err)
}

func TestBetaRangeAndMissing(t *testing.T) {
	rows := []string{"a1"}
	red := mustMatrix(t, rows, []string{"s1", "s2"})
	grn := mustMatrix(t, rows, []string{"s1", "s2"})
	red.Set(0, 0, 500)
	grn.Set(0, 0, 1500)
	// s2 left NaN on both channels

	probes := []array.Probe{{ID: "cg1", Type: array.TypeII, AddressA: "a1"}}
	sig, err := Extract(probes, red, grn)
	require.NoError(t, err)

	beta := Beta(sig)
	b := beta.Lookup("cg1", "s1")
	assert.InDelta(t, 1500.0/(1500+500+BetaOffset), b, 1e-12)
	assert.True(t, b >= 0 && b <= 1)
	assert.True(t, math.IsNaN(beta.Lookup("cg1", "s2")), "missing input must stay missing")

	mv := MValue(sig)
	assert.InDelta(t, math.Log2(1501.0/501.0), mv.Lookup("cg1", "s1"), 1e-12)
	assert.True(t, math.IsNaN(mv.Lookup("cg1", "s2")))
}

func TestBetaZeroTotalIsMissing(t *testing.T) {
	red := mustMatrix(t, []string{"a1"}, []string{"s1"})
	grn := mustMatrix(t, []string{"a1"}, []string{"s1"})
	red.Set(0, 0, 0)
	grn.Set(0, 0, 0)
	sig, err := Extract([]array.Probe{{ID: "cg1", Type: array.TypeII, AddressA: "a1"}}, red, grn)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(Beta(sig).Lookup("cg1", "s1")), "zero total must be NaN, not 0")
}
