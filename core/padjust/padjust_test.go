package padjust

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonferroni(t *testing.T) {
	p := []float64{0.01, 0.04, 0.3, 0.9}
	got := Bonferroni(p)
	assert.InDelta(t, 0.04, got[0], 1e-12)
	assert.InDelta(t, 0.16, got[1], 1e-12)
	assert.InDelta(t, 1.0, got[2], 1e-12) // 1.2 clipped
	assert.InDelta(t, 1.0, got[3], 1e-12)
}

func TestBonferroniHugeNStaysNonzero(t *testing.T) {
	// A tiny but nonzero p at array scale must not collapse to exactly 0;
	// clipping happens only at 1.
	p := make([]float64, 450000)
	for i := range p {
		p[i] = 0.5
	}
	p[0] = 2.0 / 70.0
	got := Bonferroni(p)
	assert.Greater(t, got[0], 0.0)
	assert.Equal(t, 1.0, got[0]) // 0.0286*450000 clips to 1, not to 0
	assert.Equal(t, 1.0, got[1])

	p[0] = 1e-10
	got = Bonferroni(p)
	assert.InDelta(t, 4.5e-5, got[0], 1e-12)
	assert.Greater(t, got[0], 0.0)
}

func TestBenjaminiHochbergAgainstReference(t *testing.T) {
	// Cross-checked against R p.adjust(method="BH").
	p := []float64{0.01, 0.02, 0.03, 0.04, 0.05}
	got := BenjaminiHochberg(p)
	want := []float64{0.05, 0.05, 0.05, 0.05, 0.05}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "index %d", i)
	}

	p = []float64{0.001, 0.008, 0.039, 0.041, 0.042, 0.06, 0.074, 0.205, 0.212, 0.216}
	got = BenjaminiHochberg(p)
	want = []float64{0.01, 0.04, 0.084, 0.084, 0.084, 0.1, 0.10571428571428572, 0.216, 0.216, 0.216}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "index %d", i)
	}
}

func TestAdjustedAtLeastRawAtMostOne(t *testing.T) {
	p := []float64{0.9, 0.001, 0.5, 0.02, 0.0004, 0.77, 0.31}
	for name, got := range map[string][]float64{
		"bonferroni": Bonferroni(p),
		"bh":         BenjaminiHochberg(p),
	} {
		require.Len(t, got, len(p), name)
		for i := range p {
			assert.GreaterOrEqual(t, got[i], p[i], "%s index %d", name, i)
			assert.LessOrEqual(t, got[i], 1.0, "%s index %d", name, i)
		}
	}
}

func TestBHMonotoneInAscendingOrder(t *testing.T) {
	p := []float64{0.04, 0.002, 0.9, 0.3, 0.011, 0.07, 0.0005}
	got := BenjaminiHochberg(p)

	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })
	prev := 0.0
	for _, i := range order {
		assert.GreaterOrEqual(t, got[i], prev)
		prev = got[i]
	}
}

func TestNaNPassThrough(t *testing.T) {
	p := []float64{0.01, math.NaN(), 0.02}
	assert.Equal(t, 2, N(p))

	bonf := Bonferroni(p)
	bh := BenjaminiHochberg(p)
	assert.True(t, math.IsNaN(bonf[1]))
	assert.True(t, math.IsNaN(bh[1]))
	// N excludes the undefined test: 0.01*2, not 0.01*3.
	assert.InDelta(t, 0.02, bonf[0], 1e-12)
	assert.InDelta(t, 0.02, bh[0], 1e-12)
}

func TestEmptyAndAllNaN(t *testing.T) {
	assert.Empty(t, BenjaminiHochberg(nil))
	got := BenjaminiHochberg([]float64{math.NaN()})
	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0]))
}
