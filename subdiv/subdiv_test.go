package subdiv

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/bez/flatness"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	arch     = curve.C(bez.P(0, 0), bez.P(0, 10), bez.P(10, 10), bez.P(10, 0))
	straight = curve.C(bez.P(0, 0), bez.P(1, 0), bez.P(2, 0), bez.P(3, 0))
	overrun  = curve.C(bez.P(0, 0), bez.P(-5, 0), bez.P(15, 0), bez.P(10, 0))
	hat      = curve.Q(bez.P(0, 0), bez.P(1, 2), bez.P(2, 0))
)

func randomCubic(rnd *rand.Rand) curve.Cubic {
	p := func() bez.Pair {
		return bez.P(rnd.Float64()*200-100, rnd.Float64()*200-100)
	}
	return curve.C(p(), p(), p(), p())
}

func algorithms() []flatness.Algorithm {
	return []flatness.Algorithm{
		flatness.RobustConvexHull{},
		flatness.NaiveConvexHull{},
		flatness.NewLineDefect(bez.Euclidean, flatness.Sum),
		flatness.NewLineDefect(bez.Chebyshev, flatness.Max),
	}
}

func TestHalveStraightLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, algo := range algorithms() {
		chain := HalveAll(straight, flatness.NewCriterion(algo, flatness.WithTolerance(1e-5)))
		require.Len(t, chain, 1, "algorithm %v", algo)
		assert.Equal(t, Piece[curve.Cubic]{Curve: straight, T0: 0, T1: 1}, chain[0])
	}
}

func TestHalveIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, tol := range []float64{1, 1e-3, 1e-9, 0} {
		chain := HalveAll(straight, flatness.ConvexHullCriterion(tol))
		assert.Len(t, chain, 1)
		pieces := HalveAll(chain[0].Curve, flatness.ConvexHullCriterion(tol))
		assert.Equal(t, chain, pieces)
	}
}

func TestHalveNaiveFailureMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	chain := HalveAll(overrun, flatness.NaiveConvexHullCriterion(1e-5))
	assert.Len(t, chain, 1)
	chain = HalveAll(overrun, flatness.ConvexHullCriterion(1e-5))
	assert.Greater(t, len(chain), 1)
	assert.NoError(t, chain.Check(bez.DefaultTolerances()))
}

func TestHalveMaxDepth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	always := flatness.CriterionFunc(func(curve.Curve) bool { return true })
	chain := HalveAll(arch, always, WithMaxDepth(4))
	require.Len(t, chain, 16)
	for i, piece := range chain {
		assert.Equal(t, float64(i)/16, piece.T0)
		assert.Equal(t, float64(i+1)/16, piece.T1)
	}
	assert.NoError(t, chain.Check(bez.DefaultTolerances()))
	chain = HalveAll(arch, flatness.NewCriterion(nil, flatness.WithTolerance(0)), WithMaxDepth(4))
	assert.Len(t, chain, 16)
	chain = HalveAll(arch, always, WithMaxDepth(-1))
	assert.Len(t, chain, 1)
}

func TestHalveChain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const tol = 0.01
	crit := flatness.ConvexHullCriterion(tol)
	chain := HalveAll(arch, crit)
	require.NoError(t, chain.Check(bez.DefaultTolerances()))
	assert.Greater(t, len(chain), 8)
	algo := flatness.RobustConvexHull{}
	for _, piece := range chain {
		assert.LessOrEqual(t, algo.Flatness(piece.Curve), tol+1e-12)
		assert.InDelta(t, 0, bez.Dist(arch.PointAt(piece.T0), piece.Curve.Start()), 1e-9)
		assert.InDelta(t, 0, bez.Dist(arch.PointAt(piece.T1), piece.Curve.End()), 1e-9)
	}
	curves := chain.Curves()
	assert.Len(t, curves, len(chain))
	assert.Equal(t, arch.P0, curves[0].P0)
	assert.Equal(t, arch.P3, curves[len(curves)-1].P3)
}

func TestHalveQuad(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	chain := HalveAll(hat, flatness.LineDefectCriterion(bez.Manhattan, flatness.Sum, 0.1))
	require.NoError(t, chain.Check(bez.DefaultTolerances()))
	// the defect of a quadratic curve shrinks to a quarter with every halving
	assert.Len(t, chain, 8)
}

func TestHalveConsumer(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var windows [][2]float64
	Halve(arch, nil, ConsumerFunc[curve.Cubic](func(c curve.Cubic, t0, t1 float64) {
		windows = append(windows, [2]float64{t0, t1})
	}))
	assert.Equal(t, len(HalveAll(arch, flatness.DefaultCriterion())), len(windows))
	for i := 1; i < len(windows); i++ {
		assert.Equal(t, windows[i-1][1], windows[i][0])
	}
	assert.PanicsWithValue(t, ErrNilConsumer, func() {
		Halve(arch, nil, nil)
	})
}

func TestHalvingSeq(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crit := flatness.ConvexHullCriterion(0.01)
	var chain Chain[curve.Cubic]
	for piece := range HalvingSeq(arch, crit) {
		chain = append(chain, piece)
	}
	assert.Equal(t, HalveAll(arch, crit), chain)
	n := 0
	for range HalvingSeq(arch, crit) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestChainCheck(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tol := bez.DefaultTolerances()
	var chain Chain[curve.Cubic]
	assert.True(t, errors.Is(chain.Check(tol), ErrBrokenChain))
	left, right := arch.HalfSplit()
	chain = Chain[curve.Cubic]{{left, 0, 0.5}, {right, 0.5, 1}}
	assert.NoError(t, chain.Check(tol))
	chain = Chain[curve.Cubic]{{left, 0, 0.5}, {right, 0.6, 1}}
	assert.True(t, errors.Is(chain.Check(tol), ErrBrokenChain))
	chain = Chain[curve.Cubic]{{right, 0, 0.5}, {left, 0.5, 1}}
	assert.True(t, errors.Is(chain.Check(tol), ErrBrokenChain))
	chain = Chain[curve.Cubic]{{left, 0, 0.5}}
	assert.True(t, errors.Is(chain.Check(tol), ErrBrokenChain))
}

// === Degree reduction ======================================================

// maxDeviation samples the pieces of chain and measures their distance to c
// at matching parameters.
func maxDeviation(c curve.Cubic, chain Chain[curve.Quad]) float64 {
	var dev float64
	for _, piece := range chain {
		for i := 0; i <= 40; i++ {
			u := float64(i) / 40
			t := piece.T0 + u*(piece.T1-piece.T0)
			dev = max(dev, bez.Dist(c.PointAt(t), piece.Curve.PointAt(u)))
		}
	}
	return dev
}

func TestReduceDegreeBoundedError(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 25; i++ {
		c := randomCubic(rnd)
		for _, precision := range []float64{0.5, 1, 2} {
			chain := ReduceDegreeAll(c, precision)
			require.NoError(t, chain.Check(bez.DefaultTolerances()), "cubic %v", c)
			assert.Equal(t, c.P0, chain[0].Curve.P0)
			assert.Equal(t, c.P3, chain[len(chain)-1].Curve.P2)
			assert.LessOrEqual(t, maxDeviation(c, chain), precision+1e-7, "cubic %v", c)
		}
	}
}

func TestReduceDegreeTightPrecision(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(2024))
	for _, run := range []struct {
		scale, precision float64
	}{
		{100, 1e-5},
		{200, 0}, // DefaultPrecision
		{10000, 1e-3},
	} {
		want := normalizePrecision(run.precision)
		for i := 0; i < 20; i++ {
			p := func() bez.Pair {
				return bez.P(rnd.Float64()*run.scale, rnd.Float64()*run.scale)
			}
			c := curve.C(p(), p(), p(), p())
			chain := ReduceDegreeAll(c, run.precision)
			require.NoError(t, chain.Check(bez.DefaultTolerances()), "cubic %v", c)
			assert.Less(t, len(chain), 512, "cubic %v", c)
			assert.LessOrEqual(t, maxDeviation(c, chain), want*(1+1e-6), "cubic %v at %g", c, want)
		}
	}
}

func TestReduceDegreeHugeCoordinates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	huge := curve.C(bez.P(0, 0), bez.P(1e308, 1e308), bez.P(1e308, 1e308), bez.P(1e308, 0))
	var chain Chain[curve.Quad]
	assert.NotPanics(t, func() {
		chain = ReduceDegreeAll(huge, 1)
	})
	require.Len(t, chain, 1)
	assert.Equal(t, 0.0, chain[0].T0)
	assert.Equal(t, 1.0, chain[0].T1)
}

func TestHalvingReduceDegreeBoundedError(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(815))
	for i := 0; i < 20; i++ {
		c := randomCubic(rnd)
		for _, precision := range []float64{0.5, 1, 2} {
			col := &Collector[curve.Quad]{}
			HalvingReduceDegree(c, precision, col)
			require.NoError(t, col.Chain.Check(bez.DefaultTolerances()))
			assert.LessOrEqual(t, maxDeviation(c, col.Chain), precision+1e-7)
		}
	}
}

func TestReduceDegreeBranches(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// the mid-point error of arch is 20·√3/36
	archErr := 20 * math.Sqrt(3) / 36
	chain := ReduceDegreeAll(arch, 1)
	require.Len(t, chain, 1)
	assert.Equal(t, arch.MidPointQuad(), chain[0].Curve)

	chain = ReduceDegreeAll(arch, 0.5)
	require.Len(t, chain, 2)
	assert.Equal(t, 0.5, chain[0].T1)

	chain = ReduceDegreeAll(arch, 0.05)
	require.Len(t, chain, 3)
	tsplit := math.Cbrt(0.05 / archErr)
	assert.InDelta(t, tsplit, chain[0].T1, 1e-12)
	assert.InDelta(t, 1-tsplit, chain[2].T0, 1e-12)
	assert.NoError(t, chain.Check(bez.DefaultTolerances()))

	chain = ReduceDegreeAll(arch, 0.05, WithMaxDepth(0))
	assert.Len(t, chain, 1)
}

func TestReduceDegreePrecision(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, ReduceDegreeAll(arch, 0.05), ReduceDegreeAll(arch, -0.05))
	chain := ReduceDegreeAll(arch, 0)
	require.NoError(t, chain.Check(bez.DefaultTolerances()))
	assert.LessOrEqual(t, maxDeviation(arch, chain), DefaultPrecision+1e-9)
	assert.Equal(t, chain, ReduceDegreeAll(arch, math.NaN()))
}

func TestReduceDegreeExact(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	q := curve.Q(bez.P(0, 0), bez.P(3, 3), bez.P(6, 0))
	chain := ReduceDegreeAll(q.Raise(), 1e-9)
	require.Len(t, chain, 1)
	assert.True(t, chain[0].Curve.P1.Equal(q.P1))
	// straight lines are reduced to a single quadratic curve
	for _, precision := range []float64{10, 1e-3, 1e-12} {
		assert.Len(t, ReduceDegreeAll(straight, precision), 1)
	}
}

func TestReduceDegreeSeq(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var chain Chain[curve.Quad]
	for piece := range ReduceDegreeSeq(arch, 0.01) {
		chain = append(chain, piece)
	}
	assert.Equal(t, ReduceDegreeAll(arch, 0.01), chain)
	for piece := range ReduceDegreeSeq(arch, 0.01) {
		assert.Equal(t, 0.0, piece.T0)
		break
	}
	assert.PanicsWithValue(t, ErrNilConsumer, func() {
		ReduceDegree(arch, 1, nil)
	})
	assert.PanicsWithValue(t, ErrNilConsumer, func() {
		HalvingReduceDegree(arch, 1, nil)
	})
}
