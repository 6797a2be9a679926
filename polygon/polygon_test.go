package polygon

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/flatness"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(bez.P(0, 0)).Knot(bez.P(1, 3)).Knot(bez.P(3, 0)).Cycle()
	tracer().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, "polygon{ (0,0) -- (1,3) -- (3,0) -- cycle }", AsString(pg))
	assert.NoError(t, pg.Err())
	assert.InDelta(t, 4.5, pg.Area(), 1e-12)
	closed := NullPolygon().Knot(bez.P(0, 0)).Knot(bez.P(1, 0)).Knot(bez.P(1, 1)).Knot(bez.P(0, 0)).Cycle()
	assert.Equal(t, 3, closed.N(), "repeated first knot is dropped")
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(bez.P(0, 5), bez.P(4, 1))
	tracer().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	lo, hi := box.BoundingBox()
	assert.Equal(t, bez.P(0, 1), lo)
	assert.Equal(t, bez.P(4, 5), hi)
	assert.InDelta(t, 16, box.Area(), 1e-12)
	assert.True(t, box.Contains(bez.P(2, 3)))
	assert.False(t, box.Contains(bez.P(5, 3)))
	assert.Equal(t, [][]bez.Pair{{bez.P(0, 1), bez.P(4, 1), bez.P(4, 5), bez.P(0, 5)}}, box.Contours())
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().QuadTo(bez.P(1, 1), bez.P(2, 0))
	assert.True(t, errors.Is(pg.Err(), ErrMissingKnot))
	pg = NullPolygon().Knot(bez.P(0, 0)).Knot(bez.P(1, 1))
	assert.True(t, errors.Is(pg.Err(), ErrOpenContour))
	assert.Equal(t, 2, pg.N())
	assert.Equal(t, "polygon{ (0,0) -- (1,1) }", AsString(pg))
	_, err := pg.Union(Box(bez.P(0, 0), bez.P(1, 1)))
	assert.True(t, errors.Is(err, ErrOpenContour))
	_, err = Box(bez.P(0, 0), bez.P(1, 1)).Intersection(pg)
	assert.True(t, errors.Is(err, ErrOpenContour))
	lo, hi := NullPolygon().BoundingBox()
	assert.Equal(t, bez.Origin, lo)
	assert.Equal(t, bez.Origin, hi)
}

// circle approximates a circle of radius r around the origin by 4 cubic
// curves.
func circle(r, tol float64) *Polygon {
	k := r * 0.5522847498
	return NullPolygon().Flatness(flatness.ConvexHullCriterion(tol)).
		Knot(bez.P(r, 0)).
		CubicTo(bez.P(r, k), bez.P(k, r), bez.P(0, r)).
		CubicTo(bez.P(-k, r), bez.P(-r, k), bez.P(-r, 0)).
		CubicTo(bez.P(-r, -k), bez.P(-k, -r), bez.P(0, -r)).
		CubicTo(bez.P(k, -r), bez.P(r, -k), bez.P(r, 0)).
		Cycle()
}

func TestCurvedOutline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := circle(10, 0.001)
	require.NoError(t, pg.Err())
	assert.Greater(t, pg.N(), 32)
	assert.InDelta(t, math.Pi*100, pg.Area(), 0.5)
	assert.True(t, pg.Contains(bez.P(0, 0)))
	assert.True(t, pg.Contains(bez.P(7, 7)))
	assert.False(t, pg.Contains(bez.P(7.5, 7.5)))
	assert.False(t, pg.Contains(bez.P(10.5, 0)))
	for _, c := range pg.Contours() {
		for _, p := range c {
			assert.InDelta(t, 10, p.Abs(), 0.01)
		}
	}
	coarse := circle(10, 1)
	assert.Less(t, coarse.N(), pg.N())
	quad := NullPolygon().Knot(bez.P(0, 0)).QuadTo(bez.P(1, 2), bez.P(2, 0)).Cycle()
	require.NoError(t, quad.Err())
	// area of a parabolic segment is 2/3 of its enclosing triangle
	assert.InDelta(t, 4.0/3.0, quad.Area(), 1e-3)
}

func TestHoles(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().
		Knot(bez.P(0, 0)).Knot(bez.P(10, 0)).Knot(bez.P(10, 10)).Knot(bez.P(0, 10)).Cycle().
		Knot(bez.P(2, 2)).Knot(bez.P(4, 2)).Knot(bez.P(4, 4)).Knot(bez.P(2, 4)).Cycle()
	assert.Equal(t, 8, pg.N())
	assert.InDelta(t, 96, pg.Area(), 1e-12)
	assert.True(t, pg.Contains(bez.P(1, 1)))
	assert.False(t, pg.Contains(bez.P(3, 3)))
}

func TestBooleanOperations(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(bez.P(0, 0), bez.P(4, 4))
	b := Box(bez.P(2, 2), bez.P(6, 6))

	union, err := a.Union(b)
	require.NoError(t, err)
	tracer().Infof("union = %s", union)
	assert.InDelta(t, 28, union.Area(), 1e-9)
	assert.True(t, union.Contains(bez.P(1, 1)))
	assert.True(t, union.Contains(bez.P(3, 3)))
	assert.True(t, union.Contains(bez.P(5, 5)))
	assert.False(t, union.Contains(bez.P(5, 1)))
	lo, hi := union.BoundingBox()
	assert.Equal(t, bez.P(0, 0), lo)
	assert.Equal(t, bez.P(6, 6), hi)

	isect, err := a.Intersection(b)
	require.NoError(t, err)
	assert.InDelta(t, 4, isect.Area(), 1e-9)
	assert.True(t, isect.Contains(bez.P(3, 3)))
	assert.False(t, isect.Contains(bez.P(1, 1)))

	diff, err := a.Difference(b)
	require.NoError(t, err)
	assert.InDelta(t, 12, diff.Area(), 1e-9)
	assert.True(t, diff.Contains(bez.P(1, 1)))
	assert.False(t, diff.Contains(bez.P(3, 3)))

	xor, err := a.Xor(b)
	require.NoError(t, err)
	assert.True(t, xor.Contains(bez.P(1, 1)))
	assert.False(t, xor.Contains(bez.P(3, 3)))
	assert.True(t, xor.Contains(bez.P(5, 5)))

	hole, err := Box(bez.P(0, 0), bez.P(10, 10)).Difference(Box(bez.P(2, 2), bez.P(4, 4)))
	require.NoError(t, err)
	assert.InDelta(t, 96, hole.Area(), 1e-9)
	assert.False(t, hole.Contains(bez.P(3, 3)))

	same, err := a.Union(nil)
	require.NoError(t, err)
	assert.InDelta(t, 16, same.Area(), 1e-9)
}

func TestCurvedBooleanOperations(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	disc := circle(10, 0.01)
	// anchors of the circle must not touch the edges of the box
	square := Box(bez.P(0.5, 0.5), bez.P(20, 20))
	quarter, err := disc.Intersection(square)
	require.NoError(t, err)
	assert.InDelta(t, 68.794, quarter.Area(), 0.5)
	assert.True(t, quarter.Contains(bez.P(1, 1)))
	assert.False(t, quarter.Contains(bez.P(-1, 1)))
}
