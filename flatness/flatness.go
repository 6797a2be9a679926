/*
Package flatness measures how well a Bézier curve is approximated by the
straight segment between its anchors, and decides whether a curve has to be
subdivided further.

Three interchangeable algorithms are provided:

  - RobustConvexHull measures the distance of the control points to the
    segment between the anchors. It is robust against degenerate curves.
  - NaiveConvexHull measures the distance of the control points to the
    infinite line through the anchors. It scores a curve as flat if its
    control points are collinear with the anchors but lie beyond them.
  - LineDefect measures how far the control points are from the positions
    they would have on a straight, evenly parameterized line.

A Criterion wraps an algorithm together with a tolerance. Criteria are used
by the drivers in package subdiv.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package flatness

import (
	"fmt"
	"math"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bez.flatness'
func tracer() tracing.Trace {
	return tracing.Select("bez.flatness")
}

// Algorithm scores the flatness of quadratic and cubic curves. Lower scores
// are flatter, a straight curve scores 0.
type Algorithm interface {
	// DegenerationRobust is true if the algorithm gives a sensible score for
	// curves with all points on a common line.
	DegenerationRobust() bool
	// PrefersSquared is true if SqFlatness is cheaper than Flatness.
	PrefersSquared() bool
	Flatness(c curve.Curve) float64
	SqFlatness(c curve.Curve) float64
}

// Default returns the algorithm used whenever none is specified.
func Default() Algorithm {
	return RobustConvexHull{}
}

// controls calls f for every control point of c.
func controls(c curve.Curve, f func(i int, ctrl bez.Pair)) {
	for i := 0; i < c.Degree()-1; i++ {
		f(i, c.Control(i))
	}
}

// === Convex hull ===========================================================

// RobustConvexHull scores a curve by the maximum distance of its control
// points to the segment between its anchors.
type RobustConvexHull struct{}

var _ Algorithm = RobustConvexHull{}

// DegenerationRobust is true.
func (RobustConvexHull) DegenerationRobust() bool { return true }

// PrefersSquared is true.
func (RobustConvexHull) PrefersSquared() bool { return true }

// SqFlatness is the maximum squared distance of the control points to the
// anchor segment.
func (RobustConvexHull) SqFlatness(c curve.Curve) float64 {
	seg := bez.Seg(c.Start(), c.End())
	var d float64
	controls(c, func(_ int, ctrl bez.Pair) {
		d = math.Max(d, seg.SqDist(ctrl))
	})
	return d
}

// Flatness is the square root of SqFlatness.
func (a RobustConvexHull) Flatness(c curve.Curve) float64 {
	return math.Sqrt(a.SqFlatness(c))
}

func (RobustConvexHull) String() string { return "robust-convex-hull" }

// NaiveConvexHull scores a curve by the maximum distance of its control
// points to the line through its anchors.
//
// A curve like (0,0) .. (-5,0) .. (15,0) .. (10,0) runs beyond its anchors,
// but is scored 0. Use it only for curves known not to degenerate.
type NaiveConvexHull struct{}

var _ Algorithm = NaiveConvexHull{}

// DegenerationRobust is false.
func (NaiveConvexHull) DegenerationRobust() bool { return false }

// PrefersSquared is true.
func (NaiveConvexHull) PrefersSquared() bool { return true }

// SqFlatness is the maximum squared distance of the control points to the
// support line of the anchors.
func (NaiveConvexHull) SqFlatness(c curve.Curve) float64 {
	seg := bez.Seg(c.Start(), c.End())
	var d float64
	controls(c, func(_ int, ctrl bez.Pair) {
		d = math.Max(d, seg.LineSqDist(ctrl))
	})
	return d
}

// Flatness is the square root of SqFlatness.
func (a NaiveConvexHull) Flatness(c curve.Curve) float64 {
	return math.Sqrt(a.SqFlatness(c))
}

func (NaiveConvexHull) String() string { return "naive-convex-hull" }

// === Line defect ===========================================================

// Combine selects how the distances of multiple control points are combined
// into a single score.
type Combine int8

const (
	// Sum adds up the distances.
	Sum Combine = iota
	// Max takes the largest distance.
	Max
)

func (cb Combine) String() string {
	if cb == Max {
		return "max"
	}
	return "sum"
}

// LineDefect scores a curve by the distance of every control point to its
// ideal position on a fully degenerated curve: the midpoint of the anchors
// for quadratic curves, the points at 1/3 and 2/3 between the anchors for
// cubic curves.
//
// For Sum, the squared score is the sum of the squared distances, not the
// square of the sum.
type LineDefect struct {
	Metric  bez.Metric
	Combine Combine
}

var _ Algorithm = LineDefect{}

// NewLineDefect creates a line defect algorithm. Unknown metrics are replaced
// by bez.Euclidean.
func NewLineDefect(metric bez.Metric, combine Combine) LineDefect {
	switch metric {
	case bez.Manhattan, bez.Chebyshev:
	default:
		metric = bez.Euclidean
	}
	return LineDefect{Metric: metric, Combine: combine}
}

// DegenerationRobust is true.
func (LineDefect) DegenerationRobust() bool { return true }

// PrefersSquared is true for the euclidean metric only.
func (ld LineDefect) PrefersSquared() bool { return ld.Metric.PrefersSquared() }

// Flatness combines the distances of the control points to their ideal
// positions.
func (ld LineDefect) Flatness(c curve.Curve) float64 {
	return ld.defect(c, ld.Metric.Dist)
}

// SqFlatness combines the squared distances of the control points to their
// ideal positions.
func (ld LineDefect) SqFlatness(c curve.Curve) float64 {
	return ld.defect(c, ld.Metric.SqDist)
}

func (ld LineDefect) defect(c curve.Curve, dist func(p, q bez.Pair) float64) float64 {
	start, end := c.Start(), c.End()
	n := float64(c.Degree())
	var d float64
	controls(c, func(i int, ctrl bez.Pair) {
		ideal := start.Lerp(end, float64(i+1)/n)
		di := dist(ctrl, ideal)
		if ld.Combine == Max {
			d = math.Max(d, di)
		} else {
			d += di
		}
	})
	return d
}

func (ld LineDefect) String() string {
	return fmt.Sprintf("line-defect(%s,%s)", ld.Metric, ld.Combine)
}
