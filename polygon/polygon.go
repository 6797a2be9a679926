/*
Package polygon builds polygons from outlines made of straight lines and
Bézier curves. Curves are flattened while building, so every polygon is a
set of closed polygonal contours. Polygons may be combined by boolean
operations (union, intersection, difference and xor).

	pg := polygon.NullPolygon().Knot(bez.P(0, 0)).
	    CubicTo(bez.P(0, 10), bez.P(10, 10), bez.P(10, 0)).
	    Cycle()

Filling follows the even-odd rule.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/bez/flatness"
	"github.com/npillmayer/bez/subdiv"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bez.polygon'
func tracer() tracing.Trace {
	return tracing.Select("bez.polygon")
}

var (
	// ErrOpenContour is returned for operations on polygons with a contour
	// which has not been closed by Cycle.
	ErrOpenContour = errors.New("polygon has an open contour")
	// ErrMissingKnot flags a curve segment without a preceding knot.
	ErrMissingKnot = errors.New("curve segment needs a start knot")
)

// Polygon is a set of closed contours, plus an optional contour under
// construction. Use NullPolygon or Box to create one.
type Polygon struct {
	contours polyclip.Polygon
	current  polyclip.Contour
	crit     flatness.Criterion
	opts     []subdiv.Option
	err      error
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder
// calls. The following example builds a triangle:
//
//	pg := NullPolygon().Knot(bez.P(0, 0)).Knot(bez.P(1, 3)).Knot(bez.P(3, 0)).Cycle()
//
// Curve segments are flattened with flatness.DefaultCriterion, unless
// another criterion is set with Flatness.
func NullPolygon() *Polygon {
	return &Polygon{crit: flatness.DefaultCriterion()}
}

// Box creates a rectangle with corners p and q.
func Box(p, q bez.Pair) *Polygon {
	lx, hx := math.Min(p.X(), q.X()), math.Max(p.X(), q.X())
	ly, hy := math.Min(p.Y(), q.Y()), math.Max(p.Y(), q.Y())
	return NullPolygon().Knot(bez.P(lx, ly)).Knot(bez.P(hx, ly)).
		Knot(bez.P(hx, hy)).Knot(bez.P(lx, hy)).Cycle()
}

// Flatness sets the criterion for flattening subsequent curve segments.
// Part of builder functionality.
func (pg *Polygon) Flatness(crit flatness.Criterion, opts ...subdiv.Option) *Polygon {
	if crit == nil {
		crit = flatness.DefaultCriterion()
	}
	pg.crit, pg.opts = crit, opts
	return pg
}

// Knot adds a vertex to the current contour, connected to the previous one
// by a straight line. Part of builder functionality.
func (pg *Polygon) Knot(p bez.Pair) *Polygon {
	pg.current.Add(point(p))
	return pg
}

// QuadTo appends a quadratic curve from the last knot to end, with control
// point ctrl. Part of builder functionality.
func (pg *Polygon) QuadTo(ctrl, end bez.Pair) *Polygon {
	start, ok := pg.last()
	if !ok {
		return pg
	}
	appendChain(pg, subdiv.HalveAll(curve.Q(start, ctrl, end), pg.crit, pg.opts...))
	return pg
}

// CubicTo appends a cubic curve from the last knot to end, with control
// points ctrl1 and ctrl2. Part of builder functionality.
func (pg *Polygon) CubicTo(ctrl1, ctrl2, end bez.Pair) *Polygon {
	start, ok := pg.last()
	if !ok {
		return pg
	}
	appendChain(pg, subdiv.HalveAll(curve.C(start, ctrl1, ctrl2, end), pg.crit, pg.opts...))
	return pg
}

func appendChain[C curve.Curve](pg *Polygon, ch subdiv.Chain[C]) {
	for _, piece := range ch {
		pg.current.Add(point(piece.Curve.End()))
	}
	tracer().Debugf("curve flattened into %d segments", len(ch))
}

func (pg *Polygon) last() (bez.Pair, bool) {
	if len(pg.current) == 0 {
		if pg.err == nil {
			pg.err = ErrMissingKnot
		}
		tracer().Errorf("curve segment without start knot")
		return bez.Origin, false
	}
	return pair(pg.current[len(pg.current)-1]), true
}

// Cycle closes the current contour. A last knot equal to the first one is
// dropped, contours are always closed implicitly. Part of builder
// functionality.
func (pg *Polygon) Cycle() *Polygon {
	c := pg.current
	if n := len(c); n > 1 && c[0] == c[n-1] {
		c = c[:n-1]
	}
	if len(c) < 3 {
		tracer().Debugf("closing degenerate contour with %d vertices", len(c))
	}
	if len(c) > 0 {
		pg.contours.Add(c)
	}
	pg.current = nil
	return pg
}

// Err returns the first error which occurred while building pg, or
// ErrOpenContour if pg has a contour which has not been closed yet.
func (pg *Polygon) Err() error {
	if pg.err != nil {
		return pg.err
	}
	if len(pg.current) > 0 {
		return ErrOpenContour
	}
	return nil
}

// N returns the number of vertices of pg, including the open contour.
func (pg *Polygon) N() int {
	return pg.contours.NumVertices() + len(pg.current)
}

// Contours returns the vertices of the closed contours of pg.
func (pg *Polygon) Contours() [][]bez.Pair {
	contours := make([][]bez.Pair, len(pg.contours))
	for i, c := range pg.contours {
		contours[i] = make([]bez.Pair, len(c))
		for j, p := range c {
			contours[i][j] = pair(p)
		}
	}
	return contours
}

// AsString returns a human readable representation of a polygon.
func AsString(pg *Polygon) string {
	var sb strings.Builder
	sb.WriteString("polygon{")
	for i, c := range pg.contours {
		if i > 0 {
			sb.WriteString(",")
		}
		writeContour(&sb, c)
		sb.WriteString(" -- cycle")
	}
	if len(pg.current) > 0 {
		if len(pg.contours) > 0 {
			sb.WriteString(",")
		}
		writeContour(&sb, pg.current)
	}
	sb.WriteString(" }")
	return sb.String()
}

func writeContour(sb *strings.Builder, c polyclip.Contour) {
	for i, p := range c {
		if i > 0 {
			sb.WriteString(" --")
		}
		sb.WriteString(" ")
		sb.WriteString(pair(p).String())
	}
}

func (pg *Polygon) String() string {
	return AsString(pg)
}

// === Boolean operations ====================================================

// Union returns a polygon covering the area covered by pg or other.
func (pg *Polygon) Union(other *Polygon) (*Polygon, error) {
	return pg.construct(polyclip.UNION, other)
}

// Intersection returns a polygon covering the area covered by both pg and
// other.
func (pg *Polygon) Intersection(other *Polygon) (*Polygon, error) {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Difference returns a polygon covering the area covered by pg, but not by
// other.
func (pg *Polygon) Difference(other *Polygon) (*Polygon, error) {
	return pg.construct(polyclip.DIFFERENCE, other)
}

// Xor returns a polygon covering the area covered by exactly one of pg and
// other.
func (pg *Polygon) Xor(other *Polygon) (*Polygon, error) {
	return pg.construct(polyclip.XOR, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) (*Polygon, error) {
	if err := pg.Err(); err != nil {
		return nil, err
	}
	if other == nil {
		other = NullPolygon()
	}
	if err := other.Err(); err != nil {
		return nil, fmt.Errorf("clipping polygon: %w", err)
	}
	result := pg.contours.Construct(op, other.contours)
	tracer().Debugf("boolean operation produced %d contours", len(result))
	return &Polygon{contours: result, crit: pg.crit, opts: pg.opts}, nil
}

// === Measures ==============================================================

// Contains is true if p is inside pg, following the even-odd rule.
// Open contours are ignored.
func (pg *Polygon) Contains(p bez.Pair) bool {
	return pg.depth(point(p), -1)%2 == 1
}

// depth counts the contours containing pt, skipping contour #skip.
func (pg *Polygon) depth(pt polyclip.Point, skip int) int {
	n := 0
	for i, c := range pg.contours {
		if i != skip && c.Contains(pt) {
			n++
		}
	}
	return n
}

// BoundingBox returns the lower left and upper right corner of the bounding
// box of the closed contours of pg.
func (pg *Polygon) BoundingBox() (bez.Pair, bez.Pair) {
	if len(pg.contours) == 0 {
		return bez.Origin, bez.Origin
	}
	r := pg.contours.BoundingBox()
	return pair(r.Min), pair(r.Max)
}

// Area is the area covered by pg. Contours nested inside an odd number of
// other contours count as holes. Contours are expected not to intersect
// each other, as is the case for the results of boolean operations.
func (pg *Polygon) Area() float64 {
	var area float64
	for i, c := range pg.contours {
		a := math.Abs(shoelace(c))
		if len(c) > 0 && pg.depth(c[0], i)%2 == 1 {
			a = -a
		}
		area += a
	}
	return area
}

// shoelace is the signed area of a contour, positive for counter-clockwise
// orientation.
func shoelace(c polyclip.Contour) float64 {
	var a float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func point(p bez.Pair) polyclip.Point {
	return polyclip.Point{X: p.X(), Y: p.Y()}
}

func pair(p polyclip.Point) bez.Pair {
	return bez.P(p.X, p.Y)
}
