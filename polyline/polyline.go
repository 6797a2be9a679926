/*
Package polyline flattens Bézier curves into polylines.

Polylines are represented as orb.LineString values, so they may be handed
over to any consumer of package github.com/paulmach/orb, e.g. for
simplification, clipping or GeoJSON export.

	ls, err := polyline.Flatten(c, flatness.ConvexHullCriterion(0.01))
	length := polyline.Length(ls)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polyline

import (
	"errors"
	"fmt"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/bez/flatness"
	"github.com/npillmayer/bez/subdiv"
	"github.com/npillmayer/schuko/tracing"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// tracer writes to trace with key 'bez.polyline'
func tracer() tracing.Trace {
	return tracing.Select("bez.polyline")
}

// ErrEmpty is returned for operations which need at least one curve or
// vertex.
var ErrEmpty = errors.New("polyline is empty")

// Point converts a pair to an orb point.
func Point(p bez.Pair) orb.Point {
	return orb.Point{p.X(), p.Y()}
}

// Pair converts an orb point to a pair.
func Pair(pt orb.Point) bez.Pair {
	return bez.P(pt.X(), pt.Y())
}

// Pairs returns the vertices of ls as pairs.
func Pairs(ls orb.LineString) []bez.Pair {
	pairs := make([]bez.Pair, len(ls))
	for i, pt := range ls {
		pairs[i] = Pair(pt)
	}
	return pairs
}

// FromChain creates a polyline connecting the anchors of the curves of ch,
// i.e. every curve of the chain is replaced by a straight line.
func FromChain[C curve.Curve](ch subdiv.Chain[C]) orb.LineString {
	if len(ch) == 0 {
		return nil
	}
	ls := make(orb.LineString, 0, len(ch)+1)
	ls = append(ls, Point(ch[0].Curve.Start()))
	for _, piece := range ch {
		ls = append(ls, Point(piece.Curve.End()))
	}
	return ls
}

// Flatten approximates a quadratic or cubic curve by a polyline. Vertices
// are the anchors of the pieces found by adaptive halving with criterion
// crit. If crit is nil, flatness.DefaultCriterion is used.
//
// Flatten returns curve.ErrNilCurve for a nil curve and
// curve.ErrUnsupportedCurve for curves other than curve.Quad or curve.Cubic.
func Flatten(c curve.Curve, crit flatness.Criterion, opts ...subdiv.Option) (orb.LineString, error) {
	switch cc := c.(type) {
	case nil:
		return nil, curve.ErrNilCurve
	case curve.Quad:
		return FromChain(subdiv.HalveAll(cc, crit, opts...)), nil
	case *curve.Quad:
		if cc == nil {
			return nil, curve.ErrNilCurve
		}
		return FromChain(subdiv.HalveAll(*cc, crit, opts...)), nil
	case curve.Cubic:
		return FromChain(subdiv.HalveAll(cc, crit, opts...)), nil
	case *curve.Cubic:
		if cc == nil {
			return nil, curve.ErrNilCurve
		}
		return FromChain(subdiv.HalveAll(*cc, crit, opts...)), nil
	}
	return nil, fmt.Errorf("%w: %T", curve.ErrUnsupportedCurve, c)
}

// FlattenPath flattens a sequence of curves into a single polyline. The end
// of every curve is expected to be the start of the next one; coincident
// joints are merged, whereas gaps are bridged by a straight line.
func FlattenPath(curves []curve.Curve, crit flatness.Criterion, opts ...subdiv.Option) (orb.LineString, error) {
	if len(curves) == 0 {
		return nil, ErrEmpty
	}
	if crit == nil {
		crit = flatness.DefaultCriterion()
	}
	var path orb.LineString
	for i, c := range curves {
		ls, err := Flatten(c, crit, opts...)
		if err != nil {
			return nil, fmt.Errorf("curve #%d: %w", i, err)
		}
		if len(path) > 0 && path[len(path)-1] == ls[0] {
			ls = ls[1:]
		} else if len(path) > 0 {
			tracer().Debugf("path has a gap before curve #%d", i)
		}
		path = append(path, ls...)
	}
	tracer().Infof("flattened %d curves into %d vertices", len(curves), len(path))
	return path, nil
}

// Length is the euclidean length of ls.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// Bounds returns the lower left and the upper right corner of the bounding
// box of ls. It returns ErrEmpty if ls has no vertices.
func Bounds(ls orb.LineString) (bez.Pair, bez.Pair, error) {
	if len(ls) == 0 {
		return bez.Origin, bez.Origin, ErrEmpty
	}
	b := ls.Bound()
	return Pair(b.Min), Pair(b.Max), nil
}

// Simplify removes vertices of ls using the Douglas-Peucker algorithm. No
// removed vertex is farther than threshold from the resulting polyline.
// ls is not modified.
func Simplify(ls orb.LineString, threshold float64) orb.LineString {
	return simplify.DouglasPeucker(threshold).LineString(ls.Clone())
}

// Compact removes vertices from ls which coincide with their predecessor,
// or where ls does not change its direction, with respect to tol. The first
// and the last vertex are always kept. ls is not modified.
func Compact(ls orb.LineString, tol bez.Tolerances) orb.LineString {
	if len(ls) < 2 {
		return ls.Clone()
	}
	dedup := make(orb.LineString, 0, len(ls))
	dedup = append(dedup, ls[0])
	for _, pt := range ls[1:] {
		if tol.Coincident(Pair(dedup[len(dedup)-1]), Pair(pt)) {
			continue
		}
		dedup = append(dedup, pt)
	}
	if last := ls[len(ls)-1]; len(dedup) > 1 {
		dedup[len(dedup)-1] = last
	} else {
		dedup = append(dedup, last)
	}
	out := dedup[:1]
	for i := 1; i < len(dedup)-1; i++ {
		prev, p, next := Pair(out[len(out)-1]), Pair(dedup[i]), Pair(dedup[i+1])
		if tol.Parallel(p-prev, next-p) {
			continue
		}
		out = append(out, dedup[i])
	}
	return append(out, dedup[len(dedup)-1])
}
