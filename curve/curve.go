/*
Package curve implements quadratic and cubic Bézier curves, together with
exact splitting, evaluation and inflection point computation.

Curves are small value types. All operations return new curves and never
modify their receiver, so curves may be shared freely between goroutines.

# Splitting

All splitting is done by the geometric de Casteljau construction, i.e. by
repeated linear interpolation along the edges of the control polygon. This
stays numerically stable close to t=0 and t=1, where the expanded polynomial
form would suffer from cancellation.

	c := curve.Cubic{P0: bez.P(0, 0), P1: bez.P(0, 10), P2: bez.P(10, 10), P3: bez.P(10, 0)}
	left, right := c.HalfSplit()
	pieces, err := c.SplitMulti([]float64{0.25, 0.75}) // 3 daisy-chained pieces

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bez.curve'
func tracer() tracing.Trace {
	return tracing.Select("bez.curve")
}

var (
	// ErrNilCurve indicates that a curve was required but none was given.
	ErrNilCurve = errors.New("curve must not be nil")
	// ErrParamOutOfRange indicates a split parameter outside of [0,1].
	ErrParamOutOfRange = errors.New("curve parameter out of range [0,1]")
	// ErrUnsupportedCurve indicates a curve type other than Quad or Cubic.
	ErrUnsupportedCurve = errors.New("unsupported curve type")
)

// Curve is the read-only view onto a Bézier curve shared by quadratic and
// cubic curves. The flatness algorithms operate on this view.
type Curve interface {
	Start() bez.Pair                              // start anchor
	End() bez.Pair                                // end anchor
	Degree() int                                  // 2 for quadratic, 3 for cubic curves
	Control(i int) bez.Pair                       // i-th control point, 0 ≤ i < Degree()-1
	PointAt(t float64) bez.Pair                   // point on curve at parameter t
	TangentAt(t float64) (bez.Pair, bez.Segment) // point and tangent at t
}

// Splitter is a curve which is able to split itself into two curves of
// the same type C.
type Splitter[C any] interface {
	Curve
	HalfSplit() (C, C)
	SplitAt(t float64) (C, C, error)
}

var _ Splitter[Quad] = Quad{}
var _ Splitter[Cubic] = Cubic{}

// Split splits any supported curve at parameter t.
// It returns ErrNilCurve for a nil curve and ErrParamOutOfRange for t outside
// of [0,1]. In both cases the curve is left unsplit and both results are nil.
func Split(c Curve, t float64) (Curve, Curve, error) {
	if c == nil {
		return nil, nil, ErrNilCurve
	}
	if err := checkParam(t); err != nil {
		return nil, nil, err
	}
	switch cc := c.(type) {
	case Quad:
		a, b := cc.split(t)
		return a, b, nil
	case *Quad:
		if cc == nil {
			return nil, nil, ErrNilCurve
		}
		a, b := cc.split(t)
		return a, b, nil
	case Cubic:
		a, b := cc.split(t)
		return a, b, nil
	case *Cubic:
		if cc == nil {
			return nil, nil, ErrNilCurve
		}
		a, b := cc.split(t)
		return a, b, nil
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedCurve, c)
}

// HalfSplit splits any supported curve at t=0.5.
func HalfSplit(c Curve) (Curve, Curve, error) {
	return Split(c, 0.5)
}

// MustSplit is like Split, but panics on error. Use it for parameters
// statically known to be in range.
func MustSplit(c Curve, t float64) (Curve, Curve) {
	a, b, err := Split(c, t)
	if err != nil {
		panic(err)
	}
	return a, b
}

func checkParam(t float64) error {
	if !(t >= 0 && t <= 1) { // catches NaN
		tracer().Debugf("rejecting split parameter %g", t)
		return fmt.Errorf("%w: t = %g", ErrParamOutOfRange, t)
	}
	return nil
}

// splitMulti splits c at every value of params, re-normalizing each parameter
// to the remaining tail curve. params is sorted in place.
func splitMulti[C Splitter[C]](c C, params []float64) ([]C, error) {
	sort.Float64s(params)
	for _, t := range params {
		if err := checkParam(t); err != nil {
			return nil, err
		}
	}
	pieces := make([]C, 0, len(params)+1)
	rest := c
	last := 0.0
	for _, t := range params {
		var u float64
		if last < 1 {
			u = (t - last) / (1 - last)
		}
		u = min(max(u, 0), 1) // guard against rounding
		first, second, err := rest.SplitAt(u)
		if err != nil { // cannot happen for u in [0,1]
			return nil, err
		}
		pieces = append(pieces, first)
		rest = second
		last = t
	}
	pieces = append(pieces, rest)
	return pieces, nil
}

// degenerate checks if all points are coincident or lie on a common line.
func degenerate(tol bez.Tolerances, pts ...bez.Pair) bool {
	var a, b bez.Pair
	far := -1.0
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if d := bez.SqDist(pts[i], pts[j]); d > far {
				a, b, far = pts[i], pts[j], d
			}
		}
	}
	if far <= tol.Dist*tol.Dist {
		return true
	}
	for _, p := range pts {
		if !tol.Collinear(a, b, p) {
			return false
		}
	}
	return true
}
