/*
Package bez approximates quadratic and cubic Bézier curves by simpler
primitives, i.e. line segments (flattening) or quadratic curves (degree
reduction), within a given error tolerance.

This root package holds the geometry primitives every other package
builds upon: points (pairs), segments, distance metrics and the tolerances
used for the collinearity and separation tests. Curves live in package
curve, flatness measures in package flatness, and the adaptive
subdivision drivers in package subdiv.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bez

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bez'
func tracer() tracing.Trace {
	return tracing.Select("bez")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0 by Is0 and Zap.
// Distance computations do not use it, see Tolerances for these.
const Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D-point or a 2D-vector. It is a value type, two pairs
// are the same if their coordinates are.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
// NaN or infinite numbers are replaced by the origin.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return Origin
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// IsNaN is true if any of the coordinates is NaN.
func (p Pair) IsNaN() bool {
	return math.IsNaN(p.X()) || math.IsNaN(p.Y())
}

// IsInf is true if any of the coordinates is infinite.
func (p Pair) IsInf() bool {
	return math.IsInf(p.X(), 0) || math.IsInf(p.Y(), 0)
}

// Equal compares two pairs, up to Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return p + v
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return Rotation(theta).Transform(p)
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
// t is not restricted to [0,1].
func (p Pair) Lerp(q Pair, t float64) Pair {
	return P(p.X()+t*(q.X()-p.X()), p.Y()+t*(q.Y()-p.Y()))
}

// Midpoint returns the point halfway between p and q.
func (p Pair) Midpoint(q Pair) Pair {
	return P((p.X()+q.X())/2, (p.Y()+q.Y())/2)
}

// Dot is the dot product of two vectors.
func (p Pair) Dot(q Pair) float64 {
	return p.X()*q.X() + p.Y()*q.Y()
}

// Cross is the z-component of the cross product of two vectors,
// i.e. twice the signed area of the triangle (0, p, q).
func (p Pair) Cross(q Pair) float64 {
	return p.X()*q.Y() - p.Y()*q.X()
}

// Abs is the length of vector p.
func (p Pair) Abs() float64 {
	return math.Hypot(p.X(), p.Y())
}

// Abs2 is the squared length of vector p.
func (p Pair) Abs2() float64 {
	return p.X()*p.X() + p.Y()*p.Y()
}
