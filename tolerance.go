package bez

import (
	"math"
)

// MinPrecision is the square root of the smallest positive float64. Squaring
// a value at or above it will not underflow to 0.
var MinPrecision = math.Sqrt(math.SmallestNonzeroFloat64)

// MinTolerance is the floor for all tolerances. Tolerances of 0 would let
// adaptive subdivision recurse forever.
var MinTolerance = 2 * MinPrecision

// ClampTolerance returns tol, or MinTolerance if tol is NaN, non-positive or
// smaller than MinTolerance.
func ClampTolerance(tol float64) float64 {
	if math.IsNaN(tol) || tol < MinTolerance {
		return MinTolerance
	}
	return tol
}

// Tolerances collects the thresholds below which distances, angles and areas
// are considered to be zero. Tolerances is a value type: clients pass it
// to the functions and constructors that need it; there are no process-wide
// settings.
type Tolerances struct {
	Dist  float64 // locations closer than Dist are indiscernible
	Angle float64 // angles (radians) below Angle are considered 0
	Area  float64 // (doubled) triangle areas below Area are considered 0
}

// Default tolerance values.
const (
	DefaultDistTolerance  = 1.0e-5
	DefaultAngleTolerance = math.Pi * 1.0e-5 / 180.0 / 3600.0
	DefaultAreaTolerance  = 1.0e-10
)

// DefaultTolerances returns the default tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Dist:  DefaultDistTolerance,
		Angle: DefaultAngleTolerance,
		Area:  DefaultAreaTolerance,
	}
}

// ToleranceOption configures a Tolerances value, see NewTolerances.
type ToleranceOption func(*Tolerances)

// WithDistTolerance sets the distance tolerance.
func WithDistTolerance(d float64) ToleranceOption {
	return func(tol *Tolerances) {
		tol.Dist = d
	}
}

// WithAngleTolerance sets the angle tolerance, in radians.
func WithAngleTolerance(a float64) ToleranceOption {
	return func(tol *Tolerances) {
		tol.Angle = a
	}
}

// WithAreaTolerance sets the area tolerance.
func WithAreaTolerance(a float64) ToleranceOption {
	return func(tol *Tolerances) {
		tol.Area = a
	}
}

// NewTolerances creates a set of tolerances, starting from the defaults and
// applying opts in order. Every resulting value is clamped to MinTolerance.
func NewTolerances(opts ...ToleranceOption) Tolerances {
	tol := DefaultTolerances()
	for _, opt := range opts {
		opt(&tol)
	}
	return tol.Clamped()
}

// Clamped returns a copy of tol with every tolerance clamped to MinTolerance.
func (tol Tolerances) Clamped() Tolerances {
	return Tolerances{
		Dist:  ClampTolerance(tol.Dist),
		Angle: ClampTolerance(tol.Angle),
		Area:  ClampTolerance(tol.Area),
	}
}

// Coincident is true if p and q are closer than the distance tolerance.
func (tol Tolerances) Coincident(p, q Pair) bool {
	return SqDist(p, q) <= tol.Dist*tol.Dist
}

// Collinear is true if the (doubled) area of the triangle a,b,c does not
// exceed the area tolerance. Coincident points are collinear.
func (tol Tolerances) Collinear(a, b, c Pair) bool {
	return math.Abs((b - a).Cross(c - a)) <= tol.Area
}

// Parallel is true if the angle between the directions u and v is below the
// angle tolerance, or if either direction is degenerate. Opposite directions
// are not parallel.
func (tol Tolerances) Parallel(u, v Pair) bool {
	if u.Abs2() == 0 || v.Abs2() == 0 {
		return true
	}
	if u.Dot(v) < 0 {
		return false
	}
	return math.Abs(math.Atan2(u.Cross(v), u.Dot(v))) <= tol.Angle
}

// LineSeparates is true if p0 and p1 lie on opposite sides of the line through
// start and end. If strict is true, a point lying exactly on the line will
// not count as separated; otherwise any of the points on the line gives a
// positive answer.
//
// For a degenerate line (start == end) the answer depends on strict only.
func LineSeparates(start, end, p0, p1 Pair, strict bool) bool {
	dir := end - start
	s := sign(dir.Cross(p0-start)) * sign(dir.Cross(p1-start))
	if strict {
		return s < 0
	}
	return s <= 0
}

func sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
