package flatness

import (
	"math"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/curve"
)

// Criterion decides whether a curve is to be split further.
type Criterion interface {
	ShouldSplit(c curve.Curve) bool
}

// CriterionFunc adapts an ordinary function to the Criterion interface.
type CriterionFunc func(c curve.Curve) bool

// ShouldSplit calls f(c).
func (f CriterionFunc) ShouldSplit(c curve.Curve) bool {
	return f(c)
}

// DefaultTolerance is the tolerance of criteria created without an explicit
// tolerance.
const DefaultTolerance = bez.DefaultDistTolerance

// MinConvexHullTolerance is the smallest tolerance accepted by
// ConvexHullCriterion.
var MinConvexHullTolerance = 1.25 * math.Sqrt(math.SmallestNonzeroFloat64)

// GenericCriterion combines a flatness algorithm with a tolerance. A curve
// has to be split if its flatness score exceeds the tolerance. The criterion
// compares squared values if the algorithm prefers them.
type GenericCriterion struct {
	algo  Algorithm
	tol   float64
	sqTol float64
}

var _ Criterion = (*GenericCriterion)(nil)

// CriterionOption configures a GenericCriterion.
type CriterionOption func(*GenericCriterion)

// WithTolerance sets the tolerance of a criterion. It will be clamped to
// bez.MinTolerance.
func WithTolerance(tol float64) CriterionOption {
	return func(gc *GenericCriterion) {
		gc.tol = tol
	}
}

// WithTolerances sets the tolerance of a criterion to the distance tolerance
// of tol.
func WithTolerances(tol bez.Tolerances) CriterionOption {
	return func(gc *GenericCriterion) {
		gc.tol = tol.Dist
	}
}

// NewCriterion creates a subdivision criterion for algo. If algo is nil, the
// default algorithm is used. Without options the tolerance is
// DefaultTolerance.
func NewCriterion(algo Algorithm, opts ...CriterionOption) *GenericCriterion {
	if algo == nil {
		algo = Default()
	}
	gc := &GenericCriterion{algo: algo, tol: DefaultTolerance}
	for _, opt := range opts {
		opt(gc)
	}
	gc.setTolerance(bez.ClampTolerance(gc.tol))
	tracer().Debugf("criterion %v with tolerance %g", algo, gc.tol)
	return gc
}

// DefaultCriterion is the robust convex hull criterion with the default
// tolerance.
func DefaultCriterion() *GenericCriterion {
	return NewCriterion(nil)
}

func (gc *GenericCriterion) setTolerance(tol float64) {
	gc.tol = tol
	gc.sqTol = tol * tol
}

// Algorithm returns the flatness algorithm of the criterion.
func (gc *GenericCriterion) Algorithm() Algorithm {
	return gc.algo
}

// Tolerance returns the (clamped) tolerance of the criterion.
func (gc *GenericCriterion) Tolerance() float64 {
	return gc.tol
}

// ShouldSplit is true if the flatness of c exceeds the tolerance.
func (gc *GenericCriterion) ShouldSplit(c curve.Curve) bool {
	if gc.algo.PrefersSquared() {
		return gc.algo.SqFlatness(c) > gc.sqTol
	}
	return gc.algo.Flatness(c) > gc.tol
}

// ConvexHullCriterion creates a criterion using RobustConvexHull. A negative
// tolerance is used by its absolute value and tolerances below
// MinConvexHullTolerance are raised to it.
func ConvexHullCriterion(tol float64) *GenericCriterion {
	tol = math.Abs(tol)
	if tol == 0 || math.IsNaN(tol) {
		tol = bez.MinTolerance
	}
	gc := NewCriterion(RobustConvexHull{})
	gc.setTolerance(math.Max(tol, MinConvexHullTolerance))
	return gc
}

// NaiveConvexHullCriterion creates a criterion using NaiveConvexHull.
func NaiveConvexHullCriterion(tol float64) *GenericCriterion {
	return NewCriterion(NaiveConvexHull{}, WithTolerance(tol))
}

// LineDefectCriterion creates a criterion using a LineDefect algorithm.
func LineDefectCriterion(metric bez.Metric, combine Combine, tol float64) *GenericCriterion {
	return NewCriterion(NewLineDefect(metric, combine), WithTolerance(tol))
}

// === Mid-point approximation ===============================================

// MidPointCriterion decides if a cubic curve is close enough to its
// mid-point approximation, i.e. if it may be replaced by a single quadratic
// curve. Quadratic curves never have to be split.
type MidPointCriterion struct {
	sqTol float64
}

var _ Criterion = MidPointCriterion{}

// NewMidPointCriterion creates a mid-point approximation criterion with
// tolerance tol, clamped to bez.MinTolerance.
func NewMidPointCriterion(tol float64) MidPointCriterion {
	tol = bez.ClampTolerance(tol)
	return MidPointCriterion{sqTol: tol * tol}
}

// midPointSqErrorFactor is (√3/36)².
const midPointSqErrorFactor = 3.0 / 1296.0

// ShouldSplit is true for cubic curves with a mid-point approximation error
// above the tolerance.
func (mc MidPointCriterion) ShouldSplit(c curve.Curve) bool {
	var cubic curve.Cubic
	switch cc := c.(type) {
	case curve.Cubic:
		cubic = cc
	case *curve.Cubic:
		if cc == nil {
			return false
		}
		cubic = *cc
	default:
		return false
	}
	d := cubic.P3 - cubic.P2.Scaled(3) + cubic.P1.Scaled(3) - cubic.P0
	return midPointSqErrorFactor*d.Abs2() > mc.sqTol
}
