package subdiv

import (
	"iter"
	"math"

	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/bez/flatness"
)

// DefaultPrecision replaces a precision of 0 for degree reduction.
const DefaultPrecision = 1e-5

// defectFactor is 18/√3. The maximum distance between a cubic curve and its
// mid-point quadratic is √3/18 · |p1-p0|, with p0 and p1 the control points
// extrapolated from the anchors.
var defectFactor = 18 / math.Sqrt(3)

// reduction holds the state of one run of degree reduction.
type reduction struct {
	precision float64
	maxDepth  int
	emit      func(q curve.Quad, t0, t1 float64) bool
}

// ReduceDegree approximates the cubic curve c by a daisy-chain of quadratic
// curves, each of which deviates from the corresponding part of c by no
// more than precision. Deviation is measured between points of equal
// parameter. The quadratic curves are reported to consumer from left to
// right.
//
// A negative precision is used by its absolute value, a precision of 0 is
// replaced by DefaultPrecision.
//
// Once the recursion depth limit (see WithMaxDepth) is reached, the rest of
// c is halved instead, with the same limit. Pieces still exceeding precision
// after that are emitted anyway and reported to the error trace.
//
// ReduceDegree panics with ErrNilConsumer if consumer is nil.
func ReduceDegree(c curve.Cubic, precision float64, consumer Consumer[curve.Quad], opts ...Option) {
	if consumer == nil {
		panic(ErrNilConsumer)
	}
	runReduction(c, precision, opts, func(q curve.Quad, t0, t1 float64) bool {
		consumer.ProcessSegment(q, t0, t1)
		return true
	})
}

// ReduceDegreeAll is like ReduceDegree, but collects the quadratic curves
// into a chain.
func ReduceDegreeAll(c curve.Cubic, precision float64, opts ...Option) Chain[curve.Quad] {
	col := &Collector[curve.Quad]{}
	ReduceDegree(c, precision, col, opts...)
	tracer().Infof("degree reduction produced %d quadratic curves", len(col.Chain))
	return col.Chain
}

// ReduceDegreeSeq returns an iterator over the quadratic curves ReduceDegree
// would produce.
func ReduceDegreeSeq(c curve.Cubic, precision float64, opts ...Option) iter.Seq[Piece[curve.Quad]] {
	return func(yield func(Piece[curve.Quad]) bool) {
		runReduction(c, precision, opts, func(q curve.Quad, t0, t1 float64) bool {
			return yield(Piece[curve.Quad]{Curve: q, T0: t0, T1: t1})
		})
	}
}

func normalizePrecision(precision float64) float64 {
	precision = math.Abs(precision)
	if precision == 0 || math.IsNaN(precision) {
		return DefaultPrecision
	}
	return precision
}

func runReduction(c curve.Cubic, precision float64, opts []Option, emit func(curve.Quad, float64, float64) bool) {
	conf := newConfig(opts)
	r := &reduction{
		precision: normalizePrecision(precision),
		maxDepth:  conf.maxDepth,
		emit:      emit,
	}
	r.reduce(c, 0, 1, 0)
}

// defect is the ratio of the precision to the error of the mid-point
// approximation of c. A defect of 1 or more means that the mid-point
// quadratic is precise enough. Curves too large for float64 arithmetic
// have a defect of NaN.
func (r *reduction) defect(c curve.Cubic) float64 {
	p0 := c.P1.Scaled(3).Shifted(-c.P0).Scaled(0.5)
	p1 := c.P2.Scaled(3).Shifted(-c.P3).Scaled(0.5)
	dp := p1 - p0
	if dp.IsNaN() || dp.IsInf() {
		return math.NaN()
	}
	d := dp.Abs()
	if d == 0 {
		return math.Inf(1)
	}
	return defectFactor * r.precision / d
}

// reduce returns false if the consumer asked to stop.
func (r *reduction) reduce(c curve.Cubic, t0, t1 float64, depth int) bool {
	defect := r.defect(c)
	switch {
	case defect >= 1:
		return r.emit(c.MidPointQuad(), t0, t1)
	case defect >= 0.125:
		// halves have 1/8 of the error
		left, right := c.HalfSplit()
		tm := (t0 + t1) / 2
		return r.emit(left.MidPointQuad(), t0, tm) && r.emit(right.MidPointQuad(), tm, t1)
	case math.IsNaN(defect) || defect == 0:
		tracer().Errorf("cannot reduce degree of %v, coordinates out of range", c)
		return r.emit(c.MidPointQuad(), t0, t1)
	case depth >= r.maxDepth:
		// halving divides the error by 8 per level
		tracer().Debugf("degree reduction reached depth limit %d, halving [%g,%g]", r.maxDepth, t0, t1)
		return r.halve(c, t0, t1, 0)
	}
	// pieces of length t have an error of t³ times the error of c
	t := math.Cbrt(defect)
	parts, err := c.SplitMulti([]float64{t, 1 - t})
	if err != nil { // t is in (0,0.5)
		panic(err)
	}
	tracer().Debugf("degree reduction splits at t=%g and t=%g", t, 1-t)
	dt := t1 - t0
	ta, tb := t0+t*dt, t0+(1-t)*dt
	return r.emit(parts[0].MidPointQuad(), t0, ta) &&
		r.reduce(parts[1], ta, tb, depth+1) &&
		r.emit(parts[2].MidPointQuad(), tb, t1)
}

// halve splits c in halves until the mid-point quadratic of every piece is
// precise enough. It returns false if the consumer asked to stop.
func (r *reduction) halve(c curve.Cubic, t0, t1 float64, depth int) bool {
	defect := r.defect(c)
	if defect >= 1 {
		return r.emit(c.MidPointQuad(), t0, t1)
	}
	if depth >= r.maxDepth || math.IsNaN(defect) {
		tracer().Errorf("quadratic curve for [%g,%g] exceeds precision %g", t0, t1, r.precision)
		return r.emit(c.MidPointQuad(), t0, t1)
	}
	left, right := c.HalfSplit()
	tm := (t0 + t1) / 2
	return r.halve(left, t0, tm, depth+1) && r.halve(right, tm, t1, depth+1)
}

// === Reduction by halving ==================================================

// HalvingReduceDegree approximates the cubic curve c by a daisy-chain of
// quadratic curves by adaptive halving. c is halved until the mid-point
// approximation of every piece deviates by no more than precision. It will
// in general produce more quadratic curves than ReduceDegree.
//
// Precision is handled as for ReduceDegree.
func HalvingReduceDegree(c curve.Cubic, precision float64, consumer Consumer[curve.Quad], opts ...Option) {
	if consumer == nil {
		panic(ErrNilConsumer)
	}
	crit := flatness.NewMidPointCriterion(normalizePrecision(precision))
	Halve(c, crit, ConsumerFunc[curve.Cubic](func(piece curve.Cubic, t0, t1 float64) {
		consumer.ProcessSegment(piece.MidPointQuad(), t0, t1)
	}), opts...)
}
