package curve

import (
	"fmt"

	"github.com/npillmayer/bez"
)

// Quad is a quadratic Bézier curve with anchors P0 and P2 and control
// point P1.
type Quad struct {
	P0, P1, P2 bez.Pair
}

// Q is a quick notation for constructing a quadratic curve.
func Q(start, ctrl, end bez.Pair) Quad {
	return Quad{P0: start, P1: ctrl, P2: end}
}

func (q Quad) String() string {
	return fmt.Sprintf("%s .. controls %s .. %s", q.P0, q.P1, q.P2)
}

// Start returns the start anchor.
func (q Quad) Start() bez.Pair { return q.P0 }

// End returns the end anchor.
func (q Quad) End() bez.Pair { return q.P2 }

// Degree is 2 for quadratic curves.
func (q Quad) Degree() int { return 2 }

// Control returns the single control point, i must be 0.
func (q Quad) Control(i int) bez.Pair {
	if i != 0 {
		panic(fmt.Sprintf("quadratic curve has no control point #%d", i))
	}
	return q.P1
}

// PointAt evaluates the curve at t, using the expanded polynomial form
//
//	B(t) = P0 + t·(2a + t·b)
//
// with a = P1−P0 and b = P2−2P1+P0. t is not restricted to [0,1].
func (q Quad) PointAt(t float64) bez.Pair {
	a := q.P1 - q.P0
	b := q.P2 - q.P1 - a
	return q.P0 + (a.Scaled(2) + b.Scaled(t)).Scaled(t)
}

// TangentAt returns the point at t together with a tangent segment. The
// tangent is the segment between the two interpolation points of the first
// de Casteljau step; it is not normalized and it runs through the point.
func (q Quad) TangentAt(t float64) (bez.Pair, bez.Segment) {
	t0 := q.P0.Lerp(q.P1, t)
	t1 := q.P1.Lerp(q.P2, t)
	return t0.Lerp(t1, t), bez.Seg(t0, t1)
}

// HalfSplit splits the curve at t=0.5, by the midpoint construction.
func (q Quad) HalfSplit() (Quad, Quad) {
	p0 := q.P0.Midpoint(q.P1)
	p1 := q.P1.Midpoint(q.P2)
	dp := p0.Midpoint(p1)
	return Quad{q.P0, p0, dp}, Quad{dp, p1, q.P2}
}

// SplitAt splits the curve at t. It returns an error, and leaves the curve
// unsplit, if t is outside of [0,1].
func (q Quad) SplitAt(t float64) (Quad, Quad, error) {
	if err := checkParam(t); err != nil {
		return q, Quad{}, err
	}
	first, second := q.split(t)
	return first, second, nil
}

func (q Quad) split(t float64) (Quad, Quad) {
	p0 := q.P0.Lerp(q.P1, t)
	p1 := q.P1.Lerp(q.P2, t)
	dp := p0.Lerp(p1, t)
	return Quad{q.P0, p0, dp}, Quad{dp, p1, q.P2}
}

// SplitMulti splits the curve at every parameter of params, producing
// len(params)+1 daisy-chained pieces. params must be in [0,1] and will be
// sorted in place.
func (q Quad) SplitMulti(params []float64) ([]Quad, error) {
	return splitMulti(q, params)
}

// Raise returns the cubic curve describing exactly the same shape.
func (q Quad) Raise() Cubic {
	return Cubic{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// Transform applies an affine transformation to the curve.
func (q Quad) Transform(m bez.AT) Quad {
	return Quad{m.Transform(q.P0), m.Transform(q.P1), m.Transform(q.P2)}
}

// IsDegenerate is true if all three points are collinear or coincident,
// with respect to the given tolerances.
func (q Quad) IsDegenerate(tol bez.Tolerances) bool {
	return degenerate(tol, q.P0, q.P1, q.P2)
}
