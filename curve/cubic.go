package curve

import (
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/bez"
)

// Cubic is a cubic Bézier curve with anchors P0 and P3 and control points
// P1 and P2.
type Cubic struct {
	P0, P1, P2, P3 bez.Pair
}

// C is a quick notation for constructing a cubic curve.
func C(start, ctrl1, ctrl2, end bez.Pair) Cubic {
	return Cubic{P0: start, P1: ctrl1, P2: ctrl2, P3: end}
}

func (c Cubic) String() string {
	return fmt.Sprintf("%s .. controls %s and %s .. %s", c.P0, c.P1, c.P2, c.P3)
}

// Start returns the start anchor.
func (c Cubic) Start() bez.Pair { return c.P0 }

// End returns the end anchor.
func (c Cubic) End() bez.Pair { return c.P3 }

// Degree is 3 for cubic curves.
func (c Cubic) Degree() int { return 3 }

// Control returns control point i, which must be 0 or 1.
func (c Cubic) Control(i int) bez.Pair {
	switch i {
	case 0:
		return c.P1
	case 1:
		return c.P2
	}
	panic(fmt.Sprintf("cubic curve has no control point #%d", i))
}

// coefficients returns the polynomial coefficients of the curve relative
// to P0, i.e. B(t) = P0 + 3a·t + 3b·t² + c·t³.
func (c Cubic) coefficients() (a, b, cc bez.Pair) {
	a = c.P1 - c.P0
	b = c.P2 - c.P1 - a
	cc = c.P3 - c.P2 - a - b.Scaled(2)
	return
}

// PointAt evaluates the curve at t in Horner form. t is not restricted
// to [0,1].
func (c Cubic) PointAt(t float64) bez.Pair {
	a, b, cc := c.coefficients()
	return c.P0 + (a.Scaled(3) + (b.Scaled(3) + cc.Scaled(t)).Scaled(t)).Scaled(t)
}

// TangentAt returns the point at t together with a tangent segment, taken
// from the last but one level of the de Casteljau construction. The segment
// is not normalized and it runs through the point.
func (c Cubic) TangentAt(t float64) (bez.Pair, bez.Segment) {
	p0 := c.P0.Lerp(c.P1, t)
	p1 := c.P1.Lerp(c.P2, t)
	p2 := c.P2.Lerp(c.P3, t)
	r0 := p0.Lerp(p1, t)
	r1 := p1.Lerp(p2, t)
	return r0.Lerp(r1, t), bez.Seg(r0, r1)
}

// HalfSplit splits the curve at t=0.5, by the midpoint construction.
func (c Cubic) HalfSplit() (Cubic, Cubic) {
	p0 := c.P0.Midpoint(c.P1)
	p1 := c.P1.Midpoint(c.P2)
	p2 := c.P2.Midpoint(c.P3)
	p01 := p0.Midpoint(p1)
	p12 := p1.Midpoint(p2)
	dp := p01.Midpoint(p12)
	return Cubic{c.P0, p0, p01, dp}, Cubic{dp, p12, p2, c.P3}
}

// SplitAt splits the curve at t. It returns an error, and leaves the curve
// unsplit, if t is outside of [0,1].
func (c Cubic) SplitAt(t float64) (Cubic, Cubic, error) {
	if err := checkParam(t); err != nil {
		return c, Cubic{}, err
	}
	first, second := c.split(t)
	return first, second, nil
}

func (c Cubic) split(t float64) (Cubic, Cubic) {
	p0 := c.P0.Lerp(c.P1, t)
	p1 := c.P1.Lerp(c.P2, t)
	p2 := c.P2.Lerp(c.P3, t)
	p01 := p0.Lerp(p1, t)
	p12 := p1.Lerp(p2, t)
	dp := p01.Lerp(p12, t)
	return Cubic{c.P0, p0, p01, dp}, Cubic{dp, p12, p2, c.P3}
}

// SplitMulti splits the curve at every parameter of params, producing
// len(params)+1 daisy-chained pieces. params must be in [0,1] and will be
// sorted in place.
func (c Cubic) SplitMulti(params []float64) ([]Cubic, error) {
	return splitMulti(c, params)
}

// Transform applies an affine transformation to the curve.
func (c Cubic) Transform(m bez.AT) Cubic {
	return Cubic{m.Transform(c.P0), m.Transform(c.P1), m.Transform(c.P2), m.Transform(c.P3)}
}

// IsDegenerate is true if all four points are collinear or coincident,
// with respect to the given tolerances.
func (c Cubic) IsDegenerate(tol bez.Tolerances) bool {
	return degenerate(tol, c.P0, c.P1, c.P2, c.P3)
}

// === Inflections ===========================================================

// Inflections returns the parameters of the inflection points of the curve,
// i.e. where the curvature changes its sign. There are at most 2 of them.
// Only parameters strictly inside (0,1) are reported, in ascending order.
//
// A fully degenerate (straight) curve has no inflections.
func (c Cubic) Inflections() []float64 {
	a, b, cc := c.coefficients()
	roots := solveQuadratic(a.Cross(b), a.Cross(cc), b.Cross(cc))
	infl := make([]float64, 0, 2)
	for _, t := range roots {
		if t > 0 && t < 1 {
			infl = append(infl, t)
		}
	}
	return slices.Compact(infl)
}

// solveQuadratic finds the real roots of c0 + c1·x + c2·x² = 0, in ascending
// order. It avoids the cancellation of the textbook formula. If the equation
// degenerates to 0 = 0, no roots are reported.
func solveQuadratic(c0, c1, c2 float64) []float64 {
	sc0, sc1 := c0/c2, c1/c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is 0 or tiny: linear
		root := -c0 / c1
		if math.IsInf(root, 0) || math.IsNaN(root) {
			return nil
		}
		return []float64{root}
	}
	arg := sc1*sc1 - 4*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1² overflowed, take one root from sc1·x + x² = 0
		root1 = -sc1
	} else {
		switch {
		case arg < 0:
			return nil
		case arg == 0:
			return []float64{-0.5 * sc1}
		}
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return []float64{root1}
	}
	if root2 < root1 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// === Mid-point approximation ===============================================

// MidPointQuad returns the mid-point approximation of the curve: a quadratic
// curve sharing the anchors, with its control point set to the average of
// the control points extrapolated by a factor of 1.5 from their adjacent
// anchors.
func (c Cubic) MidPointQuad() Quad {
	q1 := c.P1.Scaled(3).Shifted(-c.P0).Scaled(0.5)
	q2 := c.P2.Scaled(3).Shifted(-c.P3).Scaled(0.5)
	return Quad{c.P0, q1.Midpoint(q2), c.P3}
}

// midPointErrorFactor is √3/36.
var midPointErrorFactor = math.Sqrt(3) / 36

// MidPointError is the maximum parametric distance between the curve and its
// mid-point approximation, √3/36 · |P3 − 3·P2 + 3·P1 − P0|.
func (c Cubic) MidPointError() float64 {
	_, _, cc := c.coefficients()
	return midPointErrorFactor * cc.Abs()
}
