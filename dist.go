package bez

import (
	"fmt"
	"math"
)

// === Distance Metrics ======================================================

// Metric selects how the distance between two points is measured.
type Metric int8

const (
	// Euclidean is the usual straight-line distance.
	Euclidean Metric = iota
	// Manhattan is the sum of the absolute coordinate differences.
	Manhattan
	// Chebyshev is the maximum of the absolute coordinate differences.
	Chebyshev
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Chebyshev:
		return "chebyshev"
	}
	return fmt.Sprintf("Metric(%d)", int8(m))
}

// Dist returns the distance between p and q under metric m.
// Unknown metrics fall back to Euclidean.
func (m Metric) Dist(p, q Pair) float64 {
	switch m {
	case Manhattan:
		return ManhattanDist(p, q)
	case Chebyshev:
		return ChebyshevDist(p, q)
	}
	return Dist(p, q)
}

// SqDist returns the squared distance between p and q under metric m.
// For Euclidean this avoids the square root.
func (m Metric) SqDist(p, q Pair) float64 {
	switch m {
	case Manhattan, Chebyshev:
		d := m.Dist(p, q)
		return d * d
	}
	return SqDist(p, q)
}

// PrefersSquared is true if the squared distance is cheaper to compute than
// the distance itself.
func (m Metric) PrefersSquared() bool {
	return m != Manhattan && m != Chebyshev
}

// SqDist is the squared euclidean distance between two points.
func SqDist(p, q Pair) float64 {
	return (q - p).Abs2()
}

// Dist is the euclidean distance between two points.
func Dist(p, q Pair) float64 {
	return (q - p).Abs()
}

// ManhattanDist is the Manhattan (taxicab) distance between two points.
func ManhattanDist(p, q Pair) float64 {
	d := q - p
	return math.Abs(d.X()) + math.Abs(d.Y())
}

// ChebyshevDist is the Chebyshev (chessboard) distance between two points.
func ChebyshevDist(p, q Pair) float64 {
	d := q - p
	return math.Max(math.Abs(d.X()), math.Abs(d.Y()))
}

// PointLineSqDist computes the squared distance between point pt and the
// infinite line through start and end.
//
// If all three points coincide the distance is 0. If the line is degenerate
// (start == end) but pt differs, the squared distance between pt and start
// is returned.
func PointLineSqDist(pt, start, end Pair) float64 {
	v := pt - start
	dir := end - start
	sqlen := dir.Abs2()
	if sqlen == 0 { // line is degenerate, 0 if all 3 points are coincident
		return v.Abs2()
	}
	cross := v.Cross(dir)
	d := cross * cross / sqlen
	if math.IsNaN(d) {
		tracer().Errorf("distance of %s to line %s--%s is NaN", pt, start, end)
		return 0
	} else if math.IsInf(d, 0) { // underflow of sqlen
		return v.Abs2()
	}
	return d
}

// PointLineDist is the square root of PointLineSqDist.
func PointLineDist(pt, start, end Pair) float64 {
	return math.Sqrt(PointLineSqDist(pt, start, end))
}

// PointSegmentSqDist computes the squared distance between point pt and the
// point of segment [start,end] closest to it. If the projection of pt onto the
// support line falls outside the segment, this is the squared distance to the
// nearer segment end.
func PointSegmentSqDist(pt, start, end Pair) float64 {
	dir := end - start
	v := pt - end
	if v.Dot(dir) >= 0 { // end is closest; covers degenerate segments
		return v.Abs2()
	}
	v = pt - start
	dot := v.Dot(dir)
	if dot <= 0 { // start is closest
		return v.Abs2()
	}
	// projection lies on the segment, dir is not zero here
	d := v.Abs2() - dot*dot/dir.Abs2()
	if d < 0 { // rounding
		d = 0
	}
	return d
}

// PointSegmentDist is the square root of PointSegmentSqDist.
func PointSegmentDist(pt, start, end Pair) float64 {
	return math.Sqrt(PointSegmentSqDist(pt, start, end))
}

// === Segments ==============================================================

// Segment is a straight line segment between two points.
// Segments are used for tangents and as the reference line of flatness
// measures.
type Segment struct {
	Start, End Pair
}

// Seg is a quick notation for constructing a segment.
func Seg(start, end Pair) Segment {
	return Segment{Start: start, End: end}
}

func (s Segment) String() string {
	return fmt.Sprintf("%s--%s", s.Start, s.End)
}

// Direction returns the (unnormalized) vector from start to end.
func (s Segment) Direction() Pair {
	return s.End - s.Start
}

// Length is the euclidean length of the segment.
func (s Segment) Length() float64 {
	return Dist(s.Start, s.End)
}

// At returns the point at parameter t, with t=0 at start and t=1 at end.
func (s Segment) At(t float64) Pair {
	return s.Start.Lerp(s.End, t)
}

// SqDist is the squared distance of pt to the segment.
func (s Segment) SqDist(pt Pair) float64 {
	return PointSegmentSqDist(pt, s.Start, s.End)
}

// LineSqDist is the squared distance of pt to the infinite support line
// of the segment.
func (s Segment) LineSqDist(pt Pair) float64 {
	return PointLineSqDist(pt, s.Start, s.End)
}
