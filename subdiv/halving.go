package subdiv

import (
	"iter"

	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/bez/flatness"
)

// halving holds the state of one run of adaptive halving.
type halving[C curve.Splitter[C]] struct {
	crit     flatness.Criterion
	maxDepth int
	emit     func(c C, t0, t1 float64) bool
	capped   int // number of pieces emitted because of the depth limit
}

// Halve splits c in halves, recursively, until every piece satisfies crit.
// The pieces are reported to consumer from left to right. If crit is nil,
// flatness.DefaultCriterion is used.
//
// Halve panics with ErrNilConsumer if consumer is nil.
func Halve[C curve.Splitter[C]](c C, crit flatness.Criterion, consumer Consumer[C], opts ...Option) {
	if consumer == nil {
		panic(ErrNilConsumer)
	}
	runHalving(c, crit, opts, func(piece C, t0, t1 float64) bool {
		consumer.ProcessSegment(piece, t0, t1)
		return true
	})
}

// HalveAll is like Halve, but collects the pieces into a chain.
func HalveAll[C curve.Splitter[C]](c C, crit flatness.Criterion, opts ...Option) Chain[C] {
	col := &Collector[C]{}
	Halve(c, crit, col, opts...)
	tracer().Infof("halving produced %d pieces", len(col.Chain))
	return col.Chain
}

// HalvingSeq returns an iterator over the pieces Halve would produce.
// Halving stops as soon as the caller stops iterating.
func HalvingSeq[C curve.Splitter[C]](c C, crit flatness.Criterion, opts ...Option) iter.Seq[Piece[C]] {
	return func(yield func(Piece[C]) bool) {
		runHalving(c, crit, opts, func(piece C, t0, t1 float64) bool {
			return yield(Piece[C]{Curve: piece, T0: t0, T1: t1})
		})
	}
}

func runHalving[C curve.Splitter[C]](c C, crit flatness.Criterion, opts []Option, emit func(C, float64, float64) bool) {
	if crit == nil {
		crit = flatness.DefaultCriterion()
	}
	conf := newConfig(opts)
	h := &halving[C]{crit: crit, maxDepth: conf.maxDepth, emit: emit}
	h.halve(c, 0, 1, 0)
	if h.capped > 0 {
		tracer().Debugf("halving reached depth limit %d for %d pieces", h.maxDepth, h.capped)
	}
}

// halve returns false if the consumer asked to stop.
func (h *halving[C]) halve(c C, t0, t1 float64, depth int) bool {
	if !h.crit.ShouldSplit(c) {
		return h.emit(c, t0, t1)
	}
	if depth >= h.maxDepth {
		h.capped++
		return h.emit(c, t0, t1)
	}
	left, right := c.HalfSplit()
	tm := (t0 + t1) / 2
	if !h.halve(left, t0, tm, depth+1) {
		return false
	}
	return h.halve(right, tm, t1, depth+1)
}
