/*
Package subdiv approximates Bézier curves by chains of simpler pieces.

Halve recursively splits a curve in halves until every piece satisfies a
flatness criterion. The resulting pieces may be treated as line segments
(flattening). ReduceDegree approximates a cubic curve by a chain of
quadratic curves within a given precision.

Both drivers report their results as a daisy-chain of pieces, in ascending
order of the curve parameter. Every piece carries the parameter window
[T0,T1] it covers on the original curve. Results may be received by a
Consumer, collected into a Chain, or pulled from an iterator:

	crit := flatness.ConvexHullCriterion(0.01)
	for piece := range subdiv.HalvingSeq(c, crit) {
	    fmt.Printf("%v -- %v\n", piece.Curve.Start(), piece.Curve.End())
	}

Recursion depth is limited (see WithMaxDepth); without a limit, tolerances
close to 0 could make the drivers recurse nearly forever.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package subdiv

import (
	"errors"
	"fmt"

	"github.com/npillmayer/bez"
	"github.com/npillmayer/bez/curve"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bez.subdiv'
func tracer() tracing.Trace {
	return tracing.Select("bez.subdiv")
}

var (
	// ErrNilConsumer is the panic value for drivers called without a consumer.
	ErrNilConsumer = errors.New("segment consumer must not be nil")
	// ErrBrokenChain is returned by Chain.Check for chains violating the
	// daisy-chain properties.
	ErrBrokenChain = errors.New("broken segment chain")
)

// Consumer receives the pieces produced by a driver, one call per piece, in
// ascending parameter order. t0 and t1 denote the parameter window of the
// piece on the original curve.
type Consumer[C any] interface {
	ProcessSegment(c C, t0, t1 float64)
}

// ConsumerFunc adapts an ordinary function to the Consumer interface.
type ConsumerFunc[C any] func(c C, t0, t1 float64)

// ProcessSegment calls f(c, t0, t1).
func (f ConsumerFunc[C]) ProcessSegment(c C, t0, t1 float64) {
	f(c, t0, t1)
}

// Piece is a curve together with the parameter window it covers on the
// curve it has been derived from.
type Piece[C curve.Curve] struct {
	Curve  C
	T0, T1 float64
}

func (p Piece[C]) String() string {
	return fmt.Sprintf("[%g,%g] %v", p.T0, p.T1, p.Curve)
}

// Chain is a sequence of pieces, in ascending parameter order.
type Chain[C curve.Curve] []Piece[C]

// Curves returns the curves of the chain, without their parameter windows.
func (ch Chain[C]) Curves() []C {
	curves := make([]C, len(ch))
	for i, p := range ch {
		curves[i] = p.Curve
	}
	return curves
}

// Check tests the daisy-chain properties of ch: the parameter windows have
// to cover [0,1] without gaps, and the end of every curve has to coincide
// with the start of its successor (within tol). It returns an error wrapping
// ErrBrokenChain if ch violates any of them.
func (ch Chain[C]) Check(tol bez.Tolerances) error {
	if len(ch) == 0 {
		return fmt.Errorf("%w: chain is empty", ErrBrokenChain)
	}
	if ch[0].T0 != 0 {
		return fmt.Errorf("%w: chain starts at t=%g", ErrBrokenChain, ch[0].T0)
	}
	if last := ch[len(ch)-1]; last.T1 != 1 {
		return fmt.Errorf("%w: chain ends at t=%g", ErrBrokenChain, last.T1)
	}
	for i := 1; i < len(ch); i++ {
		prev, p := ch[i-1], ch[i]
		if prev.T1 != p.T0 {
			return fmt.Errorf("%w: gap between t=%g and t=%g at #%d", ErrBrokenChain, prev.T1, p.T0, i)
		}
		if !tol.Coincident(prev.Curve.End(), p.Curve.Start()) {
			return fmt.Errorf("%w: %v and %v not connected at #%d", ErrBrokenChain,
				prev.Curve.End(), p.Curve.Start(), i)
		}
	}
	return nil
}

// Collector is a consumer which collects all pieces into a chain.
type Collector[C curve.Curve] struct {
	Chain Chain[C]
}

// ProcessSegment appends a piece to the chain.
func (col *Collector[C]) ProcessSegment(c C, t0, t1 float64) {
	col.Chain = append(col.Chain, Piece[C]{Curve: c, T0: t0, T1: t1})
}

// === Options ===============================================================

// DefaultMaxDepth is the default recursion limit of the drivers. Halving
// will produce at most 2^DefaultMaxDepth pieces.
const DefaultMaxDepth = 32

type config struct {
	maxDepth int
}

// Option configures a driver.
type Option func(*config)

// WithMaxDepth limits the recursion depth of a driver. When the limit is
// reached, pieces are emitted even if they do not satisfy the criterion.
// Negative values are treated as 0, i.e. no subdivision at all.
func WithMaxDepth(depth int) Option {
	return func(conf *config) {
		conf.maxDepth = max(depth, 0)
	}
}

func newConfig(opts []Option) config {
	conf := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&conf)
	}
	return conf
}
