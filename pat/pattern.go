// Package pat implements the pattern algebra: the open set of pattern
// variants from spec §4 (atomic, sequential, stacked, continuous,
// structural, arithmetic-lifted, time-shifted, Euclidean, random,
// context-scoped) plus the monadic join combinators of spec §4.7.
//
// Every variant in this package shares one concrete implementation of the
// Pattern interface: a struct wrapping a query closure, weight, declared
// step count and cycle-duration estimate. This mirrors how the Tidal/
// Strudel family itself represents a pattern (a value wrapping a query
// function), and it satisfies spec §9's instruction to expose "an
// enumerated sum type... or a trait with a finite documented implementer
// set": the finite, documented set here is the list of exported
// constructor functions in this package — callers never build the
// underlying struct directly. See DESIGN.md.
package pat

import (
	"sort"

	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
)

// Pattern is the central abstraction of spec §3: every variant answers
// time-window queries, declares a proportional-sequencing weight, may
// declare a metrical step count, and can estimate its own natural cycle
// length.
type Pattern interface {
	// QueryArc returns the events produced by this pattern over [from, to).
	// It must be a pure function of its three arguments: no mutation, no
	// global state, and (for randomised patterns) a pure function of ctx's
	// seed.
	QueryArc(from, to rational.Rational, ctx qctx.Context) []event.Event

	// Weight is used by Sequence for proportional step sizing; 1.0 by
	// default.
	Weight() float64

	// NumSteps is the declared metrical step count, or (zero, false) when
	// undefined.
	NumSteps() (rational.Rational, bool)

	// EstimateCycleDuration reports a natural cycle length, 1 by default;
	// tempo combinators like pace/steps use this.
	EstimateCycleDuration() rational.Rational

	// String renders a short debug representation of the pattern tree.
	String() string
}

// pattern is the single concrete Pattern implementation every constructor
// in this package and its sibling files returns.
type pattern struct {
	query    func(from, to rational.Rational, ctx qctx.Context) []event.Event
	weight   float64
	numSteps *rational.Rational
	cycleDur *rational.Rational
	label    string
}

func (p *pattern) QueryArc(from, to rational.Rational, ctx qctx.Context) []event.Event {
	if from.Greater(to) {
		return nil
	}
	events := p.query(from, to, ctx)
	sort.SliceStable(events, func(i, j int) bool { return event.ByPartBegin(events, i, j) })
	return events
}

func (p *pattern) Weight() float64 {
	if p.weight == 0 {
		return 1.0
	}
	return p.weight
}

func (p *pattern) NumSteps() (rational.Rational, bool) {
	if p.numSteps == nil {
		return rational.Zero, false
	}
	return *p.numSteps, true
}

func (p *pattern) EstimateCycleDuration() rational.Rational {
	if p.cycleDur == nil {
		return rational.One
	}
	return *p.cycleDur
}

func (p *pattern) String() string {
	if p.label == "" {
		return "pattern"
	}
	return p.label
}

// build is the common constructor every file in this package funnels
// through, keeping the defaulting logic (weight 1.0, numSteps undefined,
// cycleDur 1) in one place.
func build(label string, query func(from, to rational.Rational, ctx qctx.Context) []event.Event, opts ...buildOption) Pattern {
	p := &pattern{query: query, weight: 1.0, label: label}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type buildOption func(*pattern)

func withWeight(w float64) buildOption {
	return func(p *pattern) { p.weight = w }
}

func withNumSteps(n rational.Rational) buildOption {
	return func(p *pattern) { p.numSteps = &n }
}

func withCycleDuration(d rational.Rational) buildOption {
	return func(p *pattern) { p.cycleDur = &d }
}

// Scalar is anything LiftNumericField / Fast / Slow / Late / Early /
// etc. accept in place of a control pattern: a plain number or an existing
// Pattern. AsPattern converts either into a Pattern.
type Scalar struct {
	pattern Pattern
	number  float64
	isRat   bool
	rat     rational.Rational
}

// Num wraps a float64 as a Scalar.
func Num(f float64) Scalar { return Scalar{number: f} }

// Rat wraps a rational.Rational as an exact Scalar.
func Rat(r rational.Rational) Scalar { return Scalar{isRat: true, rat: r} }

// FromPattern wraps an existing Pattern as a Scalar (so a control pattern
// can be passed anywhere a scalar argument is accepted).
func FromPattern(p Pattern) Scalar { return Scalar{pattern: p} }

// AsPattern converts s to a Pattern: an existing pattern is returned as-is;
// a bare number becomes an AtomicInfinite numeric pattern.
func (s Scalar) AsPattern() Pattern {
	if s.pattern != nil {
		return s.pattern
	}
	if s.isRat {
		return AtomicInfiniteNum(s.rat)
	}
	return AtomicInfiniteNum(rational.FromFloat(s.number))
}

// IsPattern reports whether s wraps a Pattern rather than a bare scalar.
func (s Scalar) IsPattern() bool { return s.pattern != nil }
