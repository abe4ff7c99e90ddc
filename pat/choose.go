package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/rng"
	"github.com/patternengine/strudelcore/timespan"
	"github.com/patternengine/strudelcore/value"
)

// Choose is a continuous pattern uniformly selecting among values, using
// the same seeded/quantised draw as Rand (spec §4.9).
func Choose(values ...value.Value) Pattern {
	if len(values) == 0 {
		return Empty()
	}
	return continuousValueFrom("choose", func(t rational.Rational, ctx qctx.Context) value.Value {
		idx := rng.New(seedOf(ctx), "choose", quantise(t, ctx)).Int(len(values))
		return values[idx]
	})
}

// WChoose is Choose with a weight per value, via rng.Weighted.
func WChoose(weights []float64, values []value.Value) Pattern {
	if len(values) == 0 || len(weights) != len(values) {
		return Empty()
	}
	return continuousValueFrom("wchoose", func(t rational.Rational, ctx qctx.Context) value.Value {
		idx := rng.Weighted(rng.New(seedOf(ctx), "wchoose", quantise(t, ctx)), weights)
		return values[idx]
	})
}

// ChooseCycles picks one value per cycle, held steady across the whole
// cycle (the choose analogue of RandCycle).
func ChooseCycles(values ...value.Value) Pattern {
	if len(values) == 0 {
		return Empty()
	}
	return continuousValueFrom("chooseCycles", func(t rational.Rational, ctx qctx.Context) value.Value {
		cycle := rational.FromInt(t.Floor())
		idx := rng.New(seedOf(ctx), "chooseCycles", cycle).Int(len(values))
		return values[idx]
	})
}

// WChooseCycles is ChooseCycles with a weight per value.
func WChooseCycles(weights []float64, values []value.Value) Pattern {
	if len(values) == 0 || len(weights) != len(values) {
		return Empty()
	}
	return continuousValueFrom("wchooseCycles", func(t rational.Rational, ctx qctx.Context) value.Value {
		cycle := rational.FromInt(t.Floor())
		idx := rng.Weighted(rng.New(seedOf(ctx), "wchooseCycles", cycle), weights)
		return values[idx]
	})
}

// ChooseWith samples driver (expected to hold a float in [0,1)) at the
// query window's start and uses it to index into values, rather than
// drawing a fresh random number — so an external signal (sine, a
// mini-notation number pattern, ...) controls the selection (spec §4.9).
func ChooseWith(driver Pattern, values []value.Value) Pattern {
	if len(values) == 0 {
		return Empty()
	}
	return build("chooseWith", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		driven := driver.QueryArc(from, from, ctx)
		idx := 0
		if len(driven) > 0 {
			if f, ok := driven[0].Data.Value.Float(); ok {
				idx = clampIndex(f, len(values))
			}
		}
		span := timespan.New(from, to)
		return []event.Event{event.New(span, span, value.FromValue(values[idx]))}
	})
}

// ChooseInWith is ChooseWith restricted to an explicit sub-range [lo,hi) of
// driver's output before indexing, letting the same driver signal be reused
// across several ChooseInWith calls with different slices of its range.
func ChooseInWith(driver Pattern, lo, hi float64, values []value.Value) Pattern {
	if len(values) == 0 {
		return Empty()
	}
	scaled := Range(driver, lo, hi)
	return ChooseWith(scaled, values)
}

// ChooseCyclesPattern picks one whole child pattern per cycle (the pattern-
// valued analogue of ChooseCycles, used by mini-notation's `a | b` operator
// per spec §4.11), deriving the index the same way SomeCyclesBy derives its
// per-cycle coin flip: a fresh rng.Stream salted with the cycle number.
func ChooseCyclesPattern(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Empty()
	}
	return build("chooseCyclesPattern", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arcCycleWalk(from, to, func(cycleFrom, cycleTo rational.Rational, cycle int64) {
			idx := rng.New(seedOf(ctx), "chooseCyclesPattern", rational.FromInt(cycle)).Int(len(children))
			out = append(out, children[idx].QueryArc(cycleFrom, cycleTo, ctx)...)
		})
		return out
	})
}

func clampIndex(f float64, n int) int {
	idx := int(f * float64(n))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// continuousValueFrom is continuousFrom's Value-returning cousin, for
// choose-family combinators whose payload isn't necessarily numeric.
// Sampled at the query window's start, per spec §4.3.
func continuousValueFrom(label string, f func(t rational.Rational, ctx qctx.Context) value.Value) Pattern {
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		span := timespan.New(from, to)
		return []event.Event{event.New(span, span, value.FromValue(f(from, ctx)))}
	})
}
