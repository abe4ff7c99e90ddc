package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/value"
)

// scalarRational resolves a constant (non-pattern) Scalar to a Rational,
// used by combinators whose pattern-valued argument is handled separately
// via InnerJoin.
func scalarRational(s Scalar) rational.Rational {
	if s.isRat {
		return s.rat
	}
	return rational.FromFloat(s.number)
}

// valueRational extracts a Rational from a sampled Value, falling back to a
// float64-derived approximation when the value isn't exact. A non-numeric
// value resolves to Zero, letting the caller's own zero/negative guard
// (fast(0), slow(0), ...) turn it into silence per spec §7.
func valueRational(v value.Value) rational.Rational {
	if r, ok := v.Rational(); ok {
		return r
	}
	if f, ok := v.Float(); ok {
		return rational.FromFloat(f)
	}
	return rational.Zero
}

// liftTempo runs apply(p, factor) directly when k is a constant Scalar, or
// routes k through InnerJoin (sampling it per output segment) when k wraps a
// Pattern — the "pattern or scalar argument" rule every time/tempo
// combinator in this package follows (spec §4.4/§4.7).
func liftTempo(p Pattern, k Scalar, apply func(p Pattern, factor rational.Rational) Pattern) Pattern {
	if !k.IsPattern() {
		return apply(p, scalarRational(k))
	}
	return InnerJoin(k.AsPattern(), func(ke event.Event) Pattern {
		return apply(p, valueRational(ke.Data.Value))
	})
}

// LiftNumericField applies op to the named field of every event in p (or to
// the event's Value slot when field == "value"), combining it against a
// scalar-or-pattern argument k sampled at each event's own part (spec §4.6:
// "every arithmetic operator has a pattern-lifted variant applied
// elementwise to matching events").
func LiftNumericField(p Pattern, field string, k Scalar, op func(current, arg value.Value) value.Value) Pattern {
	kPattern := k.AsPattern()
	return build("liftField", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx)
		out := make([]event.Event, 0, len(events))
		for _, e := range events {
			argEvents := kPattern.QueryArc(e.Part.Begin, e.Part.End, ctx)
			arg := value.Null
			if len(argEvents) > 0 {
				arg = argEvents[0].Data.Value
			}
			cur, _ := e.Data.Get(field)
			out = append(out, e.WithData(e.Data.CopyWith(field, op(cur, arg))))
		}
		return out
	})
}
