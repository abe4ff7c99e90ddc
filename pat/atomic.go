package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/timespan"
	"github.com/patternengine/strudelcore/value"
)

// Atomic emits exactly one event per cycle whose whole is [floor(t),
// floor(t)+1) for every cycle overlapping [from, to), per spec §4.1.
func Atomic(data value.Data, locs ...event.SourceLocation) Pattern {
	return build("atomic", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arc := timespan.New(from, to)
		arc.CycleWalk(func(sub timespan.TimeSpan) bool {
			cycleStart := rational.FromInt(sub.Begin.Floor())
			whole := timespan.New(cycleStart, cycleStart.Add(rational.One))
			part, ok := whole.Intersect(sub)
			if !ok {
				return true
			}
			out = append(out, event.New(whole, part, data, locs...))
			return true
		})
		return out
	}, withNumSteps(rational.One))
}

// AtomicStr is a convenience wrapper building an Atomic pattern whose Value
// slot is the given string leaf text.
func AtomicStr(s string) Pattern {
	return Atomic(value.FromValue(value.Str(s)))
}

// AtomicInfiniteNum builds the AtomicInfinite numeric pattern used as the
// unit of algebraic join (the "pure" of spec §4.1): whole = (-infinity,
// +infinity), represented here by extending to the query window itself.
func AtomicInfiniteNum(r rational.Rational) Pattern {
	return AtomicInfinite(value.FromValue(value.NumExact(r)))
}

// AtomicInfinite is the same as Atomic but with whole == the full query
// window rather than a single cycle — i.e. a constant value available at
// any time, used as bind's unit. A query window [a,b) produces exactly one
// event whose whole and part both equal [a,b).
func AtomicInfinite(data value.Data, locs ...event.SourceLocation) Pattern {
	return build("atomicInfinite", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		span := timespan.New(from, to)
		return []event.Event{event.New(span, span, data, locs...)}
	})
}

// Empty (silence/rest/nothing) returns no events for every query.
func Empty() Pattern {
	return build("silence", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		return nil
	}, withNumSteps(rational.Zero))
}

// Silence is an alias for Empty.
func Silence() Pattern { return Empty() }
