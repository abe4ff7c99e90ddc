package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/timespan"
)

// Bind queries f(event) over each outer event's own part, keeping f(event)'s
// native timing structure (spec §4.7). This is the general monadic join:
// f(event) can differ event to event, unlike InnerJoin/BindSqueeze which
// are specialised for the common "pattern or scalar argument" case.
func Bind(p Pattern, f func(event.Event) Pattern) Pattern {
	return build("bind", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		outer := p.QueryArc(from, to, ctx)
		var out []event.Event
		for _, oe := range outer {
			child := f(oe)
			if child == nil {
				continue
			}
			out = append(out, child.QueryArc(oe.Part.Begin, oe.Part.End, ctx)...)
		}
		return out
	})
}

// BindSqueeze is like Bind, but compresses f(event) so that one full cycle
// of it fits inside [event.Whole.Begin, event.Whole.End) — the "squeeze"
// join spec §4.7 and the glossary describe, used by Ply and friends.
func BindSqueeze(p Pattern, f func(event.Event) Pattern) Pattern {
	return build("bindSqueeze", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		outer := p.QueryArc(from, to, ctx)
		var out []event.Event
		for _, oe := range outer {
			child := f(oe)
			if child == nil {
				continue
			}
			squeezed := squeezeIntoSpan(child, oe.Whole)
			out = append(out, squeezed.QueryArc(oe.Part.Begin, oe.Part.End, ctx)...)
		}
		return out
	})
}

// squeezeIntoSpan maps child's native [0,1) cycle onto span, non-repeating
// (a single "shot" of the child, not a per-cycle loop). A zero-width span
// squeezes to silence rather than dividing by zero.
func squeezeIntoSpan(child Pattern, span timespan.TimeSpan) Pattern {
	width := span.End.Sub(span.Begin)
	if width.IsZero() {
		return Empty()
	}
	return build("squeeze", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		childFrom := from.Sub(span.Begin).Div(width)
		childTo := to.Sub(span.Begin).Div(width)
		inner := child.QueryArc(childFrom, childTo, ctx)
		out := make([]event.Event, 0, len(inner))
		for _, ie := range inner {
			out = append(out, ie.WithTimes(func(s timespan.TimeSpan) timespan.TimeSpan {
				return s.Scale(width).Shift(span.Begin)
			}))
		}
		return out
	})
}

// InnerJoin takes its time structure from outer and, for each outer event,
// queries f(event) over the whole original arc, keeping the child's own
// whole but intersecting the child's part with the outer event's part —
// i.e. the child supplies values/timing detail, but only where outer has
// structure (spec §4.7). The child is not sampled at the outer event's
// start alone: every child event overlapping the outer part is kept, with
// the child's whole. liftTempo routes pattern-valued arguments through it;
// plain-number arguments bypass it.
func InnerJoin(outer Pattern, f func(event.Event) Pattern) Pattern {
	return build("innerJoin", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		outerEvents := outer.QueryArc(from, to, ctx)
		var out []event.Event
		for _, oe := range outerEvents {
			child := f(oe)
			if child == nil {
				continue
			}
			innerEvents := child.QueryArc(from, to, ctx)
			for _, ie := range innerEvents {
				part, ok := ie.Part.Intersect(oe.Part)
				if !ok {
					continue
				}
				merged := ie
				merged.Part = part
				out = append(out, merged)
			}
		}
		return out
	})
}

// AppLeft specialises InnerJoin for the degradeByWith family: it keeps the
// outer pattern's own whole/part untouched and substitutes only the data
// sampled from f(event), rather than letting the child's whole/part replace
// the outer's the way InnerJoin does.
func AppLeft(outer Pattern, f func(event.Event) Pattern) Pattern {
	return build("appLeft", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		outerEvents := outer.QueryArc(from, to, ctx)
		var out []event.Event
		for _, oe := range outerEvents {
			child := f(oe)
			if child == nil {
				continue
			}
			innerEvents := child.QueryArc(oe.Part.Begin, oe.Part.End, ctx)
			if len(innerEvents) == 0 {
				continue
			}
			out = append(out, oe.WithData(innerEvents[0].Data))
		}
		return out
	})
}
