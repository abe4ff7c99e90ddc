package pat

import (
	"math"

	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/value"
)

// toBipolar maps a [0,1]-ranged value to [-1,1]; fromBipolar is its inverse
// (spec §4.10), used by ToBipolar/FromBipolar and, through them, by the
// continuous oscillators' "2" variants and by Range2.
func toBipolar(v float64) float64   { return v*2 - 1 }
func fromBipolar(v float64) float64 { return (v + 1) / 2 }

// Range sets the query context's min/max slots to lo/hi and queries p
// through it (spec §4.10: "range(lo, hi) sets those slots"). It performs
// no value remapping itself — that's the responsibility of whichever
// "natural 0..1" continuous generator p bottoms out in (Sine, Rand, ...),
// which reads ctx.Min()/Max() to rescale its own raw output. This is what
// lets a range() wrapped around a nested expression reach every
// context-aware generator inside it, not just the outermost value.
func Range(p Pattern, lo, hi float64) Pattern {
	return build("range", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		return p.QueryArc(from, to, ctx.WithRange(lo, hi))
	})
}

// RangeX is Range's logarithmic sibling: it stores log(lo)/log(hi) as the
// context's min/max (so a nested generator's linear 0..1 interpolation
// lands in log-space), then applies exp to the result (spec §4.10:
// "rangex(lo, hi) stores logarithms and applies exp in the result"). lo
// and hi must be positive; non-positive bounds fall back to Range.
func RangeX(p Pattern, lo, hi float64) Pattern {
	if lo <= 0 || hi <= 0 {
		return Range(p, lo, hi)
	}
	return build("rangex", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx.WithRange(math.Log(lo), math.Log(hi)))
		out := make([]event.Event, len(events))
		for i, e := range events {
			f, ok := e.Data.Value.Float()
			if !ok {
				out[i] = e
				continue
			}
			out[i] = e.WithData(e.Data.CopyWith("value", value.NumFloat(math.Exp(f))))
		}
		return out
	})
}

// Range2 remaps a bipolar [-1,1]-natural pattern into [lo,hi]: fromBipolar
// composed with range, exactly as spec §4.10 defines it.
func Range2(p Pattern, lo, hi float64) Pattern {
	return Range(FromBipolar(p), lo, hi)
}
