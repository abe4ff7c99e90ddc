package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/rng"
	"github.com/patternengine/strudelcore/timespan"
)

// DegradeByWith removes each event of p with probability prob, where the
// coin-flip is drawn from withPat sampled at the event's own part (spec
// §4.9) — the general form DegradeBy/UndegradeBy specialise with a rand()
// control pattern.
func DegradeByWith(p Pattern, withPat Pattern, prob float64) Pattern {
	return build("degradeByWith", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx)
		out := make([]event.Event, 0, len(events))
		for _, e := range events {
			coin := withPat.QueryArc(e.Part.Begin, e.Part.End, ctx)
			if len(coin) == 0 {
				continue
			}
			f, ok := coin[0].Data.Value.Float()
			if ok && f >= prob {
				out = append(out, e)
			}
		}
		return out
	})
}

// DegradeBy removes each event with probability prob, the coin flip drawn
// from the deterministic rand() continuous signal (spec §4.9).
func DegradeBy(p Pattern, prob float64) Pattern {
	return DegradeByWith(p, Rand(), prob)
}

// UndegradeBy is DegradeBy's complement: it keeps only the events DegradeBy
// would have removed.
func UndegradeBy(p Pattern, prob float64) Pattern {
	return build("undegradeBy", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx)
		out := make([]event.Event, 0, len(events))
		randPat := Rand()
		for _, e := range events {
			coin := randPat.QueryArc(e.Part.Begin, e.Part.End, ctx)
			if len(coin) == 0 {
				continue
			}
			f, ok := coin[0].Data.Value.Float()
			if ok && f < prob {
				out = append(out, e)
			}
		}
		return out
	})
}

// SometimesBy applies f to prob's share of p's events (chosen per event) and
// leaves the rest untouched, the general combinator behind often/rarely/
// almostAlways/almostNever/always/never (spec §4.9).
func SometimesBy(p Pattern, prob float64, f func(Pattern) Pattern) Pattern {
	return Stack(
		DegradeByWith(p, Rand(), prob),
		f(UndegradeBy(p, prob)),
	)
}

func Often(p Pattern, f func(Pattern) Pattern) Pattern       { return SometimesBy(p, 0.75, f) }
func Rarely(p Pattern, f func(Pattern) Pattern) Pattern      { return SometimesBy(p, 0.25, f) }
func AlmostAlways(p Pattern, f func(Pattern) Pattern) Pattern { return SometimesBy(p, 0.9, f) }
func AlmostNever(p Pattern, f func(Pattern) Pattern) Pattern  { return SometimesBy(p, 0.1, f) }
func Always(p Pattern, f func(Pattern) Pattern) Pattern       { return f(p) }
func Never(p Pattern, f func(Pattern) Pattern) Pattern        { return p }

// SomeCyclesBy applies f to whole cycles chosen with probability prob (one
// coin flip per cycle number, not per event), per spec §4.9; SomeCycles
// defaults prob to 0.5.
func SomeCyclesBy(p Pattern, prob float64, f func(Pattern) Pattern) Pattern {
	transformed := f(p)
	return build("someCyclesBy", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arcCycleWalk(from, to, func(cycleFrom, cycleTo rational.Rational, cycle int64) {
			stream := rng.New(seedOf(ctx), "someCyclesBy", rational.FromInt(cycle))
			if stream.Bool(prob) {
				out = append(out, transformed.QueryArc(cycleFrom, cycleTo, ctx)...)
			} else {
				out = append(out, p.QueryArc(cycleFrom, cycleTo, ctx)...)
			}
		})
		return out
	})
}

func SomeCycles(p Pattern, f func(Pattern) Pattern) Pattern {
	return SomeCyclesBy(p, 0.5, f)
}

// arcCycleWalk is the int64-cycle-index convenience form of
// timespan.TimeSpan.CycleWalk, used by every combinator that needs the
// integer cycle number alongside each cycle-aligned sub-span.
func arcCycleWalk(from, to rational.Rational, fn func(subFrom, subTo rational.Rational, cycle int64)) {
	arc := timespan.New(from, to)
	arc.CycleWalk(func(sub timespan.TimeSpan) bool {
		fn(sub.Begin, sub.End, sub.Begin.Floor())
		return true
	})
}

// Shuffle randomly permutes n equal steps of p each cycle (spec §4.9),
// using a seeded Fisher-Yates permutation derived from the cycle number so
// the shuffle is stable within a cycle and changes deterministically across
// cycles.
func Shuffle(p Pattern, n int) Pattern {
	return perCyclePermutation(p, n, false)
}

// Scramble is like Shuffle, but every step's replacement source is chosen
// independently (with repetition) rather than via a single permutation.
func Scramble(p Pattern, n int) Pattern {
	return perCyclePermutation(p, n, true)
}

func perCyclePermutation(p Pattern, n int, withRepetition bool) Pattern {
	if n <= 0 {
		return Empty()
	}
	label := "shuffle"
	if withRepetition {
		label = "scramble"
	}
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arcCycleWalk(from, to, func(cycleFrom, cycleTo rational.Rational, cycle int64) {
			stream := rng.New(seedOf(ctx), label, rational.FromInt(cycle))
			var assign []int
			if withRepetition {
				assign = make([]int, n)
				cur := stream
				for i := 0; i < n; i++ {
					cur = cur.NextStream()
					assign[i] = cur.Int(n)
				}
			} else {
				assign = stream.Permutation(n)
			}
			children := make([]Pattern, n)
			for i := 0; i < n; i++ {
				srcLo := rational.New(int64(assign[i]), int64(n))
				srcHi := rational.New(int64(assign[i]+1), int64(n))
				dstLo := rational.New(int64(i), int64(n))
				dstHi := rational.New(int64(i+1), int64(n))
				children[i] = Compress(zoomWindow("shuffleSlice", p, srcLo, srcHi), dstLo, dstHi)
			}
			out = append(out, Stack(children...).QueryArc(cycleFrom, cycleTo, ctx)...)
		})
		return out
	})
}
