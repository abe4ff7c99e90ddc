package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/timespan"
	"github.com/patternengine/strudelcore/value"
)

// transformConst applies a constant query-time map q and its inverse
// event-time map h to p, the shared machinery behind Fast/Slow/Late/Early/
// Revv's constant-factor case (spec §4.4).
func transformConst(label string, p Pattern, q, h func(rational.Rational) rational.Rational) Pattern {
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		qFrom, qTo := q(from), q(to)
		if qFrom.Greater(qTo) {
			qFrom, qTo = qTo, qFrom
		}
		events := p.QueryArc(qFrom, qTo, ctx)
		out := make([]event.Event, len(events))
		for i, e := range events {
			out[i] = e.WithTimes(func(span timespan.TimeSpan) timespan.TimeSpan {
				b, e2 := h(span.Begin), h(span.End)
				if b.Greater(e2) {
					b, e2 = e2, b
				}
				return timespan.New(b, e2)
			})
		}
		return out
	})
}

func applyFast(p Pattern, k rational.Rational) Pattern {
	if k.LessEq(rational.Zero) {
		return Empty()
	}
	return transformConst("fast", p,
		func(t rational.Rational) rational.Rational { return t.Mul(k) },
		func(t rational.Rational) rational.Rational { return t.Div(k) })
}

func applySlow(p Pattern, k rational.Rational) Pattern {
	if k.LessEq(rational.Zero) {
		return Empty()
	}
	return applyFast(p, rational.One.Div(k))
}

// Fast plays p k times per cycle (k may be a constant Scalar or a pattern of
// factors, sampled per segment). Non-positive factors produce silence.
func Fast(p Pattern, k Scalar) Pattern { return liftTempo(p, k, applyFast) }

// Slow stretches p's cycle to k cycles.
func Slow(p Pattern, k Scalar) Pattern { return liftTempo(p, k, applySlow) }

// Hurry is Fast composed with multiplying the "speed" field by the same
// factor, the classic "playback rate" combinator.
func Hurry(p Pattern, k Scalar) Pattern {
	fastened := Fast(p, k)
	return LiftNumericField(fastened, "speed", k, func(cur, factor value.Value) value.Value {
		if cur.IsNull() {
			cur = value.NumFloat(1.0)
		}
		return value.Mul(cur, factor)
	})
}

// Late shifts p forward in time by x cycles (events appear later).
func Late(p Pattern, x Scalar) Pattern {
	return liftTempo(p, x, func(p Pattern, xr rational.Rational) Pattern {
		return transformConst("late", p,
			func(t rational.Rational) rational.Rational { return t.Sub(xr) },
			func(t rational.Rational) rational.Rational { return t.Add(xr) })
	})
}

// Early shifts p backward in time by x cycles (events appear sooner).
func Early(p Pattern, x Scalar) Pattern {
	return liftTempo(p, x, func(p Pattern, xr rational.Rational) Pattern {
		return transformConst("early", p,
			func(t rational.Rational) rational.Rational { return t.Add(xr) },
			func(t rational.Rational) rational.Rational { return t.Sub(xr) })
	})
}

// Revv negates the time axis: q and h both map t -> -t, with span endpoints
// swapped back into begin<end order by transformConst (spec §4.4).
func Revv(p Pattern) Pattern {
	neg := func(t rational.Rational) rational.Rational { return t.Neg() }
	return transformConst("revv", p, neg, neg)
}

// Rev reverses each group of n consecutive cycles in place (n defaults to 1,
// ordinary per-cycle reversal). The reflection t -> 2*k*n + n - t (k =
// floor(t/n)) is its own inverse, so the same function serves as both the
// query-time and event-time map.
func Rev(p Pattern, n rational.Rational) Pattern {
	if n.LessEq(rational.Zero) {
		n = rational.One
	}
	return build("rev", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arc := timespan.New(from, to)
		groupWalk(arc, n, func(sub timespan.TimeSpan, k rational.Rational) {
			reflect := func(t rational.Rational) rational.Rational {
				return k.Mul(n).Mul(rational.FromInt(2)).Add(n).Sub(t)
			}
			qb, qe := reflect(sub.Begin), reflect(sub.End)
			if qb.Greater(qe) {
				qb, qe = qe, qb
			}
			events := p.QueryArc(qb, qe, ctx)
			for _, e := range events {
				out = append(out, e.WithTimes(func(span timespan.TimeSpan) timespan.TimeSpan {
					b, e2 := reflect(span.Begin), reflect(span.End)
					if b.Greater(e2) {
						b, e2 = e2, b
					}
					return timespan.New(b, e2)
				}))
			}
		})
		return out
	})
}

// groupWalk splits arc at every multiple of period, calling fn with each
// sub-span and the integer index k of the period-group it falls in
// (sub.Begin is in [k*period, (k+1)*period)).
func groupWalk(arc timespan.TimeSpan, period rational.Rational, fn func(sub timespan.TimeSpan, k rational.Rational)) {
	if arc.IsEmpty() {
		k := arc.Begin.Div(period).Floor()
		fn(arc, rational.FromInt(k))
		return
	}
	cur := arc.Begin
	for cur.Less(arc.End) {
		k := cur.Div(period).Floor()
		nextBoundary := rational.FromInt(k + 1).Mul(period)
		end := rational.Min(nextBoundary, arc.End)
		fn(timespan.New(cur, end), rational.FromInt(k))
		cur = end
	}
}

// compressWindow places p's full [0,1) cycle inside [s,e) of every host
// cycle, leaving silence elsewhere (spec §4.4 compress, and fastGap as the
// s=0 special case). 0 <= s < e <= 1 is required; any other window is
// invalid and produces silence per spec §7.
func compressWindow(label string, p Pattern, s, e rational.Rational) Pattern {
	if s.Less(rational.Zero) || e.Greater(rational.One) || s.GreaterEq(e) {
		return Empty()
	}
	factor := e.Sub(s)
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arc := timespan.New(from, to)
		arc.CycleWalk(func(sub timespan.TimeSpan) bool {
			k := rational.FromInt(sub.Begin.Floor())
			winStart, winEnd := k.Add(s), k.Add(e)
			win := timespan.New(winStart, winEnd)
			overlap, ok := win.Intersect(sub)
			if !ok {
				return true
			}
			childFrom := overlap.Begin.Sub(winStart).Div(factor).Add(k)
			childTo := overlap.End.Sub(winStart).Div(factor).Add(k)
			inner := p.QueryArc(childFrom, childTo, ctx)
			for _, ie := range inner {
				mapped := ie.WithTimes(func(span timespan.TimeSpan) timespan.TimeSpan {
					b := span.Begin.Sub(k).Mul(factor).Add(winStart)
					e2 := span.End.Sub(k).Mul(factor).Add(winStart)
					return timespan.New(b, e2)
				})
				part, ok2 := mapped.Part.Intersect(overlap)
				if !ok2 {
					continue
				}
				mapped.Part = part
				out = append(out, mapped)
			}
			return true
		})
		return out
	})
}

// Compress is compressWindow exported under its spec name.
func Compress(p Pattern, s, e rational.Rational) Pattern {
	return compressWindow("compress", p, s, e)
}

// FastGap squashes p into the first 1/k of every cycle, silent for the rest
// — the s=0 special case of Compress.
func FastGap(p Pattern, k Scalar) Pattern {
	return liftTempo(p, k, func(p Pattern, kr rational.Rational) Pattern {
		if kr.LessEq(rational.Zero) {
			return Empty()
		}
		return compressWindow("fastGap", p, rational.Zero, rational.One.Div(kr))
	})
}

// zoomWindow reveals only the [s,e) slice of p's current cycle, stretched to
// fill the entire host cycle — the inverse of compressWindow.
func zoomWindow(label string, p Pattern, s, e rational.Rational) Pattern {
	if s.Less(rational.Zero) || e.Greater(rational.One) || s.GreaterEq(e) {
		return Empty()
	}
	factor := e.Sub(s)
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arc := timespan.New(from, to)
		arc.CycleWalk(func(sub timespan.TimeSpan) bool {
			k := rational.FromInt(sub.Begin.Floor())
			childFrom := k.Add(s).Add(sub.Begin.Sub(k).Mul(factor))
			childTo := k.Add(s).Add(sub.End.Sub(k).Mul(factor))
			inner := p.QueryArc(childFrom, childTo, ctx)
			for _, ie := range inner {
				mapped := ie.WithTimes(func(span timespan.TimeSpan) timespan.TimeSpan {
					b := span.Begin.Sub(s).Sub(k).Div(factor).Add(k)
					e2 := span.End.Sub(s).Sub(k).Div(factor).Add(k)
					return timespan.New(b, e2)
				})
				out = append(out, mapped)
			}
			return true
		})
		return out
	})
}

// Zoom compresses [s,e) of each successive cycle of p back to fill the
// output's [0,1), walking forward through p's cycles as the host cycle
// advances (spec §4.4).
func Zoom(p Pattern, s, e rational.Rational) Pattern {
	return zoomWindow("zoom", p, s, e)
}

// Focus is zoom's inverse, stretching p's [0,1) to cover [s,e) of every host
// cycle with silence outside — the same transform as Compress, described
// from the opposite direction in spec §4.4.
func Focus(p Pattern, s, e rational.Rational) Pattern {
	return compressWindow("focus", p, s, e)
}

// Ply re-emits n copies of each event inside its own span (via bindSqueeze),
// each copy carrying the same data.
func Ply(p Pattern, n int) Pattern {
	return BindSqueeze(p, func(e event.Event) Pattern {
		return applyFast(Atomic(e.Data), rational.FromInt(int64(n)))
	})
}

// PlyWith is Ply but copy i's data is f applied i times to the source
// event, so repeats can progressively transform (e.g. fade, detune).
func PlyWith(p Pattern, n int, f func(event.Event) event.Event) Pattern {
	return BindSqueeze(p, func(e event.Event) Pattern {
		parts := make([]Pattern, 0, n)
		cur := e
		for i := 0; i < n; i++ {
			parts = append(parts, AtomicInfinite(cur.Data))
			cur = f(cur)
		}
		return Sequence(parts...)
	})
}

// PlyForEach is Ply but copy i's data is produced directly by f(event, i).
func PlyForEach(p Pattern, n int, f func(event.Event, int) value.Data) Pattern {
	return BindSqueeze(p, func(e event.Event) Pattern {
		parts := make([]Pattern, 0, n)
		for i := 0; i < n; i++ {
			parts = append(parts, AtomicInfinite(f(e, i)))
		}
		return Sequence(parts...)
	})
}

// RepeatCycles plays p's cycle 0 for r consecutive output cycles, then
// emits silence forever (spec §4.4). r <= 0 is silence throughout.
func RepeatCycles(p Pattern, r int) Pattern {
	return build("repeatCycles", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		arc := timespan.New(from, to)
		arc.CycleWalk(func(sub timespan.TimeSpan) bool {
			k := sub.Begin.Floor()
			if k < 0 || k >= int64(r) {
				return true
			}
			shift := rational.FromInt(k)
			inner := p.QueryArc(sub.Begin.Sub(shift), sub.End.Sub(shift), ctx)
			for _, ie := range inner {
				out = append(out, ie.WithTimes(func(span timespan.TimeSpan) timespan.TimeSpan {
					return timespan.New(span.Begin.Add(shift), span.End.Add(shift))
				}))
			}
			return true
		})
		return out
	})
}

// Take keeps only events whose whole begins strictly before n (spec §4.4),
// an absolute time cutoff rather than a step count.
func Take(p Pattern, n rational.Rational) Pattern {
	return build("take", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx)
		out := make([]event.Event, 0, len(events))
		for _, e := range events {
			if e.Whole.Begin.Less(n) {
				out = append(out, e)
			}
		}
		return out
	})
}

// Drop skips the first n steps of p (using its declared NumSteps) and
// rescales the rest to fill the cycle, implemented as a Zoom into
// [n/steps, 1). When p has no declared step count, Drop is the identity —
// there is no step unit to count against.
func Drop(p Pattern, n int) Pattern {
	steps, ok := p.NumSteps()
	if !ok || steps.IsZero() {
		return p
	}
	s := rational.FromInt(int64(n)).Div(steps)
	if s.GreaterEq(rational.One) || s.Less(rational.Zero) {
		return Empty()
	}
	return Zoom(p, s, rational.One)
}

// Pace plays p at n steps per cycle, computed against its declared
// NumSteps; Steps is an alias. Undefined when p has no declared step count,
// in which case Pace returns p unchanged.
func Pace(p Pattern, n Scalar) Pattern {
	steps, ok := p.NumSteps()
	if !ok || steps.IsZero() {
		return p
	}
	return liftTempo(p, n, func(p Pattern, nr rational.Rational) Pattern {
		return applyFast(p, nr.Div(steps))
	})
}

// Steps is an alias for Pace.
func Steps(p Pattern, n Scalar) Pattern { return Pace(p, n) }
