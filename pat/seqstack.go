package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/timespan"
)

// Sequence lays its children end to end within a single cycle, each
// occupying a fraction of the cycle proportional to its own Weight (spec
// §4.2). A single child's declared NumSteps is not inherited; the sequence
// itself declares NumSteps == len(children).
func Sequence(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Empty()
	}
	totalWeight := 0.0
	for _, c := range children {
		totalWeight += c.Weight()
	}
	placed := make([]Pattern, 0, len(children))
	acc := 0.0
	for _, c := range children {
		start := acc / totalWeight
		acc += c.Weight()
		end := acc / totalWeight
		placed = append(placed, Compress(c, rational.FromFloat(start), rational.FromFloat(end)))
	}
	return stampNumSteps(Stack(placed...), "sequence", rational.FromInt(int64(len(children))))
}

// stampNumSteps rebuilds p with a new label and declared NumSteps, without
// touching its query behaviour — lets Sequence stamp its own step count
// onto an already-built Stack.
func stampNumSteps(p Pattern, label string, n rational.Rational) Pattern {
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		return p.QueryArc(from, to, ctx)
	}, withNumSteps(n))
}

// Stack plays all children simultaneously, each over the full cycle, union
// of all their events (spec §4.2).
func Stack(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Empty()
	}
	return build("stack", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		for _, c := range children {
			out = append(out, c.QueryArc(from, to, ctx)...)
		}
		return out
	})
}

// Segment describes one piece of an Arrangement: a pattern and the number
// of cycles (possibly fractional) it occupies in sequence.
type Segment struct {
	Pattern Pattern
	Cycles  rational.Rational
}

// Arrangement concatenates segments end to end across multiple cycles (not
// compressed into one cycle the way Sequence is): segment i occupies
// [offset_i, offset_i + cycles_i) of absolute time, each cycle of which
// plays that segment's own pattern at its native tempo (spec §4.2).
func Arrangement(segments ...Segment) Pattern {
	if len(segments) == 0 {
		return Empty()
	}
	offsets := make([]rational.Rational, len(segments))
	acc := rational.Zero
	for i, seg := range segments {
		offsets[i] = acc
		acc = acc.Add(seg.Cycles)
	}
	total := acc
	return build("arrangement", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		for i, seg := range segments {
			winStart := offsets[i]
			winEnd := offsets[i].Add(seg.Cycles)
			overlapFrom := rational.Max(from, winStart)
			overlapTo := rational.Min(to, winEnd)
			if overlapFrom.GreaterEq(overlapTo) {
				continue
			}
			out = append(out, seg.Pattern.QueryArc(overlapFrom, overlapTo, ctx)...)
		}
		return out
	}, withCycleDuration(total))
}

// alignFn places each child's Weight-proportional span within the combined
// timeline; stackLeft/stackRight/stackCentre/stackBy differ only in how
// leftover room (when children's total weight implies a span shorter than a
// full cycle) is distributed.
type alignFn func(weights []float64) (starts, ends []float64)

// StackBy stacks children like Stack, but aligns each child's single-cycle
// content within a sub-window chosen by align, instead of letting every
// child span the full cycle. This underlies stackLeft/stackRight/
// stackCentre (spec §4.2).
func StackBy(align alignFn, children ...Pattern) Pattern {
	if len(children) == 0 {
		return Empty()
	}
	weights := make([]float64, len(children))
	for i, c := range children {
		weights[i] = c.Weight()
	}
	starts, ends := align(weights)
	placed := make([]Pattern, len(children))
	for i, c := range children {
		placed[i] = Compress(c, rational.FromFloat(starts[i]), rational.FromFloat(ends[i]))
	}
	return Stack(placed...)
}

// StackLeft left-aligns every child's span at 0, each sized by its own
// weight relative to the largest weight present (so equal weights all span
// the full cycle, like plain Stack).
func StackLeft(children ...Pattern) Pattern {
	return StackBy(func(weights []float64) (starts, ends []float64) {
		maxW := maxWeight(weights)
		starts = make([]float64, len(weights))
		ends = make([]float64, len(weights))
		for i, w := range weights {
			starts[i] = 0
			ends[i] = w / maxW
		}
		return
	}, children...)
}

// StackRight right-aligns every child's span at 1.
func StackRight(children ...Pattern) Pattern {
	return StackBy(func(weights []float64) (starts, ends []float64) {
		maxW := maxWeight(weights)
		starts = make([]float64, len(weights))
		ends = make([]float64, len(weights))
		for i, w := range weights {
			ends[i] = 1
			starts[i] = 1 - w/maxW
		}
		return
	}, children...)
}

// StackCentre centres every child's span within the cycle.
func StackCentre(children ...Pattern) Pattern {
	return StackBy(func(weights []float64) (starts, ends []float64) {
		maxW := maxWeight(weights)
		starts = make([]float64, len(weights))
		ends = make([]float64, len(weights))
		for i, w := range weights {
			span := w / maxW
			starts[i] = (1 - span) / 2
			ends[i] = starts[i] + span
		}
		return
	}, children...)
}

// Slowcat plays one child per cycle, cycling through children modulo their
// count — the combinator behind mini-notation's `<a b c>` (spec §4.11).
// Each child is queried against its own *local* cycle number, which only
// advances once every n calling cycles (the real `_slowcat` offset:
// offset = cyc - (cyc-i) div n, i = cyc mod n), not always cycle 0 — so a
// cycle-dependent child (nested `<...>`, RepeatCycles, ...) keeps
// progressing across repeated rounds through the cycle list instead of
// replaying its own cycle 0 every time its turn comes up.
func Slowcat(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Empty()
	}
	n := int64(len(children))
	return build("slowcat", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		var out []event.Event
		timespan.New(from, to).CycleWalk(func(span timespan.TimeSpan) bool {
			cycle := span.Begin.Floor()
			idx := floorMod(cycle, n)
			child := children[idx]
			offset := rational.FromInt(cycle - floorDiv(cycle-idx, n))
			out = append(out, translateEvents(child.QueryArc(span.Begin.Sub(offset), span.End.Sub(offset), ctx), offset)...)
			return true
		})
		return out
	})
}

// floorDiv, floorMod are integer division/modulo rounded toward negative
// infinity (Haskell's div/mod), as opposed to Go's native truncate-toward-
// zero / and % — required by Slowcat's offset formula to behave correctly
// for negative cycle numbers.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func translateEvents(events []event.Event, offset rational.Rational) []event.Event {
	out := make([]event.Event, len(events))
	for i, e := range events {
		out[i] = e.WithTimes(func(s timespan.TimeSpan) timespan.TimeSpan { return s.Shift(offset) })
	}
	return out
}

func maxWeight(weights []float64) float64 {
	m := 0.0
	for _, w := range weights {
		if w > m {
			m = w
		}
	}
	if m == 0 {
		return 1
	}
	return m
}
