package pat

import (
	"github.com/patternengine/strudelcore/euclid"
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
)

// Euclid sequences content at the Bjorklund-distributed pulse positions of
// an (pulses, steps, rotation) rhythm, silence at the rest (spec §4.8).
func Euclid(content Pattern, pulses, steps, rotation int) Pattern {
	seq := euclid.Generate(pulses, steps, rotation)
	return buildStepSequence(seq, content)
}

// EuclidInv is Euclid with content and silence swapped: content plays on
// the steps Bjorklund's algorithm left empty.
func EuclidInv(content Pattern, pulses, steps, rotation int) Pattern {
	seq := euclid.Generate(pulses, steps, rotation)
	inverted := make([]bool, len(seq))
	for i, on := range seq {
		inverted[i] = !on
	}
	return buildStepSequence(inverted, content)
}

// EuclidLegato is Euclid, but each pulse holds content for its full
// run-length to the next pulse instead of leaving the intervening steps
// silent (spec §4.8's legato mode), built on euclid.Legato's run lengths.
func EuclidLegato(content Pattern, pulses, steps, rotation int) Pattern {
	seq := euclid.Generate(pulses, steps, rotation)
	durations := euclid.Legato(seq)
	var children []Pattern
	for i, on := range seq {
		if !on {
			continue
		}
		children = append(children, weighted(content, float64(durations[i])))
	}
	if len(children) == 0 {
		return Empty()
	}
	return Sequence(children...)
}

// Euclidish sequences content at the positions of euclid.Euclidish(pulses,
// steps, g), the rhythm that morphs between Bjorklund's placement (g=0) and
// perfectly even spacing (g=1), then rotated.
func Euclidish(content Pattern, pulses, steps, rotation int, g float64) Pattern {
	seq := euclid.Rotate(euclid.Euclidish(pulses, steps, g), rotation)
	return buildStepSequence(seq, content)
}

// buildStepSequence places content at every true slot of seq and silence at
// every false slot, then sequences them across one cycle.
func buildStepSequence(seq []bool, content Pattern) Pattern {
	if len(seq) == 0 {
		return Empty()
	}
	children := make([]Pattern, len(seq))
	for i, on := range seq {
		if on {
			children[i] = content
		} else {
			children[i] = Empty()
		}
	}
	return Sequence(children...)
}

// weighted rebuilds p with an explicit Weight, for the legato step
// sequencer's variable-width steps.
func weighted(p Pattern, w float64) Pattern {
	return WithWeight(p, w)
}

// WithWeight rebuilds p with an explicit Sequence weight, without touching
// its query behaviour. Used by EuclidLegato's variable-width steps and by
// mini-notation's `_` hold operator, which gives the held-over step a
// weight of 2 (occupying two step-widths) rather than inserting a second
// event (spec §4.11).
func WithWeight(p Pattern, w float64) Pattern {
	return build(p.String(), func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		return p.QueryArc(from, to, ctx)
	}, withWeight(w))
}
