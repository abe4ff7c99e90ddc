package pat

import (
	"testing"

	"github.com/patternengine/strudelcore/qctx"
	"github.com/stretchr/testify/assert"
)

// TestSequenceOneCycle is the spec §8 literal scenario: sequence(bd, sn)
// queried over one cycle produces two equal halves, "bd" first.
func TestSequenceOneCycle(t *testing.T) {
	p := Sequence(AtomicStr("bd"), AtomicStr("sn"))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	s0, _ := events[0].Data.Value.String_()
	s1, _ := events[1].Data.Value.String_()
	assert.Equal(t, "bd", s0)
	assert.Equal(t, "sn", s1)
	assert.Equal(t, r(0), events[0].Whole.Begin)
	assert.True(t, events[0].Whole.End.Equal(rf(1, 2)))
	assert.True(t, events[1].Whole.Begin.Equal(rf(1, 2)))
	assert.Equal(t, r(1), events[1].Whole.End)
}

func TestSequenceRepeatsEveryCycle(t *testing.T) {
	p := Sequence(AtomicStr("bd"), AtomicStr("sn"), AtomicStr("hh"))
	events := p.QueryArc(r(1), r(2), qctx.New())
	assert.Len(t, events, 3)
}

func TestSequenceDeclaresStepCount(t *testing.T) {
	p := Sequence(AtomicStr("bd"), AtomicStr("sn"), AtomicStr("hh"))
	steps, ok := p.NumSteps()
	assert.True(t, ok)
	assert.True(t, steps.Equal(r(3)))
}

// TestStackUnion is the spec §8 literal scenario: stack(bd, sn) queried over
// one cycle produces both events, each spanning the full cycle.
func TestStackUnion(t *testing.T) {
	p := Stack(AtomicStr("bd"), AtomicStr("sn"))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, r(0), e.Whole.Begin)
		assert.Equal(t, r(1), e.Whole.End)
	}
}

func TestArrangementSegmentsInSequence(t *testing.T) {
	arr := Arrangement(
		Segment{Pattern: AtomicStr("intro"), Cycles: r(2)},
		Segment{Pattern: AtomicStr("drop"), Cycles: r(1)},
	)
	introEvents := arr.QueryArc(r(0), r(2), qctx.New())
	for _, e := range introEvents {
		s, _ := e.Data.Value.String_()
		assert.Equal(t, "intro", s)
	}
	dropEvents := arr.QueryArc(r(2), r(3), qctx.New())
	for _, e := range dropEvents {
		s, _ := e.Data.Value.String_()
		assert.Equal(t, "drop", s)
	}
	outside := arr.QueryArc(r(3), r(4), qctx.New())
	assert.Empty(t, outside)
}

func TestStackLeftEqualWeightsSpanFullCycle(t *testing.T) {
	p := StackLeft(AtomicStr("bd"), AtomicStr("sn"))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, r(0), e.Whole.Begin)
		assert.Equal(t, r(1), e.Whole.End)
	}
}

func TestStackRightAlignsAtOne(t *testing.T) {
	p := StackRight(AtomicStr("bd"), AtomicStr("sn"))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.True(t, e.Whole.End.Equal(r(1)))
	}
}

func TestSlowcatPlaysOneChildPerCycle(t *testing.T) {
	p := Slowcat(AtomicStr("a"), AtomicStr("b"), AtomicStr("c"))
	for cycle, want := range map[int64]string{0: "a", 1: "b", 2: "c", 3: "a", 4: "b"} {
		events := p.QueryArc(r(cycle), r(cycle+1), qctx.New())
		assert.Len(t, events, 1)
		s, _ := events[0].Data.Value.String_()
		assert.Equal(t, want, s, "cycle %d", cycle)
		assert.True(t, events[0].Whole.Begin.Equal(r(cycle)))
		assert.True(t, events[0].Whole.End.Equal(r(cycle+1)))
	}
}

// TestSlowcatAdvancesChildLocalCycle confirms a cycle-dependent child
// (TimeSignal, whose value *is* the local cycle number) progresses across
// repeated rounds through the cycle list rather than replaying its own
// cycle 0 every time its turn comes back up. A flat-atomic child like
// TestSlowcatPlaysOneChildPerCycle's can't detect this, since every cycle
// looks identical to it regardless of the offset used.
func TestSlowcatAdvancesChildLocalCycle(t *testing.T) {
	p := Slowcat(TimeSignal(), AtomicStr("b"), AtomicStr("c"))
	for cycle, wantLocal := range map[int64]float64{0: 0, 3: 1, 6: 2, 9: 3} {
		v := sampleFloat(t, p, r(cycle), r(cycle+1), qctx.New())
		assert.Equal(t, wantLocal, v, "cycle %d", cycle)
	}
}
