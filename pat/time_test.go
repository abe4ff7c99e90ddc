package pat

import (
	"testing"

	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/stretchr/testify/assert"
)

// TestFastSlowInverse is the spec §8 literal scenario: fast(2) followed by
// slow(2) reproduces the original events over a one-cycle window.
func TestFastSlowInverse(t *testing.T) {
	base := Sequence(AtomicStr("bd"), AtomicStr("sn"))
	roundTrip := Slow(Fast(base, Num(2)), Num(2))
	want := base.QueryArc(r(0), r(1), qctx.New())
	got := roundTrip.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, got, len(want))
	for i := range want {
		assert.True(t, got[i].Whole.Equal(want[i].Whole))
	}
}

func TestFastDoublesDensity(t *testing.T) {
	p := Fast(AtomicStr("bd"), Num(2))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
}

func TestFastZeroIsSilence(t *testing.T) {
	p := Fast(AtomicStr("bd"), Num(0))
	events := p.QueryArc(r(0), r(4), qctx.New())
	assert.Empty(t, events)
}

func TestSlowNegativeIsSilence(t *testing.T) {
	p := Slow(AtomicStr("bd"), Num(-1))
	events := p.QueryArc(r(0), r(4), qctx.New())
	assert.Empty(t, events)
}

func TestLateShiftsForward(t *testing.T) {
	p := Late(Compress(AtomicStr("bd"), r(0), rf(1, 2)), Num(0.25))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
	assert.True(t, events[0].Whole.Begin.Equal(rf(1, 4)))
}

func TestEarlyIsInverseOfLate(t *testing.T) {
	base := AtomicStr("bd")
	roundTrip := Late(Early(base, Num(0.25)), Num(0.25))
	want := base.QueryArc(r(0), r(1), qctx.New())
	got := roundTrip.QueryArc(r(0), r(1), qctx.New())
	assert.Equal(t, len(want), len(got))
}

func TestRevvNegatesTimeAxis(t *testing.T) {
	p := Revv(AtomicInfiniteNum(r(5)))
	events := p.QueryArc(r(-3), r(-1), qctx.New())
	assert.Len(t, events, 1)
	assert.True(t, events[0].Whole.Begin.Equal(r(-3)))
	assert.True(t, events[0].Whole.End.Equal(r(-1)))
}

func TestRevReversesWithinCycle(t *testing.T) {
	p := Rev(Sequence(AtomicStr("bd"), AtomicStr("sn"), AtomicStr("hh")), rational.One)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
	first, _ := events[0].Data.Value.String_()
	last, _ := events[2].Data.Value.String_()
	assert.Equal(t, "hh", first)
	assert.Equal(t, "bd", last)
}

func TestCompressPlacesWithinWindow(t *testing.T) {
	p := Compress(AtomicStr("bd"), rf(1, 4), rf(3, 4))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
	assert.True(t, events[0].Whole.Begin.Equal(rf(1, 4)))
	assert.True(t, events[0].Whole.End.Equal(rf(3, 4)))
}

func TestCompressInvalidWindowIsSilence(t *testing.T) {
	p := Compress(AtomicStr("bd"), rf(3, 4), rf(1, 4))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Empty(t, events)
}

func TestFastGapLeavesTailSilent(t *testing.T) {
	p := FastGap(AtomicStr("bd"), Num(2))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
	assert.True(t, events[0].Whole.End.LessEq(rf(1, 2)))
}

func TestZoomRevealsSlice(t *testing.T) {
	seq := Sequence(AtomicStr("a"), AtomicStr("b"), AtomicStr("c"), AtomicStr("d"))
	zoomed := Zoom(seq, rf(1, 2), r(1))
	events := zoomed.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	s0, _ := events[0].Data.Value.String_()
	s1, _ := events[1].Data.Value.String_()
	assert.Equal(t, "c", s0)
	assert.Equal(t, "d", s1)
}

func TestPlyMultipliesEachEvent(t *testing.T) {
	p := Ply(AtomicStr("bd"), 3)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
}

func TestRepeatCyclesThenSilence(t *testing.T) {
	p := RepeatCycles(AtomicStr("bd"), 2)
	assert.Len(t, p.QueryArc(r(0), r(1), qctx.New()), 1)
	assert.Len(t, p.QueryArc(r(1), r(2), qctx.New()), 1)
	assert.Empty(t, p.QueryArc(r(2), r(3), qctx.New()))
}

func TestTakeCutsOffByAbsoluteTime(t *testing.T) {
	p := Take(Sequence(AtomicStr("bd"), AtomicStr("sn")), rf(1, 2))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
}

func TestDropRescalesRemainder(t *testing.T) {
	seq := Sequence(AtomicStr("a"), AtomicStr("b"), AtomicStr("c"), AtomicStr("d"))
	p := Drop(seq, 2)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	s0, _ := events[0].Data.Value.String_()
	assert.Equal(t, "c", s0)
}
