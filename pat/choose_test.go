package pat

import (
	"testing"

	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/value"
	"github.com/stretchr/testify/assert"
)

func TestChooseIsDeterministicPerSeed(t *testing.T) {
	options := []value.Value{value.Str("bd"), value.Str("sn"), value.Str("hh")}
	p := Choose(options...)
	ctx := qctx.New().WithSeed(11)
	a := p.QueryArc(r(0), r(1), ctx)
	b := p.QueryArc(r(0), r(1), ctx)
	sa, _ := a[0].Data.Value.String_()
	sb, _ := b[0].Data.Value.String_()
	assert.Equal(t, sa, sb)
}

func TestChooseCyclesStableWithinCycle(t *testing.T) {
	options := []value.Value{value.NumFloat(1), value.NumFloat(2), value.NumFloat(3)}
	p := ChooseCycles(options...)
	ctx := qctx.New().WithSeed(5)
	a := p.QueryArc(r(0), rf(1, 4), ctx)
	b := p.QueryArc(rf(1, 2), rf(3, 4), ctx)
	fa, _ := a[0].Data.Value.Float()
	fb, _ := b[0].Data.Value.Float()
	assert.Equal(t, fa, fb)
}

func TestChooseCyclesPatternStableWithinCycle(t *testing.T) {
	p := ChooseCyclesPattern(AtomicStr("bd"), AtomicStr("sn"), AtomicStr("hh"))
	ctx := qctx.New().WithSeed(9)
	a := p.QueryArc(r(2), rf(9, 4), ctx)
	b := p.QueryArc(rf(9, 4), r(3), ctx)
	sa, _ := a[0].Data.Value.String_()
	sb, _ := b[0].Data.Value.String_()
	assert.Equal(t, sa, sb)
}

func TestChooseWithUsesDriverValue(t *testing.T) {
	options := []value.Value{value.Str("a"), value.Str("b"), value.Str("c")}
	driven := ChooseWith(Steady(0.99), options)
	events := driven.QueryArc(r(0), r(1), qctx.New())
	s, _ := events[0].Data.Value.String_()
	assert.Equal(t, "c", s)
}
