package pat

import (
	"testing"

	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/value"
	"github.com/stretchr/testify/assert"
)

func r(n int64) rational.Rational { return rational.FromInt(n) }
func rf(n, d int64) rational.Rational { return rational.New(n, d) }

func TestAtomicSingleCycle(t *testing.T) {
	p := AtomicStr("bd")
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
	assert.True(t, events[0].Whole.Equal(events[0].Part))
	assert.Equal(t, r(0), events[0].Whole.Begin)
	assert.Equal(t, r(1), events[0].Whole.End)
}

func TestAtomicFragmentsAcrossCycles(t *testing.T) {
	p := AtomicStr("bd")
	events := p.QueryArc(rf(1, 2), rf(5, 2), qctx.New())
	assert.Len(t, events, 3)
	assert.Equal(t, rf(1, 2), events[0].Part.Begin)
	assert.Equal(t, r(1), events[0].Part.End)
	assert.False(t, events[0].HasOnset())
	assert.Equal(t, r(1), events[1].Part.Begin)
	assert.Equal(t, r(2), events[1].Part.End)
	assert.True(t, events[1].HasOnset())
	assert.Equal(t, r(2), events[2].Part.Begin)
	assert.Equal(t, rf(5, 2), events[2].Part.End)
}

func TestAtomicInfiniteSingleEventSpansQuery(t *testing.T) {
	p := AtomicInfiniteNum(r(3))
	events := p.QueryArc(rf(1, 2), r(7), qctx.New())
	assert.Len(t, events, 1)
	assert.Equal(t, rf(1, 2), events[0].Whole.Begin)
	assert.Equal(t, r(7), events[0].Whole.End)
	assert.True(t, events[0].Whole.Equal(events[0].Part))
	num, ok := events[0].Data.Value.Rational()
	assert.True(t, ok)
	assert.True(t, num.Equal(r(3)))
}

func TestEmptyProducesNoEvents(t *testing.T) {
	events := Empty().QueryArc(r(0), r(10), qctx.New())
	assert.Nil(t, events)
	steps, ok := Empty().NumSteps()
	assert.True(t, ok)
	assert.True(t, steps.IsZero())
}

func TestAtomicDeclaresOneStep(t *testing.T) {
	steps, ok := AtomicStr("bd").NumSteps()
	assert.True(t, ok)
	assert.True(t, steps.Equal(rational.One))
}

func TestValueFromValueHelper(t *testing.T) {
	d := value.FromValue(value.Str("sn"))
	s, ok := d.Value.String_()
	assert.True(t, ok)
	assert.Equal(t, "sn", s)
}
