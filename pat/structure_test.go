package pat

import (
	"testing"

	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/value"
	"github.com/stretchr/testify/assert"
)

// TestStructureFiltersByOnsetTruthiness is the spec §8 literal scenario:
// struct("1 0 1", "bd") keeps only the true steps.
func TestStructureFiltersByOnsetTruthiness(t *testing.T) {
	mask := Sequence(
		AtomicInfinite(value.FromValue(value.NumFloat(1))),
		AtomicInfinite(value.FromValue(value.NumFloat(0))),
		AtomicInfinite(value.FromValue(value.NumFloat(1))),
	)
	p := Structure(mask, AtomicStr("bd"))
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	for _, e := range events {
		s, _ := e.Data.Value.String_()
		assert.Equal(t, "bd", s)
	}
}

func TestMaskKeepsContentTiming(t *testing.T) {
	mask := Sequence(
		AtomicInfinite(value.FromValue(value.NumFloat(1))),
		AtomicInfinite(value.FromValue(value.NumFloat(0))),
	)
	content := Fast(AtomicStr("bd"), Num(4))
	masked := Mask(mask, content)
	events := masked.QueryArc(r(0), r(1), qctx.New())
	for _, e := range events {
		assert.True(t, e.Part.End.LessEq(rf(1, 2)))
	}
	assert.NotEmpty(t, events)
}

func TestBypassKeepsContentWhereMaskIsFalsy(t *testing.T) {
	mask := Sequence(
		AtomicInfinite(value.FromValue(value.NumFloat(1))),
		AtomicInfinite(value.FromValue(value.NumFloat(0))),
	)
	content := Fast(AtomicStr("bd"), Num(4))
	bypassed := Bypass(mask, content)
	events := bypassed.QueryArc(r(0), r(1), qctx.New())
	assert.NotEmpty(t, events)
	for _, e := range events {
		assert.True(t, e.Part.Begin.GreaterEq(rf(1, 2)), "bypass should only keep events where the mask is falsy")
	}
}

func TestControlMergesSampledFields(t *testing.T) {
	content := AtomicStr("bd")
	control := AtomicInfinite(value.Empty().CopyWith("gain", value.NumFloat(0.8)))
	combined := Control(content, control, func(c, ctrl value.Data) value.Data {
		g, _ := ctrl.Get("gain")
		return c.CopyWith("gain", g)
	})
	events := combined.QueryArc(r(0), r(1), qctx.New())
	g, ok := events[0].Data.Get("gain")
	assert.True(t, ok)
	f, _ := g.Float()
	assert.Equal(t, 0.8, f)
}
