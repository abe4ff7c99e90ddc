package notation

import (
	"testing"

	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/value"
	"github.com/stretchr/testify/assert"
)

func r(n int64) rational.Rational      { return rational.FromInt(n) }
func rf(n, d int64) rational.Rational  { return rational.New(n, d) }

func valueLeaf(text string) value.Data {
	return value.FromValue(value.Str(text))
}

func TestParseSequence(t *testing.T) {
	p, diags := Parse("bd sn hh", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
	want := []string{"bd", "sn", "hh"}
	for i, e := range events {
		s, _ := e.Data.Value.String_()
		assert.Equal(t, want[i], s)
	}
}

func TestParseGroupedSubsequence(t *testing.T) {
	p, diags := Parse("[a b] c", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
}

func TestParseFastModifier(t *testing.T) {
	p, diags := Parse("a*2 b", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
}

func TestParseEuclid(t *testing.T) {
	p, diags := Parse("bd(3,8)", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
}

func TestParseSlowcat(t *testing.T) {
	p, diags := Parse("<a b c>", valueLeaf)
	assert.Empty(t, diags)
	first, _ := p.QueryArc(r(0), r(1), qctx.New())[0].Data.Value.String_()
	second, _ := p.QueryArc(r(1), r(2), qctx.New())[0].Data.Value.String_()
	assert.Equal(t, "a", first)
	assert.Equal(t, "b", second)
}

func TestParseStack(t *testing.T) {
	p, diags := Parse("bd, hh*2", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
}

func TestParseRestAndHold(t *testing.T) {
	p, diags := Parse("bd ~ sn _", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 2)
	s0, _ := events[0].Data.Value.String_()
	s1, _ := events[1].Data.Value.String_()
	assert.Equal(t, "bd", s0)
	assert.Equal(t, "sn", s1)
	assert.True(t, events[1].Whole.End.Equal(r(1)))
}

func TestParseReplicate(t *testing.T) {
	p, diags := Parse("bd ! sn", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 3)
	s0, _ := events[0].Data.Value.String_()
	s1, _ := events[1].Data.Value.String_()
	assert.Equal(t, "bd", s0)
	assert.Equal(t, "bd", s1)
}

func TestParseColonForm(t *testing.T) {
	var captured string
	p, diags := Parse("bd:3", func(text string) value.Data {
		captured = text
		return value.FromValue(value.Str(text))
	})
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
	assert.Equal(t, "bd:3", captured)
}

func TestParseChooseCycles(t *testing.T) {
	p, diags := Parse("bd | sn", valueLeaf)
	assert.Empty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
}

func TestParseRecoversFromUnterminatedGroup(t *testing.T) {
	p, diags := Parse("[a b", valueLeaf)
	assert.NotEmpty(t, diags)
	assert.NotNil(t, p)
}

func TestParseRecoversFromBadEuclidArgs(t *testing.T) {
	p, diags := Parse("bd(3)", valueLeaf)
	assert.NotEmpty(t, diags)
	events := p.QueryArc(r(0), r(1), qctx.New())
	assert.Len(t, events, 1)
}
