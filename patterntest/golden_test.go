package patterntest

import (
	"testing"

	"github.com/patternengine/strudelcore/pat"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
)

func r(n int64) rational.Rational     { return rational.FromInt(n) }
func rf(n, d int64) rational.Rational { return rational.New(n, d) }

func TestAssertQueryMatchesSequence(t *testing.T) {
	p := pat.Sequence(pat.AtomicStr("bd"), pat.AtomicStr("sn"))
	AssertQuery(t, p, r(0), r(1), qctx.New(), []Expected{
		Str(r(0), rf(1, 2), "bd"),
		Str(rf(1, 2), r(1), "sn"),
	})
}

func TestValuesExtractsPayloadsInOrder(t *testing.T) {
	p := pat.Sequence(pat.AtomicStr("a"), pat.AtomicStr("b"), pat.AtomicStr("c"))
	events := p.QueryArc(r(0), r(1), qctx.New())
	if got := Values(events); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("unexpected values: %v", got)
	}
}
