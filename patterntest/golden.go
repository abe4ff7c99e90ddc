// Package patterntest provides a small golden-event comparison harness for
// pattern tests across the module: build an expected []event.Event fixture
// tersely, then assert a pattern's queried events match it. Grounded on the
// teacher's storage.TestDataConfig / BuildTestDatabase shape
// (datalog/storage/testdata_builder.go): a plain config struct describing
// what to build, handed to a builder function that returns fixture data,
// here adapted from "build a database" to "build an expected event list".
package patterntest

import (
	"testing"

	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/pat"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/stretchr/testify/assert"
)

// Expected describes one event a test expects: a whole/part window plus
// the string the event's Value slot should hold. All four endpoints are
// always compared; Str fills whole and part with the same window for the
// common case of an onset with no fragmentation.
type Expected struct {
	WholeBegin, WholeEnd rational.Rational
	PartBegin, PartEnd   rational.Rational
	Str                  string
}

// Str builds an Expected event whose whole and part both equal [begin,
// end) — the common onset-with-no-fragment case.
func Str(begin, end rational.Rational, s string) Expected {
	return Expected{WholeBegin: begin, WholeEnd: end, PartBegin: begin, PartEnd: end, Str: s}
}

// Fragment builds an Expected event whose part is narrower than its whole
// — a continuation fragment spanning only part of the underlying note.
func Fragment(wholeBegin, wholeEnd, partBegin, partEnd rational.Rational, s string) Expected {
	return Expected{WholeBegin: wholeBegin, WholeEnd: wholeEnd, PartBegin: partBegin, PartEnd: partEnd, Str: s}
}

// AssertQuery queries p over [from, to) with ctx and asserts the resulting
// events — in the deterministic order spec §5 requires — match want
// exactly: same count, same whole/part windows, same string payload.
func AssertQuery(t *testing.T, p pat.Pattern, from, to rational.Rational, ctx qctx.Context, want []Expected) {
	t.Helper()
	got := p.QueryArc(from, to, ctx)
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i, w := range want {
		e := got[i]
		assert.Truef(t, e.Whole.Begin.Equal(w.WholeBegin), "event %d whole.begin: got %s want %s", i, e.Whole.Begin, w.WholeBegin)
		assert.Truef(t, e.Whole.End.Equal(w.WholeEnd), "event %d whole.end: got %s want %s", i, e.Whole.End, w.WholeEnd)
		assert.Truef(t, e.Part.Begin.Equal(w.PartBegin), "event %d part.begin: got %s want %s", i, e.Part.Begin, w.PartBegin)
		assert.Truef(t, e.Part.End.Equal(w.PartEnd), "event %d part.end: got %s want %s", i, e.Part.End, w.PartEnd)
		s, ok := e.Data.Value.String_()
		assert.True(t, ok, "event %d value is not a string", i)
		assert.Equal(t, w.Str, s, "event %d value", i)
	}
}

// Values extracts every event's string Value payload, in order, for tests
// that only care about content and count, not exact timing.
func Values(events []event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		s, _ := e.Data.Value.String_()
		out[i] = s
	}
	return out
}

// NumValues extracts every event's float Value payload, in order.
func NumValues(events []event.Event) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		f, _ := e.Data.Value.Float()
		out[i] = f
	}
	return out
}
