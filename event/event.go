// Package event defines the Event record every pattern query produces: a
// (whole, part, data) triple plus the source locations that produced it.
package event

import (
	"fmt"

	"github.com/patternengine/strudelcore/timespan"
	"github.com/patternengine/strudelcore/value"
)

// SourceLocation marks a position in a mini-notation string, so parse
// errors and debugging tools can point back at the text that produced an
// event. It mirrors the Line/Col pair the teacher's EDN nodes carry.
type SourceLocation struct {
	Line int
	Col  int
}

// Event is the immutable (whole, part, data) triple of spec §3. Part is
// always a subset of Whole once the query window has been intersected with
// it; when Whole and Part differ the event is a fragment of a larger note.
// Continuous patterns set Whole == Part.
type Event struct {
	Whole           timespan.TimeSpan
	Part            timespan.TimeSpan
	Data            value.Data
	SourceLocations []SourceLocation
}

// New builds an Event.
func New(whole, part timespan.TimeSpan, data value.Data, locs ...SourceLocation) Event {
	return Event{Whole: whole, Part: part, Data: data, SourceLocations: locs}
}

// HasOnset reports whether this event's Part begins at the same instant as
// its Whole — i.e. this fragment is the note's attack, not a continuation
// carried over from a previous query. cmd/patctl uses it to mark onsets
// in its event table.
func (e Event) HasOnset() bool {
	return e.Whole.Begin.Equal(e.Part.Begin)
}

// WithData returns a copy of e with Data replaced.
func (e Event) WithData(d value.Data) Event {
	return Event{Whole: e.Whole, Part: e.Part, Data: d, SourceLocations: e.SourceLocations}
}

// WithTimes returns a copy of e whose Whole and Part have each had f applied
// to both endpoints independently — the event-time half of a time
// transform's dual mapping (spec §4.4).
func (e Event) WithTimes(f func(timespan.TimeSpan) timespan.TimeSpan) Event {
	return Event{Whole: f(e.Whole), Part: f(e.Part), Data: e.Data, SourceLocations: e.SourceLocations}
}

// String renders e for debugging.
func (e Event) String() string {
	return fmt.Sprintf("%s/%s=%s", e.Whole, e.Part, e.Data.Value)
}

// ByPartBegin sorts events by Part.Begin ascending, with ties broken by
// stable original order (spec §5: "Events... are in a deterministic total
// order: by part.begin ascending, with ties broken by source-construction
// order"). Callers should use sort.SliceStable with this comparator rather
// than sort.Slice, to preserve that tie-break.
func ByPartBegin(events []Event, i, j int) bool {
	return events[i].Part.Begin.Less(events[j].Part.Begin)
}
