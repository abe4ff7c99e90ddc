// Package diagnostics carries the error-reporting surface of the core:
// parse errors, type mismatches, and the other recoverable conditions
// spec §7 requires the query path to survive rather than panic on. Modeled
// on the teacher's annotations.Handler: a plain callback interface (Sink)
// that receives values, never an error return threaded through QueryArc.
package diagnostics

import (
	"fmt"

	"github.com/patternengine/strudelcore/event"
)

// Kind classifies a Diagnostic.
type Kind int

const (
	ParseError Kind = iota
	TypeMismatch
	InvalidWindow
	DivisionByZero
	NonPositiveTempo
	UnboundName
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidWindow:
		return "InvalidWindow"
	case DivisionByZero:
		return "DivisionByZero"
	case NonPositiveTempo:
		return "NonPositiveTempo"
	case UnboundName:
		return "UnboundName"
	default:
		return "Unknown"
	}
}

// Diagnostic is one recoverable condition surfaced during parsing or
// registry construction. Loc is nil when the condition has no source
// position (e.g. a registry built from in-process Go calls).
type Diagnostic struct {
	Kind Kind
	Msg  string
	Loc  *event.SourceLocation
}

func (d Diagnostic) String() string {
	if d.Loc == nil {
		return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s at %d:%d", d.Kind, d.Msg, d.Loc.Line, d.Loc.Col)
}

// Sink receives diagnostics as they are produced. The core never calls a
// Sink from QueryArc itself (spec §9: "patterns themselves must not depend
// on global state"). notation.Parse returns its diagnostics as a slice;
// a host such as cmd/patctl forwards them to a Sink.
type Sink interface {
	Report(d Diagnostic)
}

// NullSink discards everything. It is the default so library use of the
// core never prints unless a host opts in.
type NullSink struct{}

func (NullSink) Report(Diagnostic) {}
