package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// StderrSink prints diagnostics to an io.Writer (stderr by default),
// colorized by severity the way the teacher's OutputFormatter colorizes
// query events — red for hard failures, yellow for recoverable ones.
type StderrSink struct {
	writer   io.Writer
	useColor bool
}

// NewStderrSink builds a StderrSink. A nil writer defaults to os.Stderr.
func NewStderrSink(w io.Writer) *StderrSink {
	if w == nil {
		w = os.Stderr
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f)
	}
	return &StderrSink{writer: w, useColor: useColor}
}

func (s *StderrSink) Report(d Diagnostic) {
	fmt.Fprintln(s.writer, s.colorize(d))
}

func (s *StderrSink) colorize(d Diagnostic) string {
	attr := color.FgYellow
	if d.Kind == ParseError || d.Kind == DivisionByZero {
		attr = color.FgRed
	}
	text := d.String()
	if !s.useColor {
		return text
	}
	return color.New(attr).Sprint(text)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
