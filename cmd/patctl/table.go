package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/patternengine/strudelcore/event"
)

// renderEvents prints events as a table of part window / whole window /
// value / onset, grounded on the teacher's executor.TableFormatter
// (datalog/executor/table_formatter.go): build the table with explicit
// alignment, set headers, append rows, render, then print a row count
// footer.
func renderEvents(w io.Writer, events []event.Event, useColor bool) {
	if len(events) == 0 {
		fmt.Fprintln(w, "(no events)")
		return
	}

	headers := []string{"part", "whole", "value", "onset"}
	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignLeft
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)

	for _, e := range events {
		table.Append([]string{
			formatSpan(e.Part),
			formatSpan(e.Whole),
			e.Data.Value.String(),
			formatOnset(e.HasOnset(), useColor),
		})
	}
	table.Render()

	fmt.Fprintf(w, "%d event(s)\n", len(events))
}

func formatSpan(s fmt.Stringer) string {
	return s.String()
}

func formatOnset(onset bool, useColor bool) string {
	if !onset {
		return "."
	}
	if !useColor {
		return "*"
	}
	return color.New(color.FgGreen).Sprint("*")
}
