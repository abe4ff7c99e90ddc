// Command patctl parses a mini-notation pattern, queries it over a cycle
// arc and prints the resulting events as a table. Flag parsing and
// dispatch shape is grounded on the teacher's cmd/datalog/main.go: a flat
// set of flag.StringVar/BoolVar declarations, a custom flag.Usage with an
// examples block, a positional-argument fallback, and a stderr message
// plus os.Exit(1) on hard errors.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/patternengine/strudelcore/diagnostics"
	"github.com/patternengine/strudelcore/internal/config"
	"github.com/patternengine/strudelcore/notation"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/value"
)

// defaultLeaf is the CLI's leaf vocabulary: a leaf that parses as a plain
// number becomes a numeric Value, everything else (sample names, note
// names, "bd:3") stays a string. Hosts embedding the engine supply their
// own LeafModifier (e.g. mapping onto named fields); patctl has no such
// domain, so this is the simplest useful default.
func defaultLeaf(text string) value.Data {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return value.FromValue(value.NumFloat(f))
	}
	return value.FromValue(value.Str(text))
}

func main() {
	var from string
	var to string
	var seed string
	var colorMode string
	var help bool

	flag.StringVar(&from, "from", "0", "start of the query arc, in cycles (e.g. 0 or 3/2)")
	flag.StringVar(&to, "to", "1", "end of the query arc, in cycles")
	flag.StringVar(&seed, "seed", "", "RNG seed (overrides PATCTL_SEED)")
	flag.StringVar(&colorMode, "color", "", "always|never|auto (overrides PATCTL_COLOR)")
	flag.BoolVar(&help, "h", false, "show help")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <pattern>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parse a mini-notation pattern and print its events over an arc.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s 'bd sn hh*2'              # one cycle of a drum pattern\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -from 0 -to 4 '<bd sn>'   # four cycles\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -seed 42 'bd | sn'        # seeded per-cycle choice\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}
	cfg := config.Load()

	if seed == "" {
		seed = cfg.Seed
	}
	if colorMode == "" {
		colorMode = cfg.Color
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	src := strings.Join(flag.Args(), " ")

	fromR, err := parseRational(from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -from: %v\n", err)
		os.Exit(1)
	}
	toR, err := parseRational(to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -to: %v\n", err)
		os.Exit(1)
	}
	seedN, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -seed: %v\n", err)
		os.Exit(1)
	}

	sink := diagnostics.NewStderrSink(os.Stderr)
	useColor := colorMode == "always" || (colorMode == "auto" && colorModeIsTerminal())
	color.NoColor = !useColor

	p, diags := notation.Parse(src, defaultLeaf)
	for _, d := range diags {
		sink.Report(d)
	}

	ctx := qctx.New().WithSeed(seedN)
	events := p.QueryArc(fromR, toR, ctx)

	renderEvents(os.Stdout, events, useColor)
}

func parseRational(s string) (rational.Rational, error) {
	if parts := strings.SplitN(s, "/", 2); len(parts) == 2 {
		num, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return rational.Rational{}, err
		}
		den, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return rational.Rational{}, err
		}
		return rational.New(num, den), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return rational.Rational{}, err
	}
	return rational.FromInt(n), nil
}

func colorModeIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
