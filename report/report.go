// Package report renders test outcomes and group narration as text. It
// receives only already-computed data; no results are produced here.
package report

import (
	"fmt"
	"io"

	"github.com/bunker-test/bunker/outcome"
)

// DefaultNameWidth is the minimum column width for test names in the
// tabular result lines.
const DefaultNameWidth = 20

// wrapWidth is the column where narrative comment text wraps.
const wrapWidth = 75

// Formatter renders group banners, descriptions and per-test result
// lines to a single output sink.
type Formatter struct {
	out io.Writer

	// NameWidth is the minimum width of the name column.
	NameWidth int
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out, NameWidth: DefaultNameWidth}
}

// Banner announces a group run with its test count and description.
func (f *Formatter) Banner(group string, tests int, description string) {
	fmt.Fprintf(f.out, "#\n# Running %d test(s) in group: %s\n", tests, group)
	fmt.Fprintf(f.out, "#\n# %s\n#\n", description)
}

// Describe emits a test's name and its word-wrapped description as
// comment lines.
func (f *Formatter) Describe(name, description string) {
	fmt.Fprintf(f.out, "# %s: \n", name)
	w := NewWrapWriter(f.out, wrapWidth)
	io.WriteString(w, description)
	io.WriteString(w, "\n\n")
}

// Result emits the tabular line for one test outcome: the left-justified
// name, the outcome label with optional message, and the runtime.
func (f *Formatter) Result(name string, r outcome.Result) {
	fmt.Fprintf(f.out, "%-*s%s - in %gs\n", f.NameWidth, name, Format(r), r.Runtime.Seconds())
}

// FixtureError reports a fixture failure that aborted the run.
func (f *Formatter) FixtureError(phase string) {
	fmt.Fprintf(f.out, "# ERROR - failure in fixture: %s\n", phase)
}

// Summary emits the closing line of a verbose group run.
func (f *Formatter) Summary(group string, failures int) {
	noun := "failures"
	if failures == 1 {
		noun = "failure"
	}
	fmt.Fprintf(f.out, "# Summary: %s completed with %d %s\n", group, failures, noun)
}

// Blank emits the separator line between verbose entries.
func (f *Formatter) Blank() {
	fmt.Fprintln(f.out)
}

// Format renders an outcome label. Labels other than PASS and SKIPPED
// carry a leading alert character as an attention marker; a non-empty
// message is appended in parentheses.
func Format(r outcome.Result) string {
	label := r.Kind.String()
	switch r.Kind {
	case outcome.Passed, outcome.Skipped:
	default:
		label = "\a" + label
	}
	if r.Message != "" {
		label += " (" + r.Message + ")"
	}
	return label
}
