package harness

import (
	"io"

	"github.com/bunker-test/bunker/outcome"
	"github.com/bunker-test/bunker/report"
)

// Fixture is a setup or teardown hook. Returning false aborts the
// remainder of the enclosing group run; fixture failure is binary and
// carries no message.
type Fixture func() bool

// Summary counts the tests of one group run by result kind. It is
// recomputed on every Run call.
type Summary struct {
	DidntRun int
	Skipped  int
	Passed   int
	Failed   int
	Crashed  int
}

// Failures returns the conventional process exit count for a run: the
// failed and crashed tests. Tests never reached count as DidntRun, not
// as failures.
func (s Summary) Failures() int {
	return s.Failed + s.Crashed
}

// Group sequences global and per-test fixtures around an ordered list
// of tests and aggregates their outcomes. Append order is execution
// order, for tests and for fixtures within a phase.
type Group struct {
	name        string
	description string
	verbose     bool
	nameWidth   int

	beforeAll  []Fixture
	beforeEach []Fixture
	afterAll   []Fixture
	afterEach  []Fixture

	tests []*Test
}

// NewGroup creates an empty, verbose group.
func NewGroup(name, description string) *Group {
	return &Group{name: name, description: description, verbose: true}
}

// SetVerbose toggles the narrative output (banner, per-test description
// and closing summary) around the tabular result lines. Verbosity never
// affects the computed Summary.
func (g *Group) SetVerbose(verbose bool) *Group {
	g.verbose = verbose
	return g
}

// SetNameWidth overrides the minimum name column width of the report.
func (g *Group) SetNameWidth(width int) *Group {
	g.nameWidth = width
	return g
}

// Add appends a test to the group.
func (g *Group) Add(t *Test) *Group {
	g.tests = append(g.tests, t)
	return g
}

// BeforeAll appends a fixture run once before any test.
func (g *Group) BeforeAll(f Fixture) *Group {
	g.beforeAll = append(g.beforeAll, f)
	return g
}

// BeforeEach appends a fixture run before every test.
func (g *Group) BeforeEach(f Fixture) *Group {
	g.beforeEach = append(g.beforeEach, f)
	return g
}

// AfterAll appends a fixture run once after all tests.
func (g *Group) AfterAll(f Fixture) *Group {
	g.afterAll = append(g.afterAll, f)
	return g
}

// AfterEach appends a fixture run after every test.
func (g *Group) AfterEach(f Fixture) *Group {
	g.afterEach = append(g.afterEach, f)
	return g
}

// Run executes the group's fixtures and tests in declared order,
// writing the report to out. A fixture returning false aborts the rest
// of the run and is reported as a run-level error naming the phase;
// tests never reached are counted as DidntRun. Run never fails: all
// per-test outcomes, including crashes, arrive as data.
func (g *Group) Run(out io.Writer) Summary {
	f := report.NewFormatter(out)
	if g.nameWidth > 0 {
		f.NameWidth = g.nameWidth
	}

	var sum Summary
	failures := 0
	ran := 0

	if g.verbose {
		f.Banner(g.name, len(g.tests), g.description)
	}

	if phase := g.execute(f, &sum, &failures, &ran); phase != "" {
		f.FixtureError(phase)
		sum.DidntRun += len(g.tests) - ran
	}

	if g.verbose {
		f.Summary(g.name, failures)
	}
	return sum
}

// execute runs the fixture/test sequence, returning the name of the
// phase whose fixture aborted the run, or "" on a complete run.
func (g *Group) execute(f *report.Formatter, sum *Summary, failures, ran *int) string {
	for _, fx := range g.beforeAll {
		if !fx() {
			return "before_all"
		}
	}

	for _, t := range g.tests {
		for _, fx := range g.beforeEach {
			if !fx() {
				return "before_each"
			}
		}

		res := t.Invoke()
		*ran++

		// The result is recorded before the teardown fixtures run, so
		// the test's outcome stands even if an after_each fixture
		// aborts the rest of the run.
		if g.verbose {
			f.Describe(t.Name(), t.Description())
		}
		if res.Failing() {
			*failures++
		}
		classify(sum, res)
		f.Result(t.Name(), res)
		if g.verbose {
			f.Blank()
		}

		for _, fx := range g.afterEach {
			if !fx() {
				return "after_each"
			}
		}
	}

	for _, fx := range g.afterAll {
		if !fx() {
			return "after_all"
		}
	}
	return ""
}

func classify(sum *Summary, r outcome.Result) {
	switch r.Kind {
	case outcome.Skipped:
		sum.Skipped++
	case outcome.Passed:
		sum.Passed++
	case outcome.Failed:
		sum.Failed++
	case outcome.Crashed:
		sum.Crashed++
	default:
		sum.DidntRun++
	}
}
