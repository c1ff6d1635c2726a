package main

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bunker-test/bunker/harness"
	"github.com/bunker-test/bunker/internal/config"
	"github.com/bunker-test/bunker/outcome"
)

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the harness self-tests",
		RunE:  runSelftest,
	}
}

func runSelftest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	configureRunner(cfg)

	group := selftestGroup(cfg)
	sum := group.Run(cmd.OutOrStdout())
	exitCode = sum.Failures()
	printStatus(cmd.OutOrStdout(), cfg, "unit tests", sum)
	return nil
}

// selftestGroup exercises the public API; every test is expected to
// pass.
func selftestGroup(cfg config.Config) *harness.Group {
	tests := []*harness.Test{
		harness.NewTest("default result", func() {
			var d outcome.Result

			outcome.PassIff(d.Kind == outcome.DidntRun)
		}, "Verify that the default kind for a result is DIDNT_RUN."),

		harness.NewTest("default values", func() {
			t := harness.NewTest("", func() {}, "")

			outcome.PassIff(t.Enabled())
		}, "Verify that tests are enabled by default."),

		harness.NewTest("enable/disable", func() {
			t := harness.NewTest("", func() {}, "")

			outcome.Assert(t.Enabled(), "t.Enabled()")
			outcome.Assert(!t.SetEnable(false).Enabled(), "!t.SetEnable(false).Enabled()")
			outcome.Assert(t.SetEnable(true).Enabled(), "t.SetEnable(true).Enabled()")

			outcome.Pass()
		}, "Verify the ability to enable and disable tests."),

		harness.NewTest("basic skipped", func() {
			t := harness.NewTest("", func() {}, "")

			t.SetEnable(false)

			outcome.PassIff(t.Invoke().Kind == outcome.Skipped)
		}, "Verify that disabling a test causes it to be skipped."),

		harness.NewTest("basic pass", func() {
			t := harness.NewTest("", func() { outcome.Pass() }, "")

			outcome.PassIff(t.Invoke().Kind == outcome.Passed)
		}, "Verify a simple passing test result."),

		harness.NewTest("basic fail", func() {
			t := harness.NewTest("", func() {}, "")

			outcome.PassIff(t.Invoke().Kind == outcome.Failed)
		}, "Verify a simple failing test result."),

		harness.NewTest("basic crash", func() {
			t := harness.NewTest("", func() {
				var p *int
				*p = 1
			}, "")
			r := t.Invoke()

			outcome.PassIff(r.Kind == outcome.Crashed)
		}, "Verify a simple crashing test result. For this test we force a "+
			"fatal fault with an invalid memory access."),

		harness.NewTest("test name", func() {
			t := harness.NewTest("SomeValue", func() {}, "")

			outcome.PassIff(t.Name() == "SomeValue" && t.Name() != "WrongValue")
		}, "Verify that the test name can be set."),

		harness.NewTest("test description", func() {
			t := harness.NewTest("", func() {}, "My Value")

			outcome.PassIff(t.Description() == "My Value" && t.Description() != "WrongValue")
		}, "Verify that the test description can be set."),

		harness.NewTest("anonymous test", func() { outcome.Pass() },
			"Anonymously defined test"),

		harness.NewTest("fixtures count", fixturesCountRoutine,
			"Verify that fixtures fire when they should."),

		harness.NewTest("fixtures errors", fixturesErrorsRoutine,
			"Verify the behavior of fixtures that abort the run."),
	}

	return buildGroup("unit tests", "Self-tests of the bunker public API.",
		cfg, cfg.Verbose, tests)
}

func fixturesCountRoutine() {
	fixtureIn, fixtureOut := 0, 0

	nested := harness.NewGroup("nested", "nested tests")
	nested.Add(harness.NewTest("(fixtures 1...)", func() {
		outcome.PassIff(fixtureIn == 2 && fixtureOut == 0)
	}, "")).
		Add(harness.NewTest("(fixtures 2...)", func() {
			outcome.PassIff(fixtureIn == 3 && fixtureOut == 1)
		}, "")).
		Add(harness.NewTest("(fixtures 3...)", func() {
			outcome.PassIff(fixtureIn == 4 && fixtureOut == 2)
		}, "")).
		BeforeAll(func() bool { fixtureIn++; return true }).
		BeforeEach(func() bool { fixtureIn++; return true }).
		AfterAll(func() bool { fixtureOut++; return true }).
		AfterEach(func() bool { fixtureOut++; return true }).
		SetVerbose(false)

	var output bytes.Buffer
	sum := nested.Run(&output)

	outcome.Assert(sum.DidntRun == 0, "sum.DidntRun == 0")
	outcome.Assert(sum.Skipped == 0, "sum.Skipped == 0")
	outcome.Assert(sum.Passed == 3, "sum.Passed == 3")
	outcome.Assert(sum.Failed == 0, "sum.Failed == 0")
	outcome.Assert(sum.Crashed == 0, "sum.Crashed == 0")
	outcome.Assert(fixtureIn == 4 && fixtureOut == 4, "fixtureIn == 4 && fixtureOut == 4")
	outcome.PassIff(strings.Count(output.String(), "PASS") == 3)
}

func fixturesErrorsRoutine() {
	nested := harness.NewGroup("nested", "nested tests")
	nested.Add(harness.NewTest("(fixtures)", func() { outcome.Fail() }, "")).
		BeforeAll(func() bool { return false }).
		SetVerbose(false)

	var output bytes.Buffer
	sum := nested.Run(&output)

	outcome.Assert(sum.DidntRun == 1, "sum.DidntRun == 1")
	outcome.Assert(sum.Skipped == 0, "sum.Skipped == 0")
	outcome.Assert(sum.Passed == 0, "sum.Passed == 0")
	outcome.Assert(sum.Failed == 0, "sum.Failed == 0")
	outcome.Assert(sum.Crashed == 0, "sum.Crashed == 0")
	outcome.PassIff(output.String() == "# ERROR - failure in fixture: before_all\n")
}
