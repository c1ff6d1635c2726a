package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bunker-test/bunker/harness"
	"github.com/bunker-test/bunker/internal/config"
	"github.com/bunker-test/bunker/outcome"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Demonstrate the harness output for a mix of outcomes",
		RunE:  runExamples,
	}
}

func runExamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	configureRunner(cfg)

	group := examplesGroup(cfg)
	sum := group.Run(cmd.OutOrStdout())
	printStatus(cmd.OutOrStdout(), cfg, "examples", sum)

	// The examples intentionally fail in various ways; their outcomes
	// are the demonstration, not an error.
	exitCode = 0
	return nil
}

func examplesGroup(cfg config.Config) *harness.Group {
	tests := []*harness.Test{
		harness.NewTest("explicit failure", func() {
			outcome.Fail()
		}, "Demonstration of an explicit failure by calling outcome.Fail(). The "+
			"output will include the filename and line number where the failure "+
			"occurred."),

		harness.NewTest("implicit failure", func() {
		}, "Demonstration of an implicit failure, where no verdict is ever "+
			"raised. The harness prohibits implicitly successful runs - a test "+
			"can only pass if it explicitly calls outcome.Pass() or "+
			"outcome.PassIff().\n\n"+
			"Note that no location information is provided in this case."),

		harness.NewTest("skipped test", func() {
		}, "Demonstration of a test that is skipped because it's disabled. This "+
			"is useful for temporarily turning off tests without removing them "+
			"from the test run output.").SetEnable(false),

		harness.NewTest("slow test", func() {
			time.Sleep(time.Second)
			outcome.Pass()
		}, "Demonstration of a test that takes slightly longer to run. Use this "+
			"to compare the runtime reported for a test vs. those that complete "+
			"without delay."),

		harness.NewTest("pass iff", func() {
			outcome.PassIff(1 == 0)
		}, "Demonstration of outcome.PassIff(), which immediately passes the "+
			"test if and only if the condition is true. Otherwise, it fails "+
			"immediately."),

		harness.NewTest("assertion", func() {
			outcome.Assert(0 == 1, "0 == 1")
		}, "Demonstration of a failed assertion via outcome.Assert(0 == 1). In "+
			"addition to the filename and line number, the message includes the "+
			"expression which failed to evaluate to true."),

		harness.NewTest("segfault condition", func() {
			var p *int
			outcome.Assert(*p == 0xdead, "*p == 0xdead")
		}, "Demonstration of how an invalid memory access appears as a crashed "+
			"test."),
	}

	return buildGroup("examples", "Examples of various uses and failure conditions.",
		cfg, true, tests)
}
