package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/bunker-test/bunker/harness"
	"github.com/bunker-test/bunker/internal/config"
	"github.com/bunker-test/bunker/outcome"
)

// chdir stands in for t.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestBuildGroupAppliesDisableList(t *testing.T) {
	t1 := harness.NewTest("kept", func() { outcome.Pass() }, "")
	t2 := harness.NewTest("dropped", func() { outcome.Pass() }, "")

	cfg := config.Default()
	cfg.Disable = []string{"dropped"}
	buildGroup("g", "", cfg, false, []*harness.Test{t1, t2})

	if !t1.Enabled() {
		t.Fatal("undisabled test was turned off")
	}
	if t2.Enabled() {
		t.Fatal("disable list did not turn the test off")
	}
}

func TestGatherFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--verbose", "--name-width", "25", "--disable", "slow test"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	values, err := gatherFlags(cmd)
	if err != nil {
		t.Fatalf("gather flags: %v", err)
	}
	if !values.Verbose.Set || !values.Verbose.Value {
		t.Fatalf("verbose flag not captured: %+v", values.Verbose)
	}
	if values.Debug.Set || values.NoColor.Set {
		t.Fatalf("untouched flags reported as set: %+v", values)
	}
	if !values.NameWidth.Set || values.NameWidth.Value != 25 {
		t.Fatalf("name width flag not captured: %+v", values.NameWidth)
	}
	if len(values.Disable.Values) != 1 || values.Disable.Values[0] != "slow test" {
		t.Fatalf("disable flag not captured: %+v", values.Disable)
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.NoColor = true

	printStatus(&buf, cfg, "demo", harness.Summary{Passed: 2, Failed: 1, Skipped: 1})

	want := "demo: 2 passed, 1 failed, 0 crashed, 1 skipped, 0 didn't run\n"
	if buf.String() != want {
		t.Fatalf("status = %q, want %q", buf.String(), want)
	}
}

func TestSelftestCommand(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"selftest", "--no-color"})

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if exitCode != 0 {
		t.Fatalf("exit code = %d, output:\n%s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "unit tests: 12 passed, 0 failed, 0 crashed, 0 skipped, 0 didn't run") {
		t.Fatalf("unexpected status line:\n%s", buf.String())
	}
}

func TestSelftestDisableFlag(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"selftest", "--no-color", "--disable", "basic crash", "--disable", "fixtures count"})

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if exitCode != 0 {
		t.Fatalf("exit code = %d, output:\n%s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "2 skipped") {
		t.Fatalf("disabled tests not skipped:\n%s", buf.String())
	}
}

func TestExamplesCommand(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"examples", "--no-color"})

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if exitCode != 0 {
		t.Fatalf("examples must not set a failing exit code, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "examples: 1 passed, 4 failed, 1 crashed, 1 skipped, 0 didn't run") {
		t.Fatalf("unexpected status line:\n%s", buf.String())
	}
}
