package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bunker-test/bunker/outcome"
)

func TestFormatPassAndSkipped(t *testing.T) {
	if got := Format(outcome.Result{Kind: outcome.Passed}); got != "PASS" {
		t.Fatalf("Format(PASS) = %q", got)
	}
	if got := Format(outcome.Result{Kind: outcome.Skipped}); got != "SKIPPED" {
		t.Fatalf("Format(SKIPPED) = %q", got)
	}
}

func TestFormatAttentionMarker(t *testing.T) {
	cases := []struct {
		res  outcome.Result
		want string
	}{
		{outcome.Result{Kind: outcome.DidntRun}, "\aDIDNT_RUN"},
		{outcome.Result{Kind: outcome.Failed}, "\aFAIL"},
		{outcome.Result{Kind: outcome.Failed, Message: "boom"}, "\aFAIL (boom)"},
		{outcome.Result{Kind: outcome.Crashed, Message: "crashed with: killed"}, "\aCRASH (crashed with: killed)"},
	}
	for _, tc := range cases {
		if got := Format(tc.res); got != tc.want {
			t.Errorf("Format(%+v) = %q, want %q", tc.res, got, tc.want)
		}
	}
}

func TestResultLine(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.Result("sample", outcome.Result{Kind: outcome.Passed, Runtime: 1500 * time.Millisecond})

	want := "sample              PASS - in 1.5s\n"
	if buf.String() != want {
		t.Fatalf("line = %q, want %q", buf.String(), want)
	}
}

func TestResultLineNameWidth(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.NameWidth = 8
	f.Result("long-test-name", outcome.Result{Kind: outcome.Passed})

	// Names longer than the column keep their full width.
	if !strings.HasPrefix(buf.String(), "long-test-namePASS") {
		t.Fatalf("line = %q", buf.String())
	}
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.Banner("demo", 3, "a demo group")

	want := "#\n# Running 3 test(s) in group: demo\n#\n# a demo group\n#\n"
	if buf.String() != want {
		t.Fatalf("banner = %q, want %q", buf.String(), want)
	}
}

func TestDescribeWrapsDescription(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.Describe("demo", "short description")

	got := buf.String()
	if !strings.HasPrefix(got, "# demo: \n") {
		t.Fatalf("describe = %q", got)
	}
	if !strings.Contains(got, "#   short description\n") {
		t.Fatalf("description not wrapped as comment: %q", got)
	}
}

func TestFixtureError(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.FixtureError("before_all")

	want := "# ERROR - failure in fixture: before_all\n"
	if buf.String() != want {
		t.Fatalf("fixture error = %q, want %q", buf.String(), want)
	}
}

func TestSummarySingularPlural(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.Summary("demo", 1)
	f.Summary("demo", 2)
	f.Summary("demo", 0)

	want := "# Summary: demo completed with 1 failure\n" +
		"# Summary: demo completed with 2 failures\n" +
		"# Summary: demo completed with 0 failures\n"
	if buf.String() != want {
		t.Fatalf("summary = %q, want %q", buf.String(), want)
	}
}
