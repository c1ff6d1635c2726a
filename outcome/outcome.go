// Package outcome defines the result protocol for isolated test
// routines: the kinds a test execution can yield, the signals a routine
// uses to declare its verdict, and the wire encoding that carries a
// verdict back across the isolation boundary.
package outcome

import "time"

// Kind identifies the state a test execution can yield.
type Kind int

const (
	// DidntRun is the default kind for a result whose routine never executed.
	DidntRun Kind = iota
	// Skipped marks a test that was disabled at invocation time.
	Skipped
	// Passed marks an explicit passing verdict.
	Passed
	// Failed marks an explicit or implicit failing verdict.
	Failed
	// Crashed marks abnormal termination of the isolated execution.
	Crashed
)

// String returns the report label for the kind.
func (k Kind) String() string {
	switch k {
	case Skipped:
		return "SKIPPED"
	case Passed:
		return "PASS"
	case Failed:
		return "FAIL"
	case Crashed:
		return "CRASH"
	default:
		return "DIDNT_RUN"
	}
}

// Result carries the outcome of one test execution attempt. It is
// created fresh per attempt and owned by the caller that requested the
// execution.
type Result struct {
	Kind    Kind
	Message string
	Runtime time.Duration
}

// Failing reports whether the result counts as a failure. Only Passed and
// Skipped are non-failing.
func (r Result) Failing() bool {
	return r.Kind != Passed && r.Kind != Skipped
}
