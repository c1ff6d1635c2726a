// Package harness executes test routines inside isolated child
// processes and orchestrates groups of tests around setup and teardown
// fixtures. A fatal fault inside a routine cannot terminate the caller;
// every execution attempt degrades to an outcome.Result value.
package harness

import (
	"sync/atomic"

	"github.com/bunker-test/bunker/outcome"
)

var nextID atomic.Uint64

// Test wraps a single test routine with a name, a description and an
// enablement flag. The routine is fixed at construction. Isolation ids
// are assigned in construction order, so every process of a run must
// construct its tests in the same order; ordinary straight-line
// construction satisfies this.
type Test struct {
	id          uint64
	name        string
	description string
	enabled     bool
	routine     func()
}

// NewTest creates an enabled test wrapping routine.
func NewTest(name string, routine func(), description string) *Test {
	return &Test{
		id:          nextID.Add(1),
		name:        name,
		description: description,
		enabled:     true,
		routine:     routine,
	}
}

// Name returns the test's name.
func (t *Test) Name() string { return t.name }

// Description returns the test's description.
func (t *Test) Description() string { return t.description }

// Enabled reports whether the test will execute when invoked.
func (t *Test) Enabled() bool { return t.enabled }

// SetEnable toggles execution of the test and returns it for chaining.
// A disabled test yields a Skipped result without creating isolation.
func (t *Test) SetEnable(enabled bool) *Test {
	t.enabled = enabled
	return t
}

// Invoke executes the routine in isolation via the default runner.
// Repeated invocations are independent, each with its own verdict
// channel.
func (t *Test) Invoke() outcome.Result {
	return defaultRunner().Run(t)
}
