package outcome

import (
	"fmt"
	"runtime"
)

// passSignal concludes a routine with a passing verdict. Passing is
// always explicit: a routine that returns without raising a signal is
// treated as a failure, so a test can never pass by accident.
type passSignal struct{}

// failSignal concludes a routine with a failing verdict and a
// human-readable message.
type failSignal struct {
	message string
}

// Pass concludes the test routine with a passing result.
func Pass() {
	panic(passSignal{})
}

// PassIff concludes the test routine with a passing result if and only
// if cond is true. Otherwise the routine fails unconditionally, with no
// location detail.
func PassIff(cond bool) {
	if cond {
		panic(passSignal{})
	}
	panic(failSignal{message: "FAILED"})
}

// Fail concludes the test routine with a failing result recording the
// caller's file and line.
func Fail() {
	panic(failSignal{message: failedAt(2)})
}

// Failf concludes the test routine with a failing result carrying a
// formatted message.
func Failf(format string, args ...any) {
	panic(failSignal{message: fmt.Sprintf(format, args...)})
}

// Assert fails the test routine when cond is false, recording the
// caller's file and line together with expr, the source text of the
// condition. When cond is true the routine continues.
func Assert(cond bool, expr string) {
	if !cond {
		panic(failSignal{message: fmt.Sprintf("%s: %q", failedAt(2), expr)})
	}
}

func failedAt(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "FAILED"
	}
	return fmt.Sprintf("FAILED at %s:%d", file, line)
}

// Capture runs fn and recovers its verdict signal. It returns the
// decoded result and true when fn raised a verdict, or a zero Result
// and false when fn returned without signaling. Panics other than
// verdict signals propagate to the caller.
func Capture(fn func()) (res Result, signaled bool) {
	defer func() {
		switch v := recover().(type) {
		case nil:
		case passSignal:
			res = Result{Kind: Passed}
			signaled = true
		case failSignal:
			res = Result{Kind: Failed, Message: v.message}
			signaled = true
		default:
			panic(v)
		}
	}()
	fn()
	return res, signaled
}
