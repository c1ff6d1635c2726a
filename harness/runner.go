package harness

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bunker-test/bunker/outcome"
)

// ExecEnv carries the invocation chain that leads a re-executed child
// process to its target routine: a "/"-separated list of test ids, one
// per level of nested invocation.
const ExecEnv = "BUNKER_EXEC"

// verdictFD is the descriptor the verdict pipe occupies in the child
// (the first ExtraFiles slot after stdin, stdout and stderr).
const verdictFD = 3

// Options configure how a Runner isolates test routines.
type Options struct {
	// Exe and Args name the binary to re-execute for each isolated
	// invocation. They default to the current process's own invocation,
	// which is required for the replay protocol to find the target
	// routine.
	Exe  string
	Args []string
	// Stderr receives the child's standard error stream. Defaults to
	// io.Discard so crash tracebacks do not interleave with the report.
	Stderr io.Writer
	// Logger receives debug events for spawn, reap and classification.
	Logger *zerolog.Logger
	Now    func() time.Time
}

// Runner executes one test routine per call inside a child process,
// observes how the child terminated and reconstructs the routine's
// verdict in the caller.
//
// Go cannot fork a live closure into a child, so isolation works by
// re-executing the current binary with the same arguments. The child
// deterministically replays the program: tests off the invocation chain
// return without executing, tests on it run inline so that program
// state is rebuilt exactly as a forked child would have inherited it,
// and the chain's final entry runs under the verdict wrapper.
type Runner struct {
	opts Options
}

// NewRunner creates a runner with the supplied options.
func NewRunner(opts Options) *Runner {
	if opts.Exe == "" {
		opts.Exe = os.Args[0]
		if opts.Args == nil {
			opts.Args = replayArgs(os.Args[1:])
		}
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{opts: opts}
}

var (
	defaultMu     sync.Mutex
	defaultShared *Runner
)

// SetDefaultRunner replaces the runner used by Test.Invoke.
func SetDefaultRunner(r *Runner) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultShared = r
}

func defaultRunner() *Runner {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultShared == nil {
		defaultShared = NewRunner(Options{})
	}
	return defaultShared
}

// Run executes t's routine in an isolated child process and returns its
// result. It never returns an error: every failure path, including the
// runner's own, degrades to a Result value.
func (r *Runner) Run(t *Test) outcome.Result {
	if !t.enabled {
		return outcome.Result{Kind: outcome.Skipped}
	}
	if res, handled := replay(t); handled {
		return res
	}
	return r.spawn(t)
}

func (r *Runner) spawn(t *Test) (res outcome.Result) {
	rd, wr, err := os.Pipe()
	if err != nil {
		r.opts.Logger.Debug().Err(err).Str("test", t.name).Msg("verdict pipe unavailable")
		return res
	}
	defer rd.Close()

	start := r.opts.Now()
	defer func() {
		res.Runtime = r.opts.Now().Sub(start)
	}()

	cmd := exec.Command(r.opts.Exe, r.opts.Args...)
	cmd.Stderr = r.opts.Stderr
	cmd.ExtraFiles = []*os.File{wr}
	// GOTRACEBACK=crash makes an unrecovered panic or runtime fault in
	// the child die by SIGABRT, so it is observed as a signal
	// termination rather than a plain non-zero exit.
	cmd.Env = append(baseEnv(), ExecEnv+"="+chainFor(t.id), "GOTRACEBACK=crash")

	if err := cmd.Start(); err != nil {
		wr.Close()
		r.opts.Logger.Debug().Err(err).Str("test", t.name).Msg("spawn failed")
		return res
	}
	wr.Close()

	// The routine is running; until classified otherwise, it failed.
	res.Kind = outcome.Failed

	err = cmd.Wait()
	switch {
	case err == nil:
		// The child exited cleanly, so a verdict was written.
		buf, rerr := io.ReadAll(rd)
		if rerr != nil {
			buf = nil
		}
		decoded := outcome.Decode(buf)
		res.Kind, res.Message = decoded.Kind, decoded.Message
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.opts.Logger.Debug().Err(err).Str("test", t.name).Msg("reap failed")
			break
		}
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.Kind = outcome.Crashed
			res.Message = "crashed with: " + ws.Signal().String()
			break
		}
		// Non-zero exit without a signal: the routine returned without
		// raising a verdict. Implicit failures carry no message.
	}

	r.opts.Logger.Debug().
		Str("test", t.name).
		Stringer("kind", res.Kind).
		Msg("isolated run complete")
	return res
}

// execChain tracks progress through the invocation chain of a
// re-executed child. consumed ids form the prefix that children spawned
// from this process must replay to reach their own targets.
type execChain struct {
	mu        sync.Mutex
	parsed    bool
	remaining []uint64
	consumed  []uint64
}

var chain execChain

func (c *execChain) load() {
	if c.parsed {
		return
	}
	c.parsed = true
	v := os.Getenv(ExecEnv)
	if v == "" {
		return
	}
	for _, part := range strings.Split(v, "/") {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			c.remaining = nil
			return
		}
		c.remaining = append(c.remaining, id)
	}
}

// replay services invocations inside a re-executed child process. Tests
// whose id is not the chain head return a zero result without
// executing. The chain-head test pops the chain: with ids remaining its
// routine runs inline to rebuild state on the way to the target, and
// with the chain exhausted it runs under the verdict wrapper, which
// terminates the process.
func replay(t *Test) (outcome.Result, bool) {
	chain.mu.Lock()
	chain.load()
	if len(chain.remaining) == 0 {
		chain.mu.Unlock()
		return outcome.Result{}, false
	}
	if chain.remaining[0] != t.id {
		chain.mu.Unlock()
		return outcome.Result{}, true
	}
	chain.consumed = append(chain.consumed, t.id)
	chain.remaining = chain.remaining[1:]
	last := len(chain.remaining) == 0
	chain.mu.Unlock()

	if last {
		execVerdict(t.routine)
	}

	// An intermediate chain entry normally hands off to a nested
	// invocation that never returns. Completing (or signaling) without
	// reaching the next entry means the replay diverged.
	_, _ = outcome.Capture(t.routine)
	os.Exit(1)
	return outcome.Result{}, true
}

// execVerdict runs the target routine in the child, reports its verdict
// on the inherited pipe and terminates the process. A routine that
// returns without signaling exits non-zero and writes nothing, so the
// parent records an implicit failure.
func execVerdict(routine func()) {
	pipe := os.NewFile(verdictFD, "verdict")
	res, signaled := outcome.Capture(routine)
	if !signaled {
		if pipe != nil {
			pipe.Close()
		}
		os.Exit(1)
	}
	if pipe != nil {
		_ = outcome.Encode(pipe, res)
		pipe.Close()
	}
	os.Exit(0)
}

// chainFor extends this process's consumed chain prefix with the target
// test id, producing the ExecEnv value for a child.
func chainFor(id uint64) string {
	chain.mu.Lock()
	defer chain.mu.Unlock()
	parts := make([]string, 0, len(chain.consumed)+1)
	for _, c := range chain.consumed {
		parts = append(parts, strconv.FormatUint(c, 10))
	}
	parts = append(parts, strconv.FormatUint(id, 10))
	return strings.Join(parts, "/")
}

// replayArgs copies the current invocation's arguments for a child,
// dropping -test.paniconexit0. The go test harness passes that flag to
// turn stray os.Exit(0) calls into panics, which would make the verdict
// wrapper's clean exit die by SIGABRT and misreport every explicit
// verdict as a crash.
func replayArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "-test.paniconexit0") ||
			strings.HasPrefix(a, "--test.paniconexit0") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// baseEnv is the parent environment without the variables the runner
// controls per spawn.
func baseEnv() []string {
	env := os.Environ()
	out := env[:0]
	for _, kv := range env {
		if strings.HasPrefix(kv, ExecEnv+"=") || strings.HasPrefix(kv, "GOTRACEBACK=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}
