package concurrency

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

// ChildEnv names the variable that switches the host binary into child mode.
const ChildEnv = "GOGUIDE_CHILD_TASK"

// Errors returned by RunInProcess.
var (
	ErrChildUnsupported = errors.New("host binary does not serve child tasks")
	ErrUnknownTask      = errors.New("unknown child task")
)

// childTask reads its input from r and writes its answer to w.
type childTask func(r io.Reader, w io.Writer) error

var childTasks = map[string]childTask{
	"square": squareLines,
	"sum":    sumLines,
	"primes": countPrimesTask,
}

// serving is set once ServeChild has run in the parent, which proves the
// binary can be re-executed as a child.
var serving atomic.Bool

// ServeChild must be called first thing in main (or TestMain). When the
// process was started as a child it runs the requested task against
// stdin/stdout and exits; otherwise it returns immediately and enables
// RunInProcess.
func ServeChild() {
	name, ok := os.LookupEnv(ChildEnv)
	if !ok {
		serving.Store(true)
		return
	}
	task, ok := childTasks[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: %q\n", ErrUnknownTask, name)
		os.Exit(2)
	}
	if err := task(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

// ChildTasks lists the task names a child process can run.
func ChildTasks() []string {
	names := make([]string, 0, len(childTasks))
	for name := range childTasks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// childCommand prepares the host binary to run task as a child process.
func childCommand(ctx context.Context, task string) (*exec.Cmd, error) {
	if !serving.Load() {
		return nil, ErrChildUnsupported
	}
	if _, ok := childTasks[task]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	cmd := exec.CommandContext(ctx, exe)
	cmd.Env = append(os.Environ(), ChildEnv+"="+task)
	return cmd, nil
}

// RunInProcess runs task in a child copy of the current binary, feeding it
// input on stdin, and returns what it wrote to stdout. The child is waited
// for before RunInProcess returns.
func RunInProcess(ctx context.Context, task string, input io.Reader) ([]byte, error) {
	cmd, err := childCommand(ctx, task)
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("child %s: %w: %s", task, err, msg)
		}
		return nil, fmt.Errorf("child %s: %w", task, err)
	}
	return stdout.Bytes(), nil
}

// ── Child tasks ──────────────────────────────────────────────────────────────

func readInts(r io.Reader, each func(int) error) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		if err := each(n); err != nil {
			return err
		}
	}
	return sc.Err()
}

func squareLines(r io.Reader, w io.Writer) error {
	return readInts(r, func(n int) error {
		_, err := fmt.Fprintln(w, n*n)
		return err
	})
}

func sumLines(r io.Reader, w io.Writer) error {
	total := 0
	if err := readInts(r, func(n int) error { total += n; return nil }); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, total)
	return err
}

func countPrimesTask(r io.Reader, w io.Writer) error {
	return readInts(r, func(n int) error {
		_, err := fmt.Fprintln(w, countPrimes(0, n))
		return err
	})
}

// countPrimes counts the primes in [lo, hi).
func countPrimes(lo, hi int) int {
	count := 0
	for n := max(lo, 2); n < hi; n++ {
		prime := true
		for d := 2; d*d <= n; d++ {
			if n%d == 0 {
				prime = false
				break
			}
		}
		if prime {
			count++
		}
	}
	return count
}
