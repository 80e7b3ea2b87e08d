// Package decorators shows how Go wraps behaviour around functions: with
// higher-order functions that take and return funcs, with embedding for
// types, and with middleware for HTTP handlers.
package decorators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the decorators topic to w.
func Run(w io.Writer) {
	display.Section(w, "Functions are values")
	demoFirstClass(w)

	display.Section(w, "Closures")
	demoClosures(w)

	display.Section(w, "A basic decorator")
	demoBasic(w)

	display.Section(w, "Decorators with parameters")
	demoParameterized(w)

	display.Section(w, "Stacking decorators")
	demoStacking(w)

	display.Section(w, "Decorating types with embedding")
	demoEmbedding(w)

	display.Section(w, "Timing")
	demoTiming(w)

	display.Section(w, "Memoization")
	demoMemoize(w)

	display.Section(w, "Argument validation")
	demoValidation(w)

	display.Section(w, "Call logging with slog")
	demoLogCalls(w)

	display.Section(w, "Authorization guard")
	demoAuth(w)

	display.Section(w, "Deprecation warnings")
	demoDeprecated(w)

	display.Section(w, "HTTP middleware")
	demoMiddleware(w)

	display.Section(w, "Exercise: a retry decorator")
	demoRetry(w)
}

// ── Functions as values ──────────────────────────────────────────────────────

func greet(name string) string { return "Hello, " + name }

func apply(f func(string) string, arg string) string { return f(arg) }

func demoFirstClass(w io.Writer) {
	g := greet
	fmt.Fprintln(w, "  g(\"Ana\")             =", g("Ana"))
	fmt.Fprintln(w, "  apply(greet, \"Luis\") =", apply(greet, "Luis"))

	pick := func(loud bool) func(string) string {
		if loud {
			return func(s string) string { return strings.ToUpper(greet(s)) + "!" }
		}
		return greet
	}
	fmt.Fprintln(w, "  pick(true)(\"Marta\")  =", pick(true)("Marta"))
}

func makeMultiplier(factor float64) func(float64) float64 {
	return func(x float64) float64 { return x * factor }
}

func demoClosures(w io.Writer) {
	double, triple := makeMultiplier(2), makeMultiplier(3)
	fmt.Fprintln(w, "  double(5) =", double(5), " triple(5) =", triple(5))
}

// ── Basic and parameterized decorators ───────────────────────────────────────

func announce(w io.Writer, f func(string) string) func(string) string {
	return func(s string) string {
		fmt.Fprintln(w, "  before the call")
		r := f(s)
		fmt.Fprintln(w, "  after the call")
		return r
	}
}

func demoBasic(w io.Writer) {
	sayHello := announce(w, greet)
	fmt.Fprintln(w, "  result:", sayHello("Ana"))

	square := Debug(w, "square", func(n int) int { return n * n })
	square(7)
}

// repeat returns a decorator that calls f n times.
func repeat(n int) func(func()) func() {
	return func(f func()) func() {
		return func() {
			for range n {
				f()
			}
		}
	}
}

func demoParameterized(w io.Writer) {
	sayHi := repeat(3)(func() { fmt.Fprintln(w, "  hi!") })
	sayHi()
}

func bold(f func(string) string) func(string) string {
	return func(s string) string { return "<b>" + f(s) + "</b>" }
}

func italic(f func(string) string) func(string) string {
	return func(s string) string { return "<i>" + f(s) + "</i>" }
}

func demoStacking(w io.Writer) {
	identity := func(s string) string { return s }
	fmt.Fprintln(w, "  bold(italic(f)):", bold(italic(identity))("Go"))
	fmt.Fprintln(w, "  italic(bold(f)):", italic(bold(identity))("Go"))
}

// ── Types ────────────────────────────────────────────────────────────────────

type namer interface{ Name() string }

type employee struct{ name string }

func (e employee) Name() string { return e.name }

// greeter adds Greet to any namer without touching its type.
type greeter struct{ namer }

func (g greeter) Greet(other string) string {
	return fmt.Sprintf("%s says hello to %s", g.Name(), other)
}

func demoEmbedding(w io.Writer) {
	g := greeter{employee{name: "Ana"}}
	fmt.Fprintln(w, " ", g.Greet("Luis"))
	fmt.Fprintln(w, "  the wrapped Name still works:", g.Name())
}

// ── Practical decorators ─────────────────────────────────────────────────────

func demoTiming(w io.Writer) {
	var took time.Duration
	slow := Timer("slow", func(_ string, d time.Duration) { took = d },
		func(d time.Duration) string {
			time.Sleep(d)
			return "done"
		})
	result := slow(20 * time.Millisecond)
	fmt.Fprintf(w, "  slow returned %q and took at least 20ms: %v\n", result, took >= 20*time.Millisecond)
}

func demoMemoize(w io.Writer) {
	calls := 0
	var fib func(int) int
	fib = Memoize(func(n int) int {
		calls++
		if n < 2 {
			return n
		}
		return fib(n-1) + fib(n-2)
	})
	f50 := fib(50)
	fmt.Fprintf(w, "  fib(50) = %d with %d underlying calls\n", f50, calls)
	fib(50)
	fmt.Fprintf(w, "  calling fib(50) again: still %d calls\n", calls)
}

var errInvalidArg = errors.New("invalid argument")

// positive rejects non-positive arguments before they reach f.
func positive[R any](f func(int) R) func(int) (R, error) {
	return func(n int) (R, error) {
		if n <= 0 {
			var zero R
			return zero, fmt.Errorf("%d: %w: must be positive", n, errInvalidArg)
		}
		return f(n), nil
	}
}

func demoValidation(w io.Writer) {
	stars := positive(func(n int) string { return strings.Repeat("*", n) })
	for _, n := range []int{3, 0} {
		s, err := stars(n)
		if err != nil {
			fmt.Fprintln(w, "  stars:", err)
			continue
		}
		fmt.Fprintf(w, "  stars(%d) = %s\n", n, s)
	}
}

// logCalls records every call to f on logger.
func logCalls[A, R any](logger *slog.Logger, name string, f func(A) R) func(A) R {
	return func(a A) R {
		logger.Info("call", "func", name, "arg", a)
		r := f(a)
		logger.Info("return", "func", name, "result", r)
		return r
	}
}

func demoLogCalls(w io.Writer) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
	add := logCalls(logger, "addTen", func(n int) int { return n + 10 })
	fmt.Fprintln(w, "  addTen(5) =", add(5))
}

type user struct {
	name          string
	authenticated bool
}

var errUnauthorized = errors.New("unauthorized")

func requireAuth[R any](u user, f func() R) func() (R, error) {
	return func() (R, error) {
		if !u.authenticated {
			var zero R
			return zero, fmt.Errorf("%s: %w", u.name, errUnauthorized)
		}
		return f(), nil
	}
}

func demoAuth(w io.Writer) {
	sensitive := func() string { return "the launch codes" }
	for _, u := range []user{{"admin", true}, {"guest", false}} {
		data, err := requireAuth(u, sensitive)()
		if err != nil {
			fmt.Fprintln(w, "  access denied:", err)
			continue
		}
		fmt.Fprintf(w, "  %s sees %q\n", u.name, data)
	}
}

func demoDeprecated(w io.Writer) {
	oldSum := Deprecated(w, "oldSum", "use Sum instead", func(ns []int) int {
		total := 0
		for _, n := range ns {
			total += n
		}
		return total
	})
	fmt.Fprintln(w, "  oldSum =", oldSum([]int{1, 2, 3}))
	fmt.Fprintln(w, "  oldSum =", oldSum([]int{4, 5}), "(warned only once)")
}

// ── Retry ────────────────────────────────────────────────────────────────────

// withRetry retries f up to attempts times with a constant delay.
func withRetry[A, R any](attempts int, delay time.Duration, f func(A) (R, error)) func(context.Context, A) (R, error) {
	return func(ctx context.Context, a A) (R, error) {
		b := backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(max(attempts-1, 0))),
			ctx,
		)
		return backoff.RetryWithData[R](func() (R, error) { return f(a) }, b)
	}
}

func demoRetry(w io.Writer) {
	attempt := 0
	unstable := func(succeedOn int) (string, error) {
		attempt++
		if attempt < succeedOn {
			fmt.Fprintf(w, "  attempt %d failed\n", attempt)
			return "", fmt.Errorf("attempt %d: temporary failure", attempt)
		}
		return fmt.Sprintf("succeeded on attempt %d", attempt), nil
	}

	fetch := withRetry(3, time.Millisecond, unstable)
	res, err := fetch(context.Background(), 2)
	fmt.Fprintf(w, "  result=%q err=%v\n", res, err)

	attempt = 0
	_, err = fetch(context.Background(), 5)
	fmt.Fprintln(w, "  giving up:", err)
}
