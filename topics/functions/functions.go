// Package functions covers declaring and calling functions: parameters,
// optional and named arguments, variadics, multiple returns, scope,
// closures and recursion.
package functions

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the functions topic to w.
func Run(w io.Writer) {
	display.Section(w, "Basic functions")
	demoBasic(w)

	display.Section(w, "Parameters and arguments")
	demoParameters(w)

	display.Section(w, "Default values")
	demoDefaults(w)

	display.Section(w, "Named arguments via struct parameters")
	demoStructParams(w)

	display.Section(w, "Variadic functions")
	demoVariadic(w)

	display.Section(w, "Keyword-style arguments via functional options")
	demoOptions(w)

	display.Section(w, "Multiple and named return values")
	demoReturns(w)

	display.Section(w, "Scope and shadowing")
	demoScope(w)

	display.Section(w, "Closures")
	demoClosures(w)

	display.Section(w, "Recursion")
	demoRecursion(w)

	display.Section(w, "Exercise: is it prime?")
	demoPrime(w)
}

// ── Basics ───────────────────────────────────────────────────────────────────

func greet(name string) string {
	return "Hello, " + name + "!"
}

func demoBasic(w io.Writer) {
	fmt.Fprintln(w, " ", greet("Ana"))

	// Functions are values: they can be stored and passed around.
	f := greet
	fmt.Fprintf(w, "  f := greet; f(\"Luis\") = %q  (type %T)\n", f("Luis"), f)
}

// Parameters are always passed by value; pass a pointer to let the callee
// modify the caller's variable.
func describePerson(name string, age int) string {
	return fmt.Sprintf("%s is %d years old", name, age)
}

func birthday(age *int) { *age++ }

func demoParameters(w io.Writer) {
	fmt.Fprintln(w, " ", describePerson("Ana", 28))

	age := 28
	birthday(&age)
	fmt.Fprintln(w, "  after birthday(&age):", age)

	nums := []int{1, 2, 3}
	double(nums)
	fmt.Fprintln(w, "  slices share their backing array:", nums)
}

func double(nums []int) {
	for i := range nums {
		nums[i] *= 2
	}
}

// ── Defaults and named arguments ─────────────────────────────────────────────

// Go has no default parameter values. The zero value stands in for "not
// given", and the function fills in the default.
func power(base, exponent float64) float64 {
	if exponent == 0 {
		exponent = 2
	}
	return math.Pow(base, exponent)
}

func demoDefaults(w io.Writer) {
	fmt.Fprintf(w, "  power(3, 0) = %v  (0 means \"use the default\", 2)\n", power(3, 0))
	fmt.Fprintf(w, "  power(2, 10) = %v\n", power(2, 10))
}

// RectSpec groups the arguments of newRect so call sites name them.
type RectSpec struct {
	Width, Height float64
	Label         string
}

func newRect(s RectSpec) string {
	if s.Label == "" {
		s.Label = "rect"
	}
	return fmt.Sprintf("%s %gx%g", s.Label, s.Width, s.Height)
}

func demoStructParams(w io.Writer) {
	fmt.Fprintln(w, " ", newRect(RectSpec{Height: 2, Width: 5}))
	fmt.Fprintln(w, " ", newRect(RectSpec{Width: 1, Height: 1, Label: "square"}))
}

// ── Variadic ─────────────────────────────────────────────────────────────────

func sumAll(nums ...float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}

func demoVariadic(w io.Writer) {
	fmt.Fprintln(w, "  sumAll()            =", sumAll())
	fmt.Fprintln(w, "  sumAll(1, 2, 3)     =", sumAll(1, 2, 3))
	values := []float64{4, 5, 6}
	fmt.Fprintln(w, "  sumAll(values...)   =", sumAll(values...))
}

// ── Functional options ───────────────────────────────────────────────────────

type profile struct {
	name  string
	city  string
	langs []string
}

type profileOption func(*profile)

func withCity(city string) profileOption {
	return func(p *profile) { p.city = city }
}

func withLangs(langs ...string) profileOption {
	return func(p *profile) { p.langs = append(p.langs, langs...) }
}

func newProfile(name string, opts ...profileOption) profile {
	p := profile{name: name, city: "unknown"}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p profile) String() string {
	s := fmt.Sprintf("name=%s city=%s", p.name, p.city)
	if len(p.langs) > 0 {
		s += " langs=" + strings.Join(p.langs, ",")
	}
	return s
}

func demoOptions(w io.Writer) {
	fmt.Fprintln(w, " ", newProfile("Ana"))
	fmt.Fprintln(w, " ", newProfile("Luis", withCity("Madrid"), withLangs("go", "sql")))
}

// ── Returns ──────────────────────────────────────────────────────────────────

func statistics(nums []float64) (mean, lo, hi float64) {
	if len(nums) == 0 {
		return
	}
	return CalculateAverage(nums), slices.Min(nums), slices.Max(nums)
}

func divmod(a, b int) (int, int, error) {
	if b == 0 {
		return 0, 0, fmt.Errorf("divmod %d by zero", a)
	}
	return a / b, a % b, nil
}

func demoReturns(w io.Writer) {
	mean, lo, hi := statistics([]float64{4, 8, 15, 16, 23, 42})
	fmt.Fprintf(w, "  mean=%.2f min=%v max=%v\n", mean, lo, hi)

	q, r, err := divmod(17, 5)
	fmt.Fprintf(w, "  divmod(17, 5) = %d, %d, %v\n", q, r, err)

	_, _, err = divmod(1, 0)
	fmt.Fprintf(w, "  divmod(1, 0) error: %v\n", err)
}

// ── Scope ────────────────────────────────────────────────────────────────────

var level = "package"

func demoScope(w io.Writer) {
	fmt.Fprintln(w, "  level:", level)
	level := "function" // shadows the package variable
	fmt.Fprintln(w, "  level:", level)
	{
		level := "block"
		fmt.Fprintln(w, "  level:", level)
	}
	fmt.Fprintln(w, "  level:", level)

	if n, err := divmodQuotient(9, 3); err == nil {
		fmt.Fprintln(w, "  n is visible only inside the if:", n)
	}
}

func divmodQuotient(a, b int) (int, error) {
	q, _, err := divmod(a, b)
	return q, err
}

// ── Closures ─────────────────────────────────────────────────────────────────

func makeCounter() func() int {
	count := 0
	return func() int {
		count++
		return count
	}
}

func makeMultiplier(factor int) func(int) int {
	return func(n int) int { return n * factor }
}

func demoClosures(w io.Writer) {
	next := makeCounter()
	fmt.Fprintln(w, "  counter:", next(), next(), next())

	other := makeCounter()
	fmt.Fprintln(w, "  a second counter starts over:", other())

	triple := makeMultiplier(3)
	fmt.Fprintln(w, "  triple(7) =", triple(7))
}

// ── Recursion ────────────────────────────────────────────────────────────────

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func demoRecursion(w io.Writer) {
	for _, n := range []int{0, 5, 10, 20} {
		f, _ := Factorial(n)
		fmt.Fprintf(w, "  %2d! = %d\n", n, f)
	}
	if _, err := Factorial(-1); err != nil {
		fmt.Fprintln(w, "  Factorial(-1):", err)
	}
	if _, err := Factorial(21); err != nil {
		fmt.Fprintln(w, "  Factorial(21):", err)
	}

	seq := make([]int, 10)
	for i := range seq {
		seq[i] = fib(i)
	}
	fmt.Fprintln(w, "  fibonacci:", seq)
}

func demoPrime(w io.Writer) {
	for _, n := range []int{1, 2, 17, 21, 97} {
		fmt.Fprintf(w, "  IsPrime(%d) = %v\n", n, IsPrime(n))
	}
	fmt.Fprintf(w, "  CalculateAverage([1 2 3 4 5]) = %v\n", CalculateAverage([]float64{1, 2, 3, 4, 5}))
}
