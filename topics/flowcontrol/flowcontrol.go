// Package flowcontrol covers comparisons, conditionals, loops and switch.
package flowcontrol

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the flow control topic to w.
func Run(w io.Writer) {
	display.Section(w, "Comparison operators")
	demoComparisons(w)

	display.Section(w, "if, else if, else")
	demoIf(w)

	display.Section(w, "No ternary operator")
	demoNoTernary(w)

	display.Section(w, "Logical operators and short-circuit")
	demoLogical(w)

	display.Section(w, "Range checks")
	demoRangeCheck(w)

	display.Section(w, "for: the only loop")
	demoFor(w)

	display.Section(w, "Search with a labeled loop (for ... else)")
	demoSearch(w)

	display.Section(w, "Ranging over collections")
	demoRange(w)

	display.Section(w, "switch")
	demoSwitch(w)

	display.Section(w, "Nested loops and labels")
	demoNested(w)

	display.Section(w, "Exercise: sum of the first n even numbers")
	demoExercise(w)
}

func demoComparisons(w io.Writer) {
	a, b := 5, 3
	fmt.Fprintf(w, "  %d == %d  %v\n", a, a, a == a)
	fmt.Fprintf(w, "  %d != %d  %v\n", a, a, a != a)
	fmt.Fprintf(w, "  %d >  %d  %v\n", a, b, a > b)
	fmt.Fprintf(w, "  %d <  %d  %v\n", a, b, a < b)
	fmt.Fprintf(w, "  %d >= %d  %v\n", a, a, a >= a)
	fmt.Fprintf(w, "  %d <= %d  %v\n", a, b, a <= b)

	// Pointers compare by identity, arrays and structs by value.
	x, y := new(int), new(int)
	fmt.Fprintf(w, "  two new(int) pointers equal? %v\n", x == y)
	fmt.Fprintf(w, "  [2]int{1,2} == [2]int{1,2}? %v\n", [2]int{1, 2} == [2]int{1, 2})
}

func demoIf(w io.Writer) {
	x := 10
	fmt.Fprintln(w, "  x =", x)
	if x > 15 {
		fmt.Fprintln(w, "  x is greater than 15")
	} else if x > 5 {
		fmt.Fprintln(w, "  x is greater than 5 but not greater than 15")
	} else {
		fmt.Fprintln(w, "  x is 5 or less")
	}

	// if with an init statement: the variable is scoped to the if/else.
	scores := map[string]int{"ana": 91}
	if s, ok := scores["ana"]; ok {
		fmt.Fprintln(w, "  ana scored", s)
	}
	if _, ok := scores["bob"]; !ok {
		fmt.Fprintln(w, "  bob has no score")
	}
}

// demoNoTernary shows the idiomatic replacements for cond ? a : b.
func demoNoTernary(w io.Writer) {
	age := 20
	status := "minor"
	if age >= 18 {
		status = "adult"
	}
	fmt.Fprintf(w, "  age %d → %s\n", age, status)
	fmt.Fprintf(w, "  with a helper: %s\n", choose(age >= 18, "adult", "minor"))
}

// choose returns a when cond holds, else b. Both arguments are evaluated.
func choose[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

func demoLogical(w io.Writer) {
	a, b := true, false
	fmt.Fprintf(w, "  a && b = %v\n", a && b)
	fmt.Fprintf(w, "  a || b = %v\n", a || b)
	fmt.Fprintf(w, "  !a     = %v\n", !a)

	var trace []string
	probe := func(name string, v bool) bool {
		trace = append(trace, name)
		return v
	}

	_ = probe("left", false) && probe("right", true)
	fmt.Fprintf(w, "  false && ... evaluated %v\n", trace)

	trace = nil
	_ = probe("left", true) || probe("right", false)
	fmt.Fprintf(w, "  true  || ... evaluated %v\n", trace)

	// Short-circuit makes guards like this safe.
	var p *int
	fmt.Fprintf(w, "  p != nil && *p > 0 → %v (no nil dereference)\n", p != nil && *p > 0)
}

// demoRangeCheck: Go has no chained comparisons; spell both sides out.
func demoRangeCheck(w io.Writer) {
	value := 15
	fmt.Fprintf(w, "  value = %d; 10 < value && value < 20 → %v\n", value, 10 < value && value < 20)
}

func demoFor(w io.Writer) {
	fmt.Fprint(w, "  classic:     ")
	for i := 0; i < 3; i++ {
		fmt.Fprint(w, i, " ")
	}

	fmt.Fprint(w, "\n  while-style: ")
	n := 1
	for n < 20 {
		n *= 3
		fmt.Fprint(w, n, " ")
	}

	fmt.Fprint(w, "\n  range int:   ")
	for i := range 3 {
		fmt.Fprint(w, i, " ")
	}

	fmt.Fprint(w, "\n  continue:    ")
	for i := range 6 {
		if i%2 == 1 {
			continue
		}
		fmt.Fprint(w, i, " ")
	}

	fmt.Fprint(w, "\n  infinite + break: ")
	for i := 0; ; i++ {
		if i == 3 {
			break
		}
		fmt.Fprint(w, i, " ")
	}
	fmt.Fprintln(w)
}

// demoSearch replaces Python's for/else: a found flag, or a labeled
// continue that skips the "not found" branch.
func demoSearch(w io.Writer) {
	fmt.Fprintln(w, "  first even in [1 3 5 7 8 9]:", describeSearch([]int{1, 3, 5, 7, 8, 9}))
	fmt.Fprintln(w, "  first even in [1 3 5]:      ", describeSearch([]int{1, 3, 5}))

	groups := [][]int{{1, 3}, {5, 6}, {7}}
	fmt.Fprintln(w, "  groups without an even number:")
outer:
	for i, g := range groups {
		for _, v := range g {
			if v%2 == 0 {
				continue outer
			}
		}
		fmt.Fprintf(w, "    group %d %v\n", i, g)
	}
}

func describeSearch(nums []int) string {
	if i := slices.IndexFunc(nums, func(n int) bool { return n%2 == 0 }); i >= 0 {
		return fmt.Sprintf("found %d at index %d", nums[i], i)
	}
	return "no even numbers"
}

func demoRange(w io.Writer) {
	fruits := []string{"apple", "banana", "cherry"}
	for i, f := range fruits {
		fmt.Fprintf(w, "  slice  [%d] %s\n", i, f)
	}

	for i, r := range "añb" {
		fmt.Fprintf(w, "  string [%d] %c\n", i, r)
	}

	// Map iteration order is random; sort the keys for stable output.
	squares := map[int]int{2: 4, 0: 0, 1: 1}
	for _, k := range slices.Sorted(maps.Keys(squares)) {
		fmt.Fprintf(w, "  map    %d → %d\n", k, squares[k])
	}

	ch := make(chan string, 2)
	ch <- "first"
	ch <- "second"
	close(ch)
	for v := range ch {
		fmt.Fprintf(w, "  chan   %s\n", v)
	}
}

func demoSwitch(w io.Writer) {
	for _, day := range []string{"sat", "tue", "xyz"} {
		switch day {
		case "sat", "sun":
			fmt.Fprintf(w, "  %s: weekend\n", day)
		case "mon", "tue", "wed", "thu", "fri":
			fmt.Fprintf(w, "  %s: weekday\n", day)
		default:
			fmt.Fprintf(w, "  %s: not a day\n", day)
		}
	}

	// Tagless switch: an if/else-if chain with less noise.
	for _, t := range []int{-5, 18, 35} {
		switch {
		case t < 0:
			fmt.Fprintf(w, "  %d°C freezing\n", t)
		case t < 25:
			fmt.Fprintf(w, "  %d°C mild\n", t)
		default:
			fmt.Fprintf(w, "  %d°C hot\n", t)
		}
	}

	// Cases do not fall through unless asked to.
	fmt.Fprint(w, "  fallthrough:")
	switch 1 {
	case 1:
		fmt.Fprint(w, " one")
		fallthrough
	case 2:
		fmt.Fprint(w, " two")
	case 3:
		fmt.Fprint(w, " three")
	}
	fmt.Fprintln(w)
}

func demoNested(w io.Writer) {
	fmt.Fprintln(w, "  3x3 multiplication table:")
	for i := 1; i <= 3; i++ {
		fmt.Fprint(w, "   ")
		for j := 1; j <= 3; j++ {
			fmt.Fprintf(w, " %d×%d=%-2d", i, j, i*j)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "  first pair summing to 7:")
search:
	for i := 1; i <= 6; i++ {
		for j := i; j <= 6; j++ {
			if i+j == 7 {
				fmt.Fprintf(w, " (%d, %d)\n", i, j)
				break search
			}
		}
	}
}

func demoExercise(w io.Writer) {
	n := 5
	fmt.Fprintf(w, "  sum of the first %d even numbers = %d\n", n, SumFirstEvens(n))
}

// SumFirstEvens returns 2 + 4 + ... + 2n. It returns 0 for n <= 0.
func SumFirstEvens(n int) int {
	sum := 0
	for i := 1; i <= n; i++ {
		sum += 2 * i
	}
	return sum
}
