package introduction

import (
	"fmt"
	"io"
)

// ── Stack ────────────────────────────────────────────────────────────────────

// returnValue hands back a copy; x lives and dies in this frame.
//
// Escape analysis: x does not escape.
func returnValue() int {
	x := 42
	return x
}

// sumArray works on a fixed-size array the compiler can place on the stack.
func sumArray() int {
	arr := [5]int{1, 2, 3, 4, 5}
	total := 0
	for _, v := range arr {
		total += v
	}
	return total
}

// ── Heap ─────────────────────────────────────────────────────────────────────

// returnPointer returns &x, so x must outlive the frame and moves to the heap.
//
// Escape analysis: moved to heap: x
func returnPointer() *int {
	x := 42
	return &x
}

// counter captures n in a closure; n escapes with it.
func counter() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}

// makeSlice sizes a slice at run time, which forces a heap allocation.
func makeSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i * 2
	}
	return s
}

// demoEscape shows which values the compiler keeps on the stack and which
// escape to the heap. Build with `go build -gcflags=-m` to see its decisions.
func demoEscape(w io.Writer) {
	fmt.Fprintf(w, "  returnValue()   → %d  (copy, stays on the stack)\n", returnValue())
	fmt.Fprintf(w, "  sumArray()      → %d  (fixed array on the stack)\n", sumArray())

	p := returnPointer()
	fmt.Fprintf(w, "  *returnPointer() → %d  (x escaped to the heap)\n", *p)

	next := counter()
	first, second := next(), next()
	fmt.Fprintf(w, "  counter()       → %d, %d  (captured variable lives on the heap)\n", first, second)

	fmt.Fprintf(w, "  makeSlice(4)    → %v  (run-time size, heap)\n", makeSlice(4))
	fmt.Fprintln(w, "\n  Garbage collection reclaims heap values; stack frames vanish on return.")
}
