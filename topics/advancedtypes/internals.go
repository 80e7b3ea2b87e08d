package advancedtypes

import (
	"fmt"
	"io"
	"unsafe"
)

// A slice is a three-word header over a backing array:
//
//	+──────+─────+─────+
//	│ ptr  │ len │ cap │
//	+──────+─────+─────+
//	   │
//	   ▼
//	[0][1][2][3][4]
//
// Several slices can share one backing array, which is where most slice
// surprises come from.
func demoInternals(w io.Writer) {
	fmt.Fprintf(w, "  sizeof([]int) = %d bytes (ptr, len, cap)\n", unsafe.Sizeof([]int{}))

	a := []int{1, 2, 3, 4, 5}
	b := a[1:4]
	b[0] = 99
	fmt.Fprintln(w, "\n  b := a[1:4]; b[0] = 99")
	printSlice(w, "a", a)
	printSlice(w, "b", b)

	// append within capacity writes into the shared array.
	orig := []int{1, 2, 3, 4, 5}
	sub := orig[1:3]
	sub = append(sub, 42)
	fmt.Fprintln(w, "\n  sub := orig[1:3]; sub = append(sub, 42)")
	printSlice(w, "orig", orig)
	printSlice(w, "sub", sub)

	// A full slice expression caps the capacity and forces a copy.
	safeOrig := []int{1, 2, 3, 4, 5}
	safe := safeOrig[1:3:3]
	safe = append(safe, 42)
	fmt.Fprintln(w, "\n  safe := orig[1:3:3]; safe = append(safe, 42)")
	printSlice(w, "orig", safeOrig)
	printSlice(w, "safe", safe)

	s := []int{10, 20, 30}
	appendInside(s)
	fmt.Fprintln(w, "\n  append inside a callee is lost:", s)
	s = appendAndReturn(s, 40)
	fmt.Fprintln(w, "  return the new slice instead:  ", s)

	var nilSlice []int
	empty := []int{}
	fmt.Fprintf(w, "\n  nil slice: len=%d nil=%v   empty slice: len=%d nil=%v\n",
		len(nilSlice), nilSlice == nil, len(empty), empty == nil)
}

func appendInside(s []int) {
	_ = append(s, 999)
}

func appendAndReturn(s []int, v int) []int {
	return append(s, v)
}

func printSlice(w io.Writer, label string, s []int) {
	fmt.Fprintf(w, "  %-5s %v  len=%d cap=%d\n", label+":", s, len(s), cap(s))
}
