package introduction

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	Run(&buf)

	out := buf.String()
	assert.Contains(t, out, "Why learn Go?")
	assert.Contains(t, out, "Hello, World!")
	assert.Contains(t, out, runtime.Version())
	assert.Contains(t, out, "counter()       → 1, 2")
}

func TestEscapeHelpers(t *testing.T) {
	assert.Equal(t, 42, returnValue())
	assert.Equal(t, 15, sumArray())
	assert.Equal(t, 42, *returnPointer())
	assert.Equal(t, []int{0, 2, 4}, makeSlice(3))

	next := counter()
	next()
	assert.Equal(t, 2, next(), "the closure keeps its own state")
	assert.Equal(t, 1, counter()(), "a new closure starts fresh")
}

// BenchmarkReturnValue measures a stack-only call: nothing for the GC.
func BenchmarkReturnValue(b *testing.B) {
	var sink int
	for i := 0; i < b.N; i++ {
		sink = returnValue()
	}
	_ = sink
}

// BenchmarkReturnPointer measures a call whose result escapes to the heap.
func BenchmarkReturnPointer(b *testing.B) {
	b.ReportAllocs()
	var sink *int
	for i := 0; i < b.N; i++ {
		sink = returnPointer()
	}
	_ = sink
}

func BenchmarkMakeSlice(b *testing.B) {
	b.ReportAllocs()
	var sink []int
	for i := 0; i < b.N; i++ {
		sink = makeSlice(64)
	}
	_ = sink
}
