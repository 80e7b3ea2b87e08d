package advancedtypes

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFilterReduce(t *testing.T) {
	nums := []int{1, 2, 3, 4}

	assert.Equal(t, []string{"1", "2", "3", "4"}, Map(nums, strconv.Itoa))
	assert.Equal(t, []int{2, 4}, Filter(nums, func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, 10, Reduce(nums, 0, func(acc, n int) int { return acc + n }))

	assert.Empty(t, Map([]int(nil), strconv.Itoa))
	assert.NotNil(t, Filter(nums, func(int) bool { return false }))
	assert.Equal(t, "init", Reduce([]int(nil), "init", func(acc string, _ int) string { return acc + "x" }))
}

func TestMergeMaps(t *testing.T) {
	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"b": 3, "c": 4}

	got := MergeMaps(a, b)

	assert.Equal(t, map[string]int{"a": 1, "b": 3, "c": 4}, got)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, a, "inputs must not change")
	assert.Empty(t, MergeMaps[string, int]())
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet(1, 2, 3, 4, 5)
	b := NewSet(4, 5, 6, 7, 8)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, a.Union(b).Sorted())
	assert.Equal(t, []int{4, 5}, a.Intersection(b).Sorted())
	assert.Equal(t, []int{1, 2, 3}, a.Difference(b).Sorted())
	assert.Equal(t, []int{1, 2, 3, 6, 7, 8}, a.SymmetricDifference(b).Sorted())

	// Operations return new sets.
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, 5, b.Len())
}

func TestSetAddRemoveHas(t *testing.T) {
	s := NewSet("go", "go")
	assert.Equal(t, 1, s.Len())

	s.Add("zig")
	assert.True(t, s.Has("zig"))

	s.Remove("go")
	s.Remove("absent")
	assert.False(t, s.Has("go"))
	assert.Equal(t, []string{"zig"}, s.Sorted())
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	Run(&buf)
	out := buf.String()

	assert.Contains(t, out, "replace [0:2]:   [fig cherry kiwi lime]")
	assert.Contains(t, out, "symmetric difference: [1 2 3 6 7 8]")
	assert.Contains(t, out, "MergeMaps (later wins): map[a:1 b:3 c:4]")
	assert.Contains(t, out, "orig: [1 2 3 42 5]")
	assert.Contains(t, out, "  name: Go Academy\n")
	assert.Contains(t, out, "decoded back: 2 courses, first student Ana")
}

func TestRunIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	Run(&first)
	Run(&second)
	assert.Equal(t, first.String(), second.String())
}
