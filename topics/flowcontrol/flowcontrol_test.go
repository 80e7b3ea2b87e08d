package flowcontrol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumFirstEvens(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-3, 0},
		{0, 0},
		{1, 2},
		{5, 30},
		{10, 110},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SumFirstEvens(tt.n), "n=%d", tt.n)
	}
}

func TestChoose(t *testing.T) {
	assert.Equal(t, "yes", choose(true, "yes", "no"))
	assert.Equal(t, 2, choose(false, 1, 2))
}

func TestDescribeSearch(t *testing.T) {
	assert.Equal(t, "found 8 at index 4", describeSearch([]int{1, 3, 5, 7, 8, 9}))
	assert.Equal(t, "no even numbers", describeSearch([]int{1, 3}))
	assert.Equal(t, "no even numbers", describeSearch(nil))
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	Run(&buf)
	out := buf.String()

	assert.Contains(t, out, "x is greater than 5 but not greater than 15")
	assert.Contains(t, out, "false && ... evaluated [left]")
	assert.Contains(t, out, "true  || ... evaluated [left]")
	assert.Contains(t, out, "group 0 [1 3]")
	assert.NotContains(t, out, "group 1")
	assert.Contains(t, out, "fallthrough: one two\n")
	assert.Contains(t, out, "first pair summing to 7: (1, 6)")
	assert.Contains(t, out, "sum of the first 5 even numbers = 30")
}
