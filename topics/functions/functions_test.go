package functions

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAverage(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAverage(nil))
	assert.Equal(t, 0.0, CalculateAverage([]float64{}))
	assert.Equal(t, 3.0, CalculateAverage([]float64{1, 2, 3, 4, 5}))
	assert.InDelta(t, 2.5, CalculateAverage([]float64{2, 3}), 1e-9)
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want uint64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
		{20, 2432902008176640000},
	}
	for _, tt := range tests {
		got, err := Factorial(tt.n)
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestFactorialErrors(t *testing.T) {
	_, err := Factorial(-1)
	assert.ErrorIs(t, err, ErrNegative)
	assert.EqualError(t, err, "factorial(-1): factorial is not defined for negative numbers")

	_, err = Factorial(21)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIsPrime(t *testing.T) {
	var primes []int
	for n := -3; n <= 50; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}, primes)
	assert.True(t, IsPrime(7919))
	assert.False(t, IsPrime(7917))
}

func TestClosuresAreIndependent(t *testing.T) {
	a, b := makeCounter(), makeCounter()
	a()
	a()
	assert.Equal(t, 3, a())
	assert.Equal(t, 1, b())
}

func TestNewProfile(t *testing.T) {
	assert.Equal(t, "name=Ana city=unknown", newProfile("Ana").String())
	assert.Equal(t, "name=Luis city=Madrid langs=go,sql",
		newProfile("Luis", withCity("Madrid"), withLangs("go"), withLangs("sql")).String())
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	Run(&buf)
	out := buf.String()

	assert.Contains(t, out, "Hello, Ana!")
	assert.Contains(t, out, "sumAll(1, 2, 3)     = 6")
	assert.Contains(t, out, "counter: 1 2 3")
	assert.Contains(t, out, "20! = 2432902008176640000")
	assert.Contains(t, out, "IsPrime(17) = true")
	assert.Contains(t, out, "CalculateAverage([1 2 3 4 5]) = 3")
}
