package functions

import (
	"errors"
	"fmt"
)

// Errors returned by Factorial.
var (
	ErrNegative = errors.New("factorial is not defined for negative numbers")
	ErrOverflow = errors.New("factorial overflows uint64")
)

// maxFactorial is the largest n whose factorial fits in a uint64.
const maxFactorial = 20

// CalculateAverage returns the arithmetic mean of nums, or 0 when nums is
// empty.
func CalculateAverage(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums))
}

// Factorial returns n!. It fails with ErrNegative for n < 0 and with
// ErrOverflow for n > 20.
func Factorial(n int) (uint64, error) {
	switch {
	case n < 0:
		return 0, fmt.Errorf("factorial(%d): %w", n, ErrNegative)
	case n > maxFactorial:
		return 0, fmt.Errorf("factorial(%d): %w", n, ErrOverflow)
	case n <= 1:
		return 1, nil
	}
	f, err := Factorial(n - 1)
	if err != nil {
		return 0, err
	}
	return uint64(n) * f, nil
}

// IsPrime reports whether n is prime, testing divisors of the form 6k±1.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
