package concurrency

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/iter"
)

// RunInGoroutine starts fn on a new goroutine and returns a function that
// waits for its result. A panic in fn is returned as an error from wait.
func RunInGoroutine[T any](fn func() (T, error)) (wait func() (T, error)) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		var res result
		defer func() {
			if r := recover(); r != nil {
				res.err = fmt.Errorf("goroutine panicked: %v", r)
			}
			done <- res
		}()
		res.v, res.err = fn()
	}()

	var (
		res    result
		waited bool
	)
	return func() (T, error) {
		if !waited {
			res = <-done
			waited = true
		}
		return res.v, res.err
	}
}

// ParallelMap applies f to every item using at most workers goroutines
// (GOMAXPROCS when workers <= 0) and returns the results in input order.
func ParallelMap[T, R any](items []T, workers int, f func(T) R) []R {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	m := iter.Mapper[T, R]{MaxGoroutines: workers}
	return m.Map(items, func(t *T) R { return f(*t) })
}
