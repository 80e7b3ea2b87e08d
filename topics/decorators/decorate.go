package decorators

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Debug wraps f so each call prints its argument and result to w.
func Debug[A, R any](w io.Writer, name string, f func(A) R) func(A) R {
	return func(a A) R {
		fmt.Fprintf(w, "  calling %s(%v)\n", name, a)
		r := f(a)
		fmt.Fprintf(w, "  %s returned %v\n", name, r)
		return r
	}
}

// Timer wraps f so each call reports its duration through report.
func Timer[A, R any](name string, report func(name string, d time.Duration), f func(A) R) func(A) R {
	return func(a A) R {
		start := time.Now()
		defer func() { report(name, time.Since(start)) }()
		return f(a)
	}
}

// Deprecated wraps f so the first call prints a deprecation warning to w.
func Deprecated[A, R any](w io.Writer, name, msg string, f func(A) R) func(A) R {
	var once sync.Once
	return func(a A) R {
		once.Do(func() {
			if msg == "" {
				msg = "it will be removed in a future release"
			}
			fmt.Fprintf(w, "  warning: %s is deprecated: %s\n", name, msg)
		})
		return f(a)
	}
}

// Memoize caches f's results by argument. The returned function is safe
// for concurrent use; f may run more than once for the same key when
// callers race.
func Memoize[K comparable, V any](f func(K) V) func(K) V {
	var (
		mu    sync.Mutex
		cache = make(map[K]V)
	)
	return func(k K) V {
		mu.Lock()
		v, ok := cache[k]
		mu.Unlock()
		if ok {
			return v
		}
		v = f(k)
		mu.Lock()
		cache[k] = v
		mu.Unlock()
		return v
	}
}
