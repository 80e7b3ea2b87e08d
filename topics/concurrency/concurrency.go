// Package concurrency covers goroutines, shared memory, child processes,
// context-driven task groups and the higher-level pool patterns built on
// them. Every goroutine and process a demo starts is finished before the
// demo returns.
//
// The child-process demos re-execute the host binary. A binary that wants
// them to run must call ServeChild first thing in main (test binaries in
// TestMain); otherwise Run prints that they were skipped and RunInProcess
// returns ErrChildUnsupported.
package concurrency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the concurrency topic to w.
func Run(w io.Writer) {
	display.Section(w, "Concurrency vs parallelism")
	demoIntro(w)

	display.Section(w, "Sequential baseline")
	demoSequential(w)

	display.Section(w, "Goroutines for I/O-bound work")
	demoGoroutines(w)

	display.Section(w, "Sharing data: mutex and atomic")
	demoShared(w)

	display.Section(w, "CPU-bound work across goroutines")
	demoCPUBound(w)

	display.Section(w, "Child processes")
	demoProcesses(w)

	display.Section(w, "Talking to a child over pipes")
	demoPipes(w)

	display.Section(w, "Async-style tasks with context and errgroup")
	demoTaskGroup(w)

	display.Section(w, "High-level pools")
	demoPools(w)

	display.Section(w, "Producer and consumer")
	demoProducerConsumer(w)

	display.Section(w, "Timeouts")
	demoTimeouts(w)

	display.Section(w, "Worker pool")
	demoWorkerPool(w)

	display.Section(w, "Exercise: parallel image processing")
	demoImages(w)
}

// demoIntro: concurrency is structuring a program as independent tasks;
// parallelism is running them at the same instant on several cores. The Go
// scheduler multiplexes goroutines onto GOMAXPROCS OS threads.
func demoIntro(w io.Writer) {
	fmt.Fprintln(w, "  concurrency: dealing with many things at once")
	fmt.Fprintln(w, "  parallelism: doing many things at once")
	fmt.Fprintf(w, "  this machine: NumCPU=%d GOMAXPROCS=%d\n", runtime.NumCPU(), runtime.GOMAXPROCS(0))
}

// ioTask stands in for a network or disk call.
func ioTask(ctx context.Context, id int, delay time.Duration) (int, error) {
	select {
	case <-time.After(delay):
		return id, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

const (
	ioTasks = 5
	ioDelay = 20 * time.Millisecond
)

func demoSequential(w io.Writer) {
	start := time.Now()
	var done []int
	for i := range ioTasks {
		id, _ := ioTask(context.Background(), i+1, ioDelay)
		done = append(done, id)
	}
	elapsed := time.Since(start)
	fmt.Fprintf(w, "  %d tasks of %v one after another: %v\n", ioTasks, ioDelay, done)
	fmt.Fprintf(w, "  took at least %v: %v\n", ioTasks*ioDelay, elapsed >= ioTasks*ioDelay)
}

func demoGoroutines(w io.Writer) {
	start := time.Now()
	results := make([]int, ioTasks)
	var wg sync.WaitGroup
	for i := range ioTasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = ioTask(context.Background(), i+1, ioDelay)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Fprintf(w, "  %d goroutines with sync.WaitGroup: %v\n", ioTasks, results)
	fmt.Fprintf(w, "  faster than sequential: %v\n", elapsed < ioTasks*ioDelay)

	wait := RunInGoroutine(func() (string, error) {
		id, err := ioTask(context.Background(), 42, time.Millisecond)
		return "task " + strconv.Itoa(id), err
	})
	v, err := wait()
	fmt.Fprintf(w, "  RunInGoroutine → %q, err=%v\n", v, err)
}

const (
	workers    = 50
	increments = 1_000
)

func demoShared(w io.Writer) {
	var (
		mu      sync.Mutex
		counter int
		wg      sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range increments {
				mu.Lock()
				counter++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	fmt.Fprintf(w, "  sync.Mutex:   expected %d got %d\n", workers*increments, counter)

	var hits atomic.Int64
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range increments {
				hits.Add(1)
			}
		}()
	}
	wg.Wait()
	fmt.Fprintf(w, "  atomic.Int64: expected %d got %d\n", workers*increments, hits.Load())
	fmt.Fprintln(w, "  without either, counter++ races and loses updates (go test -race)")
}

// demoCPUBound splits prime counting into chunks and runs them with an
// errgroup capped at GOMAXPROCS.
func demoCPUBound(w io.Writer) {
	const limit, chunks = 200_000, 8
	counts := make([]int, chunks)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	size := limit / chunks
	for i := range chunks {
		g.Go(func() error {
			counts[i] = countPrimes(i*size, (i+1)*size)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	fmt.Fprintf(w, "  primes below %d, in %d chunks: %d (sequential: %d)\n", limit, chunks, total, countPrimes(0, limit))
}

func demoProcesses(w io.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	inputs := []int{1_000, 10_000, 50_000}
	outs := make([]string, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, n := range inputs {
		g.Go(func() error {
			out, err := RunInProcess(ctx, "primes", strings.NewReader(strconv.Itoa(n)))
			if err != nil {
				return err
			}
			outs[i] = strings.TrimSpace(string(out))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrChildUnsupported) {
			fmt.Fprintln(w, "  skipped: this binary does not serve child tasks")
			return
		}
		fmt.Fprintln(w, "  child failed:", err)
		return
	}
	for i, n := range inputs {
		fmt.Fprintf(w, "  child process: primes below %d = %s\n", n, outs[i])
	}
	fmt.Fprintln(w, "  each child is a separate OS process with its own memory")
}
