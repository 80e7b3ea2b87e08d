package concurrency

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/marcodamonte/go-guide/workerpool"
)

// demoPipes streams numbers into a "square" child over its stdin pipe and
// reads the answers line by line from its stdout pipe.
func demoPipes(w io.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd, err := childCommand(ctx, "square")
	if errors.Is(err, ErrChildUnsupported) {
		fmt.Fprintln(w, "  skipped: this binary does not serve child tasks")
		return
	}
	if err != nil {
		fmt.Fprintln(w, "  child:", err)
		return
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		fmt.Fprintln(w, "  stdin pipe:", err)
		return
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		fmt.Fprintln(w, "  stdout pipe:", err)
		return
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintln(w, "  start:", err)
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		defer stdin.Close()
		for n := 1; n <= 5; n++ {
			if _, err := fmt.Fprintln(stdin, n); err != nil {
				return err
			}
		}
		return nil
	})

	var squares []string
	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		squares = append(squares, sc.Text())
	}
	writeErr := g.Wait()
	waitErr := cmd.Wait()
	if err := errors.Join(writeErr, sc.Err(), waitErr); err != nil {
		fmt.Fprintln(w, "  pipe:", err)
		return
	}
	fmt.Fprintln(w, "  parent wrote 1..5 to the child's stdin")
	fmt.Fprintln(w, "  child answered on stdout:", strings.Join(squares, " "))
}

// fetch simulates an HTTP call. Hosts starting with "bad" fail quickly.
func fetch(ctx context.Context, url string) (int, error) {
	if strings.HasPrefix(url, "bad") {
		select {
		case <-time.After(5 * time.Millisecond):
			return 0, fmt.Errorf("fetch %s: connection refused", url)
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	select {
	case <-time.After(30 * time.Millisecond):
		return len(url) * 100, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("fetch %s: %w", url, ctx.Err())
	}
}

// demoTaskGroup is Go's answer to gathering coroutines: errgroup runs the
// tasks, and the first failure cancels the shared context.
func demoTaskGroup(w io.Writer) {
	run := func(urls []string) ([]int, error) {
		g, ctx := errgroup.WithContext(context.Background())
		sizes := make([]int, len(urls))
		for i, u := range urls {
			g.Go(func() error {
				n, err := fetch(ctx, u)
				sizes[i] = n
				return err
			})
		}
		return sizes, g.Wait()
	}

	sizes, err := run([]string{"go.dev", "pkg.go.dev", "example.com"})
	fmt.Fprintf(w, "  all succeed: sizes=%v err=%v\n", sizes, err)

	sizes, err = run([]string{"go.dev", "bad.host", "example.com"})
	fmt.Fprintf(w, "  one fails:   sizes=%v err=%v\n", sizes, err)
	fmt.Fprintln(w, "  the slow fetches saw the cancelled context and stopped early")
}

func demoPools(w io.Writer) {
	// conc.WaitGroup turns a panic in any goroutine into a value for the caller.
	var wg conc.WaitGroup
	var ran atomic.Int32
	for i := range 3 {
		wg.Go(func() {
			ran.Add(1)
			if i == 1 {
				panic("worker 1 broke")
			}
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		fmt.Fprintf(w, "  conc.WaitGroup: %d ran, recovered %q\n", ran.Load(), r.Value)
	}

	// A result pool with bounded concurrency. Results arrive in completion
	// order, so sort them.
	p := pool.NewWithResults[int]().WithMaxGoroutines(3)
	for n := 1; n <= 6; n++ {
		p.Go(func() int { return n * n })
	}
	squares := p.Wait()
	slices.Sort(squares)
	fmt.Fprintln(w, "  conc pool with results:", squares)

	// A context pool cancels the remaining tasks after the first error.
	cp := pool.New().WithContext(context.Background()).WithCancelOnError().WithFirstError()
	for _, u := range []string{"go.dev", "bad.host", "example.com"} {
		cp.Go(func(ctx context.Context) error {
			_, err := fetch(ctx, u)
			return err
		})
	}
	err := cp.Wait()
	fmt.Fprintln(w, "  conc context pool:", err)

	doubled := ParallelMap([]int{1, 2, 3, 4, 5}, 2, func(n int) int { return n * 2 })
	fmt.Fprintln(w, "  ParallelMap (order kept):", doubled)

	// A weighted semaphore bounds how many goroutines are inside at once.
	sem := semaphore.NewWeighted(2)
	var inside, peak atomic.Int32
	var g errgroup.Group
	for range 6 {
		g.Go(func() error {
			if err := sem.Acquire(context.Background(), 1); err != nil {
				return err
			}
			defer sem.Release(1)
			cur := inside.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inside.Add(-1)
			return nil
		})
	}
	_ = g.Wait()
	fmt.Fprintf(w, "  semaphore.Weighted(2): peak concurrency %d\n", peak.Load())
}

func demoProducerConsumer(w io.Writer) {
	const items = 10
	queue := make(chan int, 3)

	go func() {
		defer close(queue)
		for i := 1; i <= items; i++ {
			queue <- i
		}
	}()

	var (
		mu       sync.Mutex
		consumed []int
		wg       sync.WaitGroup
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				mu.Lock()
				consumed = append(consumed, item*10)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	slices.Sort(consumed)
	fmt.Fprintf(w, "  1 producer, 2 consumers, buffer 3: consumed %v\n", consumed)

	// A pipeline: each stage owns and closes its output channel.
	gen := func(n int) <-chan int {
		out := make(chan int)
		go func() {
			defer close(out)
			for i := 1; i <= n; i++ {
				out <- i
			}
		}()
		return out
	}
	square := func(in <-chan int) <-chan int {
		out := make(chan int)
		go func() {
			defer close(out)
			for v := range in {
				out <- v * v
			}
		}()
		return out
	}
	sum := 0
	for v := range square(gen(5)) {
		sum += v
	}
	fmt.Fprintln(w, "  pipeline gen(5) → square → sum =", sum)
}

func demoTimeouts(w io.Writer) {
	result := make(chan string, 1)
	go func() {
		time.Sleep(50 * time.Millisecond)
		result <- "slow answer"
	}()
	select {
	case r := <-result:
		fmt.Fprintln(w, "  got:", r)
	case <-time.After(10 * time.Millisecond):
		fmt.Fprintln(w, "  select with time.After: timed out after 10ms")
	}
	fmt.Fprintln(w, "  late result still drained:", <-result)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := ioTask(ctx, 1, time.Second)
	fmt.Fprintln(w, "  context.WithTimeout:", err, "| DeadlineExceeded:", errors.Is(err, context.DeadlineExceeded))

	// A timeout with a cause: Err stays DeadlineExceeded, Cause says why.
	ctx, cancelCause := context.WithTimeoutCause(context.Background(), 5*time.Millisecond, errServiceDown)
	defer cancelCause()
	<-ctx.Done()
	fmt.Fprintf(w, "  WithTimeoutCause: err=%v cause=%v\n", ctx.Err(), context.Cause(ctx))

	// A ticker must be stopped, or its channel stays alive.
	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()
	ticks := 0
	for range ticker.C {
		ticks++
		if ticks == 3 {
			break
		}
	}
	fmt.Fprintln(w, "  ticker fired", ticks, "times, then Stop")
}

var errServiceDown = errors.New("downstream service unavailable")

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// drain submits inputs from a goroutine, closes the pool and collects every
// result, sorted by input.
func drain[In any, Out any](p *workerpool.Pool[In, Out], inputs []In, less func(a, b In) int) ([]workerpool.Result[In, Out], error) {
	var g errgroup.Group
	g.Go(func() error {
		defer p.Close()
		for _, in := range inputs {
			if err := p.Submit(context.Background(), in); err != nil {
				return err
			}
		}
		return nil
	})

	var results []workerpool.Result[In, Out]
	for r := range p.Results() {
		results = append(results, r)
	}
	err := g.Wait()
	slices.SortFunc(results, func(a, b workerpool.Result[In, Out]) int { return less(a.Input, b.Input) })
	return results, err
}

func demoWorkerPool(w io.Writer) {
	p := workerpool.New[int, string](workerpool.Config{Workers: 3, QueueSize: 4, Logger: quietLogger()},
		func(ctx context.Context, order int) (string, error) {
			if order%4 == 0 {
				return "", fmt.Errorf("order %d: payment declined", order)
			}
			time.Sleep(time.Millisecond)
			return fmt.Sprintf("order %d shipped", order), nil
		})

	results, err := drain(p, []int{1, 2, 3, 4, 5, 6, 7, 8}, func(a, b int) int { return a - b })
	if err != nil {
		fmt.Fprintln(w, "  submit:", err)
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(w, "  failed: ", r.Err)
			continue
		}
		fmt.Fprintln(w, "  ok:     ", r.Value)
	}
	s := p.Stats()
	fmt.Fprintf(w, "  stats: submitted=%d succeeded=%d failed=%d dropped=%d\n", s.Submitted, s.Succeeded, s.Failed, s.Dropped)
}

const imageDelay = 10 * time.Millisecond

// processImage simulates applying a filter to one image.
func processImage(ctx context.Context, id int) (string, error) {
	filters := []string{"grayscale", "blur", "sharpen", "sepia"}
	select {
	case <-time.After(imageDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return fmt.Sprintf("image_%02d.jpg + %s", id, filters[id%len(filters)]), nil
}

func demoImages(w io.Writer) {
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8}

	start := time.Now()
	var sequential []string
	for _, id := range ids {
		out, _ := processImage(context.Background(), id)
		sequential = append(sequential, out)
	}
	seqTime := time.Since(start)

	start = time.Now()
	p := workerpool.New[int, string](workerpool.Config{Workers: 4, QueueSize: len(ids), Logger: quietLogger()}, processImage)
	results, err := drain(p, ids, func(a, b int) int { return a - b })
	parTime := time.Since(start)
	if err != nil {
		fmt.Fprintln(w, "  submit:", err)
		return
	}

	parallel := make([]string, 0, len(results))
	for _, r := range results {
		parallel = append(parallel, r.Value)
	}
	for _, line := range parallel {
		fmt.Fprintln(w, "  processed", line)
	}
	fmt.Fprintln(w, "  same results as sequential:", slices.Equal(sequential, parallel))
	fmt.Fprintln(w, "  4 workers beat 1:", parTime < seqTime)
}
