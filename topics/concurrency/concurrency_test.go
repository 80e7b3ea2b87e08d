package concurrency

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain lets the test binary act as its own child process.
func TestMain(m *testing.M) {
	ServeChild()
	goleak.VerifyTestMain(m)
}

func TestRunInGoroutine(t *testing.T) {
	wait := RunInGoroutine(func() (int, error) { return 42, nil })
	v, err := wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v, "wait can be called again")

	sentinel := errors.New("failed")
	_, err = RunInGoroutine(func() (int, error) { return 0, sentinel })()
	assert.ErrorIs(t, err, sentinel)

	_, err = RunInGoroutine(func() (int, error) { panic("boom") })()
	assert.ErrorContains(t, err, "goroutine panicked: boom")
}

func TestParallelMapKeepsOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	var inFlight, peak atomic.Int32
	got := ParallelMap(items, 4, func(n int) int {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(100 * time.Microsecond)
		inFlight.Add(-1)
		return n * n
	})

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
	assert.LessOrEqual(t, peak.Load(), int32(4))

	assert.Empty(t, ParallelMap([]int{}, 0, func(n int) int { return n }))
}

func TestRunInProcess(t *testing.T) {
	ctx := context.Background()

	out, err := RunInProcess(ctx, "square", strings.NewReader("2\n3\n\n4\n"))
	require.NoError(t, err)
	assert.Equal(t, "4\n9\n16\n", string(out))

	out, err = RunInProcess(ctx, "sum", strings.NewReader("1\n2\n3\n"))
	require.NoError(t, err)
	assert.Equal(t, "6\n", string(out))

	out, err = RunInProcess(ctx, "primes", strings.NewReader("100\n"))
	require.NoError(t, err)
	assert.Equal(t, "25\n", string(out))
}

func TestRunInProcessErrors(t *testing.T) {
	_, err := RunInProcess(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTask)

	_, err = RunInProcess(context.Background(), "sum", strings.NewReader("1\nx\n"))
	assert.ErrorContains(t, err, "parse input")
}

func TestRunInProcessWithoutServeChild(t *testing.T) {
	serving.Store(false)
	defer serving.Store(true)

	_, err := RunInProcess(context.Background(), "sum", strings.NewReader("1\n"))
	assert.ErrorIs(t, err, ErrChildUnsupported)

	var buf bytes.Buffer
	demoProcesses(&buf)
	demoPipes(&buf)
	assert.Equal(t, 2, strings.Count(buf.String(), "skipped"))
}

func TestChildTasks(t *testing.T) {
	assert.Equal(t, []string{"primes", "square", "sum"}, ChildTasks())
}

func TestCountPrimes(t *testing.T) {
	assert.Equal(t, 0, countPrimes(0, 2))
	assert.Equal(t, 4, countPrimes(0, 10))
	assert.Equal(t, 25, countPrimes(0, 100))
	assert.Equal(t, countPrimes(0, 1000), countPrimes(0, 500)+countPrimes(500, 1000))
}

func TestFetch(t *testing.T) {
	n, err := fetch(context.Background(), "go.dev")
	require.NoError(t, err)
	assert.Equal(t, 600, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fetch(ctx, "go.dev")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	Run(&buf)
	out := buf.String()

	for _, want := range []string{
		"sync.Mutex:   expected 50000 got 50000",
		"atomic.Int64: expected 50000 got 50000",
		"primes below 200000, in 8 chunks: 17984 (sequential: 17984)",
		"child process: primes below 1000 = 168",
		"child answered on stdout: 1 4 9 16 25",
		"one fails:   sizes=[0 0 0] err=fetch bad.host: connection refused",
		`recovered "worker 1 broke"`,
		"conc pool with results: [1 4 9 16 25 36]",
		"conc context pool: fetch bad.host: connection refused",
		"ParallelMap (order kept): [2 4 6 8 10]",
		"consumed [10 20 30 40 50 60 70 80 90 100]",
		"sum = 55",
		"DeadlineExceeded: true",
		"WithTimeoutCause: err=context deadline exceeded cause=downstream service unavailable",
		"ticker fired 3 times, then Stop",
		"failed:  order 4: payment declined",
		"stats: submitted=8 succeeded=6 failed=2 dropped=0",
		"processed image_01.jpg + blur",
		"same results as sequential: true",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "skipped")
}
