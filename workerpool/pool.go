// Package workerpool provides a fixed-size, generic worker pool: inputs go
// in through Submit, results come out of Results, and Close drains the
// queue before returning.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Handler processes one input. It receives the pool's context so it can
// respect forced cancellation during Close.
type Handler[In, Out any] func(ctx context.Context, in In) (Out, error)

// Result pairs an input with what the handler produced for it.
type Result[In, Out any] struct {
	Worker int
	Input  In
	Value  Out
	Err    error
}

// Config holds pool construction parameters.
type Config struct {
	// Workers is the number of goroutines consuming inputs. Defaults to 1.
	Workers int

	// QueueSize is the capacity of the input channel; 0 means Submit blocks
	// until a worker is free.
	QueueSize int

	// ShutdownTimeout bounds how long Close waits for in-flight work before
	// cancelling it. Defaults to 30s.
	ShutdownTimeout time.Duration

	// Logger receives lifecycle records. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Stats is a snapshot of the pool counters.
type Stats struct {
	Submitted int64
	Succeeded int64
	Failed    int64
	Dropped   int64
}

// Sentinel errors returned by the pool.
var (
	ErrPoolClosed      = errors.New("worker pool is closed")
	ErrShutdownTimeout = errors.New("shutdown timeout elapsed; workers were cancelled")
)

// Pool runs a Handler over submitted inputs on a fixed set of goroutines.
//
// Results is buffered to QueueSize+Workers. Callers that submit more than
// that without reading Results must read concurrently, or the workers stall.
type Pool[In, Out any] struct {
	cfg     Config
	handler Handler[In, Out]

	inputs  chan In
	results chan Result[In, Out]
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex // guards closed against concurrent Submit/Close
	closed bool
	once   sync.Once
	err    error

	submitted, succeeded, failed, dropped atomic.Int64
}

// New starts cfg.Workers goroutines running h. Call Close to stop them.
func New[In, Out any](cfg Config, h Handler[In, Out]) *Pool[In, Out] {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool[In, Out]{
		cfg:     cfg,
		handler: h,
		inputs:  make(chan In, cfg.QueueSize),
		results: make(chan Result[In, Out], cfg.QueueSize+cfg.Workers),
		ctx:     ctx,
		cancel:  cancel,
	}

	cfg.Logger.Debug("pool starting", "workers", cfg.Workers, "queue", cfg.QueueSize)
	for i := range cfg.Workers {
		p.wg.Add(1)
		go p.work(i + 1)
	}
	return p
}

// Submit enqueues in, blocking while the queue is full. It returns
// ErrPoolClosed after Close, or the caller's ctx error if ctx ends first.
func (p *Pool[In, Out]) Submit(ctx context.Context, in In) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.dropped.Add(1)
		return ErrPoolClosed
	}

	select {
	case p.inputs <- in:
		p.submitted.Add(1)
		return nil
	case <-ctx.Done():
		p.dropped.Add(1)
		return fmt.Errorf("submit cancelled: %w", ctx.Err())
	}
}

// Results delivers one Result per processed input. It is closed once Close
// has drained every worker.
func (p *Pool[In, Out]) Results() <-chan Result[In, Out] {
	return p.results
}

// Close stops accepting inputs, lets workers drain the queue and waits up
// to ShutdownTimeout; after that it cancels the handlers' context and waits
// for them to return. Close is idempotent and returns ErrShutdownTimeout if
// cancellation was needed.
func (p *Pool[In, Out]) Close() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inputs)
		p.mu.Unlock()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			p.cfg.Logger.Debug("pool drained")
		case <-time.After(p.cfg.ShutdownTimeout):
			p.cfg.Logger.Warn("pool shutdown timeout; cancelling workers", "timeout", p.cfg.ShutdownTimeout)
			p.cancel()
			<-done
			p.err = ErrShutdownTimeout
		}
		p.cancel()
		close(p.results)
	})
	return p.err
}

// Stats returns the current counters. Fields are read independently.
func (p *Pool[In, Out]) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Dropped:   p.dropped.Load(),
	}
}

func (p *Pool[In, Out]) work(id int) {
	defer p.wg.Done()
	log := p.cfg.Logger.With("worker", id)

	for in := range p.inputs {
		var (
			out Out
			err error
		)
		if err = p.ctx.Err(); err == nil {
			out, err = p.handler(p.ctx, in)
		}
		if err != nil {
			p.failed.Add(1)
			log.Debug("input failed", "error", err)
		} else {
			p.succeeded.Add(1)
		}
		p.results <- Result[In, Out]{Worker: id, Input: in, Value: out, Err: err}
	}
}
