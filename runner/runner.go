// Package runner dispatches a requested topic identifier to its
// demonstration action, or runs every registered topic in registry order.
//
// The runner is synchronous: one topic at a time, each running to
// completion before the next begins. The only error a well-behaved run
// returns is *UnknownTopicError; a panicking action is reported as
// *TopicPanicError according to the configured Policy.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Policy decides what RunAll does after a topic fails.
type Policy int

const (
	// FailFast stops at the first failing topic and returns its error.
	FailFast Policy = iota
	// ContinueOnFailure logs the failure, runs the remaining topics and
	// returns every failure joined with errors.Join.
	ContinueOnFailure
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case ContinueOnFailure:
		return "continue"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Runner invokes topics from a Registry.
type Runner struct {
	registry *Registry
	out      io.Writer
	logger   *slog.Logger
	policy   Policy
	headers  bool
	title    string
	metrics  *Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the writer handed to every action. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithPolicy sets the failure policy for RunAll. Defaults to FailFast.
func WithPolicy(p Policy) Option {
	return func(r *Runner) { r.policy = p }
}

// WithHeaders toggles the per-topic header and the run-all banner.
// Defaults to true.
func WithHeaders(on bool) Option {
	return func(r *Runner) { r.headers = on }
}

// WithTitle sets the banner text printed around a run-all.
func WithTitle(title string) Option {
	return func(r *Runner) { r.title = title }
}

// WithMetrics records per-topic counters and durations into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New returns a Runner over reg.
func New(reg *Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: reg,
		out:      os.Stdout,
		logger:   slog.Default(),
		policy:   FailFast,
		headers:  true,
		title:    "GO: A PRACTICAL GUIDE",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run runs the topic named by section, or every topic when section is
// empty.
func (r *Runner) Run(ctx context.Context, section string) error {
	if section == "" {
		return r.RunAll(ctx)
	}
	return r.RunTopic(ctx, section)
}

// RunTopic invokes only the action registered under id. It returns
// *UnknownTopicError, and invokes nothing, when id is not registered.
func (r *Runner) RunTopic(ctx context.Context, id string) error {
	t, ok := r.registry.Lookup(id)
	if !ok {
		r.metrics.unknown()
		err := &UnknownTopicError{ID: id, Valid: r.registry.IDs()}
		r.logger.Warn("unknown topic requested", "topic", id)
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run %q: %w", id, err)
	}
	return r.invoke(t)
}

// RunAll invokes every registered action in registry order. Cancellation of
// ctx is only observed between topics.
func (r *Runner) RunAll(ctx context.Context) error {
	r.logger.Debug("running all topics", "count", r.registry.Len(), "policy", r.policy.String())
	if r.headers {
		display.Banner(r.out, r.title)
	}

	var errs []error
	for _, t := range r.registry.topics {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("run stopped before %q: %w", t.ID, err))
			return errors.Join(errs...)
		}
		if err := r.invoke(t); err != nil {
			if r.policy == FailFast {
				return err
			}
			r.logger.Error("topic failed; continuing", "topic", t.ID, "error", err)
			errs = append(errs, err)
		}
	}

	if r.headers {
		display.Banner(r.out, "END OF THE GUIDE")
	}
	return errors.Join(errs...)
}

func (r *Runner) invoke(t Topic) (err error) {
	log := r.logger.With("topic", t.ID)
	log.Debug("topic started")
	if r.headers {
		display.Header(r.out, t.Title)
	}

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if v := recover(); v != nil {
			err = &TopicPanicError{ID: t.ID, Value: v, Stack: debug.Stack()}
			log.Error("topic panicked", "error", err, "duration", elapsed)
			r.metrics.observe(t.ID, outcomePanic, elapsed)
			return
		}
		log.Info("topic finished", "duration", elapsed)
		r.metrics.observe(t.ID, outcomeOK, elapsed)
	}()

	t.Action(r.out)
	return nil
}
