package runner_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/go-guide/runner"
)

// recorder builds topics whose actions append their id to calls.
type recorder struct {
	calls []string
}

func (r *recorder) topic(id string) runner.Topic {
	return runner.Topic{
		ID:    id,
		Title: "Topic " + id,
		Action: func(w io.Writer) {
			r.calls = append(r.calls, id)
			fmt.Fprintf(w, "output of %s\n", id)
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRunner(t *testing.T, rec *recorder, ids []string, opts ...runner.Option) (*runner.Runner, *bytes.Buffer) {
	t.Helper()
	topics := make([]runner.Topic, len(ids))
	for i, id := range ids {
		topics[i] = rec.topic(id)
	}
	reg, err := runner.NewRegistry(topics...)
	require.NoError(t, err)

	var out bytes.Buffer
	opts = append([]runner.Option{runner.WithOutput(&out), runner.WithLogger(quietLogger())}, opts...)
	return runner.New(reg, opts...), &out
}

var ids = []string{"zeta", "alpha", "mid"}

func TestRunTopic(t *testing.T) {
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			rec := &recorder{}
			r, out := newRunner(t, rec, ids)

			require.NoError(t, r.RunTopic(context.Background(), id))
			assert.Equal(t, []string{id}, rec.calls, "only the requested topic runs")
			assert.Contains(t, out.String(), "output of "+id)
		})
	}
}

func TestRunTopic_Unknown(t *testing.T) {
	for _, id := range []string{"nonexistent_topic", "", "ALPHA", "alpha "} {
		t.Run(fmt.Sprintf("%q", id), func(t *testing.T) {
			rec := &recorder{}
			r, out := newRunner(t, rec, ids)

			err := r.RunTopic(context.Background(), id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, runner.ErrUnknownTopic))

			var unknown *runner.UnknownTopicError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, id, unknown.ID)
			assert.Equal(t, ids, unknown.Valid)
			assert.Contains(t, err.Error(), "zeta, alpha, mid")

			assert.Empty(t, rec.calls, "no action runs for an unknown topic")
			assert.Empty(t, out.String())
		})
	}
}

func TestRunAll_Order(t *testing.T) {
	rec := &recorder{}
	r, _ := newRunner(t, rec, ids)

	require.NoError(t, r.RunAll(context.Background()))
	assert.Equal(t, ids, rec.calls, "registry order, not alphabetical")

	// Stable across repeated invocations, and nothing carries over.
	rec.calls = nil
	require.NoError(t, r.RunAll(context.Background()))
	assert.Equal(t, ids, rec.calls)
}

func TestRun_EmptySectionRunsAll(t *testing.T) {
	rec := &recorder{}
	r, _ := newRunner(t, rec, ids)

	require.NoError(t, r.Run(context.Background(), ""))
	assert.Equal(t, ids, rec.calls)

	rec.calls = nil
	require.NoError(t, r.Run(context.Background(), "mid"))
	assert.Equal(t, []string{"mid"}, rec.calls)
}

func TestHeaders(t *testing.T) {
	t.Run("on", func(t *testing.T) {
		r, out := newRunner(t, &recorder{}, ids, runner.WithTitle("GUIDE"))
		require.NoError(t, r.RunAll(context.Background()))
		assert.Contains(t, out.String(), "GUIDE")
		assert.Contains(t, out.String(), "=== TOPIC ALPHA ===")
		assert.Contains(t, out.String(), "END OF THE GUIDE")
	})

	t.Run("off", func(t *testing.T) {
		r, out := newRunner(t, &recorder{}, ids, runner.WithHeaders(false))
		require.NoError(t, r.RunTopic(context.Background(), "alpha"))
		assert.Equal(t, "output of alpha\n", out.String())
	})
}

func panicking(id string, v any) runner.Topic {
	return runner.Topic{ID: id, Action: func(io.Writer) { panic(v) }}
}

func TestRunAll_FailFast(t *testing.T) {
	rec := &recorder{}
	reg := runner.MustRegistry(rec.topic("a"), panicking("boom", "kaput"), rec.topic("c"))
	r := runner.New(reg, runner.WithOutput(io.Discard), runner.WithLogger(quietLogger()))

	err := r.RunAll(context.Background())
	require.Error(t, err)

	var pe *runner.TopicPanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.ID)
	assert.Equal(t, "kaput", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Equal(t, []string{"a"}, rec.calls, "topics after the failure do not run")
}

func TestRunAll_ContinueOnFailure(t *testing.T) {
	rec := &recorder{}
	cause := errors.New("cause")
	reg := runner.MustRegistry(
		panicking("first", "one"),
		rec.topic("b"),
		panicking("second", cause),
		rec.topic("d"),
	)
	r := runner.New(reg,
		runner.WithOutput(io.Discard),
		runner.WithLogger(quietLogger()),
		runner.WithPolicy(runner.ContinueOnFailure),
	)

	err := r.RunAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"b", "d"}, rec.calls)
	assert.Contains(t, err.Error(), `topic "first" panicked`)
	assert.Contains(t, err.Error(), `topic "second" panicked`)
	assert.ErrorIs(t, err, cause, "an error panic value stays reachable")
}

func TestRunAll_CancelledBetweenTopics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls []string
	reg := runner.MustRegistry(
		runner.Topic{ID: "a", Action: func(io.Writer) { calls = append(calls, "a"); cancel() }},
		runner.Topic{ID: "b", Action: func(io.Writer) { calls = append(calls, "b") }},
	)
	r := runner.New(reg, runner.WithOutput(io.Discard), runner.WithLogger(quietLogger()))

	err := r.RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), `before "b"`)
	assert.Equal(t, []string{"a"}, calls, "the running topic completes; the next one never starts")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := runner.NewMetrics(reg)
	require.NoError(t, err)

	rec := &recorder{}
	r, _ := newRunner(t, rec, ids, runner.WithMetrics(m))

	require.NoError(t, r.RunAll(context.Background()))
	require.NoError(t, r.RunTopic(context.Background(), "alpha"))
	require.Error(t, r.RunTopic(context.Background(), "missing"))

	n, err := testutil.GatherAndCount(reg, "goguide_topic_runs_total")
	require.NoError(t, err)
	assert.Equal(t, len(ids), n, "one series per topic/outcome pair")

	_, err = runner.NewMetrics(reg)
	assert.Error(t, err, "collectors cannot be registered twice")
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "fail-fast", runner.FailFast.String())
	assert.Equal(t, "continue", runner.ContinueOnFailure.String())
	assert.Equal(t, "Policy(7)", runner.Policy(7).String())
}
