package guide

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/go-guide/runner"
	"github.com/marcodamonte/go-guide/topics/advancedtypes"
	"github.com/marcodamonte/go-guide/topics/concurrency"
)

func TestMain(m *testing.M) {
	concurrency.ServeChild()
	m.Run()
}

func newRunner(out io.Writer, opts ...runner.Option) *runner.Runner {
	base := []runner.Option{
		runner.WithOutput(out),
		runner.WithLogger(slog.New(slog.DiscardHandler)),
	}
	return runner.New(Registry(), append(base, opts...)...)
}

func TestIDsOrder(t *testing.T) {
	assert.Equal(t, []string{
		"introduction",
		"basic_types",
		"flow_control",
		"functions",
		"advanced_types",
		"exception_handling",
		"object_oriented",
		"decorators",
		"concurrency",
	}, IDs())
}

func TestRegistryIsShared(t *testing.T) {
	assert.Same(t, Registry(), Registry())
	assert.Equal(t, 9, Registry().Len())
}

func TestRunFunctionsOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRunner(&buf).Run(context.Background(), Functions))

	out := buf.String()
	assert.Contains(t, out, "=== FUNCTIONS ===")
	assert.Contains(t, out, "IsPrime(17) = true")
	assert.NotContains(t, out, "=== ADVANCED TYPES ===")
	assert.NotContains(t, out, "GO: A PRACTICAL GUIDE")
}

func TestRunUnknownTopic(t *testing.T) {
	var buf bytes.Buffer
	err := newRunner(&buf).Run(context.Background(), "nonexistent_topic")

	var unknown *runner.UnknownTopicError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nonexistent_topic", unknown.ID)
	assert.Equal(t, IDs(), unknown.Valid)
	assert.Len(t, unknown.Valid, 9)
	assert.Empty(t, buf.String(), "no topic may run")
}

func TestLibraryCallMatchesRunner(t *testing.T) {
	var direct, viaRunner bytes.Buffer
	advancedtypes.Run(&direct)
	require.NoError(t, newRunner(&viaRunner, runner.WithHeaders(false)).Run(context.Background(), AdvancedTypes))

	assert.Equal(t, direct.String(), viaRunner.String())
}

func TestRunAll(t *testing.T) {
	if testing.Short() {
		t.Skip("runs every topic")
	}
	var buf bytes.Buffer
	require.NoError(t, newRunner(&buf).Run(context.Background(), ""))

	out := buf.String()
	last := -1
	for _, topic := range Registry().Topics() {
		header := "=== " + strings.ToUpper(topic.Title) + " ==="
		idx := strings.Index(out, header)
		require.GreaterOrEqual(t, idx, 0, "missing %s", header)
		assert.Greater(t, idx, last, "%s out of order", topic.ID)
		last = idx
	}
	assert.Contains(t, out, "END OF THE GUIDE")
}
