package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/go-guide/runner"
	"github.com/marcodamonte/go-guide/topics/concurrency"
)

func TestMain(m *testing.M) {
	concurrency.ServeChild()
	os.Exit(m.Run())
}

type result struct {
	stdout, stderr string
	fs             afero.Fs
	err            error
}

func execCmd(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	fs := afero.NewMemMapFs()
	cmd := newRootCmd(&stdout, &stderr, fs)
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), fs: fs, err: err}
}

func TestSection(t *testing.T) {
	res := execCmd(t, "--section", "functions")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "=== FUNCTIONS ===")
	assert.Contains(t, res.stdout, "IsPrime(17) = true")
	assert.NotContains(t, res.stdout, "=== BASIC TYPES ===")

	res = execCmd(t, "-s", "flow_control", "--no-headers")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "===")
	assert.Contains(t, res.stdout, "━━━")
}

func TestUnknownSection(t *testing.T) {
	res := execCmd(t, "-s", "nonexistent_topic")
	require.ErrorIs(t, res.err, runner.ErrUnknownTopic)
	assert.Empty(t, res.stdout)
	for _, id := range []string{"introduction", "flow_control", "concurrency"} {
		assert.Contains(t, res.err.Error(), id)
	}
}

func TestEmptySectionIsUnknown(t *testing.T) {
	res := execCmd(t, "--section", "")
	var unknown *runner.UnknownTopicError
	require.ErrorAs(t, res.err, &unknown)
	assert.Empty(t, unknown.ID)
	assert.Len(t, unknown.Valid, 9)
	assert.Empty(t, res.stdout, "no topic may run")

	t.Setenv("GOGUIDE_SECTION", "")
	res = execCmd(t)
	require.ErrorIs(t, res.err, runner.ErrUnknownTopic)
	assert.Empty(t, res.stdout)
}

func TestListAndTopics(t *testing.T) {
	listed := execCmd(t, "--list")
	require.NoError(t, listed.err)

	lines := strings.Split(strings.TrimSpace(listed.stdout), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], "introduction "))
	assert.True(t, strings.HasPrefix(lines[9], "concurrency "))

	sub := execCmd(t, "topics")
	require.NoError(t, sub.err)
	assert.Equal(t, listed.stdout, sub.stdout)
}

func TestVersion(t *testing.T) {
	res := execCmd(t, "version")
	require.NoError(t, res.err)
	assert.Equal(t, "goguide v"+version+"\n", res.stdout)
}

func TestMetricsFile(t *testing.T) {
	res := execCmd(t, "-s", "functions", "--metrics-file", "/out/metrics.prom")
	require.NoError(t, res.err)

	data, err := afero.ReadFile(res.fs, "/out/metrics.prom")
	require.NoError(t, err)
	assert.Contains(t, string(data), `goguide_topic_runs_total{outcome="ok",topic="functions"} 1`)
	assert.Contains(t, string(data), "goguide_topic_duration_seconds_count{topic=\"functions\"} 1")
}

func TestMetricsFileOnUnknownTopic(t *testing.T) {
	res := execCmd(t, "-s", "nope", "--metrics-file", "/metrics.prom")
	require.ErrorIs(t, res.err, runner.ErrUnknownTopic)

	data, err := afero.ReadFile(res.fs, "/metrics.prom")
	require.NoError(t, err)
	assert.Contains(t, string(data), "goguide_unknown_topic_total 1")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goguide.yaml")
	require.NoError(t, os.WriteFile(path, []byte("section: functions\nheaders: false\n"), 0o600))

	res := execCmd(t, "--config", path)
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "===")
	assert.Contains(t, res.stdout, "IsPrime(17) = true")

	// Flags win over the file.
	res = execCmd(t, "--config", path, "-s", "flow_control")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "IsPrime(17)")
}

func TestLogging(t *testing.T) {
	res := execCmd(t, "-s", "functions", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"msg":"topic finished"`)
	assert.Contains(t, res.stderr, `"topic":"functions"`)
	assert.Contains(t, res.stderr, `"run_id":`)
	assert.NotContains(t, res.stdout, "topic finished")
}

func TestInvalidFlags(t *testing.T) {
	res := execCmd(t, "--log-level", "loud")
	assert.ErrorContains(t, res.err, "invalid configuration")

	res = execCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, res.err, "load config")

	res = execCmd(t, "extra-arg")
	assert.Error(t, res.err)
}
