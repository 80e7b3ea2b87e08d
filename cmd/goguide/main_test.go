package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "one topic", args: []string{"-s", "functions"}, wantCode: 0, wantOut: "=== FUNCTIONS ==="},
		{name: "unknown topic", args: []string{"-s", "nonexistent_topic"}, wantCode: 1, wantErr: `Error: unknown topic "nonexistent_topic"`},
		{name: "empty topic", args: []string{"-s", ""}, wantCode: 1, wantErr: `Error: unknown topic ""`},
		{name: "bad flag value", args: []string{"--log-format", "xml"}, wantCode: 1, wantErr: "Error: invalid configuration"},
		{name: "all topics", args: []string{}, wantCode: 0, wantOut: "END OF THE GUIDE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "all topics" && testing.Short() {
				t.Skip("runs every topic")
			}
			var stdout, stderr bytes.Buffer
			code := execute(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			if tt.wantOut != "" {
				assert.Contains(t, stdout.String(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), tt.wantErr)
				assert.Empty(t, stdout.String())
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(&stderr, func() error { return nil }))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 1, exitCode(&stderr, func() error { return errors.New("boom") }))
	assert.Equal(t, "Error: boom\n", stderr.String())

	stderr.Reset()
	assert.Equal(t, 2, exitCode(&stderr, func() error { panic("main broke") }))
	assert.Contains(t, stderr.String(), "PANIC: main broke")
}
