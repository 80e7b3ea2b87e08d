package runner_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/go-guide/runner"
)

func noop(io.Writer) {}

func TestNewRegistry(t *testing.T) {
	t.Run("keeps construction order", func(t *testing.T) {
		reg, err := runner.NewRegistry(
			runner.Topic{ID: "c", Action: noop},
			runner.Topic{ID: "a", Action: noop},
			runner.Topic{ID: "b", Title: "Bee", Action: noop},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, reg.IDs())
		assert.Equal(t, 3, reg.Len())

		b, ok := reg.Lookup("b")
		require.True(t, ok)
		assert.Equal(t, "Bee", b.Title)

		c, ok := reg.Lookup("c")
		require.True(t, ok)
		assert.Equal(t, "c", c.Title, "title defaults to the id")
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		tests := []struct {
			name   string
			topics []runner.Topic
			want   error
		}{
			{"empty id", []runner.Topic{{ID: "", Action: noop}}, runner.ErrEmptyID},
			{"nil action", []runner.Topic{{ID: "x"}}, runner.ErrNilAction},
			{"duplicate", []runner.Topic{{ID: "x", Action: noop}, {ID: "x", Action: noop}}, runner.ErrDuplicateTopic},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := runner.NewRegistry(tt.topics...)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("MustRegistry panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { runner.MustRegistry(runner.Topic{ID: ""}) })
	})
}

func TestRegistry_LookupIsCaseSensitive(t *testing.T) {
	reg := runner.MustRegistry(runner.Topic{ID: "functions", Action: noop})

	_, ok := reg.Lookup("functions")
	assert.True(t, ok)
	_, ok = reg.Lookup("Functions")
	assert.False(t, ok)
}

func TestRegistry_AccessorsReturnCopies(t *testing.T) {
	reg := runner.MustRegistry(
		runner.Topic{ID: "a", Action: noop},
		runner.Topic{ID: "b", Action: noop},
	)

	ids := reg.IDs()
	ids[0] = "mutated"
	topics := reg.Topics()
	topics[1].ID = "mutated"

	assert.Equal(t, []string{"a", "b"}, reg.IDs())
	_, ok := reg.Lookup("b")
	assert.True(t, ok)
}
