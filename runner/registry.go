package runner

import (
	"errors"
	"fmt"
	"io"
)

// Action is a topic's demonstration body. It writes human-readable output
// to w and returns nothing; a topic that cannot continue panics.
type Action func(w io.Writer)

// Topic pairs an identifier with the action it selects.
type Topic struct {
	ID     string // short unique token, e.g. "basic_types"
	Title  string // display name used in headers and listings
	Action Action
}

// Sentinel errors returned by NewRegistry.
var (
	ErrEmptyID        = errors.New("topic id is empty")
	ErrNilAction      = errors.New("topic action is nil")
	ErrDuplicateTopic = errors.New("topic already registered")
)

// Registry is an ordered, read-only table of topics. The order given to
// NewRegistry is the order RunAll follows.
type Registry struct {
	topics []Topic
	index  map[string]int
}

// NewRegistry builds a Registry from topics, in the order given.
func NewRegistry(topics ...Topic) (*Registry, error) {
	r := &Registry{
		topics: make([]Topic, 0, len(topics)),
		index:  make(map[string]int, len(topics)),
	}
	for i, t := range topics {
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("topic #%d: %w", i, ErrEmptyID)
		case t.Action == nil:
			return nil, fmt.Errorf("topic %q: %w", t.ID, ErrNilAction)
		}
		if _, exists := r.index[t.ID]; exists {
			return nil, fmt.Errorf("topic %q: %w", t.ID, ErrDuplicateTopic)
		}
		if t.Title == "" {
			t.Title = t.ID
		}
		r.index[t.ID] = len(r.topics)
		r.topics = append(r.topics, t)
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level tables that are known to be
// valid. It panics on error.
func MustRegistry(topics ...Topic) *Registry {
	r, err := NewRegistry(topics...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the topic registered under id. Matching is exact and
// case-sensitive.
func (r *Registry) Lookup(id string) (Topic, bool) {
	i, ok := r.index[id]
	if !ok {
		return Topic{}, false
	}
	return r.topics[i], true
}

// Topics returns a copy of the registered topics in registry order.
func (r *Registry) Topics() []Topic {
	out := make([]Topic, len(r.topics))
	copy(out, r.topics)
	return out
}

// IDs returns the registered identifiers in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.topics))
	for i, t := range r.topics {
		ids[i] = t.ID
	}
	return ids
}

// Len reports how many topics are registered.
func (r *Registry) Len() int { return len(r.topics) }
