package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTopic matches every *UnknownTopicError through errors.Is.
var ErrUnknownTopic = errors.New("unknown topic")

// UnknownTopicError reports a requested identifier that is not in the
// registry. Valid lists the registered identifiers in registry order.
type UnknownTopicError struct {
	ID    string
	Valid []string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic %q (valid topics: %s)", e.ID, strings.Join(e.Valid, ", "))
}

// Is lets errors.Is(err, ErrUnknownTopic) match regardless of the id.
func (e *UnknownTopicError) Is(target error) bool {
	return target == ErrUnknownTopic
}

// TopicPanicError is returned when a topic's action panics. The runner
// recovers the panic so the failure can be reported instead of crashing the
// process.
type TopicPanicError struct {
	ID    string
	Value any
	Stack []byte
}

func (e *TopicPanicError) Error() string {
	return fmt.Sprintf("topic %q panicked: %v", e.ID, e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *TopicPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
