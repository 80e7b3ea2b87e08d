// Package guide wires the topic packages into the fixed, ordered registry
// the goguide command runs.
package guide

import (
	"sync"

	"github.com/marcodamonte/go-guide/runner"
	"github.com/marcodamonte/go-guide/topics/advancedtypes"
	"github.com/marcodamonte/go-guide/topics/basictypes"
	"github.com/marcodamonte/go-guide/topics/concurrency"
	"github.com/marcodamonte/go-guide/topics/decorators"
	"github.com/marcodamonte/go-guide/topics/errorhandling"
	"github.com/marcodamonte/go-guide/topics/flowcontrol"
	"github.com/marcodamonte/go-guide/topics/functions"
	"github.com/marcodamonte/go-guide/topics/introduction"
	"github.com/marcodamonte/go-guide/topics/objects"
)

// Topic identifiers, in run order.
const (
	Introduction      = "introduction"
	BasicTypes        = "basic_types"
	FlowControl       = "flow_control"
	Functions         = "functions"
	AdvancedTypes     = "advanced_types"
	ExceptionHandling = "exception_handling"
	ObjectOriented    = "object_oriented"
	Decorators        = "decorators"
	Concurrency       = "concurrency"
)

func topics() []runner.Topic {
	return []runner.Topic{
		{ID: Introduction, Title: "Introduction to Go", Action: introduction.Run},
		{ID: BasicTypes, Title: "Basic types", Action: basictypes.Run},
		{ID: FlowControl, Title: "Flow control", Action: flowcontrol.Run},
		{ID: Functions, Title: "Functions", Action: functions.Run},
		{ID: AdvancedTypes, Title: "Advanced types", Action: advancedtypes.Run},
		{ID: ExceptionHandling, Title: "Error handling", Action: errorhandling.Run},
		{ID: ObjectOriented, Title: "Object-oriented programming", Action: objects.Run},
		{ID: Decorators, Title: "Decorators", Action: decorators.Run},
		{ID: Concurrency, Title: "Concurrency", Action: concurrency.Run},
	}
}

// Registry returns the process-wide topic registry. It is built on first
// use and never modified afterwards.
var Registry = sync.OnceValue(func() *runner.Registry {
	return runner.MustRegistry(topics()...)
})

// IDs returns the topic identifiers in run order.
func IDs() []string {
	return Registry().IDs()
}
