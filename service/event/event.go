// Package event carries trace events from the admission controller and the
// schedulers to trace sinks. Events flow through an ordered in-memory queue
// drained by a single listener, so sinks observe them in emission order.
package event

import (
	"context"

	"github.com/viant/schedsim/model"
)

// Emitter accepts trace events.
type Emitter interface {
	Emit(ctx context.Context, e *model.Event) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, e *model.Event) error

// Emit calls f.
func (f EmitterFunc) Emit(ctx context.Context, e *model.Event) error {
	return f(ctx, e)
}

// Handler consumes a delivered event.
type Handler func(ctx context.Context, e *model.Event) error

// Discard is an emitter that drops every event.
var Discard Emitter = EmitterFunc(func(context.Context, *model.Event) error { return nil })
