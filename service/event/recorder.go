package event

import (
	"context"
	"sync"

	"github.com/viant/schedsim/model"
)

// Recorder keeps a copy of every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []*model.Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit records a copy of e.
func (r *Recorder) Emit(_ context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

// Handle makes the recorder usable as a listener Handler.
func (r *Recorder) Handle(ctx context.Context, e *model.Event) error {
	return r.Emit(ctx, e)
}

// Events returns the recorded events in order.
func (r *Recorder) Events() []*model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.Event(nil), r.events...)
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []model.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := make([]model.EventKind, 0, len(r.events))
	for _, e := range r.events {
		ret = append(ret, e.Kind)
	}
	return ret
}

// Names returns the process names of recorded events in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := make([]string, 0, len(r.events))
	for _, e := range r.events {
		ret = append(ret, e.Process)
	}
	return ret
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
