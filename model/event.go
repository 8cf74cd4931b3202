package model

import "time"

// EventKind classifies a trace event.
type EventKind int

const (
	EventQueuedCPU1 EventKind = iota + 1
	EventQueuedCPU2
	EventAssignedCPU1
	EventAssignedSJF
	EventAssignedRR
	EventRequeuedRR
	EventCompleted
)

var eventKindNames = map[EventKind]string{
	EventQueuedCPU1:   "queued-cpu1",
	EventQueuedCPU2:   "queued-cpu2",
	EventAssignedCPU1: "assigned-cpu1",
	EventAssignedSJF:  "assigned-sjf",
	EventAssignedRR:   "assigned-rr",
	EventRequeuedRR:   "requeued-rr",
	EventCompleted:    "completed",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// EventKinds lists every kind in trace-class order.
func EventKinds() []EventKind {
	return []EventKind{EventQueuedCPU1, EventQueuedCPU2, EventAssignedCPU1, EventAssignedSJF, EventAssignedRR, EventRequeuedRR, EventCompleted}
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; unknown names decode to zero.
func (k *EventKind) UnmarshalText(text []byte) error {
	*k = 0
	for kind, name := range eventKindNames {
		if name == string(text) {
			*k = kind
			break
		}
	}
	return nil
}

// Event is a single trace entry. Quantum and Remaining are set for
// round-robin events only; Remaining holds the burst left before the slice
// for assigned events and after the slice for requeued ones.
type Event struct {
	Seq       int       `json:"seq" yaml:"seq"`
	Kind      EventKind `json:"kind" yaml:"kind"`
	Process   string    `json:"process" yaml:"process"`
	CPU       CPU       `json:"cpu" yaml:"cpu"`
	Priority  int       `json:"priority" yaml:"priority"`
	Quantum   int       `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Remaining int       `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewEvent creates an event for process p.
func NewEvent(kind EventKind, p *Process) *Event {
	return &Event{
		Kind:     kind,
		Process:  p.Name,
		CPU:      p.CPU(),
		Priority: p.Priority,
	}
}
