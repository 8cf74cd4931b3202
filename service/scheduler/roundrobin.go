package scheduler

import (
	"context"
	"fmt"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
)

// State is the round-robin lifecycle of a process.
type State int

const (
	StateQueued State = iota
	StateRunning
	StateRequeued
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateRequeued:
		return "requeued"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// StateListener observes round-robin state transitions.
type StateListener func(p *model.Process, from, to State)

// RoundRobin grants each process at most Quantum units per turn and
// requeues it at the back until its burst is consumed.
type RoundRobin struct {
	Quantum   int
	listeners []StateListener
}

// NewRoundRobin creates a round-robin scheduler.
func NewRoundRobin(quantum int, listeners ...StateListener) *RoundRobin {
	return &RoundRobin{Quantum: quantum, listeners: listeners}
}

// Name returns the policy name including the quantum
func (s *RoundRobin) Name() string {
	return fmt.Sprintf("rr-%d", s.Quantum)
}

// slot is the scheduler-owned view of a process; remaining burst never
// touches the shared record.
type slot struct {
	process   *model.Process
	remaining int
	state     State
}

// Schedule cycles the working queue until every process completes. A
// process whose remaining burst equals the quantum completes directly.
func (s *RoundRobin) Schedule(ctx context.Context, queue []*model.Process, emitter event.Emitter) error {
	if s.Quantum <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantum, s.Quantum)
	}
	working := make([]*slot, 0, len(queue))
	for _, p := range queue {
		working = append(working, &slot{process: p, remaining: p.BurstTime, state: StateQueued})
	}
	for len(working) > 0 {
		current := working[0]
		working = working[1:]

		s.transition(current, StateRunning)
		if err := emitter.Emit(ctx, s.event(model.EventAssignedRR, current)); err != nil {
			return err
		}
		progress.UpdateCtx(ctx, progress.Delta{Dispatched: 1})

		if current.remaining > s.Quantum {
			current.remaining -= s.Quantum
			s.transition(current, StateRequeued)
			if err := emitter.Emit(ctx, s.event(model.EventRequeuedRR, current)); err != nil {
				return err
			}
			progress.UpdateCtx(ctx, progress.Delta{Requeued: 1})
			working = append(working, current)
			continue
		}
		current.remaining = 0
		s.transition(current, StateCompleted)
		if err := emitter.Emit(ctx, s.event(model.EventCompleted, current)); err != nil {
			return err
		}
		progress.UpdateCtx(ctx, progress.Delta{Completed: 1})
	}
	return nil
}

// Turns returns how many assignments a burst needs under this quantum.
func (s *RoundRobin) Turns(burst int) int {
	if s.Quantum <= 0 || burst <= 0 {
		return 0
	}
	return (burst + s.Quantum - 1) / s.Quantum
}

func (s *RoundRobin) event(kind model.EventKind, current *slot) *model.Event {
	ret := model.NewEvent(kind, current.process)
	ret.Quantum = s.Quantum
	ret.Remaining = current.remaining
	return ret
}

func (s *RoundRobin) transition(current *slot, to State) {
	from := current.state
	current.state = to
	for _, listener := range s.listeners {
		listener(current.process, from, to)
	}
}
