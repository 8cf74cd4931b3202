// Package scheduler implements the per-queue dispatch policies: FCFS for
// CPU-1, SJF for CPU-2 priority 1 and round-robin for CPU-2 priorities 2 and
// 3. Every scheduler is non-preemptive across queues and reports dispatches
// as trace events.
package scheduler

import (
	"context"
	"errors"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/event"
)

// ErrInvalidQuantum is returned by a round-robin scheduler with a
// non-positive quantum.
var ErrInvalidQuantum = errors.New("scheduler: quantum must be > 0")

// Scheduler dispatches one admitted queue.
type Scheduler interface {
	// Name returns the policy name used in spans and logs
	Name() string

	// Schedule dispatches queue to completion, emitting trace events
	Schedule(ctx context.Context, queue []*model.Process, emitter event.Emitter) error
}

func emit(ctx context.Context, emitter event.Emitter, kind model.EventKind, p *model.Process) error {
	return emitter.Emit(ctx, model.NewEvent(kind, p))
}
