package scheduler

import (
	"context"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
)

// FCFS runs each process to completion in admission order.
type FCFS struct{}

// NewFCFS creates a first-come-first-served scheduler.
func NewFCFS() *FCFS {
	return &FCFS{}
}

// Name returns the policy name
func (s *FCFS) Name() string {
	return "fcfs"
}

// Schedule emits assigned then completed for every process in order.
func (s *FCFS) Schedule(ctx context.Context, queue []*model.Process, emitter event.Emitter) error {
	for _, p := range queue {
		if err := emit(ctx, emitter, model.EventAssignedCPU1, p); err != nil {
			return err
		}
		progress.UpdateCtx(ctx, progress.Delta{Dispatched: 1})
		if err := emit(ctx, emitter, model.EventCompleted, p); err != nil {
			return err
		}
		progress.UpdateCtx(ctx, progress.Delta{Completed: 1})
	}
	return nil
}
