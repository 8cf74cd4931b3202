package scheduler

import (
	"context"
	"sort"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
)

// SJF runs processes to completion by ascending burst time.
type SJF struct{}

// NewSJF creates a shortest-job-first scheduler.
func NewSJF() *SJF {
	return &SJF{}
}

// Name returns the policy name
func (s *SJF) Name() string {
	return "sjf"
}

// Order returns a copy of queue sorted by ascending burst time. Equal burst
// times keep admission order.
func (s *SJF) Order(queue []*model.Process) []*model.Process {
	ordered := append([]*model.Process(nil), queue...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BurstTime < ordered[j].BurstTime
	})
	return ordered
}

// Schedule emits assigned then completed for every process in SJF order.
func (s *SJF) Schedule(ctx context.Context, queue []*model.Process, emitter event.Emitter) error {
	for _, p := range s.Order(queue) {
		if err := emit(ctx, emitter, model.EventAssignedSJF, p); err != nil {
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
