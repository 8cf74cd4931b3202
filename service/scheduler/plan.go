package scheduler

import (
	"context"
	"fmt"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"
)

// Config holds the round-robin quanta of CPU-2.
type Config struct {
	MediumQuantum int `json:"medium" yaml:"medium"`
	LowQuantum    int `json:"low" yaml:"low"`
}

// DefaultConfig returns quantum 8 for priority 2 and 16 for priority 3.
func DefaultConfig() Config {
	return Config{
		MediumQuantum: 8,
		LowQuantum:    16,
	}
}

// Validate reports non-positive quanta.
func (c Config) Validate() error {
	if c.MediumQuantum <= 0 || c.LowQuantum <= 0 {
		return fmt.Errorf("%w: medium=%d, low=%d", ErrInvalidQuantum, c.MediumQuantum, c.LowQuantum)
	}
	return nil
}

// Stage binds a priority queue to its scheduler.
type Stage struct {
	CPU       model.CPU
	Priority  int
	Scheduler Scheduler
}

// Name returns a label such as "CPU-2/p1/sjf".
func (s *Stage) Name() string {
	return fmt.Sprintf("%v/p%d/%s", s.CPU, s.Priority, s.Scheduler.Name())
}

// Plan is the fixed global dispatch order.
type Plan []*Stage

// DefaultPlan returns CPU-1 FCFS, then CPU-2 SJF, RR(medium) and RR(low).
func DefaultPlan(config Config, listeners ...StateListener) Plan {
	return Plan{
		{CPU: model.CPU1, Priority: model.PriorityCPU1, Scheduler: NewFCFS()},
		{CPU: model.CPU2, Priority: model.PriorityShortJob, Scheduler: NewSJF()},
		{CPU: model.CPU2, Priority: model.PriorityMedium, Scheduler: NewRoundRobin(config.MediumQuantum, listeners...)},
		{CPU: model.CPU2, Priority: model.PriorityLow, Scheduler: NewRoundRobin(config.LowQuantum, listeners...)},
	}
}

// Dispatch runs every stage over its queue in plan order; empty queues are
// skipped.
func (p Plan) Dispatch(ctx context.Context, queues *model.Queues, emitter event.Emitter) error {
	for _, stage := range p {
		queue := queues.Of(stage.Priority)
		if len(queue) == 0 {
			continue
		}
		if err := stage.run(ctx, queue, emitter); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}
	return nil
}

func (s *Stage) run(ctx context.Context, queue []*model.Process, emitter event.Emitter) (err error) {
	ctx, span := tracing.StartSpan(ctx, "dispatch "+s.Name(), "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"cpu": s.CPU.String(), "policy": s.Scheduler.Name()})
	span.WithInt("processes", len(queue))
	return s.Scheduler.Schedule(ctx, queue, emitter)
}
