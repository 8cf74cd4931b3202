// Package admission decides which queue each process joins. A process is
// routed by priority to CPU-1 or CPU-2 and admitted only if the CPU's RAM
// budget has room; otherwise it is dropped without a trace event.
package admission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"
)

// Observer is notified of every admission decision.
type Observer interface {
	Admitted(cpu model.CPU)
	Dropped(cpu model.CPU)
}

// Controller owns the two CPU budgets for one run.
type Controller struct {
	cpu1     *model.Budget
	cpu2     *model.Budget
	logger   *slog.Logger
	observer Observer
}

// Option configures a Controller.
type Option func(c *Controller)

// WithLogger sets the logger used for drop diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithObserver sets an admission observer, such as metrics.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// New creates a controller with empty budgets sized by config.
func New(config Config, options ...Option) *Controller {
	ret := &Controller{
		cpu1:   model.NewBudget(model.CPU1, config.CPU1Reserved),
		cpu2:   model.NewBudget(model.CPU2, config.CPU2Capacity()),
		logger: logger.Discard(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Budgets returns copies of the CPU-1 and CPU-2 budgets.
func (c *Controller) Budgets() []model.Budget {
	return []model.Budget{*c.cpu1, *c.cpu2}
}

// Budget returns the live budget of cpu.
func (c *Controller) Budget(cpu model.CPU) *model.Budget {
	if cpu == model.CPU1 {
		return c.cpu1
	}
	return c.cpu2
}

// Admit partitions processes in input order. Every record is validated
// before any budget is touched; an invalid one aborts the pass with no
// events emitted. Emitter failures abort the pass as well.
func (c *Controller) Admit(ctx context.Context, processes []*model.Process, emitter event.Emitter) (queues *model.Queues, err error) {
	ctx, span := tracing.StartSpan(ctx, "admission.Admit", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithInt("processes", len(processes))

	for i, p := range processes {
		if p == nil {
			return nil, fmt.Errorf("record %d: %w: nil process", i, model.ErrInvalidProcess)
		}
		if err = p.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	progress.UpdateCtx(ctx, progress.Delta{Total: len(processes)})

	queues = model.NewQueues()
	for _, p := range processes {
		cpu := p.CPU()
		budget := c.Budget(cpu)
		if !budget.Commit(p.RAM) {
			c.logger.Debug("process dropped",
				slog.String("process", p.Name),
				slog.String("cpu", cpu.String()),
				slog.Int("ram", p.RAM),
				slog.Int("headroom", budget.Headroom()))
			progress.UpdateCtx(ctx, progress.Delta{Dropped: 1})
			if c.observer != nil {
				c.observer.Dropped(cpu)
			}
			continue
		}
		queues.Append(p)
		kind := model.EventQueuedCPU2
		if cpu == model.CPU1 {
			kind = model.EventQueuedCPU1
		}
		if err = emitter.Emit(ctx, model.NewEvent(kind, p)); err != nil {
			return nil, fmt.Errorf("failed to emit %v for %s: %w", kind, p.Name, err)
		}
		progress.UpdateCtx(ctx, progress.Delta{Admitted: 1})
		if c.observer != nil {
			c.observer.Admitted(cpu)
		}
	}
	span.WithInt("admitted", queues.Len())
	return queues, nil
}
