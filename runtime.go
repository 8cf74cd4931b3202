package schedsim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/metrics"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/admission"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/loader"
	"github.com/viant/schedsim/service/scheduler"
	"github.com/viant/schedsim/service/trace"
	"github.com/viant/schedsim/tracing"
)

// Runtime runs simulations: admission followed by dispatch of the admitted
// queues, with every trace event delivered to the configured sinks.
type Runtime struct {
	config     *Config
	fs         afs.Service
	logger     *slog.Logger
	loader     *loader.Service
	runDAO     dao.Service[string, model.Run]
	metrics    *metrics.Metrics
	sinks      []trace.Sink
	onProgress func(progress.Progress)
}

// Load reads a process list from URL.
func (r *Runtime) Load(ctx context.Context, URL string) ([]*model.Process, error) {
	return r.loader.Load(ctx, URL)
}

// Run loads URL and simulates it.
func (r *Runtime) Run(ctx context.Context, URL string) (*model.Run, error) {
	processes, err := r.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	return r.simulate(ctx, URL, processes)
}

// Simulate admits and dispatches processes in input order. Each call starts
// from empty RAM budgets. A run that fails records nothing: no trace file,
// no report, no metrics.
func (r *Runtime) Simulate(ctx context.Context, processes []*model.Process) (*model.Run, error) {
	return r.simulate(ctx, "", processes)
}

// Report returns a stored run.
func (r *Runtime) Report(ctx context.Context, id string) (*model.Run, error) {
	return r.runDAO.Load(ctx, id)
}

// Runs lists stored runs.
func (r *Runtime) Runs(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Run, error) {
	return r.runDAO.List(ctx, parameters...)
}

// Metrics returns the run collectors.
func (r *Runtime) Metrics() *metrics.Metrics {
	return r.metrics
}

func (r *Runtime) simulate(ctx context.Context, source string, processes []*model.Process) (ret *model.Run, err error) {
	ctx, span := tracing.StartSpan(ctx, "runtime.Simulate", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	run := &model.Run{ID: idgen.NewRunID(), Source: source, StartedAt: clock.Now()}
	span.WithAttributes(map[string]string{"run.id": run.ID, "run.source": source})
	ctx, tracker := progress.WithNewTracker(ctx, run.ID, source, r.onProgress)
	log := r.logger.With("run", run.ID)

	recorder := event.NewRecorder()
	tally := r.metrics.NewTally()
	handlers := []event.Handler{recorder.Handle, tally.Handle}
	var file *trace.FileSink
	if URL := r.config.Trace.URL; URL != "" {
		if file, err = trace.NewFileSink(r.fs, URL, r.config.Trace.Format); err != nil {
			return nil, err
		}
		handlers = append(handlers, file.Handle)
	}
	for _, sink := range r.sinks {
		handlers = append(handlers, sink.Handle)
	}

	events := event.New(r.config.Events, handlers...)
	events.Start(ctx)
	controller := admission.New(r.config.Memory, admission.WithLogger(log), admission.WithObserver(tally))
	queues, err := controller.Admit(ctx, processes, events)
	if err == nil {
		err = scheduler.DefaultPlan(r.config.Quantum).Dispatch(ctx, queues, events)
	}
	if cErr := events.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		log.Error("run failed", logger.ErrAttr(err), "undelivered", events.Undelivered())
		return nil, err
	}
	if file != nil {
		if err = file.Close(ctx); err != nil {
			return nil, err
		}
	}

	run.Queues = queues
	run.Budgets = controller.Budgets()
	run.Events = recorder.Events()
	run.Digest = trace.Digest(run.Events)
	snapshot := tracker.Snapshot()
	run.Stats = model.Stats{
		Input:      snapshot.TotalProcesses,
		Admitted:   snapshot.Admitted,
		Dropped:    snapshot.Dropped,
		Dispatched: snapshot.Dispatched,
		Requeued:   snapshot.Requeued,
		Completed:  snapshot.Completed,
	}
	run.Duration = clock.Since(run.StartedAt)

	if err = r.runDAO.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	tally.Commit(run.Budgets...)
	if textfile := r.config.Metrics.Textfile; textfile != "" {
		if err = r.metrics.WriteTextfile(textfile); err != nil {
			return nil, fmt.Errorf("failed to write metrics to %s: %w", textfile, err)
		}
	}
	span.WithInt("events", len(run.Events))
	log.Info("run completed",
		"input", run.Stats.Input,
		"admitted", run.Stats.Admitted,
		"dropped", run.Stats.Dropped,
		"events", len(run.Events),
		"digest", run.Digest)
	return run, nil
}
