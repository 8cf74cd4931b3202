// Package progress provides a lightweight tracker that keeps aggregated
// counters (processes admitted, dropped, dispatched, completed, ...) for a
// single simulation run. The tracker lives in the context, so admission and
// schedulers update it via UpdateCtx without a global registry.
package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change.
type Delta struct {
	Total      int
	Admitted   int
	Dropped    int
	Dispatched int
	Requeued   int
	Completed  int
}

// Progress keeps aggregated counters of a run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	Source    string
	StartedAt time.Time

	TotalProcesses int
	Admitted       int
	Dropped        int
	Dispatched     int
	Requeued       int
	Completed      int

	sync.Mutex
	onChange func(Progress)
}

// Update applies d. The onChange callback, if any, receives a copy of the
// updated tracker outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.TotalProcesses += d.Total
	p.Admitted += d.Admitted
	p.Dropped += d.Dropped
	p.Dispatched += d.Dispatched
	p.Requeued += d.Requeued
	p.Completed += d.Completed
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// Pending returns admitted processes that have not completed yet.
func (p *Progress) Pending() int {
	if p == nil {
		return 0
	}
	p.Lock()
	defer p.Unlock()
	return p.Admitted - p.Completed
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:          p.RunID,
		Source:         p.Source,
		StartedAt:      p.StartedAt,
		TotalProcesses: p.TotalProcesses,
		Admitted:       p.Admitted,
		Dropped:        p.Dropped,
		Dispatched:     p.Dispatched,
		Requeued:       p.Requeued,
		Completed:      p.Completed,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID, source string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Source:    source,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
