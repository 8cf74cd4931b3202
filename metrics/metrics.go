// Package metrics exposes simulation outcomes as Prometheus collectors. A
// batch run exports them with WriteTextfile for the node exporter textfile
// collector.
package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/schedsim/model"
)

const namespace = "schedsim"

// Outcome label values.
const (
	OutcomeAdmitted = "admitted"
	OutcomeDropped  = "dropped"
)

// Metrics groups the simulator collectors.
type Metrics struct {
	registry    *prometheus.Registry
	processes   *prometheus.CounterVec
	events      *prometheus.CounterVec
	ramUsed     *prometheus.GaugeVec
	ramCapacity *prometheus.GaugeVec
	runs        prometheus.Counter
}

// New creates collectors and registers them on registry. A nil registry gets
// a fresh one.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	ret := &Metrics{
		registry: registry,
		processes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processes_total",
			Help:      "Processes considered by admission, by outcome.",
		}, []string{"outcome", "cpu"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Trace events emitted, by kind.",
		}, []string{"kind"}),
		ramUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ram_committed",
			Help:      "RAM committed on a CPU at the end of admission.",
		}, []string{"cpu"}),
		ramCapacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ram_capacity",
			Help:      "RAM budget of a CPU.",
		}, []string{"cpu"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed simulation runs.",
		}),
	}
	for _, collector := range []prometheus.Collector{ret.processes, ret.events, ret.ramUsed, ret.ramCapacity, ret.runs} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}
	for _, kind := range model.EventKinds() {
		ret.events.WithLabelValues(kind.String())
	}
	return ret, nil
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBudgets records committed and total RAM per CPU.
func (m *Metrics) ObserveBudgets(budgets ...model.Budget) {
	for _, budget := range budgets {
		m.ramUsed.WithLabelValues(budget.CPU.String()).Set(float64(budget.Used))
		m.ramCapacity.WithLabelValues(budget.CPU.String()).Set(float64(budget.Capacity))
	}
}

// RunCompleted counts a finished run.
func (m *Metrics) RunCompleted() {
	m.runs.Inc()
}

// WriteTextfile writes the registry in the Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Tally buffers the observations of one run. Nothing reaches the collectors
// until Commit, so a failed run leaves them untouched.
type Tally struct {
	metrics  *Metrics
	mu       sync.Mutex
	admitted map[model.CPU]int
	dropped  map[model.CPU]int
	events   map[model.EventKind]int
}

// NewTally starts buffering a run.
func (m *Metrics) NewTally() *Tally {
	return &Tally{
		metrics:  m,
		admitted: map[model.CPU]int{},
		dropped:  map[model.CPU]int{},
		events:   map[model.EventKind]int{},
	}
}

// Admitted buffers an admitted process.
func (t *Tally) Admitted(cpu model.CPU) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.admitted[cpu]++
}

// Dropped buffers a dropped process.
func (t *Tally) Dropped(cpu model.CPU) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dropped[cpu]++
}

// Handle buffers a delivered event; it has the event.Handler shape.
func (t *Tally) Handle(_ context.Context, e *model.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[e.Kind]++
	return nil
}

// Commit applies the buffered counts and the final budgets, and counts the
// run as completed.
func (t *Tally) Commit(budgets ...model.Budget) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := t.metrics
	for cpu, count := range t.admitted {
		m.processes.WithLabelValues(OutcomeAdmitted, cpu.String()).Add(float64(count))
	}
	for cpu, count := range t.dropped {
		m.processes.WithLabelValues(OutcomeDropped, cpu.String()).Add(float64(count))
	}
	for kind, count := range t.events {
		m.events.WithLabelValues(kind.String()).Add(float64(count))
	}
	m.ObserveBudgets(budgets...)
	m.RunCompleted()
}
