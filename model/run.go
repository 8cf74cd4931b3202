package model

import "time"

// Stats aggregates outcome counters of a run.
type Stats struct {
	Input      int `json:"input" yaml:"input"`
	Admitted   int `json:"admitted" yaml:"admitted"`
	Dropped    int `json:"dropped" yaml:"dropped"`
	Dispatched int `json:"dispatched" yaml:"dispatched"`
	Requeued   int `json:"requeued" yaml:"requeued"`
	Completed  int `json:"completed" yaml:"completed"`
}

// Run is the report of a single simulation.
type Run struct {
	ID        string        `json:"id" yaml:"id"`
	Source    string        `json:"source,omitempty" yaml:"source,omitempty"`
	StartedAt time.Time     `json:"startedAt" yaml:"startedAt"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Queues    *Queues       `json:"queues" yaml:"queues"`
	Budgets   []Budget      `json:"budgets" yaml:"budgets"`
	Events    []*Event      `json:"events" yaml:"events"`
	Digest    string        `json:"digest" yaml:"digest"`
	Stats     Stats         `json:"stats" yaml:"stats"`
}

// EventsOf returns events emitted for the named process, in order.
func (r *Run) EventsOf(name string) []*Event {
	var ret []*Event
	for _, e := range r.Events {
		if e.Process == name {
			ret = append(ret, e)
		}
	}
	return ret
}
