package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPriority is returned for a process whose priority is outside
	// the routed range 0..3.
	ErrInvalidPriority = errors.New("model: invalid priority")

	// ErrInvalidProcess is returned for a process with a negative arrival
	// time, a non-positive burst time or a non-positive RAM requirement.
	ErrInvalidProcess = errors.New("model: invalid process")
)

// Priority classes routed by admission.
const (
	PriorityCPU1     = 0 // CPU-1, first-come-first-served
	PriorityShortJob = 1 // CPU-2, shortest-job-first
	PriorityMedium   = 2 // CPU-2, round-robin with the medium quantum
	PriorityLow      = 3 // CPU-2, round-robin with the low quantum
)

// Process is an immutable input record.
type Process struct {
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int    `json:"arrivalTime" yaml:"arrivalTime"`
	Priority    int    `json:"priority" yaml:"priority"`
	BurstTime   int    `json:"burstTime" yaml:"burstTime"`
	RAM         int    `json:"ram" yaml:"ram"`
	CPURate     int    `json:"cpuRate" yaml:"cpuRate"`
}

// Validate checks the record against the routed priority range and the
// positivity constraints of its numeric fields.
func (p *Process) Validate() error {
	if p.Priority < PriorityCPU1 || p.Priority > PriorityLow {
		return fmt.Errorf("%w: process %q has priority %d", ErrInvalidPriority, p.Name, p.Priority)
	}
	switch {
	case p.ArrivalTime < 0:
		return fmt.Errorf("%w: process %q has negative arrival time %d", ErrInvalidProcess, p.Name, p.ArrivalTime)
	case p.BurstTime <= 0:
		return fmt.Errorf("%w: process %q has non-positive burst time %d", ErrInvalidProcess, p.Name, p.BurstTime)
	case p.RAM <= 0:
		return fmt.Errorf("%w: process %q has non-positive ram %d", ErrInvalidProcess, p.Name, p.RAM)
	}
	return nil
}

// CPU returns the CPU the process is routed to. The result is meaningful
// only for a valid priority.
func (p *Process) CPU() CPU {
	return CPUOf(p.Priority)
}

func (p *Process) String() string {
	return fmt.Sprintf("%s(arrival=%d, priority=%d, burst=%d, ram=%d, rate=%d)",
		p.Name, p.ArrivalTime, p.Priority, p.BurstTime, p.RAM, p.CPURate)
}
