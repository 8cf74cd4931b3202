// Package trace renders simulation events as text or JSON lines and writes
// them to sinks. It also fingerprints and diffs rendered traces.
package trace

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/schedsim/model"
)

// Format names.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Format renders e as a human-readable trace line without a trailing newline.
func Format(e *model.Event) string {
	switch e.Kind {
	case model.EventQueuedCPU1, model.EventQueuedCPU2:
		return fmt.Sprintf("Process %s is queued to be assigned to %v.", e.Process, e.CPU)
	case model.EventAssignedCPU1:
		return fmt.Sprintf("Process %s is assigned to %v.", e.Process, e.CPU)
	case model.EventAssignedSJF:
		return fmt.Sprintf("Process %s is assigned to %v (Priority %d, SJF).", e.Process, e.CPU, e.Priority)
	case model.EventAssignedRR:
		return fmt.Sprintf("Process %s is assigned to %v (Priority %d, RR, quantum %d).", e.Process, e.CPU, e.Priority, e.Quantum)
	case model.EventRequeuedRR:
		return fmt.Sprintf("Process %s exceeded its quantum of %d and is requeued (remaining %d).", e.Process, e.Quantum, e.Remaining)
	case model.EventCompleted:
		return fmt.Sprintf("Process %s is completed and terminated.", e.Process)
	}
	return fmt.Sprintf("Process %s: %v.", e.Process, e.Kind)
}

// Lines renders events in order.
func Lines(events []*model.Event) []string {
	ret := make([]string, 0, len(events))
	for _, e := range events {
		ret = append(ret, Format(e))
	}
	return ret
}

// Text renders events as newline-terminated lines.
func Text(events []*model.Event) string {
	if len(events) == 0 {
		return ""
	}
	return strings.Join(Lines(events), "\n") + "\n"
}

// Encoder renders a single event in the configured format.
type Encoder func(e *model.Event) ([]byte, error)

// NewEncoder returns the encoder for format.
func NewEncoder(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return func(e *model.Event) ([]byte, error) {
			return []byte(Format(e) + "\n"), nil
		}, nil
	case FormatJSON:
		return func(e *model.Event) ([]byte, error) {
			data, err := json.Marshal(e)
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		}, nil
	}
	return nil, fmt.Errorf("unsupported trace format: %s", format)
}
