// Package summary prints the admitted queue contents after admission.
package summary

import (
	"bufio"
	"fmt"
	"io"

	"github.com/viant/schedsim/model"
)

type section struct {
	title    string
	priority int
}

var sections = []section{
	{"CPU-1 queue (priority 0, FCFS)", model.PriorityCPU1},
	{"CPU-2 queue (priority 1, SJF)", model.PriorityShortJob},
	{"CPU-2 queue (priority 2, RR)", model.PriorityMedium},
	{"CPU-2 queue (priority 3, RR)", model.PriorityLow},
}

// Write lists every queue in admission order.
func Write(w io.Writer, queues *model.Queues) error {
	if queues == nil {
		queues = model.NewQueues()
	}
	out := bufio.NewWriter(w)
	for _, s := range sections {
		fmt.Fprintf(out, "%s:\n", s.title)
		queue := queues.Of(s.priority)
		if len(queue) == 0 {
			fmt.Fprintln(out, "  (empty)")
			continue
		}
		for _, p := range queue {
			fmt.Fprintf(out, "  %s burst=%d ram=%d\n", p.Name, p.BurstTime, p.RAM)
		}
	}
	return out.Flush()
}
