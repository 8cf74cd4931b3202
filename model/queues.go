package model

// Queues holds the admitted processes partitioned by priority. Each slice
// keeps admission order.
type Queues struct {
	CPU1     []*Process `json:"cpu1" yaml:"cpu1"`
	ShortJob []*Process `json:"shortJob" yaml:"shortJob"`
	Medium   []*Process `json:"medium" yaml:"medium"`
	Low      []*Process `json:"low" yaml:"low"`
}

// NewQueues returns empty queues.
func NewQueues() *Queues {
	return &Queues{}
}

// Append adds p to the queue matching its priority. It returns false for a
// priority outside 0..3, leaving the queues untouched.
func (q *Queues) Append(p *Process) bool {
	switch p.Priority {
	case PriorityCPU1:
		q.CPU1 = append(q.CPU1, p)
	case PriorityShortJob:
		q.ShortJob = append(q.ShortJob, p)
	case PriorityMedium:
		q.Medium = append(q.Medium, p)
	case PriorityLow:
		q.Low = append(q.Low, p)
	default:
		return false
	}
	return true
}

// Of returns the queue for priority, nil when the priority is not routed.
func (q *Queues) Of(priority int) []*Process {
	switch priority {
	case PriorityCPU1:
		return q.CPU1
	case PriorityShortJob:
		return q.ShortJob
	case PriorityMedium:
		return q.Medium
	case PriorityLow:
		return q.Low
	}
	return nil
}

// Len returns the total number of queued processes.
func (q *Queues) Len() int {
	return len(q.CPU1) + len(q.ShortJob) + len(q.Medium) + len(q.Low)
}

// Names returns process names of the priority queue in order.
func (q *Queues) Names(priority int) []string {
	queue := q.Of(priority)
	ret := make([]string, 0, len(queue))
	for _, p := range queue {
		ret = append(ret, p.Name)
	}
	return ret
}
