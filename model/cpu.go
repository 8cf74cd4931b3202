package model

// CPU identifies one of the two simulated processors.
type CPU int

const (
	CPU1 CPU = iota + 1
	CPU2
)

// CPUOf routes a priority class to its CPU: 0 goes to CPU-1, anything else
// to CPU-2.
func CPUOf(priority int) CPU {
	if priority == PriorityCPU1 {
		return CPU1
	}
	return CPU2
}

func (c CPU) String() string {
	switch c {
	case CPU1:
		return "CPU-1"
	case CPU2:
		return "CPU-2"
	default:
		return "CPU-?"
	}
}

// Budget tracks RAM committed on a CPU. Committed RAM is never released
// during a run.
type Budget struct {
	CPU      CPU `json:"cpu" yaml:"cpu"`
	Capacity int `json:"capacity" yaml:"capacity"`
	Used     int `json:"used" yaml:"used"`
}

// NewBudget creates an empty budget for cpu.
func NewBudget(cpu CPU, capacity int) *Budget {
	return &Budget{CPU: cpu, Capacity: capacity}
}

// Fits reports whether ram can be committed without exceeding capacity.
// Comparing against the headroom keeps huge requests from overflowing.
func (b *Budget) Fits(ram int) bool {
	return ram >= 0 && ram <= b.Headroom()
}

// Commit adds ram to the used total when it fits and reports whether it did.
func (b *Budget) Commit(ram int) bool {
	if !b.Fits(ram) {
		return false
	}
	b.Used += ram
	return true
}

// Headroom returns the uncommitted capacity.
func (b *Budget) Headroom() int {
	return b.Capacity - b.Used
}
