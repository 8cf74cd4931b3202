package admission

import "fmt"

// Config defines the RAM budgets. CPU-2 receives whatever CPU-1 does not
// reserve.
type Config struct {
	TotalRAM     int `json:"total" yaml:"total"`
	CPU1Reserved int `json:"cpu1Reserved" yaml:"cpu1Reserved"`
}

// DefaultConfig returns the 2048-unit machine with 512 units reserved for
// CPU-1.
func DefaultConfig() Config {
	return Config{
		TotalRAM:     2048,
		CPU1Reserved: 512,
	}
}

// CPU2Capacity returns the RAM left for CPU-2.
func (c Config) CPU2Capacity() int {
	return c.TotalRAM - c.CPU1Reserved
}

// Validate reports inconsistent budgets.
func (c Config) Validate() error {
	if c.TotalRAM <= 0 {
		return fmt.Errorf("memory.total must be > 0")
	}
	if c.CPU1Reserved <= 0 || c.CPU1Reserved >= c.TotalRAM {
		return fmt.Errorf("memory.cpu1Reserved must be in (0, %d)", c.TotalRAM)
	}
	return nil
}
