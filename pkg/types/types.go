package types

import "time"

// Positions of the aggregate CPU counters, in /proc/stat order.
const (
	TickUser = iota
	TickNice
	TickSystem
	TickIdle
	TickIOWait
	TickIRQ
	TickSoftIRQ
	TickSteal
	TickGuest
	TickGuestNice

	NumTickFields
)

// CPUTicks holds the cumulative aggregate CPU counters since boot.
// Fields an older kernel does not report stay zero.
type CPUTicks [NumTickFields]uint64

// MemoryStats mirrors the four /proc/meminfo totals we care about, in KB.
type MemoryStats struct {
	MemTotalKB  uint64 `yaml:"mem_total_kb"`
	MemFreeKB   uint64 `yaml:"mem_free_kb"`
	SwapTotalKB uint64 `yaml:"swap_total_kb"`
	SwapFreeKB  uint64 `yaml:"swap_free_kb"`
}

// MemUsedKB saturates at zero when the kernel reports free > total.
func (m MemoryStats) MemUsedKB() uint64 {
	if m.MemFreeKB > m.MemTotalKB {
		return 0
	}
	return m.MemTotalKB - m.MemFreeKB
}

// SwapUsedKB saturates at zero when the kernel reports free > total.
func (m MemoryStats) SwapUsedKB() uint64 {
	if m.SwapFreeKB > m.SwapTotalKB {
		return 0
	}
	return m.SwapTotalKB - m.SwapFreeKB
}

// ProcessRecord is the per-PID view kept in the process table.
type ProcessRecord struct {
	PID        int    `yaml:"pid"`
	Command    string `yaml:"command"`
	State      string `yaml:"state"`
	VirtualKB  uint64 `yaml:"virtual_kb"`
	ResidentKB uint64 `yaml:"resident_kb"`
}

// ProcessTable maps a PID to its record. Values are pointers so that an
// update overwrites the record a consumer may already hold.
type ProcessTable map[int]*ProcessRecord

// Snapshot is one tick's rendering input. It is never mutated after assembly.
type Snapshot struct {
	Taken       time.Time             `yaml:"taken"`
	CPUPercent  float64               `yaml:"cpu_percent"`
	CPUValid    bool                  `yaml:"cpu_valid"`
	Memory      MemoryStats           `yaml:"memory"`
	MemoryValid bool                  `yaml:"memory_valid"`
	Processes   map[int]ProcessRecord `yaml:"processes"`
}

// Source samples one kind of host state.
type Source[T any] interface {
	Sample() (T, error)
}
