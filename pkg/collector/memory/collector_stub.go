//go:build !linux
// +build !linux

package memory

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/srodi/spamtop/pkg/types"
)

// virtualMemory and swapMemory allow tests to stub the gopsutil calls.
var (
	virtualMemory = mem.VirtualMemory
	swapMemory    = mem.SwapMemory
)

// HostSource reads memory totals through gopsutil on platforms without procfs.
type HostSource struct{}

// NewSource ignores procRoot; there is no procfs to point at.
func NewSource(procRoot string) (*HostSource, error) {
	return &HostSource{}, nil
}

// Sample returns memory and swap totals in KB.
func (s *HostSource) Sample() (types.MemoryStats, error) {
	vm, err := virtualMemory()
	if err != nil {
		return types.MemoryStats{}, fmt.Errorf("reading virtual memory: %w", err)
	}
	sw, err := swapMemory()
	if err != nil {
		return types.MemoryStats{}, fmt.Errorf("reading swap: %w", err)
	}
	return types.MemoryStats{
		MemTotalKB:  bytesToKB(vm.Total),
		MemFreeKB:   bytesToKB(vm.Free),
		SwapTotalKB: bytesToKB(sw.Total),
		SwapFreeKB:  bytesToKB(sw.Free),
	}, nil
}

func bytesToKB(b uint64) uint64 {
	return b / 1024
}
