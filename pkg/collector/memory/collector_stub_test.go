//go:build !linux

package memory

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
)

func TestHostSourceSample(t *testing.T) {
	t.Cleanup(func() {
		virtualMemory = mem.VirtualMemory
		swapMemory = mem.SwapMemory
	})

	virtualMemory = func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 8 << 30, Free: 2 << 30}, nil
	}
	swapMemory = func() (*mem.SwapMemoryStat, error) {
		return &mem.SwapMemoryStat{Total: 1 << 30, Free: 1 << 29}, nil
	}

	src, err := NewSource("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats, err := src.Sample()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.MemTotalKB != 8<<20 || stats.MemFreeKB != 2<<20 || stats.SwapTotalKB != 1<<20 || stats.SwapFreeKB != 1<<19 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHostSourceSwapError(t *testing.T) {
	t.Cleanup(func() {
		virtualMemory = mem.VirtualMemory
		swapMemory = mem.SwapMemory
	})

	boom := errors.New("boom")
	virtualMemory = func() (*mem.VirtualMemoryStat, error) { return &mem.VirtualMemoryStat{}, nil }
	swapMemory = func() (*mem.SwapMemoryStat, error) { return nil, boom }

	src, _ := NewSource("")
	if _, err := src.Sample(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
