//go:build !linux

package cpu

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/srodi/spamtop/pkg/types"
)

func TestHostSourceConvertsSeconds(t *testing.T) {
	t.Cleanup(func() { cpuTimes = cpu.Times })

	cpuTimes = func(percpu bool) ([]cpu.TimesStat, error) {
		if percpu {
			t.Fatalf("expected aggregate times")
		}
		return []cpu.TimesStat{{CPU: "cpu-total", User: 1.5, System: 0.5, Idle: 8}}, nil
	}

	src, err := NewSource("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := src.Sample()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[types.TickUser] != 150 || got[types.TickSystem] != 50 || got[types.TickIdle] != 800 {
		t.Fatalf("unexpected ticks: %v", got)
	}
}

func TestHostSourceErrors(t *testing.T) {
	t.Cleanup(func() { cpuTimes = cpu.Times })

	cpuTimes = func(bool) ([]cpu.TimesStat, error) { return nil, nil }
	src, _ := NewSource("")
	if _, err := src.Sample(); !errors.Is(err, errUnsupported) {
		t.Fatalf("expected errUnsupported, got %v", err)
	}

	boom := errors.New("boom")
	cpuTimes = func(bool) ([]cpu.TimesStat, error) { return nil, boom }
	if _, err := src.Sample(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
