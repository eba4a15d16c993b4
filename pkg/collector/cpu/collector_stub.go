//go:build !linux
// +build !linux

package cpu

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/srodi/spamtop/pkg/types"
)

// userHZ is the tick rate Linux reports /proc/stat in; gopsutil hands us
// seconds, so we scale back to comparable ticks.
const userHZ = 100

var errUnsupported = errors.New("no aggregate cpu counters on this platform")

// cpuTimes allows tests to stub the gopsutil call.
var cpuTimes = cpu.Times

// HostSource reads aggregate counters through gopsutil on platforms
// without procfs.
type HostSource struct{}

// NewSource ignores procRoot; there is no procfs to point at.
func NewSource(procRoot string) (*HostSource, error) {
	return &HostSource{}, nil
}

// Sample converts gopsutil's cumulative seconds into ticks.
func (s *HostSource) Sample() (types.CPUTicks, error) {
	times, err := cpuTimes(false)
	if err != nil {
		return types.CPUTicks{}, fmt.Errorf("reading cpu times: %w", err)
	}
	if len(times) == 0 {
		return types.CPUTicks{}, errUnsupported
	}
	t := times[0]

	var ticks types.CPUTicks
	ticks[types.TickUser] = toTicks(t.User)
	ticks[types.TickNice] = toTicks(t.Nice)
	ticks[types.TickSystem] = toTicks(t.System)
	ticks[types.TickIdle] = toTicks(t.Idle)
	ticks[types.TickIOWait] = toTicks(t.Iowait)
	ticks[types.TickIRQ] = toTicks(t.Irq)
	ticks[types.TickSoftIRQ] = toTicks(t.Softirq)
	ticks[types.TickSteal] = toTicks(t.Steal)
	ticks[types.TickGuest] = toTicks(t.Guest)
	ticks[types.TickGuestNice] = toTicks(t.GuestNice)
	return ticks, nil
}

func toTicks(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(seconds * userHZ)
}
