package monitor

import (
	"fmt"

	"github.com/srodi/spamtop/pkg/collector/cpu"
	"github.com/srodi/spamtop/pkg/collector/memory"
	"github.com/srodi/spamtop/pkg/collector/process"
	"github.com/srodi/spamtop/pkg/logging"
)

// NewHost wires a monitor to the platform sources rooted at procRoot.
// The page size is read once here and reused for every tick.
func NewHost(procRoot string, log logging.Logger) (*Monitor, error) {
	cpuSource, err := cpu.NewSource(procRoot)
	if err != nil {
		return nil, fmt.Errorf("initializing cpu source: %w", err)
	}
	memSource, err := memory.NewSource(procRoot)
	if err != nil {
		return nil, fmt.Errorf("initializing memory source: %w", err)
	}
	lister, err := process.NewLister(procRoot, log)
	if err != nil {
		return nil, fmt.Errorf("initializing process lister: %w", err)
	}

	return New(Options{
		CPU:       cpuSource,
		Memory:    memSource,
		Processes: lister,
		PageSize:  process.PageSize(),
		Logger:    log,
	}), nil
}
