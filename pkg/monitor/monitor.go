// Package monitor drives the sample, reconcile and assemble cycle. A Monitor
// owns all state that survives between ticks: the previous aggregate CPU
// sample and the process table.
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/srodi/spamtop/pkg/collector/cpu"
	"github.com/srodi/spamtop/pkg/collector/process"
	"github.com/srodi/spamtop/pkg/logging"
	"github.com/srodi/spamtop/pkg/report"
	"github.com/srodi/spamtop/pkg/types"
)

// Sink receives each snapshot exactly once.
type Sink func(types.Snapshot) error

// Options wires a Monitor to its sources.
type Options struct {
	CPU       types.Source[types.CPUTicks]
	Memory    types.Source[types.MemoryStats]
	Processes types.Source[[]process.Entry]
	PageSize  uint64
	Logger    logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Monitor is single-threaded: Tick and Run must not be called concurrently.
type Monitor struct {
	cpuSource  types.Source[types.CPUTicks]
	memSource  types.Source[types.MemoryStats]
	procSource types.Source[[]process.Entry]

	estimator  cpu.Estimator
	reconciler *process.Reconciler
	table      types.ProcessTable

	log         logging.Logger
	now         func() time.Time
	unsupported bool
}

// New builds a monitor with an empty process table.
func New(opts Options) *Monitor {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Monitor{
		cpuSource:  opts.CPU,
		memSource:  opts.Memory,
		procSource: opts.Processes,
		reconciler: process.NewReconciler(opts.PageSize, log),
		table:      make(types.ProcessTable),
		log:        log,
		now:        now,
	}
}

// Prime takes a baseline CPU sample so the first Tick reports a real rate.
func (m *Monitor) Prime() {
	ticks, err := m.cpuSource.Sample()
	if err != nil {
		m.log.Warn("cpu baseline unavailable", logging.Err(err))
		return
	}
	m.estimator.Observe(ticks)
}

// Tick samples every source once and returns the assembled snapshot.
// Failures are logged and reflected in the snapshot's validity flags.
func (m *Monitor) Tick() types.Snapshot {
	taken := m.now()

	var cpuPercent float64
	cpuValid := false
	if ticks, err := m.cpuSource.Sample(); err != nil {
		m.log.Warn("cpu counters unavailable", logging.Err(err))
	} else {
		cpuValid = m.estimator.Primed()
		cpuPercent = m.estimator.Observe(ticks)
	}

	mem, err := m.memSource.Sample()
	memValid := err == nil
	if err != nil {
		m.log.Warn("memory totals unavailable", logging.Err(err))
	}

	entries, err := m.procSource.Sample()
	if err != nil {
		m.logListingError(err)
		entries = nil
	}
	res := m.reconciler.Reconcile(m.table, entries)
	m.log.Debug("reconciled process table",
		logging.Int("added", res.Added),
		logging.Int("updated", res.Updated),
		logging.Int("evicted", res.Evicted),
		logging.Int("skipped", res.Skipped),
		logging.Int("size", len(m.table)),
	)

	return report.Assemble(taken, cpuPercent, cpuValid, mem, memValid, m.table)
}

// Run emits one snapshot per interval until ctx is done or, when count is
// positive, count snapshots have been emitted. Cancellation is only
// observed between ticks.
func (m *Monitor) Run(ctx context.Context, interval time.Duration, count int, sink Sink) error {
	m.Prime()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	emitted := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			snap := m.Tick()
			if err := sink(snap); err != nil {
				m.log.Error("rendering snapshot failed", err)
			}
			emitted++
			if count > 0 && emitted >= count {
				return nil
			}
		}
	}
}

// TableSize reports how many processes are currently tracked.
func (m *Monitor) TableSize() int {
	return len(m.table)
}

func (m *Monitor) logListingError(err error) {
	if errors.Is(err, process.ErrUnsupported) {
		if !m.unsupported {
			m.log.Info("process listing is not supported on this platform")
			m.unsupported = true
		}
		return
	}
	m.log.Warn("process listing unavailable", logging.Err(err))
}
