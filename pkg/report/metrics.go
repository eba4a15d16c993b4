package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/srodi/spamtop/pkg/types"
)

// SortKey selects the ordering of process rows.
type SortKey string

const (
	SortByPID   SortKey = "pid"
	SortByRSS   SortKey = "rss"
	SortByVSize SortKey = "vsize"
)

// ParseSortKey validates a user-supplied sort column.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortByPID, SortByRSS, SortByVSize:
		return key, nil
	case "":
		return SortByPID, nil
	default:
		return "", fmt.Errorf("unknown sort column %q (want pid, rss or vsize)", s)
	}
}

// FilterConfig controls which processes appear in rendered tables.
type FilterConfig struct {
	HideKernel    bool
	CommandFilter string // lower-cased substring; empty matches everything
}

// Summary condenses the process table into header counters.
type Summary struct {
	Total    int `yaml:"total"`
	Running  int `yaml:"running"`
	Sleeping int `yaml:"sleeping"`
	Zombie   int `yaml:"zombie"`
	Other    int `yaml:"other"`
}

// Assemble packages one tick's results. The table is copied by value so
// later reconciliation passes cannot change a snapshot already handed off.
func Assemble(
	taken time.Time,
	cpuPercent float64,
	cpuValid bool,
	mem types.MemoryStats,
	memValid bool,
	table types.ProcessTable,
) types.Snapshot {
	procs := make(map[int]types.ProcessRecord, len(table))
	for pid, rec := range table {
		if rec == nil {
			continue
		}
		procs[pid] = *rec
	}
	if !cpuValid {
		cpuPercent = 0
	}
	if !memValid {
		mem = types.MemoryStats{}
	}
	return types.Snapshot{
		Taken:       taken,
		CPUPercent:  cpuPercent,
		CPUValid:    cpuValid,
		Memory:      mem,
		MemoryValid: memValid,
		Processes:   procs,
	}
}

// Summarize counts processes by their state letter.
func Summarize(snap types.Snapshot) Summary {
	var s Summary
	for _, rec := range snap.Processes {
		s.Total++
		switch rec.State {
		case "R":
			s.Running++
		case "S", "D", "I":
			s.Sleeping++
		case "Z":
			s.Zombie++
		default:
			s.Other++
		}
	}
	return s
}

// ProcessRows filters, orders and truncates the snapshot's processes for display.
// Ties fall back to PID so the order is stable between ticks.
func ProcessRows(snap types.Snapshot, cfg FilterConfig, key SortKey, topK int) []types.ProcessRecord {
	rows := make([]types.ProcessRecord, 0, len(snap.Processes))
	for _, rec := range snap.Processes {
		if passesFilters(rec, cfg) {
			rows = append(rows, rec)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch key {
		case SortByRSS:
			if a.ResidentKB != b.ResidentKB {
				return a.ResidentKB > b.ResidentKB
			}
		case SortByVSize:
			if a.VirtualKB != b.VirtualKB {
				return a.VirtualKB > b.VirtualKB
			}
		}
		return a.PID < b.PID
	})

	if topK > 0 && len(rows) > topK {
		rows = rows[:topK]
	}
	return rows
}

func passesFilters(rec types.ProcessRecord, cfg FilterConfig) bool {
	if cfg.HideKernel && isKernelThread(rec) {
		return false
	}
	if cfg.CommandFilter != "" {
		if !strings.Contains(strings.ToLower(rec.Command), cfg.CommandFilter) {
			return false
		}
	}
	return true
}

// isKernelThread relies on kernel threads having no address space, with
// well-known name prefixes as a fallback.
func isKernelThread(rec types.ProcessRecord) bool {
	if rec.VirtualKB == 0 {
		return true
	}
	name := strings.ToLower(rec.Command)
	switch {
	case strings.HasPrefix(name, "kworker"), strings.HasPrefix(name, "ksoftirqd"), strings.HasPrefix(name, "kthreadd"),
		strings.HasPrefix(name, "migration"), strings.HasPrefix(name, "watchdog"), strings.HasPrefix(name, "rcu_"),
		strings.HasPrefix(name, "irq/"):
		return true
	}
	return false
}
