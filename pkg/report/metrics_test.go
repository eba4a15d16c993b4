package report

import (
	"testing"
	"time"

	"github.com/srodi/spamtop/pkg/types"
)

func sampleTable() types.ProcessTable {
	return types.ProcessTable{
		1:    {PID: 1, Command: "systemd", State: "S", VirtualKB: 170000, ResidentKB: 12000},
		2:    {PID: 2, Command: "kthreadd", State: "S"},
		14:   {PID: 14, Command: "kworker/0:1-events", State: "I"},
		812:  {PID: 812, Command: "postgres", State: "R", VirtualKB: 900000, ResidentKB: 250000},
		901:  {PID: 901, Command: "Web Content", State: "S", VirtualKB: 2500000, ResidentKB: 180000},
		4410: {PID: 4410, Command: "defunct", State: "Z", VirtualKB: 1, ResidentKB: 0},
	}
}

func TestAssembleCopiesTable(t *testing.T) {
	table := sampleTable()
	now := time.Unix(1700000000, 0)
	mem := types.MemoryStats{MemTotalKB: 100, MemFreeKB: 40, SwapTotalKB: 10, SwapFreeKB: 10}

	snap := Assemble(now, 12.5, true, mem, true, table)
	if !snap.Taken.Equal(now) || snap.CPUPercent != 12.5 || !snap.CPUValid || snap.Memory != mem || !snap.MemoryValid {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	if len(snap.Processes) != len(table) {
		t.Fatalf("expected %d processes, got %d", len(table), len(snap.Processes))
	}

	table[812].ResidentKB = 1
	delete(table, 1)
	if snap.Processes[812].ResidentKB != 250000 {
		t.Fatalf("snapshot should not see later record updates")
	}
	if _, ok := snap.Processes[1]; !ok {
		t.Fatalf("snapshot should not see later evictions")
	}
}

func TestAssembleInvalidValues(t *testing.T) {
	snap := Assemble(time.Now(), 55, false, types.MemoryStats{MemTotalKB: 9}, false, nil)
	if snap.CPUPercent != 0 || snap.CPUValid {
		t.Fatalf("invalid cpu should surface as 0, got %+v", snap)
	}
	if snap.Memory != (types.MemoryStats{}) || snap.MemoryValid {
		t.Fatalf("invalid memory should be zeroed, got %+v", snap.Memory)
	}
	if snap.Processes == nil || len(snap.Processes) != 0 {
		t.Fatalf("expected empty, non-nil process map")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Assemble(time.Now(), 0, true, types.MemoryStats{}, true, sampleTable()))
	expected := Summary{Total: 6, Running: 1, Sleeping: 4, Zombie: 1}
	if s != expected {
		t.Fatalf("expected %+v, got %+v", expected, s)
	}
}

func TestProcessRowsSortAndLimit(t *testing.T) {
	snap := Assemble(time.Now(), 0, true, types.MemoryStats{}, true, sampleTable())

	rows := ProcessRows(snap, FilterConfig{}, SortByPID, 0)
	if len(rows) != 6 || rows[0].PID != 1 || rows[5].PID != 4410 {
		t.Fatalf("unexpected pid ordering: %+v", rows)
	}

	rows = ProcessRows(snap, FilterConfig{}, SortByRSS, 2)
	if len(rows) != 2 || rows[0].PID != 812 || rows[1].PID != 901 {
		t.Fatalf("unexpected rss ordering: %+v", rows)
	}

	rows = ProcessRows(snap, FilterConfig{}, SortByVSize, 1)
	if len(rows) != 1 || rows[0].PID != 901 {
		t.Fatalf("unexpected vsize ordering: %+v", rows)
	}
}

func TestProcessRowsFilters(t *testing.T) {
	snap := Assemble(time.Now(), 0, true, types.MemoryStats{}, true, sampleTable())

	rows := ProcessRows(snap, FilterConfig{HideKernel: true}, SortByPID, 0)
	for _, row := range rows {
		if row.PID == 2 || row.PID == 14 {
			t.Fatalf("kernel thread %d should be hidden", row.PID)
		}
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 user processes, got %d", len(rows))
	}

	rows = ProcessRows(snap, FilterConfig{CommandFilter: "web"}, SortByPID, 0)
	if len(rows) != 1 || rows[0].PID != 901 {
		t.Fatalf("command filter should match case-insensitively: %+v", rows)
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{"": SortByPID, "pid": SortByPID, " RSS ": SortByRSS, "vsize": SortByVSize}
	for input, want := range cases {
		got, err := ParseSortKey(input)
		if err != nil || got != want {
			t.Fatalf("ParseSortKey(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseSortKey("cpu"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}
