package ui

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/srodi/spamtop/pkg/report"
	"github.com/srodi/spamtop/pkg/types"
)

const clearScreen = "\033[H\033[2J"

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// Renderer writes one snapshot.
type Renderer interface {
	Render(types.Snapshot) error
}

// Options are the display choices shared by both renderers.
type Options struct {
	Filter   report.FilterConfig
	Sort     report.SortKey
	TopK     int
	Interval time.Duration
	Banner   bool
	// Clear redraws from the top-left corner instead of appending.
	Clear bool
}

// TextRenderer prints a top-style screen.
type TextRenderer struct {
	w    io.Writer
	opts Options
}

// NewTextRenderer returns a renderer writing to w.
func NewTextRenderer(w io.Writer, opts Options) *TextRenderer {
	return &TextRenderer{w: w, opts: opts}
}

// Render builds the whole screen in memory and writes it in one call to
// avoid flicker.
func (r *TextRenderer) Render(snap types.Snapshot) error {
	var buf bytes.Buffer
	if r.opts.Clear {
		buf.WriteString(clearScreen)
	}
	if r.opts.Banner {
		buf.WriteString(Banner())
	}

	summary := report.Summarize(snap)
	fmt.Fprintln(&buf, titleStyle.Render("spamtop (press Ctrl+C to exit)"))
	fmt.Fprintf(&buf, "Updated: %s | Interval: %v\n\n", snap.Taken.Format(time.RFC3339), r.opts.Interval)

	if snap.CPUValid {
		fmt.Fprintf(&buf, "CPU%%: %.3f%%\n", snap.CPUPercent)
	} else {
		fmt.Fprintln(&buf, "CPU%: n/a")
	}
	fmt.Fprintf(&buf, "# Processes: %d (running %d, sleeping %d, zombie %d)\n",
		summary.Total, summary.Running, summary.Sleeping, summary.Zombie)
	if snap.MemoryValid {
		fmt.Fprintf(&buf, "Mem Total: %d KiB\t\tMem Free: %d KiB\n", snap.Memory.MemTotalKB, snap.Memory.MemFreeKB)
		fmt.Fprintf(&buf, "Swap Total: %d KiB\t\tSwap Free: %d KiB\n\n", snap.Memory.SwapTotalKB, snap.Memory.SwapFreeKB)
	} else {
		fmt.Fprintln(&buf, "Mem: n/a")
		fmt.Fprintln(&buf, "Swap: n/a")
		fmt.Fprintln(&buf)
	}

	rows := report.ProcessRows(snap, r.opts.Filter, r.opts.Sort, r.opts.TopK)
	if len(rows) == 0 {
		fmt.Fprintln(&buf, "No processes matched current filters")
	} else {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PID\tSTATE\tVSIZE(KiB)\tRSS(KiB)\tCOMMAND")
		for _, row := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", row.PID, row.State, row.VirtualKB, row.ResidentKB, row.Command)
		}
		tw.Flush()
	}

	_, err := r.w.Write(buf.Bytes())
	return err
}

// yamlDocument is the YAML shape of one snapshot.
type yamlDocument struct {
	Taken       time.Time             `yaml:"taken"`
	CPUPercent  float64               `yaml:"cpu_percent"`
	CPUValid    bool                  `yaml:"cpu_valid"`
	Memory      types.MemoryStats     `yaml:"memory"`
	MemoryValid bool                  `yaml:"memory_valid"`
	Summary     report.Summary        `yaml:"summary"`
	Processes   []types.ProcessRecord `yaml:"processes"`
}

// YAMLRenderer emits one YAML document per snapshot for local piping.
type YAMLRenderer struct {
	w    io.Writer
	opts Options
}

// NewYAMLRenderer returns a renderer writing to w.
func NewYAMLRenderer(w io.Writer, opts Options) *YAMLRenderer {
	return &YAMLRenderer{w: w, opts: opts}
}

// Render marshals the snapshot as a "---"-separated document.
func (r *YAMLRenderer) Render(snap types.Snapshot) error {
	doc := yamlDocument{
		Taken:       snap.Taken,
		CPUPercent:  snap.CPUPercent,
		CPUValid:    snap.CPUValid,
		Memory:      snap.Memory,
		MemoryValid: snap.MemoryValid,
		Summary:     report.Summarize(snap),
		Processes:   report.ProcessRows(snap, r.opts.Filter, r.opts.Sort, r.opts.TopK),
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(data)
	_, err = r.w.Write(buf.Bytes())
	return err
}
