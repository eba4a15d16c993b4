//go:build linux
// +build linux

package cpu

import (
	"fmt"
	"path/filepath"

	"github.com/srodi/spamtop/pkg/types"
)

// ProcSource reads the aggregate counters from <root>/stat.
type ProcSource struct {
	path string
}

// NewSource returns the procfs-backed counter source rooted at procRoot.
func NewSource(procRoot string) (*ProcSource, error) {
	if procRoot == "" {
		procRoot = "/proc"
	}
	return &ProcSource{path: filepath.Join(procRoot, "stat")}, nil
}

// Sample reads and parses the aggregate cpu line.
func (s *ProcSource) Sample() (types.CPUTicks, error) {
	data, err := procReadFile(s.path)
	if err != nil {
		return types.CPUTicks{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	ticks, err := parseProcStat(data)
	if err != nil {
		return types.CPUTicks{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return ticks, nil
}
