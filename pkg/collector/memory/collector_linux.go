//go:build linux
// +build linux

package memory

import (
	"fmt"
	"path/filepath"

	"github.com/srodi/spamtop/pkg/types"
)

// ProcSource reads memory and swap totals from <root>/meminfo.
type ProcSource struct {
	path string
}

// NewSource returns the procfs-backed memory source rooted at procRoot.
func NewSource(procRoot string) (*ProcSource, error) {
	if procRoot == "" {
		procRoot = "/proc"
	}
	return &ProcSource{path: filepath.Join(procRoot, "meminfo")}, nil
}

// Sample reads and parses meminfo.
func (s *ProcSource) Sample() (types.MemoryStats, error) {
	data, err := procReadFile(s.path)
	if err != nil {
		return types.MemoryStats{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	stats, err := ParseMeminfo(data)
	if err != nil {
		return types.MemoryStats{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return stats, nil
}
