//go:build linux
// +build linux

package process

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/srodi/spamtop/pkg/logging"
)

// Lister enumerates <root>/<pid>/stat.
type Lister struct {
	root string
	log  logging.Logger
}

// NewLister returns a lister rooted at procRoot.
func NewLister(procRoot string, log logging.Logger) (*Lister, error) {
	if procRoot == "" {
		procRoot = "/proc"
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Lister{root: procRoot, log: log}, nil
}

// Sample returns one entry per process whose stat could be read. A process
// that exits between the directory read and the stat read is dropped.
func (l *Lister) Sample() ([]Entry, error) {
	dirents, err := procReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.root, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		pid, ok := parsePID(d.Name())
		if !ok {
			continue
		}
		data, err := procReadFile(filepath.Join(l.root, d.Name(), "stat"))
		if err != nil {
			l.log.Debug("process vanished before stat read", logging.Int("pid", pid), logging.Err(err))
			continue
		}
		entries = append(entries, Entry{PID: pid, Stat: strings.TrimSpace(string(data))})
	}
	return entries, nil
}

// PageSize is the host page size in bytes.
func PageSize() uint64 {
	return uint64(unix.Getpagesize())
}
