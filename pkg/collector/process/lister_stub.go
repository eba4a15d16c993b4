//go:build !linux
// +build !linux

package process

import (
	"os"

	"github.com/srodi/spamtop/pkg/logging"
)

// Lister is a placeholder on non-Linux platforms.
type Lister struct{}

// NewLister returns a lister whose Sample always fails.
func NewLister(procRoot string, log logging.Logger) (*Lister, error) {
	return &Lister{}, nil
}

// Sample always fails on unsupported platforms.
func (l *Lister) Sample() ([]Entry, error) {
	return nil, ErrUnsupported
}

// PageSize is the host page size in bytes.
func PageSize() uint64 {
	return uint64(os.Getpagesize())
}
