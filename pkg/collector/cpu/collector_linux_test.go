//go:build linux

package cpu

import (
	"errors"
	"os"
	"testing"
)

func TestProcSourceSample(t *testing.T) {
	t.Cleanup(func() { procReadFile = os.ReadFile })

	var readPath string
	procReadFile = func(path string) ([]byte, error) {
		readPath = path
		return []byte("cpu  10 0 10 80 0 0 0 0 0 0\n"), nil
	}

	src, err := NewSource("/host/proc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := src.Sample()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if readPath != "/host/proc/stat" {
		t.Fatalf("expected /host/proc/stat, got %q", readPath)
	}
	if got != ticks(10, 0, 10, 80) {
		t.Fatalf("unexpected ticks: %v", got)
	}
}

func TestProcSourceSampleErrors(t *testing.T) {
	t.Cleanup(func() { procReadFile = os.ReadFile })

	boom := errors.New("boom")
	procReadFile = func(path string) ([]byte, error) { return nil, boom }

	src, _ := NewSource("")
	if _, err := src.Sample(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}

	procReadFile = func(path string) ([]byte, error) { return []byte("intr 1\n"), nil }
	if _, err := src.Sample(); !errors.Is(err, ErrNoAggregateLine) {
		t.Fatalf("expected ErrNoAggregateLine, got %v", err)
	}
}
