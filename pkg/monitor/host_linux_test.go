//go:build linux

package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewHostReadsProcTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stat"), "cpu  100 0 50 850 0 0 0 0 0 0\ncpu0 100 0 50 850 0 0 0 0 0 0\n")
	writeFile(t, filepath.Join(root, "meminfo"), "MemTotal: 2048 kB\nMemFree: 1024 kB\nSwapTotal: 512 kB\nSwapFree: 512 kB\n")
	writeFile(t, filepath.Join(root, "1", "stat"), stat(1, "init", 2).Stat+"\n")
	writeFile(t, filepath.Join(root, "42", "stat"), stat(42, "my proc (v2)", 4).Stat+"\n")

	m, err := NewHost(root, nil)
	require.NoError(t, err)

	first := m.Tick()
	assert.False(t, first.CPUValid)
	assert.True(t, first.MemoryValid)
	assert.Equal(t, uint64(2048), first.Memory.MemTotalKB)
	require.Len(t, first.Processes, 2)
	assert.Equal(t, "my proc (v2)", first.Processes[42].Command)
	assert.Equal(t, uint64(4000), first.Processes[42].VirtualKB)

	writeFile(t, filepath.Join(root, "stat"), "cpu  150 0 100 850 0 0 0 0 0 0\n")
	require.NoError(t, os.RemoveAll(filepath.Join(root, "1")))

	second := m.Tick()
	assert.True(t, second.CPUValid)
	assert.Equal(t, 100.0, second.CPUPercent)
	assert.Len(t, second.Processes, 1)
	assert.Contains(t, second.Processes, 42)
}
