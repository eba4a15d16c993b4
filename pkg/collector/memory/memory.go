package memory

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/srodi/spamtop/pkg/types"
)

// ErrMissingField is returned when one of the required meminfo labels is absent.
var ErrMissingField = errors.New("meminfo field missing")

// ParseMeminfo extracts MemTotal, MemFree, SwapTotal and SwapFree (kB)
// from a /proc/meminfo dump. Every other label is ignored.
func ParseMeminfo(data []byte) (types.MemoryStats, error) {
	var stats types.MemoryStats
	targets := map[string]*uint64{
		"MemTotal":  &stats.MemTotalKB,
		"MemFree":   &stats.MemFreeKB,
		"SwapTotal": &stats.SwapTotalKB,
		"SwapFree":  &stats.SwapFreeKB,
	}
	found := make(map[string]bool, len(targets))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		dst, ok := targets[key]
		if !ok {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return types.MemoryStats{}, fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = kb
		found[key] = true
	}
	if err := scanner.Err(); err != nil {
		return types.MemoryStats{}, err
	}

	for _, key := range []string{"MemTotal", "MemFree", "SwapTotal", "SwapFree"} {
		if !found[key] {
			return types.MemoryStats{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}
	return stats, nil
}
