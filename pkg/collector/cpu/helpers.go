package cpu

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/srodi/spamtop/pkg/types"
)

// procReadFile allows tests to stub reading /proc/stat.
var procReadFile = os.ReadFile

// ErrNoAggregateLine is returned when /proc/stat has no "cpu " line.
var ErrNoAggregateLine = errors.New("aggregate cpu line not found")

// ParseAggregateLine parses the "cpu ..." summary line of /proc/stat.
// Missing trailing counters are left at zero and extra ones are ignored.
func ParseAggregateLine(line string) (types.CPUTicks, error) {
	var ticks types.CPUTicks

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "cpu" {
		return ticks, fmt.Errorf("unexpected aggregate cpu line %q", line)
	}

	values := fields[1:]
	if len(values) > types.NumTickFields {
		values = values[:types.NumTickFields]
	}
	for i, tok := range values {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return types.CPUTicks{}, fmt.Errorf("parsing cpu field %d: %w", i+1, err)
		}
		ticks[i] = v
	}
	return ticks, nil
}

// parseProcStat finds the aggregate line in a full /proc/stat dump.
func parseProcStat(data []byte) (types.CPUTicks, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "cpu ") {
			return ParseAggregateLine(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return types.CPUTicks{}, err
	}
	return types.CPUTicks{}, ErrNoAggregateLine
}
