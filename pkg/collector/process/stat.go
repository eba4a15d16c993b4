package process

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/srodi/spamtop/pkg/types"
)

// Field numbers from proc(5), 1-indexed over the whole stat line.
const (
	fieldState = 3
	fieldVSize = 23
	fieldRSS   = 24
)

// ErrMalformedStat marks a stat line that does not have the expected shape.
var ErrMalformedStat = errors.New("malformed stat line")

// ParseStat turns one /proc/<pid>/stat line into a record. The command is
// everything between the first '(' and the last ')' so names containing
// spaces or parentheses survive; the remaining fields are positional.
func ParseStat(line string, pageSize uint64) (types.ProcessRecord, error) {
	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l < 0 || r < l {
		return types.ProcessRecord{}, fmt.Errorf("%w: command not parenthesized", ErrMalformedStat)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(line[:l]))
	if err != nil || pid <= 0 {
		return types.ProcessRecord{}, fmt.Errorf("%w: bad pid %q", ErrMalformedStat, strings.TrimSpace(line[:l]))
	}

	fields := strings.Fields(line[r+1:])
	if len(fields) < fieldRSS-2 {
		return types.ProcessRecord{}, fmt.Errorf("%w: %d fields after command, need %d", ErrMalformedStat, len(fields), fieldRSS-2)
	}
	field := func(i int) string { return fields[i-3] }

	vsize, err := strconv.ParseUint(field(fieldVSize), 10, 64)
	if err != nil {
		return types.ProcessRecord{}, fmt.Errorf("%w: vsize: %v", ErrMalformedStat, err)
	}
	rss, err := strconv.ParseInt(field(fieldRSS), 10, 64)
	if err != nil {
		return types.ProcessRecord{}, fmt.Errorf("%w: rss: %v", ErrMalformedStat, err)
	}
	if rss < 0 {
		rss = 0
	}

	return types.ProcessRecord{
		PID:        pid,
		Command:    line[l+1 : r],
		State:      field(fieldState),
		VirtualKB:  vsize / 1024,
		ResidentKB: uint64(rss) * pageSize / 1024,
	}, nil
}
