package process

import (
	"errors"
	"os"
	"strconv"
)

// ErrUnsupported is returned where there is no procfs to enumerate.
var ErrUnsupported = errors.New("process listing requires linux")

// procReadDir and procReadFile allow tests to stub procfs access.
var (
	procReadDir  = os.ReadDir
	procReadFile = os.ReadFile
)

func parsePID(name string) (int, bool) {
	if name == "" || name[0] < '1' || name[0] > '9' {
		return 0, false
	}
	pid, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return pid, true
}
