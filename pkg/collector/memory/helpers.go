package memory

import "os"

// procReadFile allows tests to stub reading /proc/meminfo.
var procReadFile = os.ReadFile
