package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/srodi/spamtop/pkg/logging"
)

// isTerminal allows tests to stub terminal detection.
var (
	defaultIsTerminal = term.IsTerminal
	isTerminal        = defaultIsTerminal
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

// EnableSingleView switches out to the alternate screen and hides the
// cursor when out is a terminal. The returned func restores everything.
func EnableSingleView(out, in *os.File, log logging.Logger) func() {
	if !IsTerminal(out) {
		return func() {}
	}
	enterAltScreen(out)

	var restore []func()
	if IsTerminal(in) {
		if undoEcho, err := disableInputEcho(int(in.Fd())); err != nil {
			log.Warn("unable to suppress stdin echo", logging.Err(err))
		} else if undoEcho != nil {
			restore = append(restore, undoEcho)
		}
	}

	return func() {
		for i := len(restore) - 1; i >= 0; i-- {
			restore[i]()
		}
		leaveAltScreen(out)
	}
}

func enterAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049h") // switch to alternate buffer
	fmt.Fprint(w, "\033[?25l")   // hide cursor
}

func leaveAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")   // show cursor
	fmt.Fprint(w, "\033[?1049l") // restore main buffer
}
