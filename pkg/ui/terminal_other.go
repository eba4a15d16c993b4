//go:build !linux

package ui

// disableInputEcho is a no-op where we do not manage termios directly.
func disableInputEcho(fd int) (func(), error) {
	return nil, nil
}
