package debugger

import (
	"io"

	"golang.org/x/term"
)

// Terminal reads command lines with editing and history from an interactive
// terminal. The terminal is in raw mode only while a line is being read, so
// the machine runs with the normal signal handling in place.
type Terminal struct {
	fd int
	t  *term.Terminal
}

// NewTerminal returns a line reader on rw, the terminal with descriptor fd.
func NewTerminal(fd int, rw io.ReadWriter) *Terminal {
	return &Terminal{fd: fd, t: term.NewTerminal(rw, "> ")}
}

// ReadLine implements LineReader.
func (t *Terminal) ReadLine() (string, error) {
	if term.IsTerminal(t.fd) {
		old, err := term.MakeRaw(t.fd)
		if err != nil {
			return "", err
		}
		defer term.Restore(t.fd, old)
	}
	return t.t.ReadLine()
}
