package logger

import (
	"fmt"
	"io"
)

// maximum number of entries in the central logger.
const maxCentral = 256

// only one log for the whole program. cores running concurrently share it.
var central = newLogger(maxCentral)

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, format string, args ...any) {
	central.log(tag, fmt.Sprintf(format, args...))
}

// Clear removes all entries.
func Clear() {
	central.clear()
}

// Write writes every entry to output.
func Write(output io.Writer) {
	central.tail(output, -1)
}

// Tail writes the last number entries to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// Entries returns a copy of the current entries.
func Entries() []Entry {
	return central.copy()
}

// SetEcho writes each new or repeated entry to output as it is logged. A nil
// output turns echoing off.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}
