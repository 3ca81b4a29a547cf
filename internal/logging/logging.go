// Package logging provides the shared log output for the library.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu        sync.Mutex
	logWriter io.Writer
)

// SetWriter sets the log output destination. A nil writer falls back to
// stdout.
func SetWriter(w io.Writer) {
	mu.Lock()
	logWriter = w
	mu.Unlock()
}

// Logf writes a formatted log message. Safe for concurrent use; the lock
// also serializes writes to unsynchronized destinations like bytes.Buffer.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	mu.Lock()
	defer mu.Unlock()
	w := logWriter
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, msg)
}
