// Package logging writes diagnostics to a file. The terminal is owned by the editor, so nothing
// here ever writes to stdout or stderr once Configure has succeeded.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu           sync.Mutex
	out          io.Writer = io.Discard
	file         *os.File
	logger       = log.New(io.Discard, "", log.LstdFlags)
	traceEnabled bool
)

// Configure sets the log destination. An empty path discards all output. Directories are created
// when missing.
func Configure(path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	file = f
	out = f
	logger.SetOutput(f)
	return nil
}

// Close releases the log file and goes back to discarding output.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if file != nil {
		file.Close()
		file = nil
	}
	out = io.Discard
	logger.SetOutput(io.Discard)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

func Infof(format string, args ...interface{}) {
	logger.Printf("INFO "+format, args...)
}

func Errorf(format string, args ...interface{}) {
	logger.Printf("ERROR "+format, args...)
}

// Trace appends a JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled || out == io.Discard {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}
	if err := json.NewEncoder(out).Encode(entry); err != nil {
		logger.Printf("ERROR trace encoding failed: %v", err)
	}
}
