// Package debug provides conditional debug logging for fern.
//
// Debug logging is enabled by setting the FERN_DEBUG environment variable:
//
//	FERN_DEBUG=1 fern --doc tree.json
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	// enabled is true when FERN_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [FERN_DEBUG] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("FERN_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[FERN_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[FERN_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long an operation took.
func LogTiming(op string, elapsed time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %s", op, elapsed)
}
