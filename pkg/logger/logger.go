// Package logger owns the process-wide zerolog instance. Init builds it
// once at startup; Get hands it out everywhere else.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options tunes the logger at startup.
type Options struct {
	// Level is the minimum emitted level (trace, debug, info, warn,
	// error). Anything unrecognised means info.
	Level string
	// Pretty switches to the human console writer. Production runs emit
	// JSON lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu    sync.Mutex
	ready bool
	root  zerolog.Logger
)

// Init builds the singleton. Repeated calls return the already-built
// instance without reconfiguring it.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := levelFor(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	root = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "cuna").
		Logger()
	ready = true
	return root
}

// Get returns the singleton. It panics when Init has not run, which only
// happens when wiring order is broken.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get before Init")
	}
	return root
}

// Reset drops the singleton so tests can rebuild it with other options.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ready = false
	root = zerolog.Logger{}
}

func levelFor(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
