// Package logger builds the process logger and hands out per-component
// children of it.
//
// cmd/server calls Init once; everything else asks for Component(name) and
// receives a zerolog.Logger tagged with "component". Levels, lowest first:
//
//	trace, debug, info (default), warn, error
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Component names used across the service.
const (
	ComponentAuth    = "auth"
	ComponentMapping = "mapping"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
)

// Options controls how the process logger is built.
type Options struct {
	// Level is the minimum level; unknown or empty values mean info.
	Level string
	// Pretty switches to zerolog's console writer for local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is added to every line as "service" when set.
	Service string
}

var (
	mu   sync.RWMutex
	root *zerolog.Logger
)

// New builds a logger from opts. It does not touch the process logger.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Caller()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	return ctx.Logger()
}

// Init sets the process logger on first call and returns it. Later calls
// ignore opts and return the existing logger.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opts)
		root = &l
	}
	return *root
}

// Component returns a child of the process logger tagged with name. Before
// Init it returns a disabled logger, so library code never writes to an
// unconfigured sink.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if root == nil {
		return zerolog.Nop()
	}
	return root.With().Str("component", name).Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
