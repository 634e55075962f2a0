// Package applog is the leveled logger shared by the viewer and the loader.
//
// Lines look like:
//
//	[odviewer] 2026/01/02 15:04:05.000000 [WARN] hide Kratom: not a visible substance, skipping
package applog

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ErrUnknownLevel is returned by ParseLevel for names it does not know.
var ErrUnknownLevel = errors.New("unknown log level")

const prefix = "[odviewer] "

var (
	level atomic.Int32

	mu  sync.Mutex
	out = log.New(os.Stderr, prefix, log.Ldate|log.Ltime|log.Lmicroseconds)
)

func init() { level.Store(int32(LevelInfo)) }

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel accepts debug, info, warn (or warning) and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("%w %q (want debug, info, warn or error)", ErrUnknownLevel, s)
}

// SetLevel sets the global minimum level.
func SetLevel(l Level) { level.Store(int32(l)) }

// GetLogLevel returns the current global level.
func GetLogLevel() Level { return Level(level.Load()) }

// Enabled reports whether messages at l are written; use it to skip building costly debug output.
func Enabled(l Level) bool { return l >= GetLogLevel() }

// SetOutput redirects log lines to w and returns a func restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := out.Writer()
	out.SetOutput(w)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out.SetOutput(prev)
	}
}

func logf(l Level, format string, args ...interface{}) {
	if !Enabled(l) {
		return
	}
	msg := format
	// no args: print as-is so a literal % in a path or error survives
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	mu.Lock()
	defer mu.Unlock()
	out.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration since start at debug level. Use with defer.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start).Round(time.Microsecond))
}
