package signalloop

import (
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/logiface"
)

// LogLevel is the severity of a diagnostic emitted by an EventLoop, Thread,
// Signal, or Object.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return `DEBUG`
	case LevelInfo:
		return `INFO`
	case LevelWarn:
		return `WARN`
	case LevelError:
		return `ERROR`
	default:
		return fmt.Sprintf(`UNKNOWN(%d)`, l)
	}
}

// LogEntry is a single structured diagnostic event. Category names the
// subsystem that produced it: "loop" for EventLoop lifecycle messages and
// "signal" for the no-loop-registered skip notice.
type LogEntry struct {
	Level     LogLevel
	Category  string
	ThreadID  ThreadID
	Message   string
	Err       error
	Timestamp time.Time
}

// Logger is the pluggable diagnostics sink used throughout this package. It
// deliberately has no dependency on any particular logging framework; see
// NewLogifaceLogger for an adapter onto github.com/joeycumines/logiface.
type Logger interface {
	Log(entry LogEntry)
	IsEnabled(level LogLevel) bool
}

type noopLogger struct{}

func (noopLogger) Log(LogEntry) {}

func (noopLogger) IsEnabled(LogLevel) bool { return false }

// NewNoOpLogger returns a Logger that discards everything.
func NewNoOpLogger() Logger { return noopLogger{} }

var globalLogger struct {
	sync.RWMutex
	logger Logger
}

// SetLogger sets the package-level Logger consulted by Signal dispatch for
// the §7 error-kind-2 "no loop registered" skip notice. EventLoop
// diagnostics go to the loop's own Logger (WithLogger) instead. The default
// is a no-op logger.
func SetLogger(l Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = l
}

func getLogger() Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	if globalLogger.logger != nil {
		return globalLogger.logger
	}
	return noopLogger{}
}

// logifaceLogger adapts a *logiface.Logger[E] into this package's Logger
// interface, mapping LogEntry onto the generic Event builder contract.
type logifaceLogger[E logiface.Event] struct {
	l *logiface.Logger[E]
}

// NewLogifaceLogger wraps any logiface.Logger[E] (zerolog-backed, logrus-
// backed, slog-backed, or stumpy-backed — anything satisfying
// logiface.Event) as a signalloop.Logger.
func NewLogifaceLogger[E logiface.Event](l *logiface.Logger[E]) Logger {
	return &logifaceLogger[E]{l: l}
}

func (a *logifaceLogger[E]) IsEnabled(level LogLevel) bool {
	if a.l == nil {
		return false
	}
	return a.l.Build(toLogifaceLevel(level)) != nil
}

func (a *logifaceLogger[E]) Log(entry LogEntry) {
	if a.l == nil {
		return
	}
	b := a.l.Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return
	}
	b = b.Str(`category`, entry.Category).
		Int64(`thread_id`, int64(entry.ThreadID))
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func toLogifaceLevel(l LogLevel) logiface.Level {
	switch l {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
