package signalloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	require.Equal(t, `DEBUG`, LevelDebug.String())
	require.Equal(t, `INFO`, LevelInfo.String())
	require.Equal(t, `WARN`, LevelWarn.String())
	require.Equal(t, `ERROR`, LevelError.String())
	require.Equal(t, `UNKNOWN(42)`, LogLevel(42).String())
}

func TestNoOpLogger_NeverEnabled(t *testing.T) {
	l := NewNoOpLogger()
	require.False(t, l.IsEnabled(LevelError))
	require.NotPanics(t, func() { l.Log(LogEntry{Level: LevelError, Message: `x`}) })
}

func TestSetLogger_DefaultsToNoOpWhenNil(t *testing.T) {
	defer SetLogger(nil)
	SetLogger(nil)
	require.False(t, getLogger().IsEnabled(LevelDebug))
}

func TestSetLogger_RecordsEntries(t *testing.T) {
	defer SetLogger(nil)
	rec := &recordingLogger{}
	SetLogger(rec)
	getLogger().Log(LogEntry{Level: LevelWarn, Category: `test`, Message: `hi`})
	require.Len(t, rec.entries, 1)
	require.Equal(t, `hi`, rec.entries[0].Message)
}

type recordingLogger struct {
	entries []LogEntry
}

func (r *recordingLogger) Log(e LogEntry)          { r.entries = append(r.entries, e) }
func (r *recordingLogger) IsEnabled(LogLevel) bool { return true }
