package logger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
)

// TestLogger forwards log lines to testing.T and keeps them for assertions
type TestLogger struct {
	T      *testing.T
	fields map[string]interface{}
	sink   *testSink
}

type testSink struct {
	mu    sync.Mutex
	lines []string
}

// NewTestLogger creates a new test logger
func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{T: t, sink: &testSink{}}
}

func (l *TestLogger) log(level, msg string) {
	line := fmt.Sprintf("[%s] %s%s", level, msg, l.formatFields())
	l.sink.mu.Lock()
	l.sink.lines = append(l.sink.lines, line)
	l.sink.mu.Unlock()
	if l.T != nil {
		l.T.Log(line)
	}
}

func (l *TestLogger) formatFields() string {
	if len(l.fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, l.fields[k]))
	}
	return " " + strings.Join(parts, " ")
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg) }

// WithField returns a logger sharing the same sink with an extra field
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a logger sharing the same sink with extra fields
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{T: l.T, fields: merged, sink: l.sink}
}

// Lines returns every line logged through this logger or its children
func (l *TestLogger) Lines() []string {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]string, len(l.sink.lines))
	copy(out, l.sink.lines)
	return out
}

// Contains reports whether any logged line contains substr
func (l *TestLogger) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
