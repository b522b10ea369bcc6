package helpers

import (
	"context"
	"sync"
	"sync/atomic"

	"taskboard/go-backend/internal/application/mediator"
)

// CountingHandler is a request handler stub that counts invocations and
// returns a fixed response
type CountingHandler struct {
	Calls    atomic.Int64
	Response mediator.Response
	Err      error
}

func (h *CountingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.Calls.Add(1)
	return h.Response, h.Err
}

// CountingListener is a notification handler stub that counts deliveries
// and optionally fails or panics
type CountingListener struct {
	Calls atomic.Int64
	Err   error
	Panic bool
}

func (l *CountingListener) Notify(ctx context.Context, notification mediator.Notification) error {
	l.Calls.Add(1)
	if l.Panic {
		panic("listener blew up")
	}
	return l.Err
}

// LogEntry is one captured log record
type LogEntry struct {
	Level  string
	Msg    string
	Fields map[string]interface{}
}

// RecordingLogger captures log entries for assertions. Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *RecordingLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *RecordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Fields: fields})
}

// Entries returns a copy of all captured entries
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasEntry reports whether an entry with the given level and message was recorded
func (l *RecordingLogger) HasEntry(level, msg string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Msg == msg {
			return true
		}
	}
	return false
}
