package log

import "sync"

// Entry is a single message captured by a Recorder.
type Entry struct {
	Level  string
	Msg    string
	Fields []Field
}

// Recorder implements Logger by keeping every message in memory.
// It is meant for tests that assert on emitted warnings.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: append([]Field(nil), fields...)})
}

// Debug records a debug-level message.
func (r *Recorder) Debug(msg string, fields ...Field) { r.record("debug", msg, fields) }

// Info records an info-level message.
func (r *Recorder) Info(msg string, fields ...Field) { r.record("info", msg, fields) }

// Warn records a warning-level message.
func (r *Recorder) Warn(msg string, fields ...Field) { r.record("warn", msg, fields) }

// Error records an error-level message.
func (r *Recorder) Error(msg string, fields ...Field) { r.record("error", msg, fields) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Has reports whether a message with the given level and text was recorded.
func (r *Recorder) Has(level, msg string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && e.Msg == msg {
			return true
		}
	}
	return false
}
