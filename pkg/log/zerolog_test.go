package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapterWithLogger(zerolog.New(&buf))

	adapter.Warn("reading below threshold",
		Float32("value", 61.5),
		Float64("threshold", 62.8),
		Duration("age", 1500*time.Millisecond),
		Err(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}

	if got["level"] != "warn" {
		t.Errorf("level = %v, want warn", got["level"])
	}
	if got["message"] != "reading below threshold" {
		t.Errorf("message = %v", got["message"])
	}
	if got["value"] != 61.5 {
		t.Errorf("value = %v, want 61.5", got["value"])
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
}

func TestRecorder_Has(t *testing.T) {
	r := NewRecorder()
	r.Info("started")
	r.Warn("unrecovered", String("resource", "byte source"))

	if !r.Has("warn", "unrecovered") {
		t.Error("expected warn entry")
	}
	if r.Has("error", "unrecovered") {
		t.Error("unexpected error entry")
	}
	if n := len(r.Entries()); n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}
}
