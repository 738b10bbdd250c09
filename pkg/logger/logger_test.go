package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithRequestIDAddsField(t *testing.T) {
	var buf bytes.Buffer
	base, err := New(Config{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := ContextWithRequestID(context.Background(), "req-1")
	WithRequestID(ctx, base).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-1" || entry["msg"] != "hello" {
		t.Fatalf("entry = %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("timestamp key missing: %v", entry)
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "loud", Output: &buf})
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug written at fallback level: %s", buf.String())
	}
	if RequestID(context.Background()) != "" {
		t.Fatal("empty context carries a request id")
	}
}
