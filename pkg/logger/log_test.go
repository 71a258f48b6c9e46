package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	ctx := WithRequestID(context.Background(), "req-1")
	Info(ctx, "hello", "user_id", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v; want hello", entry["msg"])
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v; want req-1", entry["request_id"])
	}
	if entry["user_id"] != float64(7) {
		t.Errorf("user_id = %v; want 7", entry["user_id"])
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})
	defer SetLevel("info")

	SetLevel("warn")
	Info(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Errorf("info line written at warn level: %q", buf.String())
	}

	SetLevel("debug")
	Debug(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Error("debug line not written at debug level")
	}
}
