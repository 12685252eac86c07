package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithVendorID(ctx, "vendor-9")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line: %v", err)
	}
	if entry["request_id"] != "req-123" || entry["vendor_id"] != "vendor-9" {
		t.Fatalf("context fields missing: %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("service field missing: %v", entry)
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "boom", errors.New("cause"))

	out := buf.String()
	if !strings.Contains(out, `"stack"`) || !strings.Contains(out, "cause") {
		t.Fatalf("error entry missing stack or cause: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel(" DEBUG "); got != zerolog.DebugLevel {
		t.Fatalf("ParseLevel = %v", got)
	}
	if got := ParseLevel("nope"); got != zerolog.InfoLevel {
		t.Fatalf("invalid level should default to info, got %v", got)
	}
}
