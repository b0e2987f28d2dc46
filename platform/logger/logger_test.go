package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func testLogger(buf *bytes.Buffer) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(buf, nil))}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not one JSON line: %v\n%s", err, buf.String())
	}
	return entry
}

func TestAuthEventSuccess(t *testing.T) {
	var buf bytes.Buffer
	testLogger(&buf).AuthEvent("sign_in", "maria@example.com", true, "")

	entry := decodeLine(t, &buf)
	if entry["msg"] != "auth_event" || entry["event"] != "sign_in" {
		t.Errorf("entry = %v, want an auth_event for sign_in", entry)
	}
	if entry["success"] != true {
		t.Errorf("success = %v, want true", entry["success"])
	}
	if _, ok := entry["reason"]; ok {
		t.Error("a successful auth event must not carry a reason")
	}
}

func TestAuthEventFailureCarriesReason(t *testing.T) {
	var buf bytes.Buffer
	testLogger(&buf).AuthEvent("sign_in", "maria@example.com", false, "password mismatch")

	entry := decodeLine(t, &buf)
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN for a failed auth event", entry["level"])
	}
	if entry["success"] != false || entry["reason"] != "password mismatch" {
		t.Errorf("entry = %v, want the failure and its reason", entry)
	}
}

func TestScoreComputed(t *testing.T) {
	var buf bytes.Buffer
	testLogger(&buf).ScoreComputed("p1", 5, 82, "hot", false)

	entry := decodeLine(t, &buf)
	if entry["msg"] != "score_computed" {
		t.Errorf("msg = %v, want score_computed", entry["msg"])
	}
	if entry["prospect_id"] != "p1" || entry["temperature"] != "hot" {
		t.Errorf("entry = %v, identity fields wrong", entry)
	}
	// JSON numbers decode as float64.
	if entry["version"] != float64(5) || entry["score"] != float64(82) {
		t.Errorf("entry = %v, want version 5 and score 82", entry)
	}
}

func TestWithContextExtractsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-1")
	log.WithContext(ctx).Info("hello")

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-1" || entry["user_id"] != "user-1" {
		t.Errorf("entry = %v, want the context fields attached", entry)
	}
}
