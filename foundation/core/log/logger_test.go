// File: logger_test.go
// Title: Core Logger Unit Tests
// Description: Tests level filtering, field propagation, formatters and
//              foundation error expansion.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-11
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test suite
// - 2025-02-11 v0.2.0: Adapted to the reduced logger

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf, Name: "test"}), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("levels = %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestLogger_Fields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	child := logger.WithField("component", "checker").WithRequestID("req-1")
	child.Debug("check finished", Fields{"tokens": 7})
	logger.Debug("parent")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first := lines[0]
	if first["component"] != "checker" {
		t.Errorf("component = %v, want checker", first["component"])
	}
	if first["tokens"] != float64(7) {
		t.Errorf("tokens = %v, want 7", first["tokens"])
	}
	if first["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", first["request_id"])
	}
	if first["logger"] != "test" {
		t.Errorf("logger = %v, want test", first["logger"])
	}
	if _, ok := lines[1]["component"]; ok {
		t.Error("WithField must not modify the parent logger")
	}
}

func TestLogger_LogError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	err := mdwerror.New("source exceeds limit").
		WithCode(mdwerror.CodeInputTooLarge).
		WithOperation("sfl.Verify").
		WithDetail("limit", 4)
	logger.LogError(err)
	logger.LogError(errors.New("plain failure"))
	logger.LogError(nil)

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["error_code"] != "INPUT_TOO_LARGE" {
		t.Errorf("error_code = %v", lines[0]["error_code"])
	}
	if lines[0]["error_operation"] != "sfl.Verify" {
		t.Errorf("error_operation = %v", lines[0]["error_operation"])
	}
	if lines[0]["error_limit"] != float64(4) {
		t.Errorf("error_limit = %v", lines[0]["error_limit"])
	}
	if lines[1]["message"] != "plain failure" {
		t.Errorf("message = %v", lines[1]["message"])
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	entry := &Entry{
		Timestamp: time.Now(),
		Level:     LevelInfo,
		Message:   "checked",
		Logger:    "sfl",
		Fields:    Fields{"verdict": "ok", "file": "a.sf"},
		Error:     errors.New("boom"),
	}

	got, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "[INF] {sfl} checked [file=a.sf verdict=ok] error=\"boom\"\n"
	if string(got) != want {
		t.Errorf("Format() = %q, want %q", string(got), want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("nop logger should not enable any level")
	}
	logger.Error("discarded")
}
