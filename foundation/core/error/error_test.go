// File: error_test.go
// Title: Core Error Unit Tests
// Description: Tests error construction, wrapping, code inheritance and
//              code lookup through error chains.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-11
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test suite
// - 2025-02-11 v0.2.0: Adapted to the reduced error type

package error

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("source too large")

	if err.Error() != "source too large" {
		t.Errorf("Error() = %v, want %v", err.Error(), "source too large")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should be set")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	cause := os.ErrNotExist
	err := Wrap(cause, "failed to read source").WithCode(CodeReadFailed)

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.HasPrefix(err.Error(), "failed to read source: ") {
		t.Errorf("Error() = %q, want prefix %q", err.Error(), "failed to read source: ")
	}
	if err.Message() != "failed to read source" {
		t.Errorf("Message() = %q", err.Message())
	}
}

func TestWrap_InheritsCodeAndDetails(t *testing.T) {
	inner := New("limit exceeded").
		WithCode(CodeInputTooLarge).
		WithDetail("limit", 16)

	outer := Wrap(inner, "engine.Verify")

	if outer.Code() != CodeInputTooLarge {
		t.Errorf("Code() = %v, want %v", outer.Code(), CodeInputTooLarge)
	}
	if outer.Details()["limit"] != 16 {
		t.Errorf("Details()[limit] = %v, want 16", outer.Details()["limit"])
	}
}

func TestHasCode(t *testing.T) {
	base := New("bad mode").WithCode(CodeInvalidConfig)
	wrapped := Wrap(base, "load").WithCode(CodeConfigError)
	foreign := fmt.Errorf("outer: %w", wrapped)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct", base, CodeInvalidConfig, true},
		{"outer code", wrapped, CodeConfigError, true},
		{"inner code", wrapped, CodeInvalidConfig, true},
		{"through fmt wrap", foreign, CodeInvalidConfig, true},
		{"missing", wrapped, CodeNotFound, false},
		{"plain error", errors.New("x"), CodeUnknown, false},
		{"nil", nil, CodeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, CodeUnknown)
	}
	err := fmt.Errorf("ctx: %w", New("x").WithCode(CodeRejected))
	if got := GetCode(err); got != CodeRejected {
		t.Errorf("GetCode() = %v, want %v", got, CodeRejected)
	}
}

func TestError_String(t *testing.T) {
	err := New("too large").
		WithCode(CodeInputTooLarge).
		WithOperation("sfl.Verify").
		WithDetail("size", 20).
		WithDetail("limit", 10)

	want := "[INPUT_TOO_LARGE] too large (operation: sfl.Verify) details: limit=10 size=20"
	if got := err.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeInputTooLarge, "source"},
		{CodeInvalidConfig, "configuration"},
		{CodeServiceUnavailable, "service"},
		{CodeInternal, "generic"},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
		})
	}
}
