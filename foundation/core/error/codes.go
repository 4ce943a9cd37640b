// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the SFL checker outside of
//              the recognizer itself: configuration, input limits, I/O
//              and service failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-11
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-02-11 v0.2.0: Reduced to the codes the checker surfaces

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Source handling
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"
	CodeReadFailed    Code = "READ_FAILED"
	CodeRejected      Code = "REJECTED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Service
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInputTooLarge, CodeReadFailed, CodeRejected:
		return "source"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeServiceInitialization, CodeServiceUnavailable:
		return "service"
	default:
		return "generic"
	}
}
