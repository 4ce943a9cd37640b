// ============================================================================
// SFL - Start-Finish Language Checker
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and check service
// Author:      msto63
// Created:     2025-02-06
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants
const (
	// Release version of the sfl tool
	Release = "0.1.0"

	// Language version of the accepted grammar
	Language = "1.0.0"

	// CheckService version of the sfl.v1.Checker gRPC API
	CheckService = "1.0.0"
)

// Commit is set at build time with -ldflags "-X .../version.Commit=..."
var Commit = "dev"

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "checker", "check-service":
		return CheckService
	default:
		return Release
	}
}

// String returns the full version line printed by "sfl version"
func String() string {
	return fmt.Sprintf("sfl %s (language %s, commit %s)", Release, Language, Commit)
}
