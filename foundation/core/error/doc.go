// Package error provides structured errors for the SFL checker.
//
// Package: error
// Title: Foundation Error Handling
// Description: Errors carrying a Code, the failing operation and details.
//              Used by the engine, configuration and service layers; the
//              recognizer reports its own typed failures and is wrapped
//              here when a caller needs a coded error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-11
//
// Usage:
//
//	import mdwerror "github.com/msto63/sfl/foundation/core/error"
//
//	err := mdwerror.New("source exceeds limit").
//		WithCode(mdwerror.CodeInputTooLarge).
//		WithOperation("sfl.Verify").
//		WithDetail("limit", 1<<20)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
//		// ...
//	}
package error
