// File: errors.go
// Title: SFL Recognition Errors
// Description: Error kinds distinguishing why a program was rejected. All
//              kinds collapse to the same external verdict; they exist so
//              callers and tests can tell failures apart.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-04
//
// Change History:
// - 2025-02-04 v0.1.0: Initial error taxonomy

package checker

import (
	"errors"
	"fmt"

	"github.com/msto63/sfl/foundation/sfl/lexer"
)

// Kind classifies a recognition failure
type Kind int

const (
	// KindNone is returned by KindOf for nil and foreign errors
	KindNone Kind = iota

	// KindUnexpectedToken: a token does not match what the rule expects
	KindUnexpectedToken

	// KindUnexpectedEOF: a rule needs a token but the stream is exhausted
	KindUnexpectedEOF

	// KindTypeMismatch: assignment type differs from the target, or a
	// condition is not logical
	KindTypeMismatch

	// KindRedeclared: an identifier is declared twice
	KindRedeclared

	// KindUndeclared: an identifier is used without a declaration
	KindUndeclared

	// KindTrailingInput: tokens remain after finish
	KindTrailingInput
)

var kindNames = map[Kind]string{
	KindNone:            "none",
	KindUnexpectedToken: "unexpected_token",
	KindUnexpectedEOF:   "unexpected_eof",
	KindTypeMismatch:    "type_mismatch",
	KindRedeclared:      "redeclared",
	KindUndeclared:      "undeclared",
	KindTrailingInput:   "trailing_input",
}

// String returns the snake_case name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the first failure found while recognizing a program
type Error struct {
	Kind    Kind
	Message string
	Token   lexer.Token // Offending token; zero at end of input
	Index   int         // Cursor position when the failure occurred
}

func (e *Error) Error() string {
	if e.Token.Value == "" {
		return fmt.Sprintf("%s at token %d: %s", e.Kind, e.Index, e.Message)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s (near '%s')",
		e.Kind, e.Token.Line, e.Token.Column, e.Message, e.Token.Value)
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindNone
}
