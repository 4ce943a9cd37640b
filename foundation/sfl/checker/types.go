// File: types.go
// Title: SFL Scalar Types
// Description: The three scalar types of the Start-Finish language and
//              their mapping from declaration keywords.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-04
//
// Change History:
// - 2025-02-04 v0.1.0: Initial type definitions

package checker

import "github.com/msto63/sfl/foundation/sfl/lexer"

// Type is a declared or inferred scalar type
type Type int

const (
	Integer Type = iota
	Character
	Logical
)

// String returns the keyword that declares the type
func (t Type) String() string {
	switch t {
	case Integer:
		return lexer.Integer
	case Character:
		return lexer.Character
	case Logical:
		return lexer.Logical
	default:
		return "unknown"
	}
}

// typeOf maps a type keyword to its Type. ok is false for other tokens.
func typeOf(keyword string) (Type, bool) {
	switch keyword {
	case lexer.Integer:
		return Integer, true
	case lexer.Character:
		return Character, true
	case lexer.Logical:
		return Logical, true
	}
	return Integer, false
}
