// File: token.go
// Title: SFL Token Definitions
// Description: Token type, reserved words, operator tables and the shape
//              predicates the recognizer uses to classify tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-03
//
// Change History:
// - 2025-02-03 v0.1.0: Initial token definitions

package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical unit of SFL source. Value is never empty.
type Token struct {
	Value  string // Token text
	Offset int    // Byte offset in source
	Line   int    // Line number (1-based)
	Column int    // Column number in runes (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%q@%d:%d", t.Value, t.Line, t.Column)
}

// Keywords
const (
	Start     = "start"
	Finish    = "finish"
	Integer   = "integer"
	Character = "character"
	Logical   = "logical"
	If        = "if"
	Then      = "then"
	Else      = "else"
	Endif     = "endif"
	Loopif    = "loopif"
	Do        = "do"
	Endloop   = "endloop"
	Print     = "print"
)

// Operators and punctuation
const (
	Arrow     = "<-"
	Plus      = ".plus."
	Minus     = ".minus."
	Mul       = ".mul."
	Div       = ".div."
	And       = ".and."
	Or        = ".or."
	Not       = ".not."
	Eq        = ".eq."
	Ne        = ".ne."
	Lt        = ".lt."
	Gt        = ".gt."
	Le        = ".le."
	Ge        = ".ge."
	LParen    = "("
	RParen    = ")"
	Semicolon = ";"
	Comma     = ","
)

// keywords holds the thirteen reserved words
var keywords = map[string]bool{
	Character: true, Do: true, Else: true, Endif: true, Endloop: true,
	Finish: true, If: true, Integer: true, Logical: true, Loopif: true,
	Print: true, Start: true, Then: true,
}

// dottedOperators lists every operator of the form .name.
var dottedOperators = []string{
	Plus, Minus, Mul, Div, And, Or, Not, Eq, Ne, Lt, Gt, Le, Ge,
}

// IsKeyword reports whether s is one of the reserved words
func IsKeyword(s string) bool {
	return keywords[s]
}

// IsTypeKeyword reports whether s starts a declaration
func IsTypeKeyword(s string) bool {
	return s == Integer || s == Character || s == Logical
}

// IsArithmeticOp reports whether s is .plus. .minus. .mul. or .div.
func IsArithmeticOp(s string) bool {
	switch s {
	case Plus, Minus, Mul, Div:
		return true
	}
	return false
}

// IsRelationalOp reports whether s is one of the six comparison operators
func IsRelationalOp(s string) bool {
	switch s {
	case Eq, Ne, Lt, Gt, Le, Ge:
		return true
	}
	return false
}

// IsLogicalOp reports whether s is .and. or .or.
func IsLogicalOp(s string) bool {
	return s == And || s == Or
}

// IsBinaryOp reports whether s may appear between two terms
func IsBinaryOp(s string) bool {
	return IsArithmeticOp(s) || IsRelationalOp(s) || IsLogicalOp(s)
}

// IsNumeric reports whether s is a non-empty run of Unicode number runes
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// IsCharConstant reports whether s has the exact shape "x"
func IsCharConstant(s string) bool {
	if utf8.RuneCountInString(s) != 3 {
		return false
	}
	return s[0] == '"' && s[len(s)-1] == '"'
}

// IsIdentifier reports whether s has identifier shape: a letter or
// underscore followed by letters, digits or underscores.
// Reserved words have identifier shape; callers check IsKeyword separately.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
