// File: lexer.go
// Title: SFL Lexical Analyzer
// Description: Converts SFL source text into a token sequence. Two modes
//              exist: the legacy substitution tokenizer (default) and a
//              single-pass scanning tokenizer. Both attach byte offsets and
//              line/column positions to every token.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-03
//
// Change History:
// - 2025-02-03 v0.1.0: Initial lexer implementation

package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects the tokenizer implementation
type Mode int

const (
	// ModeLegacy pads symbols by global text substitution and splits on
	// whitespace. Identifiers containing keyword or operator substrings
	// are split apart.
	ModeLegacy Mode = iota

	// ModeScanning classifies the longest token at each position.
	ModeScanning
)

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeScanning:
		return "scanning"
	default:
		return "unknown"
	}
}

// ParseMode parses a configuration value into a Mode.
// The empty string selects ModeLegacy.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return ModeLegacy, nil
	case "scanning", "scan":
		return ModeScanning, nil
	default:
		return ModeLegacy, fmt.Errorf("unknown lexer mode %q (want legacy or scanning)", s)
	}
}

// Tokenize converts source into tokens using the given mode
func Tokenize(source string, mode Mode) []Token {
	if mode == ModeScanning {
		return Scan(source)
	}
	return Legacy(source)
}

// whitespace normalisation applied before padding
var whitespaceReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// paddedSymbols is applied in order; each occurrence gets a space on both
// sides. "if" is not in the list.
var paddedSymbols = []string{
	LParen, RParen, Semicolon, Comma,
	Plus, Minus, Mul, Div, And, Or, Eq, Ne, Lt, Gt, Le, Ge,
	Character, Do, Else, Endif, Endloop, Finish, Integer, Logical,
	Loopif, Print, Start, Then,
	Arrow, Not,
}

// Legacy tokenizes by literal substitution: every symbol and keyword is
// padded with spaces wherever it occurs, even inside identifiers, and the
// result is split on whitespace.
func Legacy(source string) []Token {
	padded := whitespaceReplacer.Replace(source)
	for _, sym := range paddedSymbols {
		padded = strings.ReplaceAll(padded, sym, " "+sym+" ")
	}
	return locate(source, strings.Fields(padded))
}

// locate attaches positions to legacy fragments. Padding only inserts
// spaces, so each fragment starts right after the whitespace that follows
// the previous one.
func locate(source string, fragments []string) []Token {
	tokens := make([]Token, 0, len(fragments))
	p := newPosition(source)

	for _, frag := range fragments {
		p.skipSpace()
		if !strings.HasPrefix(source[p.offset:], frag) {
			// Unreachable for fragments produced from source; keep the
			// search forward-only so positions stay monotonic.
			if idx := strings.Index(source[p.offset:], frag); idx >= 0 {
				p.advanceBytes(idx)
			}
		}
		tokens = append(tokens, p.token(frag))
		p.advanceBytes(len(frag))
	}

	return tokens
}

// Scan tokenizes in a single pass. At each position it takes, in order of
// preference: punctuation, the arrow, a dotted operator, a 3-rune character
// constant, a word of letters, digits and underscores, or a single rune.
func Scan(source string) []Token {
	var tokens []Token
	p := newPosition(source)

	for {
		p.skipSpace()
		if p.offset >= len(source) {
			return tokens
		}
		n := scanLength(source[p.offset:])
		tokens = append(tokens, p.token(source[p.offset:p.offset+n]))
		p.advanceBytes(n)
	}
}

// scanLength returns the byte length of the token at the start of rest
func scanLength(rest string) int {
	r, size := utf8.DecodeRuneInString(rest)

	switch {
	case r == '(' || r == ')' || r == ';' || r == ',':
		return 1
	case strings.HasPrefix(rest, Arrow):
		return len(Arrow)
	case r == '.':
		for _, op := range dottedOperators {
			if strings.HasPrefix(rest, op) {
				return len(op)
			}
		}
		return size
	case r == '"':
		_, second := utf8.DecodeRuneInString(rest[size:])
		if size+second < len(rest) && rest[size+second] == '"' {
			return size + second + 1
		}
		return size
	case isWordRune(r):
		n := 0
		for n < len(rest) {
			wr, ws := utf8.DecodeRuneInString(rest[n:])
			if !isWordRune(wr) {
				break
			}
			n += ws
		}
		return n
	default:
		return size
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) || r == '_'
}

// position tracks offset, line and column while walking source
type position struct {
	source string
	offset int
	line   int
	column int
}

func newPosition(source string) *position {
	return &position{source: source, line: 1, column: 1}
}

func (p *position) skipSpace() {
	for p.offset < len(p.source) {
		r, size := utf8.DecodeRuneInString(p.source[p.offset:])
		if !unicode.IsSpace(r) {
			return
		}
		p.step(r, size)
	}
}

func (p *position) advanceBytes(n int) {
	end := p.offset + n
	for p.offset < end {
		r, size := utf8.DecodeRuneInString(p.source[p.offset:])
		p.step(r, size)
	}
}

func (p *position) step(r rune, size int) {
	p.offset += size
	if r == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
}

func (p *position) token(value string) Token {
	return Token{Value: value, Offset: p.offset, Line: p.line, Column: p.column}
}

// Values returns the token texts in order
func Values(tokens []Token) []string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return values
}
