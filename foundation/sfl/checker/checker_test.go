// File: checker_test.go
// Title: SFL Recognizer Unit Tests
// Description: Tests the grammar, type inference rules, error kinds and
//              the preserved declaration quirk.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-04
//
// Change History:
// - 2025-02-04 v0.1.0: Initial test suite

package checker

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/msto63/sfl/foundation/sfl/lexer"
)

func check(source string) error {
	return Check(lexer.Legacy(source))
}

func TestCheck_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Kind
	}{
		{"assign integer", `start integer x ; x <- 1 ; finish`, KindNone},
		{"assign character to integer", `start integer x ; x <- "a" ; finish`, KindTypeMismatch},
		{"if without trailing semicolon", `start logical b ; if b then print 1 ; endif finish`, KindNone},
		{"relational print", `start integer x ; print x .eq. 1 finish`, KindNone},
		{"duplicate in one group", `start integer x , x ; finish`, KindRedeclared},
		{"token after finish", `start finish extra`, KindTrailingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.source)
			if got := KindOf(err); got != tt.want {
				t.Errorf("Check(%q) kind = %v, want %v (err = %v)", tt.source, got, tt.want, err)
			}
		})
	}
}

func TestCheck_Accepted(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty program", `start finish`},
		{"declarations only", `start integer a , b ; character c ; logical d ; finish`},
		{"all types", `start integer a , b ; character c ; logical d ; a <- b ; c <- "z" ; d <- a .ne. b ; finish`},
		{"fused layout", "start\ninteger x;\nx<-1;\nfinish"},
		{"if else", `start logical b ; integer x ; if b then x <- 1 else x <- 2 endif ; finish`},
		{"empty branches", `start logical b ; if b then else endif finish`},
		{"loop", `start integer x ; loopif x .lt. 10 do x <- x .plus. 1 ; endloop finish`},
		{"nested", `start logical b ; integer i ; loopif b do if i .gt. 3 then b <- .not. b ; endif ; i <- i .plus. 1 ; endloop finish`},
		{"parentheses", `start integer x ; x <- ( x .plus. 2 ) .mul. 3 ; finish`},
		{"nested parentheses", `start integer x ; x <- ( ( x ) ) ; finish`},
		{"unary minus", `start integer x ; x <- .minus. 5 ; finish`},
		{"double unary", `start integer x ; x <- .minus. .minus. x ; finish`},
		{"not on character", `start character c ; logical b ; b <- .not. c ; finish`},
		{"logical operators", `start logical a , b ; a <- a .and. b .or. .not. a ; finish`},
		{"print character", `start character c ; print c ; finish`},
		{"print logical", `start logical b ; print b ; finish`},
		{"character arithmetic", `start character c ; c <- "a" .plus. 1 ; finish`},
		{"integer then character operand", `start character c ; c <- 1 .plus. "a" ; finish`},
		{"logical stays logical", `start logical b ; b <- 1 .eq. 1 .plus. "a" ; finish`},
		{"relational on characters", `start logical b ; character c ; b <- c .eq. "x" ; finish`},
		{"last statement before finish", `start integer x ; x <- 1 finish`},
		{"loop body without semicolon", `start logical b ; loopif b do print 1 endloop ; finish`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := check(tt.source); err != nil {
				t.Errorf("Check(%q) = %v, want nil", tt.source, err)
			}
		})
	}
}

func TestCheck_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Kind
	}{
		{"empty input", ``, KindUnexpectedEOF},
		{"missing start", `integer x ; finish`, KindUnexpectedToken},
		{"missing finish", `start integer x ;`, KindUnexpectedEOF},
		{"missing finish after statement", `start integer x ; x <- 1 ;`, KindUnexpectedEOF},
		{"semicolon after finish", `start finish ;`, KindTrailingInput},
		{"second program", `start finish start finish`, KindTrailingInput},
		{"redeclared across groups", `start integer x ; logical x ; finish`, KindRedeclared},
		{"keyword as identifier", `start integer then ; finish`, KindUnexpectedToken},
		{"digit first identifier", `start integer 1x ; finish`, KindUnexpectedToken},
		{"missing identifier", `start integer ; finish`, KindUnexpectedToken},
		{"identifier at end", `start integer`, KindUnexpectedEOF},
		{"missing declaration semicolon", `start integer x finish`, KindUnexpectedToken},
		{"missing statement semicolon", `start integer x ; x <- 1 x <- 2 ; finish`, KindUnexpectedToken},
		{"integer condition", `start integer x ; if x then print 1 ; endif finish`, KindTypeMismatch},
		{"character condition", `start if "a" then endif finish`, KindTypeMismatch},
		{"integer loop condition", `start integer x ; loopif x do print x ; endloop finish`, KindTypeMismatch},
		{"missing then", `start logical b ; if b print 1 ; endif finish`, KindUnexpectedToken},
		{"missing endif", `start logical b ; if b then print 1 ; finish`, KindUnexpectedToken},
		{"missing do", `start logical b ; loopif b print 1 ; endloop finish`, KindUnexpectedToken},
		{"missing endloop", `start logical b ; loopif b do print 1 ; finish`, KindUnexpectedToken},
		{"undeclared target", `start x <- 1 ; finish`, KindUndeclared},
		{"undeclared operand", `start integer x ; x <- y ; finish`, KindUndeclared},
		{"undeclared in condition", `start if b then endif finish`, KindUndeclared},
		{"undeclared in print", `start print y ; finish`, KindUndeclared},
		{"character variable to integer", `start integer x ; character c ; x <- c .plus. 1 ; finish`, KindTypeMismatch},
		{"logical to integer", `start integer x ; x <- x .lt. 1 ; finish`, KindTypeMismatch},
		{"integer to logical", `start logical b ; b <- 1 ; finish`, KindTypeMismatch},
		{"integer to character", `start character c ; c <- 1 ; finish`, KindTypeMismatch},
		{"missing term", `start integer x ; x <- ; finish`, KindUnexpectedToken},
		{"keyword as term", `start integer x ; x <- finish`, KindUnexpectedToken},
		{"term at end", `start integer x ; x <-`, KindUnexpectedEOF},
		{"operator at end", `start print 1 .plus.`, KindUnexpectedEOF},
		{"unclosed parenthesis", `start integer x ; x <- ( x .plus. 2 ; finish`, KindUnexpectedToken},
		{"stray token", `start integer x ; 5 finish`, KindUnexpectedToken},
		{"identifier split by lexer", `start integer todo ; finish`, KindUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.source)
			if err == nil {
				t.Fatalf("Check(%q) = nil, want %v", tt.source, tt.want)
			}
			if got := KindOf(err); got != tt.want {
				t.Errorf("Check(%q) kind = %v, want %v (err = %v)", tt.source, got, tt.want, err)
			}
		})
	}
}

func TestCheck_ScanningLexerKeepsIdentifiers(t *testing.T) {
	source := `start integer todo ; todo <- 1 ; finish`

	if err := Check(lexer.Scan(source)); err != nil {
		t.Errorf("Check(Scan(%q)) = %v, want nil", source, err)
	}
	if err := Check(lexer.Legacy(source)); err == nil {
		t.Errorf("Check(Legacy(%q)) = nil, want error", source)
	}
}

func TestRecognizer_RedeclarationOverwritesType(t *testing.T) {
	r := New(lexer.Legacy(`start integer x ; logical x ; finish`))

	if err := r.Check(); KindOf(err) != KindRedeclared {
		t.Fatalf("Check() = %v, want %v", err, KindRedeclared)
	}
	if got := r.Symbols()["x"]; got != Logical {
		t.Errorf("Symbols()[x] = %v, want %v", got, Logical)
	}
}

func TestRecognizer_Symbols(t *testing.T) {
	r := New(lexer.Legacy(`start integer a , b ; character c ; logical d ; finish`))
	if err := r.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}

	want := map[string]Type{"a": Integer, "b": Integer, "c": Character, "d": Logical}
	got := r.Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols() = %v, want %v", got, want)
	}
	for name, typ := range want {
		if got[name] != typ {
			t.Errorf("Symbols()[%s] = %v, want %v", name, got[name], typ)
		}
	}

	got["z"] = Integer
	if _, ok := r.Symbols()["z"]; ok {
		t.Error("Symbols() must return a copy")
	}
}

func TestRecognizer_Position(t *testing.T) {
	tests := []struct {
		source string
		want   int
	}{
		{`start integer x ; x <- 1 ; finish`, 9},
		{`start finish extra`, 2},
		{`start integer x , x ; finish`, 5},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			r := New(lexer.Legacy(tt.source))
			_ = r.Check()
			if got := r.Position(); got != tt.want {
				t.Errorf("Position() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecognizer_CheckIsRepeatable(t *testing.T) {
	r := New(lexer.Legacy(`start integer x ; x <- 1 ; finish`))
	for i := 0; i < 3; i++ {
		if err := r.Check(); err != nil {
			t.Fatalf("Check() run %d = %v", i, err)
		}
	}
	if got := len(r.Symbols()); got != 1 {
		t.Errorf("len(Symbols()) = %d, want 1", got)
	}
}

func TestError_Details(t *testing.T) {
	err := check(`start integer x ; x <- "a" ; finish`)

	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not *Error", err)
	}
	if ce.Index != 4 {
		t.Errorf("Index = %d, want 4", ce.Index)
	}
	if ce.Token.Value != "x" {
		t.Errorf("Token = %v, want x", ce.Token)
	}
	if !strings.Contains(ce.Error(), "type_mismatch") {
		t.Errorf("Error() = %q, want kind name", ce.Error())
	}

	eof := check(`start`)
	if !errors.As(eof, &ce) {
		t.Fatalf("error %v is not *Error", eof)
	}
	if ce.Token.Value != "" || ce.Index != 1 {
		t.Errorf("EOF error = %+v, want zero token at index 1", ce)
	}
}

func TestKindOf(t *testing.T) {
	base := &Error{Kind: KindUndeclared}

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"foreign", errors.New("other"), KindNone},
		{"direct", base, KindUndeclared},
		{"wrapped", fmt.Errorf("check: %w", base), KindUndeclared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := KindTrailingInput.String(); got != "trailing_input" {
		t.Errorf("String() = %q, want trailing_input", got)
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q, want kind(99)", got)
	}
	if got := Character.String(); got != "character" {
		t.Errorf("Type.String() = %q, want character", got)
	}
}
