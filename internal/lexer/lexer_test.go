package lexer

import (
	"testing"

	"github.com/arnegard/flux/internal/token"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `var a = 1;
if (a >= 10 and a != 2) {
  print a;
}
`

	tests := []token.Token{
		{Type: token.Var, Literal: "var"},
		{Type: token.Identifier, Literal: "a"},
		{Type: token.Equal, Literal: "="},
		{Type: token.Number, Literal: "1"},
		{Type: token.Semicolon, Literal: ";"},
		{Type: token.If, Literal: "if"},
		{Type: token.LParen, Literal: "("},
		{Type: token.Identifier, Literal: "a"},
		{Type: token.GreaterEqual, Literal: ">="},
		{Type: token.Number, Literal: "10"},
		{Type: token.And, Literal: "and"},
		{Type: token.Identifier, Literal: "a"},
		{Type: token.BangEqual, Literal: "!="},
		{Type: token.Number, Literal: "2"},
		{Type: token.RParen, Literal: ")"},
		{Type: token.LBrace, Literal: "{"},
		{Type: token.Print, Literal: "print"},
		{Type: token.Identifier, Literal: "a"},
		{Type: token.Semicolon, Literal: ";"},
		{Type: token.RBrace, Literal: "}"},
		{Type: token.Eof, Literal: ""},
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected.Type || tok.Literal != expected.Literal {
			t.Fatalf("token %d: expected %v %q, got %v %q", i, expected.Type, expected.Literal, tok.Type, tok.Literal)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	l := New("123 45.67 0")
	want := []string{"123", "45.67", "0"}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != token.Number || tok.Literal != w {
			t.Fatalf("number %d: expected %q, got %v %q", i, w, tok.Type, tok.Literal)
		}
	}
	if eof := l.NextToken(); eof.Type != token.Eof {
		t.Fatalf("expected Eof, got %v", eof.Type)
	}
}

func TestLexerStrings(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != token.String || tok.Literal != `"hello world"` {
		t.Fatalf("expected quoted string literal, got %v %q", tok.Type, tok.Literal)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok := l.NextToken()
	if tok.Type != token.Error {
		t.Fatalf("expected Error token, got %v", tok.Type)
	}
	if tok.Literal != "Unterminated string." {
		t.Fatalf("unexpected error message: %q", tok.Literal)
	}
}

func TestLexerLineComments(t *testing.T) {
	l := New("// a comment\nvar")
	tok := l.NextToken()
	if tok.Type != token.Var {
		t.Fatalf("expected Var after comment, got %v", tok.Type)
	}
	if tok.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Line)
	}
}

func TestLexerNonASCIIProducesError(t *testing.T) {
	l := New("\xC3\xA9")
	tok := l.NextToken()
	if tok.Type != token.Error {
		t.Fatalf("expected Error token for non-ASCII byte, got %v", tok.Type)
	}
}

func TestLexerEofIsRepeatable(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != token.Eof {
			t.Fatalf("call %d: expected Eof, got %v", i, tok.Type)
		}
	}
}
