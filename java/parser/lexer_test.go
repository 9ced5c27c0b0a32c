package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("class Foo {}"), "Test.java")
	pos := lexer.Position()

	if pos.File != "Test.java" {
		t.Errorf("File = %q, want %q", pos.File, "Test.java")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
}

func lexKinds(input string) []TokenKind {
	lexer := NewLexer([]byte(input), "test.java")
	var got []TokenKind
	for {
		tok := lexer.NextToken()
		if tok.Kind != TokenWhitespace && tok.Kind != TokenComment && tok.Kind != TokenLineComment {
			got = append(got, tok.Kind)
		}
		if tok.Kind == TokenEOF {
			return got
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0xFFL", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1e10", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"2.5f", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{"'\\n'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{"\"\"\"\nHello world\"\"\"", []TokenKind{TokenTextBlock, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"List<Map<K, V>>", []TokenKind{TokenIdent, TokenLT, TokenIdent, TokenLT, TokenIdent, TokenComma, TokenIdent, TokenGT, TokenGT, TokenEOF}},
		{"a >>= b", []TokenKind{TokenIdent, TokenGT, TokenGT, TokenAssign, TokenIdent, TokenEOF}},
		{"x -> y", []TokenKind{TokenIdent, TokenOperator, TokenIdent, TokenEOF}},
		{"-1", []TokenKind{TokenMinus, TokenIntLiteral, TokenEOF}},
		{"String...", []TokenKind{TokenIdent, TokenEllipsis, TokenEOF}},
		{"@Override", []TokenKind{TokenAt, TokenIdent, TokenEOF}},
		{"? extends T & U", []TokenKind{TokenQuestion, TokenExtends, TokenIdent, TokenAmp, TokenIdent, TokenEOF}},
		{"non-sealed", []TokenKind{TokenNonSealed, TokenEOF}},
		{"non-sealedX", []TokenKind{TokenIdent, TokenMinus, TokenIdent, TokenEOF}},
		{"record Point", []TokenKind{TokenRecord, TokenIdent, TokenEOF}},
		{"if return this", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
		{"café", []TokenKind{TokenIdent, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lexKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerUnterminated(t *testing.T) {
	tests := []string{
		"/** never closed",
		"\"open string",
		"\"\"\"\nopen text block",
		"'x",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			got := lexKinds(input)
			if got[0] != TokenError {
				t.Errorf("got %v, want Error first", got)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("class\n  Foo"), "")
	lexer.NextToken() // class
	lexer.NextToken() // whitespace
	tok := lexer.NextToken()

	if tok.Literal != "Foo" {
		t.Fatalf("got %q, want %q", tok.Literal, "Foo")
	}
	if tok.Span.Start.Line != 2 || tok.Span.Start.Column != 3 {
		t.Errorf("got %s, want 2:3", tok.Span.Start)
	}
	if tok.Span.End.Offset != 11 {
		t.Errorf("End.Offset = %d, want 11", tok.Span.End.Offset)
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"int", TokenInt},
		{"null", TokenNull},
		{"permits", TokenPermits},
		{"Class", TokenIdent},
		{"goto", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.kind {
				t.Errorf("got %v, want %v", got, tt.kind)
			}
		})
	}
}
