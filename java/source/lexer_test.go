package source

import (
	"testing"
)

func kinds(src string, markdown bool) []TokenKind {
	l := NewLexer([]rune(src), markdown)
	var out []TokenKind
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return out
		}
		if tok.Kind == TokenWhitespace {
			continue
		}
		out = append(out, tok.Kind)
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenKind
	}{
		{"class A {}", []TokenKind{TokenClass, TokenIdent, TokenLBrace, TokenRBrace}},
		{"@interface B;", []TokenKind{TokenAt, TokenInterface, TokenIdent, TokenSemicolon}},
		{"enum E", []TokenKind{TokenEnum, TokenIdent}},
		{"x = 1.5e-3f;", []TokenKind{TokenIdent, TokenOperator, TokenNumber, TokenSemicolon}},
		{`"a\"b" 'c'`, []TokenKind{TokenStringLiteral, TokenCharLiteral}},
		{"\"\"\"\n  text \"\"\" x", []TokenKind{TokenTextBlock, TokenIdent}},
		{"/* c */ /** d */ /**/", []TokenKind{TokenComment, TokenDocComment, TokenComment}},
		{"// line\nFoo.class", []TokenKind{TokenLineComment, TokenIdent, TokenDot, TokenClass}},
		{"m(a...)", []TokenKind{TokenIdent, TokenLParen, TokenIdent, TokenOperator, TokenRParen}},
		{"/* open", []TokenKind{TokenError}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kinds(tt.input, true)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerMarkdownRun(t *testing.T) {
	src := "/// one\n  /// two\n\n/// three\n"
	l := NewLexer([]rune(src), true)

	tok := l.NextToken()
	if tok.Kind != TokenMarkdownComment {
		t.Fatalf("Kind = %s, want MarkdownComment", tok.Kind)
	}
	if tok.Literal != "/// one\n  /// two\n" {
		t.Errorf("Literal = %q", tok.Literal)
	}
	if tok := l.NextToken(); tok.Kind != TokenWhitespace {
		t.Fatalf("a blank line ends the run, got %s", tok.Kind)
	}
	if tok := l.NextToken(); tok.Kind != TokenMarkdownComment || tok.Span.Start.Line != 4 {
		t.Errorf("expected a second run on line 4, got %s at line %d", tok.Kind, tok.Span.Start.Line)
	}

	if got := kinds(src, false); len(got) != 3 || got[0] != TokenLineComment {
		t.Errorf("without markdown expected 3 line comments, got %v", got)
	}
}

func TestLexerPosition(t *testing.T) {
	l := NewLexer([]rune("a\n  b"), false)
	l.NextToken()
	l.NextToken()
	tok := l.NextToken()
	if tok.Span.Start.Line != 2 || tok.Span.Start.Column != 3 || tok.Span.Start.Offset != 4 {
		t.Errorf("position = %+v, want line 2 column 3 offset 4", tok.Span.Start)
	}
}
