package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let main = fn () -> int { return 2 + 3 * 4; };`

	want := []struct {
		t TokenType
		l string
	}{
		{LET, "let"},
		{IDENT, "main"},
		{ASSIGN, "="},
		{FN, "fn"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{ARROW, "->"},
		{IDENT, "int"},
		{LBRACE, "{"},
		{RETURN, "return"},
		{INT, "2"},
		{PLUS, "+"},
		{INT, "3"},
		{STAR, "*"},
		{INT, "4"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt.t {
			t.Fatalf("token %d: type = %v, want %v (literal %q)", i, tok.Type, tt.t, tok.Literal)
		}
		if tok.Literal != tt.l {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, tt.l)
		}
	}
}

func TestNextToken_SpaceshipAndRelational(t *testing.T) {
	input := `<=> <= >= != == < >`
	want := []TokenType{SPACESHIP, LT_EQ, GT_EQ, NOT_EQ, EQ, LT, GT, EOF}

	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: type = %v, want %v", i, tok.Type, tt)
		}
	}
}

func TestNextToken_Positions(t *testing.T) {
	input := "let a\n= 1;"
	l := New(input)

	tok := l.NextToken() // let
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("let pos = %+v, want {1 1}", tok.Pos)
	}
	l.NextToken() // a
	tok = l.NextToken() // =
	if tok.Pos.Line != 2 {
		t.Fatalf("= pos.Line = %d, want 2", tok.Pos.Line)
	}
}

func TestNextToken_StringAndChar(t *testing.T) {
	l := New(`"hi\n" 'a'`)
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hi\n" {
		t.Fatalf("string token = %+v", tok)
	}
	tok = l.NextToken()
	if tok.Type != CHAR || tok.Literal != "a" {
		t.Fatalf("char token = %+v", tok)
	}
}
