package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/afil/internal/lexer"
)

func TestSyntaxError_Format(t *testing.T) {
	tests := []struct {
		name        string
		pos         lexer.Position
		message     string
		source      string
		file        string
		wantContain []string
	}{
		{
			name:    "simple error with file",
			pos:     lexer.Position{Line: 1, Column: 10},
			message: "unknown identifier 'x'",
			source:  "let y = x + 5;",
			file:    "test.afil",
			wantContain: []string{
				"Error in test.afil:1:10",
				"   1 | let y = x + 5;",
				"^",
				"unknown identifier 'x'",
			},
		},
		{
			name:    "error without file",
			pos:     lexer.Position{Line: 2, Column: 3},
			message: "type mismatch",
			source:  "let a = 1;\nlet bb = true;",
			file:    "",
			wantContain: []string{
				"Error at line 2:3",
				"   2 | let bb = true;",
				"type mismatch",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSyntaxError(tt.pos, tt.file, tt.source, KindTypeMismatch, "%s", tt.message)
			out := err.Format(false)
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("Format() = %q, want substring %q", out, want)
				}
			}
		})
	}
}

func TestPartialSyntaxError_WithPosition(t *testing.T) {
	partial := NewPartialSyntaxError(KindUnknownIdentifier, "unknown identifier %q", "foo")
	full := partial.WithPosition(lexer.Position{Line: 4, Column: 2}, "m.afil", "a\nb\nc\nd")

	if full.Kind != KindUnknownIdentifier {
		t.Errorf("Kind = %v, want %v", full.Kind, KindUnknownIdentifier)
	}
	if !strings.Contains(full.Error(), `unknown identifier "foo"`) {
		t.Errorf("Error() = %q, missing message", full.Error())
	}
	if full.Pos.Line != 4 {
		t.Errorf("Pos.Line = %d, want 4", full.Pos.Line)
	}
}

func TestFormatAll(t *testing.T) {
	one := NewSyntaxError(lexer.Position{Line: 1, Column: 1}, "a.afil", "x", KindMissing, "missing ;")
	two := NewSyntaxError(lexer.Position{Line: 2, Column: 1}, "a.afil", "x", KindMissing, "missing }")

	out := FormatAll([]*SyntaxError{one, two}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("FormatAll() = %q, want error count header", out)
	}
	if !strings.Contains(out, "missing ;") || !strings.Contains(out, "missing }") {
		t.Errorf("FormatAll() = %q, missing one of the two messages", out)
	}
}
