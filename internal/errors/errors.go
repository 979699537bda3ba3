// Package errors formats compiler diagnostics with source context —
// file:line:column, the offending source line, and a caret — and defines
// the two analysis-error axis types: SyntaxError, attached to
// a source span, and PartialSyntaxError, the same payload before a span has
// been attached (used internally while an error still needs to be
// associated with the expression/statement that triggered it).
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/afil/internal/lexer"
)

// Kind categorises an analysis error for tooling and tests.
type Kind string

const (
	KindUnexpected           Kind = "unexpected-token"
	KindMissing              Kind = "missing"
	KindInvalid              Kind = "invalid"
	KindUnknownIdentifier    Kind = "unknown-identifier"
	KindTypeMismatch         Kind = "type-mismatch"
	KindAmbiguousOverload    Kind = "ambiguous-overload"
	KindNoViableOverload     Kind = "no-viable-overload"
	KindConceptNotSatisfied  Kind = "concept-not-satisfied"
	KindNotConstantSize      Kind = "array-size-not-constant"
	KindNotConstantExpr      Kind = "not-a-constant-expression"
	KindRecursiveType        Kind = "recursive-type-without-indirection"
	KindDesignatedInitError  Kind = "designated-initializer-error"
	KindTemplateDeduction    Kind = "template-deduction-failed"
)

// SyntaxError is an analysis error attributable to source, carrying a
// source span. It implements error.
type SyntaxError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewSyntaxError builds a SyntaxError with an already-formatted message.
func NewSyntaxError(pos lexer.Position, file, source string, kind Kind, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Source:  source,
		File:    file,
		Pos:     pos,
	}
}

func (e *SyntaxError) Error() string { return e.Format(false) }

// Format renders the diagnostic with source context. If colour is true,
// ANSI codes highlight the caret and the message.
func (e *SyntaxError) Format(colour bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(e.Pos.Column-1, 0)))
		if colour {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if colour {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if colour {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if colour {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *SyntaxError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// PartialSyntaxError is a SyntaxError not yet attached to the source span
// that will ultimately be reported; it is returned by analyser helpers
// that don't have position information in scope (e.g. a type-resolution
// helper working purely on TypeId) and completed by the caller via
// WithPosition before it escapes the analyser.
type PartialSyntaxError struct {
	Kind    Kind
	Message string
}

func NewPartialSyntaxError(kind Kind, format string, args ...any) *PartialSyntaxError {
	return &PartialSyntaxError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *PartialSyntaxError) Error() string { return fmt.Sprintf("[%s] %s", e.Kind, e.Message) }

// WithPosition completes a PartialSyntaxError into a reportable SyntaxError.
func (e *PartialSyntaxError) WithPosition(pos lexer.Position, file, source string) *SyntaxError {
	return &SyntaxError{Kind: e.Kind, Message: e.Message, Source: source, File: file, Pos: pos}
}

// FormatAll renders a batch of diagnostics, numbered when there is more than one.
func FormatAll(errs []*SyntaxError, colour bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(colour)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(colour))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
