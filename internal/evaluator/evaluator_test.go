package evaluator_test

import (
	"testing"

	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/evaluator"
	"github.com/cwbudde/afil/internal/parser"
	"github.com/cwbudde/afil/internal/semantic"
)

func compile(t *testing.T, source string) *complete.Program {
	t.Helper()
	mod, parseErrs := parser.ParseModule("test", source)
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	program, semErrs := semantic.Analyse([]*ast.Module{mod}, []string{source})
	if len(semErrs) > 0 {
		t.Fatalf("semantic errors: %v", semErrs)
	}
	return program
}

func TestRun_ReturnsMainResult(t *testing.T) {
	program := compile(t, `
let main = fn () -> int {
    return 7 * 6;
};
`)
	code, up, err := evaluator.Run(program, 2048)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up != nil {
		t.Fatalf("unexpected unmet precondition: %v", up)
	}
	if code != 42 {
		t.Fatalf("main() = %d, want 42", code)
	}
}

func TestRun_GlobalInitialisationRunsBeforeMain(t *testing.T) {
	program := compile(t, `
let offset = 100;

let main = fn () -> int {
    return offset + 1;
};
`)
	code, up, err := evaluator.Run(program, 2048)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up != nil {
		t.Fatalf("unexpected unmet precondition: %v", up)
	}
	if code != 101 {
		t.Fatalf("main() = %d, want 101", code)
	}
}

func TestRun_UnmetPreconditionIsReportedAsDistinctFromError(t *testing.T) {
	program := compile(t, `
let half = fn (int n) -> int {
    precondition(n >= 0);
    return n / 2;
};

let main = fn () -> int {
    return half(-4);
};
`)
	code, up, err := evaluator.Run(program, 2048)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up == nil {
		t.Fatalf("expected an unmet precondition, got code %d", code)
	}
	if up.PreconditionIndex != 0 {
		t.Fatalf("PreconditionIndex = %d, want 0", up.PreconditionIndex)
	}
	if up.Error() == "" {
		t.Fatalf("UnmetPrecondition.Error() returned an empty message")
	}
}

func TestEvaluateConstantExpression_FoldsLiteral(t *testing.T) {
	program := compile(t, `
let main = fn () -> int {
    return 0;
};
`)
	expr := complete.NewIntLiteral(9)
	out := make([]byte, program.TypeSize(complete.IntTypeId))
	up, err := evaluator.EvaluateConstantExpression(program, expr, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up != nil {
		t.Fatalf("unexpected unmet precondition: %v", up)
	}
	if complete.ReadInt(out) != 9 {
		t.Fatalf("out = %d, want 9", complete.ReadInt(out))
	}
}
