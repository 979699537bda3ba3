package afil_test

import (
	"fmt"
	"testing"

	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/evaluator"
	"github.com/cwbudde/afil/pkg/afil"
	"github.com/gkampitakis/go-snaps/snaps"
)

// runSource drives the full pipeline a script-file run takes: parse,
// analyse, evaluate.
func runSource(t *testing.T, name, source string) (int32, error) {
	t.Helper()
	mod, parseErrs := afil.Parse(name, source)
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	program, semErrs := afil.Analyse([]*ast.Module{mod}, []int{0}, []string{source})
	if len(semErrs) > 0 {
		t.Fatalf("semantic errors: %v", semErrs)
	}
	return afil.Run(program, afil.DefaultStackSize)
}

func TestEndToEnd_OperatorPrecedence(t *testing.T) {
	code, err := runSource(t, "precedence", `
let main = fn () -> int {
    return 2 + 3 * 4;
};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 14 {
		t.Fatalf("main() = %d, want 14", code)
	}
}

func TestEndToEnd_MutableLocalAndAssignment(t *testing.T) {
	code, err := runSource(t, "mutation", `
let main = fn () -> int {
    let mut x = 10;
    x = x + 5;
    return x * 4 - x * 1;
};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 45 {
		t.Fatalf("main() = %d, want 45", code)
	}
}

func TestEndToEnd_FunctionCallAndReturn(t *testing.T) {
	code, err := runSource(t, "call", `
let double = fn (int n) -> int {
    return n * 2;
};

let main = fn () -> int {
    return double(5);
};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 10 {
		t.Fatalf("main() = %d, want 10", code)
	}
}

func TestEndToEnd_IfElse(t *testing.T) {
	code, err := runSource(t, "branch", `
let pick = fn (bool cond) -> int {
    if (cond) {
        return 12;
    } else {
        return 99;
    }
};

let main = fn () -> int {
    return pick(true);
};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 12 {
		t.Fatalf("main() = %d, want 12", code)
	}
}

func TestEndToEnd_ForLoopAccumulation(t *testing.T) {
	code, err := runSource(t, "loop", `
let main = fn () -> int {
    let mut sum = 0;
    for (let mut i = 1; i <= 9; i = i + 1) {
        sum = sum + i;
    }
    return sum;
};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 45 {
		t.Fatalf("main() = %d, want 45", code)
	}
}

func TestEndToEnd_UnmetPrecondition(t *testing.T) {
	_, err := runSource(t, "precondition", `
let divide = fn (int a, int b) -> int {
    precondition(b != 0);
    return a / b;
};

let main = fn () -> int {
    return divide(10, 0);
};
`)
	up, ok := err.(*evaluator.UnmetPrecondition)
	if !ok {
		t.Fatalf("err = %v (%T), want *evaluator.UnmetPrecondition", err, err)
	}
	if up.PreconditionIndex != 0 {
		t.Fatalf("PreconditionIndex = %d, want 0", up.PreconditionIndex)
	}
	snaps.MatchSnapshot(t, fmt.Sprintf("unmet precondition at index %d", up.PreconditionIndex))
}
