package semantic

import (
	"testing"

	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/complete"
	"github.com/cwbudde/afil/internal/parser"
)

func analyse(t *testing.T, src string) *complete.Program {
	t.Helper()
	mod, perrs := parser.ParseModule("m", src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	prog, errs := Analyse([]*ast.Module{mod}, []string{src})
	if len(errs) != 0 {
		t.Fatalf("unexpected analysis errors: %v", errs)
	}
	return prog
}

func TestAnalyse_FunctionAndCall(t *testing.T) {
	src := `let square = fn (int x) -> int { return x * x; };
let main = fn () -> int { return square(5) + square(6); };`

	prog := analyse(t, src)
	if !prog.MainFunction.IsValid() {
		t.Fatalf("main not resolved")
	}
	if len(prog.Functions) != 2 {
		t.Fatalf("len(Functions) = %d, want 2", len(prog.Functions))
	}
	main := prog.Functions[prog.MainFunction.Index]
	if main.ReturnType.Value() != complete.IntTypeId {
		t.Fatalf("main return type = %v, want int", main.ReturnType)
	}
}

func TestAnalyse_TemplateInstantiation(t *testing.T) {
	src := `let abs = fn<T>(T x) -> T { if (x < 0) return -x; else return x; };
let main = fn () -> int { return abs(-7) + abs(3.0) as int; };`

	prog := analyse(t, src)
	if !prog.MainFunction.IsValid() {
		t.Fatalf("main not resolved")
	}
	if len(prog.FunctionTemplates) != 1 {
		t.Fatalf("len(FunctionTemplates) = %d, want 1", len(prog.FunctionTemplates))
	}
	// abs<int> and abs<float> are two distinct instantiations, plus main.
	instantiated := 0
	for _, fn := range prog.Functions {
		if fn.ABIName == "abs" {
			instantiated++
		}
	}
	if instantiated != 2 {
		t.Fatalf("instantiated abs functions = %d, want 2", instantiated)
	}
}

func TestAnalyse_TemplateInstantiation_Deduplicated(t *testing.T) {
	src := `let identity = fn<T>(T x) -> T { return x; };
let main = fn () -> int { return identity(1) + identity(2); };`

	prog := analyse(t, src)
	instantiated := 0
	for _, fn := range prog.Functions {
		if fn.ABIName == "identity" {
			instantiated++
		}
	}
	if instantiated != 1 {
		t.Fatalf("identity should be instantiated exactly once for two int calls, got %d", instantiated)
	}
}

func TestAnalyse_StructDesignatedInit(t *testing.T) {
	src := `struct Pair { int a; int b; }
let main = fn () -> int { let p = Pair{ .a = 3, .b = 4 }; return p.a * p.b; };`

	prog := analyse(t, src)
	if len(prog.Structs) != 1 {
		t.Fatalf("len(Structs) = %d, want 1", len(prog.Structs))
	}
	s := prog.Structs[0]
	if len(s.Members) != 2 || s.Members[0].Name != "a" || s.Members[1].Name != "b" {
		t.Fatalf("unexpected member layout: %+v", s.Members)
	}
	if !s.IsTrivial() {
		t.Fatalf("Pair{int,int} should be trivially destructible")
	}
}

func TestAnalyse_ForLoopMutation(t *testing.T) {
	src := `let main = fn () -> int { let mut sum = 0; for (let i = 0; i < 10; i = i + 1) { sum = sum + i; } return sum; };`

	prog := analyse(t, src)
	main := prog.Functions[prog.MainFunction.Index]
	if len(main.Statements) != 3 {
		t.Fatalf("len(main.Statements) = %d, want 3 (decl, for, return)", len(main.Statements))
	}
	if _, ok := main.Statements[1].(*complete.ForStatement); !ok {
		t.Fatalf("main.Statements[1] = %T, want *complete.ForStatement", main.Statements[1])
	}
}

func TestAnalyse_Precondition(t *testing.T) {
	src := `let f = fn (int x) -> int { precondition(x >= 0); return x; };
let main = fn () -> int { return f(-1); };`

	prog := analyse(t, src)
	var f complete.Function
	for _, fn := range prog.Functions {
		if fn.ABIName == "f" {
			f = fn
		}
	}
	if len(f.Preconditions) != 1 {
		t.Fatalf("len(f.Preconditions) = %d, want 1", len(f.Preconditions))
	}
	if f.Preconditions[0].ResultType().Value() != complete.BoolTypeId {
		t.Fatalf("precondition result type = %v, want bool", f.Preconditions[0].ResultType())
	}
}

func TestAnalyse_NestedStructsStayTrivialWithoutExplicitDestructorSyntax(t *testing.T) {
	// This grammar has no syntax for declaring a destructor, so no leaf
	// type is ever non-trivial and synthesizeSpecialMembers never needs
	// to fire; a struct-of-structs is still trivial all the way down.
	src := `struct Inner { int a; }
struct Outer { Inner first; int tag; }
let main = fn () -> int { let o = Outer{ .first = Inner{ .a = 1 }, .tag = 2 }; return o.tag; };`

	prog := analyse(t, src)
	for _, s := range prog.Structs {
		if !s.IsTrivial() {
			t.Fatalf("unexpected non-trivial struct with no non-trivial members: %+v", s)
		}
	}
}

func TestAnalyse_UnknownIdentifierReportsError(t *testing.T) {
	src := `let main = fn () -> int { return nonexistent; };`

	mod, perrs := parser.ParseModule("m", src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	_, errs := Analyse([]*ast.Module{mod}, []string{src})
	if len(errs) == 0 {
		t.Fatalf("expected an unknown-identifier error")
	}
}

func TestAnalyse_BreakOutsideLoopReportsError(t *testing.T) {
	src := `let main = fn () -> int { break; return 0; };`

	mod, perrs := parser.ParseModule("m", src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	_, errs := Analyse([]*ast.Module{mod}, []string{src})
	if len(errs) == 0 {
		t.Fatalf("expected a break-outside-loop error")
	}
}
