package parser

import "testing"

func TestParseModule_FunctionAndCall(t *testing.T) {
	src := `let square = fn (int x) -> int { return x * x; };
let main = fn () -> int { return square(5) + square(6); };`

	mod, errs := ParseModule("m", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(mod.Declarations) != 2 {
		t.Fatalf("len(Declarations) = %d, want 2", len(mod.Declarations))
	}
}

func TestParseModule_Template(t *testing.T) {
	src := `let abs = fn<T>(T x) -> T { if (x < 0) return -x; else return x; };
let main = fn () -> int { return abs(-7) + abs(3.0) as int; };`

	mod, errs := ParseModule("m", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(mod.Declarations) != 2 {
		t.Fatalf("len(Declarations) = %d, want 2", len(mod.Declarations))
	}
}

func TestParseModule_StructDesignatedInit(t *testing.T) {
	src := `struct Pair { int a; int b; }
let main = fn () -> int { let p = Pair{ .a = 3, .b = 4 }; return p.a * p.b; };`

	mod, errs := ParseModule("m", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(mod.Declarations) != 2 {
		t.Fatalf("len(Declarations) = %d, want 2", len(mod.Declarations))
	}
}

func TestParseModule_ForLoop(t *testing.T) {
	src := `let main = fn () -> int { let mut sum = 0; for (let i = 0; i < 10; i = i + 1) { sum = sum + i; } return sum; };`

	mod, errs := ParseModule("m", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(mod.Declarations) != 1 {
		t.Fatalf("len(Declarations) = %d, want 1", len(mod.Declarations))
	}
}

func TestParseModule_Precondition(t *testing.T) {
	src := `let f = fn (int x) -> int { precondition(x >= 0); return x; };
let main = fn () -> int { return f(-1); };`

	mod, errs := ParseModule("m", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn, ok := mod.Declarations[0].(interface{ DeclName() string })
	if !ok || fn.DeclName() != "f" {
		t.Fatalf("unexpected first declaration")
	}
}
