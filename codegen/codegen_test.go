package codegen

import (
	"testing"

	"github.com/launix-de/awkjit/runtime"
	"github.com/launix-de/awkjit/scope"
	"github.com/launix-de/awkjit/typedast"
	"github.com/launix-de/awkjit/value"
)

func newTestCompiler(t *testing.T, prog typedast.Program) (*Compiler, *runtime.TestHost) {
	t.Helper()
	pre := Prescan(prog.Body)
	sc := scope.NewTable(len(pre.Vars) + len(pre.Literals))
	host := runtime.NewTestHost(nil)
	c := NewCompiler(sc, host)
	c.BindVars(pre.Vars)
	c.BindLiterals(pre.Literals)
	return c, host
}

// Scenario 1: BEGIN { print 1+2 } → "3\n"
func TestScenarioPrintArith(t *testing.T) {
	prog := typedast.Program{Body: typedast.Print{E: typedast.NewArith(typedast.Add, typedast.Number(1), typedast.Number(2))}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	if host.Output.String() != "3\n" {
		t.Fatalf("want 3\\n, got %q", host.Output.String())
	}
}

// Scenario 3: BEGIN { a="hi"; a = a " there"; print a } → "hi there\n"
func TestScenarioStringConcatAssign(t *testing.T) {
	prog := typedast.Program{Body: typedast.Group{Stmts: []typedast.Stmt{
		typedast.ExprStmt{E: typedast.NewAssign("a", typedast.String("hi"), value.TString)},
		typedast.ExprStmt{E: typedast.NewAssign("a", typedast.NewConcat(
			typedast.VarRef("a", value.TString), typedast.String(" there"),
		), value.TString)},
		typedast.Print{E: typedast.VarRef("a", value.TString)},
	}}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	if host.Output.String() != "hi there\n" {
		t.Fatalf("want \"hi there\\n\", got %q", host.Output.String())
	}
}

// Scenario 4: BEGIN { if (0) print "no"; else print "yes" } → "yes\n"
func TestScenarioIfElse(t *testing.T) {
	prog := typedast.Program{Body: typedast.If{
		Cond: typedast.Number(0),
		Then: typedast.Print{E: typedast.String("no")},
		Else: typedast.Print{E: typedast.String("yes")},
	}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	if host.Output.String() != "yes\n" {
		t.Fatalf("want yes\\n, got %q", host.Output.String())
	}
}

// Scenario 5: BEGIN { x=0; while (x<3) { print x; x=x+1 } } → "0\n1\n2\n"
func TestScenarioWhileLoop(t *testing.T) {
	prog := typedast.Program{Body: typedast.Group{Stmts: []typedast.Stmt{
		typedast.ExprStmt{E: typedast.NewAssign("x", typedast.Number(0), value.TFloat)},
		typedast.While{
			Cond: typedast.NewCompare(value.OpLt, typedast.VarRef("x", value.TFloat), typedast.Number(3)),
			Body: typedast.Group{Stmts: []typedast.Stmt{
				typedast.Print{E: typedast.VarRef("x", value.TFloat)},
				typedast.ExprStmt{E: typedast.NewAssign("x", typedast.NewArith(typedast.Add, typedast.VarRef("x", value.TFloat), typedast.Number(1)), value.TFloat)},
			}},
		},
	}}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	if host.Output.String() != "0\n1\n2\n" {
		t.Fatalf("want 0\\n1\\n2\\n, got %q", host.Output.String())
	}
}

// Scenario 6: BEGIN { print length("abcd") } → "4\n"
func TestScenarioLengthBuiltin(t *testing.T) {
	prog := typedast.Program{Body: typedast.Print{E: typedast.NewBuiltin("length", value.TFloat, typedast.String("abcd"))}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	if host.Output.String() != "4\n" {
		t.Fatalf("want 4\\n, got %q", host.Output.String())
	}
}

// Boundary: 0 && f() must not evaluate f() (short-circuit, invariant 4).
func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	prog := typedast.Program{Body: typedast.ExprStmt{E: typedast.NewLogical(true,
		typedast.Number(0),
		typedast.NewBuiltin("length", value.TFloat, typedast.String("side-effect")),
	)}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	for _, call := range host.Log {
		if call == "length" {
			t.Fatal("right-hand side of && must not be evaluated when left is falsy")
		}
	}
}

// Invariant 1: string balance for a program holding a live string in a slot.
func TestStringBalanceWithLiveVariable(t *testing.T) {
	prog := typedast.Program{Body: typedast.Group{Stmts: []typedast.Stmt{
		typedast.ExprStmt{E: typedast.NewAssign("a", typedast.String("hi"), value.TString)},
	}}}
	pre := Prescan(prog.Body)
	sc := scope.NewTable(len(pre.Vars) + len(pre.Literals))
	host := runtime.NewTestHost(nil)
	c := NewCompiler(sc, host)
	c.BindVars(pre.Vars)
	c.BindLiterals(pre.Literals)
	run := c.Compile(prog)
	run()
	// "a" now holds one live String reference that was never freed — the
	// pseudo-variable literal's own refcount isn't counted here.
	liveStrings := 0
	for _, name := range sc.Names() {
		e, _ := sc.Lookup(name)
		v := e.Slot.Load()
		if v.Tag == value.StringTag && name == "a" {
			liveStrings++
		}
	}
	if host.StringsOut != host.StringsIn+liveStrings {
		t.Fatalf("imbalance: out=%d in=%d live=%d", host.StringsOut, host.StringsIn, liveStrings)
	}
}

// Invariant 2: the epilogue drops every variable slot's String exactly once.
func TestEpilogueReleasesAllVariableSlots(t *testing.T) {
	prog := typedast.Program{Body: typedast.ExprStmt{E: typedast.NewAssign("a", typedast.String("hi"), value.TString)}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	freed := 0
	c.Scope.ReleaseAll(func(p *value.Str) { freed++; host.FreeString(p) })
	if freed != 1 {
		t.Fatalf("want exactly one slot released, got %d", freed)
	}
}

func TestArrayAssignThenRead(t *testing.T) {
	prog := typedast.Program{Body: typedast.Group{Stmts: []typedast.Stmt{
		typedast.ExprStmt{E: typedast.NewArrayWrite(0, []typedast.Expr{typedast.String("k")}, typedast.Number(5))},
		typedast.Print{E: typedast.NewArrayRead(0, []typedast.Expr{typedast.String("k")})},
	}}}
	c, host := newTestCompiler(t, prog)
	run := c.Compile(prog)
	run()
	if host.Output.String() != "5\n" {
		t.Fatalf("want 5\\n, got %q", host.Output.String())
	}
}
