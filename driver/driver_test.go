package driver

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/launix-de/awkjit/runtime"
	"github.com/launix-de/awkjit/typedast"
	"github.com/launix-de/awkjit/value"
)

// End-to-end scenario 1: BEGIN { print 1+2 } → "3\n"
func TestRunPrintArith(t *testing.T) {
	host := runtime.NewTestHost(nil)
	prog := typedast.Program{Body: typedast.Print{E: typedast.NewArith(typedast.Add, typedast.Number(1), typedast.Number(2))}}
	res := Run(host, prog, Options{})
	if host.Output.String() != "3\n" {
		t.Fatalf("want 3\\n, got %q", host.Output.String())
	}
	if res.RunID.String() == "" {
		t.Fatal("expected a non-empty run id")
	}
}

// End-to-end scenario 2: { print $1 } over two records → "a\nc\n"
func TestRunColumnOverRecords(t *testing.T) {
	host := runtime.NewTestHost([]string{"a b", "c d"})
	body := typedast.While{
		Cond: typedast.NewNextLineCall(),
		Body: typedast.Print{E: typedast.NewColumn(typedast.Number(1))},
	}
	Run(host, typedast.Program{Body: body}, Options{})
	if host.Output.String() != "a\nc\n" {
		t.Fatalf("want a\\nc\\n, got %q", host.Output.String())
	}
}

func TestRunEpilogueLeavesNoLiveStrings(t *testing.T) {
	host := runtime.NewTestHost(nil)
	prog := typedast.Program{Body: typedast.ExprStmt{
		E: typedast.NewAssign("a", typedast.String("hi"), value.TString),
	}}
	res := Run(host, prog, Options{})
	e, _ := res.Scope.Lookup("a")
	if e.Slot.Load().Ptr != nil {
		t.Fatal("epilogue must have released variable a's string")
	}
}

func TestRunTraceWritesOneLine(t *testing.T) {
	host := runtime.NewTestHost(nil)
	var out strings.Builder
	prog := typedast.Program{Body: typedast.Print{E: typedast.Number(1)}}
	Run(host, prog, Options{Trace: true, TraceOut: &out})
	if !strings.Contains(out.String(), "vars=0") {
		t.Fatalf("expected trace line mentioning vars=0, got %q", out.String())
	}
}

func TestRunDumpCompressesLargeTrace(t *testing.T) {
	host := runtime.NewTestHost(nil)
	var sunk []byte
	var wasCompressed bool
	stmts := make([]typedast.Stmt, 0, 200)
	for i := 0; i < 200; i++ {
		stmts = append(stmts, typedast.ExprStmt{E: typedast.Number(float64(i))})
	}
	prog := typedast.Program{Body: typedast.Group{Stmts: stmts}}
	Run(host, prog, Options{
		Dump:                  true,
		DumpCompressThreshold: 16,
		DumpSink: func(runID uuid.UUID, raw []byte, compressed bool) {
			sunk = raw
			wasCompressed = compressed
		},
	})
	if len(sunk) == 0 {
		t.Fatal("expected DumpSink to receive bytes")
	}
	if !wasCompressed {
		t.Fatal("expected a trace above DumpCompressThreshold to be lz4-compressed")
	}
}
