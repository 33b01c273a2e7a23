package scope

import (
	"testing"

	"github.com/launix-de/awkjit/value"
)

func TestDeclareZeroInit(t *testing.T) {
	tbl := NewTable(4)
	e := tbl.Declare("x")
	if e.Slot.Load().Tag != value.FloatTag || e.Slot.Load().Float != 0 {
		t.Fatalf("want zero float, got %+v", e.Slot.Load())
	}
}

func TestDeclareDuplicatePanics(t *testing.T) {
	tbl := NewTable(4)
	tbl.Declare("x")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate declare")
		}
	}()
	tbl.Declare("x")
}

func TestCapacityExceededPanics(t *testing.T) {
	tbl := NewTable(1)
	tbl.Declare("x")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic past capacity")
		}
	}()
	tbl.Declare("y")
}

func TestLookupMissing(t *testing.T) {
	tbl := NewTable(2)
	if _, ok := tbl.Lookup("nope"); ok {
		t.Fatal("expected missing lookup to fail")
	}
}

func TestSlotPointersStableAcrossDeclares(t *testing.T) {
	tbl := NewTable(3)
	e1 := tbl.Declare("a")
	p1 := e1.Slot.FloatPtr
	tbl.Declare("b")
	tbl.Declare("c")
	if e1.Slot.FloatPtr != p1 {
		t.Fatal("slot pointer must stay stable across further declares")
	}
}

func TestStringLiteralPseudoVar(t *testing.T) {
	tbl := NewTable(2)
	e := tbl.DeclareStringLiteral("$lit0", "hello")
	v := e.Slot.Load()
	if v.Tag != value.StringTag || v.Ptr.Data != "hello" || v.Ptr.Count != 1 {
		t.Fatalf("unexpected literal slot contents: %+v", v)
	}
}

func TestReleaseAllFreesStringsOnce(t *testing.T) {
	tbl := NewTable(2)
	e := tbl.Declare("a")
	s := &value.Str{Count: 1, Data: "hi"}
	*e.Slot.TagPtr = value.StringTag
	*e.Slot.PtrPtr = s
	freed := 0
	tbl.ReleaseAll(func(p *value.Str) { freed++; p.Count-- })
	if freed != 1 {
		t.Fatalf("want exactly one free, got %d", freed)
	}
	if s.Count != 0 {
		t.Fatal("string refcount should have dropped to 0")
	}
	// second release must be a no-op, not a double free
	tbl.ReleaseAll(func(p *value.Str) { freed++ })
	if freed != 1 {
		t.Fatal("ReleaseAll must not free the same slot twice")
	}
}

func TestReleaseAllSkipsStringLiteralPseudoVars(t *testing.T) {
	tbl := NewTable(2)
	e := tbl.DeclareStringLiteral("$lit0", "hi")
	freed := 0
	tbl.ReleaseAll(func(p *value.Str) { freed++ })
	if freed != 0 {
		t.Fatalf("ReleaseAll must never free a string-literal pseudo-variable, freed=%d", freed)
	}
	if e.Slot.Load().Ptr.Count != 1 {
		t.Fatal("literal's refcount must stay untouched by ReleaseAll")
	}
}

func TestNamesPreservesDeclarationOrder(t *testing.T) {
	tbl := NewTable(3)
	tbl.Declare("a")
	tbl.Declare("b")
	tbl.Declare("c")
	got := tbl.Names()
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if got[i] != n {
			t.Fatalf("Names()=%v, want %v", got, want)
		}
	}
}
