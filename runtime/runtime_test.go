package runtime

import (
	"testing"

	"github.com/launix-de/awkjit/value"
)

func TestFreeStringPanicsOnSentinel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on freeing the Float sentinel")
		}
	}()
	freeString(value.Sentinel)
}

func TestFreeStringPanicsOnUnderflow(t *testing.T) {
	s := &value.Str{Count: 0, Data: "x"}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on refcount underflow")
		}
	}()
	freeString(s)
}

func TestCopyStringSharesObject(t *testing.T) {
	s := &value.Str{Count: 1, Data: "hi"}
	c := copyString(s)
	if c != s {
		t.Fatal("copyString must return the same object")
	}
	if s.Count != 2 {
		t.Fatalf("want count 2, got %d", s.Count)
	}
}

func TestArrayAssignReleasesPriorString(t *testing.T) {
	tbl := NewArrayTable()
	old := &value.Str{Count: 1, Data: "old"}
	tbl.Assign(0, newOwnedString("k"), value.NewStringOwned(old))
	if old.Count != 1 {
		t.Fatalf("want count 1 after first assign, got %d", old.Count)
	}
	tbl.Assign(0, newOwnedString("k"), value.NewFloat(3))
	if old.Count != 0 {
		t.Fatalf("prior String cell must be released on overwrite, count=%d", old.Count)
	}
}

func TestArrayAccessMissingKeyReturnsEmptyString(t *testing.T) {
	tbl := NewArrayTable()
	v := tbl.Access(0, newOwnedString("missing"))
	if v.Tag != value.StringTag || len(v.Ptr.Data) != 0 {
		t.Fatalf("want empty string, got %+v", v)
	}
}

func TestInArray(t *testing.T) {
	tbl := NewArrayTable()
	if tbl.In(0, newOwnedString("k")) != 0.0 {
		t.Fatal("key should not be present yet")
	}
	tbl.Assign(0, newOwnedString("k"), value.NewFloat(1))
	if tbl.In(0, newOwnedString("k")) != 1.0 {
		t.Fatal("key should be present after assign")
	}
}

func TestTestHostShortCircuitLog(t *testing.T) {
	h := NewTestHost(nil)
	h.NextLine()
	if len(h.Log) != 1 || h.Log[0] != "next_line" {
		t.Fatalf("unexpected log: %v", h.Log)
	}
}

func TestTestHostStringBalanceSimpleConcat(t *testing.T) {
	h := NewTestHost(nil)
	a := h.newOwned("a")
	b := h.newOwned("b")
	r := h.Concat(a, b)
	h.freeString(r)
	if h.StringsOut != h.StringsIn {
		t.Fatalf("imbalance: out=%d in=%d", h.StringsOut, h.StringsIn)
	}
}
