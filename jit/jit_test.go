package jit

import (
	"testing"

	"github.com/launix-de/awkjit/runtime"
	"github.com/launix-de/awkjit/value"
)

func TestCasesKnownFloatNeverBuildsStringArm(t *testing.T) {
	called := false
	th := Cases(value.TFloat, func() value.Value { return value.NewFloat(3) },
		func(v value.Value) value.Value { return v },
		func(v value.Value) value.Value { called = true; return v },
	)
	v := th()
	if v.Float != 3 {
		t.Fatalf("want 3, got %v", v)
	}
	if called {
		t.Fatal("string arm must not run when type is statically Float")
	}
}

func TestCasesUnknownDispatchesOnRuntimeTag(t *testing.T) {
	input := func() value.Value { return value.NewStringOwned(&value.Str{Count: 1, Data: "hi"}) }
	th := Cases(value.TUnknown, input,
		func(v value.Value) value.Value { t.Fatal("wrong arm"); return v },
		func(v value.Value) value.Value { return v },
	)
	v := th()
	if v.Ptr.Data != "hi" {
		t.Fatalf("want hi, got %+v", v)
	}
}

func TestToFloatFromString(t *testing.T) {
	h := runtime.NewTestHost(nil)
	v := value.NewStringOwned(&value.Str{Count: 1, Data: "42"})
	f := ToFloat(h, value.TString, v)
	if f != 42 {
		t.Fatalf("want 42, got %v", f)
	}
}

func TestDropIfStringFreesOnlyStrings(t *testing.T) {
	h := runtime.NewTestHost(nil)
	s := &value.Str{Count: 1, Data: "x"}
	DropIfString(h, value.TString, value.NewStringOwned(s))
	if s.Count != 0 {
		t.Fatalf("want freed, count=%d", s.Count)
	}
	// Float case must not panic or touch the sentinel.
	DropIfString(h, value.TFloat, value.NewFloat(1))
}

func TestCopyIfStringIncrementsCount(t *testing.T) {
	h := runtime.NewTestHost(nil)
	s := &value.Str{Count: 1, Data: "x"}
	v := CopyIfString(h, value.TUnknown, value.NewStringOwned(s))
	if s.Count != 2 || v.Ptr != s {
		t.Fatalf("want shared object with count 2, got count=%d same=%v", s.Count, v.Ptr == s)
	}
}
