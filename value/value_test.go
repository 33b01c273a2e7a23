package value

import "testing"

func TestTruthyFloat(t *testing.T) {
	if NewFloat(0).Truthy() {
		t.Fatal("0.0 must be falsy")
	}
	if !NewFloat(-1).Truthy() {
		t.Fatal("-1.0 must be truthy")
	}
}

func TestTruthyString(t *testing.T) {
	empty := NewStringOwned(&Str{Count: 1, Data: ""})
	if empty.Truthy() {
		t.Fatal("empty string must be falsy")
	}
	full := NewStringOwned(&Str{Count: 1, Data: "0"})
	if !full.Truthy() {
		t.Fatal(`"0" must be truthy (nonempty byte length, not numeric value)`)
	}
}

func TestFloatTagNeverCarriesRealPointer(t *testing.T) {
	v := NewFloat(3.5)
	if v.Ptr != Sentinel {
		t.Fatal("Float-tagged value must carry the sentinel pointer")
	}
}

func TestSlotRoundtrip(t *testing.T) {
	var tag Tag
	var f float64
	var ptr *Str
	slot := Slot{TagPtr: &tag, FloatPtr: &f, PtrPtr: &ptr}

	slot.Store(NewFloat(42))
	got := slot.Load()
	if got.Tag != FloatTag || got.Float != 42 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	s := &Str{Count: 1, Data: "hi"}
	slot.Store(NewStringOwned(s))
	got = slot.Load()
	if got.Tag != StringTag || got.Ptr != s {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		3:    "3",
		-1.7: "-1.7",
		0:    "0",
		2.5:  "2.5",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLeadingNumber(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"abc":     0,
		"42":      42,
		"  -3.5x": -3.5,
		"1e3kg":   1000,
		"+7":      7,
	}
	for in, want := range cases {
		if got := ParseLeadingNumber(in); got != want {
			t.Errorf("ParseLeadingNumber(%q) = %v, want %v", in, got, want)
		}
	}
}
