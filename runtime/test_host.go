/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package runtime

import (
	"strings"

	"github.com/launix-de/awkjit/value"
)

// TestHost is the second Host implementation the interface demands
// (spec §4.2: "a test runtime that records every call into a log and
// buffers output into a string"). It exists so the property tests in
// spec §8 can observe string-balance and short-circuit behavior without
// touching a real file or stdout.
type TestHost struct {
	Lines  []string // canned input records, consumed by NextLine/Column
	lineNo int

	Output strings.Builder
	Log    []string // every primitive call, in order, for short-circuit assertions

	Arrays *ArrayTable

	seed float64

	// StringsOut counts every owned-string value a primitive handed back
	// to its caller (CopyString, EmptyString, Column, Concat,
	// NumberToString, ToLower, ToUpper). StringsIn counts every owned
	// string a primitive consumed (FreeString, PrintString, Binop,
	// Length, Concat's two inputs). Invariant 1 (spec §8) holds when, at
	// program end, StringsOut == StringsIn + (live strings still held in
	// variable slots).
	StringsOut int
	StringsIn  int
}

func NewTestHost(lines []string) *TestHost {
	return &TestHost{Lines: lines, Arrays: NewArrayTable()}
}

func (h *TestHost) record(call string) { h.Log = append(h.Log, call) }

func (h *TestHost) NextLine() float64 {
	h.record("next_line")
	if h.lineNo >= len(h.Lines) {
		return 0.0
	}
	h.lineNo++
	return 1.0
}

func (h *TestHost) currentFields() []string {
	if h.lineNo == 0 || h.lineNo > len(h.Lines) {
		return nil
	}
	return strings.Fields(h.Lines[h.lineNo-1])
}

func (h *TestHost) Column(tag value.Tag, f float64, ptr *value.Str) *value.Str {
	h.record("column")
	var n int
	if tag == value.StringTag {
		n = int(value.ParseLeadingNumber(ptr.Data))
		h.freeString(ptr)
	} else {
		n = int(f)
	}
	fields := h.currentFields()
	s := ""
	if n >= 1 && n <= len(fields) {
		s = fields[n-1]
	}
	return h.newOwned(s)
}

func (h *TestHost) newOwned(s string) *value.Str {
	h.StringsOut++
	return newOwnedString(s)
}

func (h *TestHost) freeString(p *value.Str) {
	h.StringsIn++
	freeString(p)
}

func (h *TestHost) FreeString(p *value.Str) {
	h.record("free_string")
	h.freeString(p)
}
func (h *TestHost) CopyString(p *value.Str) *value.Str {
	h.record("copy_string")
	h.StringsOut++
	return copyString(p)
}
func (h *TestHost) EmptyString() *value.Str {
	h.record("empty_string")
	return h.newOwned("")
}

func (h *TestHost) StringToNumber(p *value.Str) float64 {
	h.record("string_to_number")
	return value.ParseLeadingNumber(p.Data)
}
func (h *TestHost) NumberToString(f float64) *value.Str {
	h.record("number_to_string")
	return h.newOwned(value.FormatNumber(f))
}

func (h *TestHost) PrintString(p *value.Str) {
	h.record("print_string")
	h.Output.WriteString(p.Data)
	h.Output.WriteString("\n")
	h.freeString(p)
}
func (h *TestHost) PrintFloat(f float64) {
	h.record("print_float")
	h.Output.WriteString(value.FormatNumber(f))
	h.Output.WriteString("\n")
}

func (h *TestHost) Concat(a, b *value.Str) *value.Str {
	h.record("concat")
	h.StringsIn += 2
	h.StringsOut++
	return concatStrings(a, b, 0)
}
func (h *TestHost) ConcatArrayIndices(a, b *value.Str) *value.Str {
	h.record("concat_array_indices")
	h.StringsIn += 2
	h.StringsOut++
	return concatStrings(a, b, subsep)
}

func (h *TestHost) Binop(l, r *value.Str, op value.CompareOp) float64 {
	h.record("binop")
	h.StringsIn += 2
	defer freeString(l)
	defer freeString(r)
	switch op {
	case value.OpLt:
		return boolToFloat(l.Data < r.Data)
	case value.OpLe:
		return boolToFloat(l.Data <= r.Data)
	case value.OpGt:
		return boolToFloat(l.Data > r.Data)
	case value.OpGe:
		return boolToFloat(l.Data >= r.Data)
	case value.OpEq:
		return boolToFloat(l.Data == r.Data)
	case value.OpNe:
		return boolToFloat(l.Data != r.Data)
	case value.OpMatch, value.OpNotMatch:
		matched := strings.Contains(l.Data, r.Data)
		if op == value.OpNotMatch {
			matched = !matched
		}
		return boolToFloat(matched)
	default:
		panic("runtime: unknown compare op")
	}
}

func (h *TestHost) ArrayAccess(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str) value.Value {
	h.record("array_access")
	return h.Arrays.Access(id, h.keyString(keyTag, keyF, keyPtr))
}
func (h *TestHost) ArrayAssign(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str, val value.Value) {
	h.record("array_assign")
	h.Arrays.Assign(id, h.keyString(keyTag, keyF, keyPtr), val)
}
func (h *TestHost) InArray(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str) float64 {
	h.record("in_array")
	return h.Arrays.In(id, h.keyString(keyTag, keyF, keyPtr))
}

func (h *TestHost) keyString(tag value.Tag, f float64, ptr *value.Str) *value.Str {
	if tag == value.StringTag {
		return ptr
	}
	return newOwnedString(value.FormatNumber(f))
}

func (h *TestHost) Rand() float64 {
	h.record("rand")
	return 0.42 // deterministic for tests
}
func (h *TestHost) Srand(seed float64) float64 {
	h.record("srand")
	prior := h.seed
	h.seed = seed
	return prior
}
func (h *TestHost) Length(p *value.Str) float64 {
	h.record("length")
	n := len(p.Data)
	h.freeString(p)
	return float64(n)
}
func (h *TestHost) ToLower(p *value.Str) *value.Str {
	h.record("to_lower")
	s := strings.ToLower(p.Data)
	h.freeString(p)
	return h.newOwned(s)
}
func (h *TestHost) ToUpper(p *value.Str) *value.Str {
	h.record("to_upper")
	s := strings.ToUpper(p.Data)
	h.freeString(p)
	return h.newOwned(s)
}

func (h *TestHost) PrintError(code ErrorCode, detail string) {
	h.record("print_error")
	panic("awk: " + code.String() + ": " + detail)
}
