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

// Package scope is C5: the compile-time variable table. It hands out
// stable value.Slot pointers for every AWK variable and every string/regex
// literal pseudo-variable codegen needs a home for (spec §4.5), and it
// remembers the order variables were declared in so the epilogue can
// release every slot exactly once.
//
// The backing storage is three parallel slices, pre-sized once up front —
// the same trick JITContext.variables uses in the teacher's jit package to
// keep slot addresses stable across the whole compile: a slice growing
// under append would invalidate every *value.Tag/*float64/*value.Str
// pointer codegen already captured in a closure.
package scope

import "github.com/launix-de/awkjit/value"

// Entry is everything codegen needs to read or write a single variable.
type Entry struct {
	Name string
	Slot value.Slot
}

// Table is the fixed-capacity variable table for one compiled program.
// Capacity must be known before the first Slot is handed out; Declare
// panics past capacity the same way a programmer error would (this is a
// codegen/driver bug, never a user-facing AWK error).
type Table struct {
	tags    []value.Tag
	floats  []float64
	strs    []*value.Str
	byName  map[string]int
	order   []string // declaration order, for epilogue release
	literal []bool   // true for string/regex literal pseudo-variables, never released by ReleaseAll
}

// NewTable preallocates storage for up to capacity variables (user
// variables plus one pseudo-variable per distinct string/regex literal in
// the program — the pre-scan counts both before calling NewTable).
func NewTable(capacity int) *Table {
	return &Table{
		tags:    make([]value.Tag, capacity),
		floats:  make([]float64, capacity),
		strs:    make([]*value.Str, capacity),
		byName:  make(map[string]int, capacity),
		literal: make([]bool, capacity),
	}
}

// Declare reserves a new slot for name, initialized to the Float zero
// value (spec §4.5: "uninitialized variables read as numeric 0"). It
// panics if name is already declared or the table is full.
func (t *Table) Declare(name string) Entry {
	if _, ok := t.byName[name]; ok {
		panic("scope: variable already declared: " + name)
	}
	idx := len(t.order)
	if idx >= len(t.tags) {
		panic("scope: table capacity exceeded — pre-scan undercounted variables")
	}
	t.tags[idx] = value.FloatTag
	t.floats[idx] = 0
	t.byName[name] = idx
	t.order = append(t.order, name)
	return t.entry(idx)
}

// DeclareStringLiteral reserves a pseudo-variable slot for a string or
// regex literal, seeded with an owned copy of lit (spec §4.5: "literals
// are lifted into the scope table exactly like user variables, so codegen
// never special-cases them"). The slot holds the string's one initial
// reference; unlike other slots, ReleaseAll never releases it.
func (t *Table) DeclareStringLiteral(pseudoName string, lit string) Entry {
	e := t.Declare(pseudoName)
	s := &value.Str{Count: 1, Data: lit}
	idx := t.byName[pseudoName]
	t.tags[idx] = value.StringTag
	t.strs[idx] = s
	t.literal[idx] = true
	return e
}

// Lookup returns the Entry for an already-declared variable.
func (t *Table) Lookup(name string) (Entry, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entry(idx), true
}

func (t *Table) entry(idx int) Entry {
	return Entry{
		Name: t.order[idx],
		Slot: value.Slot{
			TagPtr:   &t.tags[idx],
			FloatPtr: &t.floats[idx],
			PtrPtr:   &t.strs[idx],
		},
	}
}

// Names returns every declared variable in declaration order, for the
// epilogue to walk when releasing slots (spec §4.5 "drop-all-variables").
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// ReleaseAll walks every declared slot in declaration order and frees it
// if it currently holds a String (spec §4.5/§4.9: the epilogue releases
// every variable slot exactly once, in a fixed order, regardless of which
// branch of the program last touched it). String-literal pseudo-variables
// are skipped: spec §3 invariant 4 keeps them alive until program exit, so
// the epilogue must not be the thing that drops their last reference.
func (t *Table) ReleaseAll(free func(*value.Str)) {
	for idx := range t.order {
		if t.literal[idx] {
			continue
		}
		if t.tags[idx] == value.StringTag && t.strs[idx] != nil {
			free(t.strs[idx])
			t.strs[idx] = nil
		}
	}
}
