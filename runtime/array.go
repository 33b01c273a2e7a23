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
	"github.com/google/btree"
	"github.com/launix-de/awkjit/value"
)

// cell is one key/value pair of an AWK associative array, ordered by key
// so ArrayTable gets deterministic enumeration for free (handy for
// diagnostic dumps) the same way storage/index.go leans on btree.BTreeG
// for ordered row lookups.
type cell struct {
	key string
	val value.Value
}

func lessCell(a, b cell) bool { return a.key < b.key }

// Array is a single AWK associative array: integer-identified, keyed by
// the stringified index (spec §4.4).
type Array struct {
	tree *btree.BTreeG[cell]
}

func newArray() *Array {
	return &Array{tree: btree.NewG(32, lessCell)}
}

// Get returns the stored value and whether the key was present.
func (a *Array) Get(key string) (value.Value, bool) {
	c, ok := a.tree.Get(cell{key: key})
	return c.val, ok
}

// Set stores val under key, returning the previous value (if any) so the
// caller can release it when it was a String (spec §4.4 "assign").
func (a *Array) Set(key string, val value.Value) (value.Value, bool) {
	old, had := a.tree.ReplaceOrInsert(cell{key: key, val: val})
	return old.val, had
}

// Has reports array membership.
func (a *Array) Has(key string) bool {
	_, ok := a.tree.Get(cell{key: key})
	return ok
}

// ArrayTable owns every array a compiled program can reference, indexed
// by the small integer ArrayID the typed AST's array nodes already carry;
// an array is created on first use of its id. It is not safe for concurrent use — per spec §5 only one compiled
// program ever runs against one runtime instance at a time.
type ArrayTable struct {
	arrays map[int]*Array
}

func NewArrayTable() *ArrayTable {
	return &ArrayTable{arrays: make(map[int]*Array)}
}

func (t *ArrayTable) get(id int) *Array {
	a, ok := t.arrays[id]
	if !ok {
		a = newArray()
		t.arrays[id] = a
	}
	return a
}

// Access implements the ArrayAccess primitive: returns the stored value
// (taking a new reference when it is a String, so the cell keeps its own),
// or an empty owned String if the key is absent (spec §4.4 "access").
func (t *ArrayTable) Access(id int, key *value.Str) value.Value {
	defer freeString(key)
	if v, ok := t.get(id).Get(key.Data); ok {
		if v.Tag == value.StringTag {
			copyString(v.Ptr)
		}
		return v
	}
	return value.NewStringOwned(newOwnedString(""))
}

// Assign implements ArrayAssign: stores val under key, releasing the
// prior cell if it held a String (spec §4.4 "assign").
func (t *ArrayTable) Assign(id int, key *value.Str, val value.Value) {
	defer freeString(key)
	old, had := t.get(id).Set(key.Data, val)
	if had && old.Tag == value.StringTag {
		freeString(old.Ptr)
	}
}

// In implements InArray: membership test, consumes the key.
func (t *ArrayTable) In(id int, key *value.Str) float64 {
	defer freeString(key)
	if t.get(id).Has(key.Data) {
		return 1.0
	}
	return 0.0
}
