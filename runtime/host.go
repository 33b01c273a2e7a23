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

// Package runtime is C2/C3/C4: the abstract capability set compiled code
// calls back into (Host), and the two concrete implementations of it — a
// live one backed by a real record reader and array tables, and a test
// one that records every call for the property tests in spec §8.
package runtime

import "github.com/launix-de/awkjit/value"

// ErrorCode enumerates the fatal conditions a Host can raise through
// PrintError (spec §7, "Runtime fatal").
type ErrorCode int

const (
	ErrIO ErrorCode = iota
	ErrRegex
	ErrArrayKey
)

func (e ErrorCode) String() string {
	switch e {
	case ErrIO:
		return "I/O error"
	case ErrRegex:
		return "invalid regular expression"
	case ErrArrayKey:
		return "array key type error"
	default:
		return "unknown error"
	}
}

// Host is the runtime primitive ABI from spec §4.2. Every method that
// "consumes" a *value.Str argument owns it — the caller must not touch it
// again. Every method documented as returning an owned string hands one
// refcount to its caller. Column and the array operations take their index
// as a tag+float+ptr triple rather than a value.Value, mirroring the
// spec's separately-addressed value fields (§6.3); callers in this repo
// pass value.Value fields directly. Binop takes two string pointers, and
// ArrayAccess returns a value.Value rather than writing through
// out-pointers.
type Host interface {
	// NextLine advances the record reader. Returns 1.0 if a record was
	// read, 0.0 on EOF (a recoverable, not-an-error condition per §7).
	NextLine() float64

	// Column returns field N as a new owned string. Consumes the index
	// value (releases it if it was a String).
	Column(tag value.Tag, f float64, ptr *value.Str) *value.Str

	FreeString(p *value.Str)
	CopyString(p *value.Str) *value.Str
	EmptyString() *value.Str

	// StringToNumber parses p without releasing it.
	StringToNumber(p *value.Str) float64
	// NumberToString returns a new owned string.
	NumberToString(f float64) *value.Str

	// PrintString consumes its argument. PrintFloat takes no ownership.
	PrintString(p *value.Str)
	PrintFloat(f float64)

	// Concat consumes both arguments and returns a new owned string.
	Concat(a, b *value.Str) *value.Str
	// ConcatArrayIndices consumes both arguments, joining with SUBSEP.
	ConcatArrayIndices(a, b *value.Str) *value.Str

	// Binop consumes both string operands and evaluates op against them.
	Binop(l, r *value.Str, op value.CompareOp) float64

	// ArrayAccess consumes the key and returns an owned copy of the stored
	// value (or an empty owned string if the key is absent).
	ArrayAccess(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str) value.Value
	// ArrayAssign consumes the key and the value.
	ArrayAssign(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str, val value.Value)
	// InArray consumes the key, returns 0.0/1.0.
	InArray(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str) float64

	Rand() float64
	// Srand sets the seed, returns the *prior* seed.
	Srand(seed float64) float64
	// Length consumes its argument, returns its byte length.
	Length(p *value.Str) float64
	// ToLower/ToUpper consume their argument and return a new owned string.
	ToLower(p *value.Str) *value.Str
	ToUpper(p *value.Str) *value.Str

	// PrintError reports a runtime-fatal condition (spec §7). Hosts
	// normally terminate the process after this call; compiled code
	// never catches it.
	PrintError(code ErrorCode, detail string)
}

// RecordReader is the external "file/record reader" collaborator spec.md
// puts out of scope (line splitting, RS/FS handling). LiveHost delegates
// NextLine/Column to one.
type RecordReader interface {
	NextLine() bool
	Field(n int) string
}
