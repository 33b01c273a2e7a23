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

// subsep is the single byte used to join multi-index array keys
// (spec §4.4: "any byte not expected in keys is acceptable"). 0x1c is the
// traditional AWK SUBSEP (ASCII "file separator").
const subsep = byte(0x1c)

// newOwnedString allocates a fresh *value.Str with refcount 1. Every
// runtime primitive that is documented as "returns a new owned string"
// goes through this one allocation point.
func newOwnedString(s string) *value.Str {
	return &value.Str{Count: 1, Data: s}
}

// copyString increments the refcount and returns the *same* object — this
// is the standard scheme (spec §4.3): strings are shared, not duplicated,
// until mutated (which this runtime never does in place).
func copyString(p *value.Str) *value.Str {
	if p == nil {
		panic("runtime: copyString on nil — codegen handed a sentinel to a String-only primitive")
	}
	p.Count++
	return p
}

// freeString decrements the refcount and frees at zero. Per invariant 3,
// callers must never pass the Float sentinel here; this is enforced by
// panicking rather than silently ignoring nil, so a codegen bug surfaces
// immediately instead of masking a leak or double-free elsewhere.
func freeString(p *value.Str) {
	if p == nil {
		panic("runtime: freeString(nil) — sentinel pointer reached the string runtime")
	}
	p.Count--
	if p.Count < 0 {
		panic("runtime: refcount underflow — unbalanced acquire/release in compiled code")
	}
	// p.Count == 0: nothing further to do. Go's GC reclaims the backing
	// object once this was the last live *value.Str pointing at it; the
	// refcount's job is purely to decide *when* the count reaches zero,
	// matching the C3 contract (free at zero), not to manage memory by hand.
}

func concatStrings(a, b *value.Str, sep byte) *value.Str {
	var sb strings.Builder
	sb.Grow(len(a.Data) + len(b.Data) + 1)
	sb.WriteString(a.Data)
	if sep != 0 {
		sb.WriteByte(sep)
	}
	sb.WriteString(b.Data)
	freeString(a)
	freeString(b)
	return newOwnedString(sb.String())
}
