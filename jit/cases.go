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
package jit

import "github.com/launix-de/awkjit/value"

// Cases is C9, the tag-dispatch idiom (spec §4.9): "when type is known,
// directly emit the matching arm; when Unknown, emit both arms... a tag
// compare and branches selecting one arm, then load scratch at the join."
//
// input produces the value to dispatch on. floatArm/stringArm are the
// code for each branch; each time the returned Thunk runs, the selected
// arm receives the already-produced value and returns the joined result.
// When typ is statically known, the non-matching arm is never invoked —
// the diamond collapses to a straight line, exactly as the spec requires
// ("directly emit the matching arm").
func Cases(typ value.Type, input Thunk, floatArm, stringArm func(value.Value) value.Value) Thunk {
	switch typ {
	case value.TFloat:
		return func() value.Value { return floatArm(input()) }
	case value.TString:
		return func() value.Value { return stringArm(input()) }
	default:
		return func() value.Value {
			v := input()
			if v.Tag == value.FloatTag {
				return floatArm(v)
			}
			return stringArm(v)
		}
	}
}

// CasesVoid is Cases' effect-only counterpart: used by drop_if_string and
// other funnel points (design note, §9) that only need to perform one of
// two actions on an already-materialized value, not produce a new one.
func CasesVoid(typ value.Type, v value.Value, floatArm, stringArm func(value.Value)) {
	switch typ {
	case value.TFloat:
		floatArm(v)
	case value.TString:
		stringArm(v)
	default:
		if v.Tag == value.FloatTag {
			floatArm(v)
		} else {
			stringArm(v)
		}
	}
}

// CasesFloat is Cases specialized to arms that both produce a plain
// float64 rather than a full value.Value — the shape to_float needs.
func CasesFloat(typ value.Type, v value.Value, floatArm, stringArm func(value.Value) float64) float64 {
	switch typ {
	case value.TFloat:
		return floatArm(v)
	case value.TString:
		return stringArm(v)
	default:
		if v.Tag == value.FloatTag {
			return floatArm(v)
		}
		return stringArm(v)
	}
}
