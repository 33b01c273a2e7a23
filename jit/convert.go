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

import (
	"github.com/launix-de/awkjit/runtime"
	"github.com/launix-de/awkjit/value"
)

// The four funnel functions from the design notes (§9: "Do not scatter
// acquires/releases; funnel them through to_string, to_float,
// copy_if_string, drop_if_string"). Codegen's conversions and drops go
// through these functions; the one exception is compileVarRead's Unknown
// case, which does its own copy-if-String tag check. ToFloat and
// DropIfString dispatch through CasesFloat/CasesVoid; ToString and
// CopyIfString switch on the type and tag directly.

// ToFloat implements spec §4.6 "to_float(value, typ)".
func ToFloat(host runtime.Host, typ value.Type, v value.Value) float64 {
	return CasesFloat(typ, v,
		func(v value.Value) float64 { return v.Float },
		func(v value.Value) float64 { return host.StringToNumber(v.Ptr) },
	)
}

// ToString implements spec §4.6 "to_string(value, typ)". It does not
// consume v's String branch (NumberToString allocates fresh; the String
// branch hands back the same owned pointer the caller already held).
func ToString(host runtime.Host, typ value.Type, v value.Value) *value.Str {
	switch typ {
	case value.TString:
		return v.Ptr
	case value.TFloat:
		return host.NumberToString(v.Float)
	default:
		if v.Tag == value.FloatTag {
			return host.NumberToString(v.Float)
		}
		return v.Ptr
	}
}

// DropIfString implements spec §4.6 "drop_if_string(value, typ)".
func DropIfString(host runtime.Host, typ value.Type, v value.Value) {
	CasesVoid(typ, v,
		func(value.Value) {},
		func(v value.Value) { host.FreeString(v.Ptr) },
	)
}

// CopyIfString implements spec §4.6 "copy_if_string(value, typ)". Returns
// the (possibly copied) value unchanged in the Float case.
func CopyIfString(host runtime.Host, typ value.Type, v value.Value) value.Value {
	switch typ {
	case value.TFloat:
		return v
	case value.TString:
		return value.NewStringOwned(host.CopyString(v.Ptr))
	default:
		if v.Tag == value.FloatTag {
			return v
		}
		return value.NewStringOwned(host.CopyString(v.Ptr))
	}
}
