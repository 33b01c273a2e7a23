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
package codegen

import (
	"math"

	"github.com/launix-de/awkjit/jit"
	"github.com/launix-de/awkjit/typedast"
	"github.com/launix-de/awkjit/value"
)

// compileExpr is C6's contract (spec §4.6): every returned Thunk, once
// called, leaves an owned value.Value on the (Go) stack.
func (c *Compiler) compileExpr(e typedast.Expr) jit.Thunk {
	switch n := e.(type) {

	case typedast.NumberLit:
		f := n.Value
		return func() value.Value { return value.NewFloat(f) }

	case typedast.StringLit:
		entry, ok := c.literals[LiteralKey{Value: n.Value, IsRegex: n.IsRegex}]
		if !ok {
			panic("codegen: literal missing from scope — Prescan/BindLiterals out of sync")
		}
		host := c.Host
		return func() value.Value {
			v := entry.Slot.Load()
			return value.NewStringOwned(host.CopyString(v.Ptr))
		}

	case typedast.Var:
		return c.compileVarRead(n)

	case typedast.Assign:
		return c.compileAssign(n)

	case typedast.Arith:
		return c.compileArith(n)

	case typedast.Compare:
		return c.compileCompare(n)

	case typedast.Logical:
		return c.compileLogical(n)

	case typedast.Ternary:
		return c.compileTernary(n)

	case typedast.Concat:
		return c.compileConcat(n)

	case typedast.Column:
		return c.compileColumn(n)

	case typedast.NextLineCall:
		host := c.Host
		return func() value.Value { return value.NewFloat(host.NextLine()) }

	case typedast.ArrayRead:
		return c.compileArrayRead(n)

	case typedast.ArrayWrite:
		return c.compileArrayWrite(n)

	case typedast.InArray:
		return c.compileInArray(n)

	case typedast.Builtin:
		return c.compileBuiltin(n)

	default:
		panic("codegen: unrecognized expression node — typing pass produced an unknown shape")
	}
}

func (c *Compiler) compileVarRead(n typedast.Var) jit.Thunk {
	entry, ok := c.Scope.Lookup(n.Name)
	if !ok {
		panic("codegen: variable not declared: " + n.Name)
	}
	host := c.Host
	switch n.Typ() {
	case value.TFloat:
		return func() value.Value { return entry.Slot.Load() }
	case value.TString:
		return func() value.Value {
			v := entry.Slot.Load()
			return value.NewStringOwned(host.CopyString(v.Ptr))
		}
	default:
		return func() value.Value {
			v := entry.Slot.Load()
			if v.Tag == value.StringTag {
				return value.NewStringOwned(host.CopyString(v.Ptr))
			}
			return v
		}
	}
}

// compileAssign implements spec §4.6's assignment rule. The
// assignment-in-concat optimization (design note §9) is omitted: it does
// not affect observable behavior, and omitting it keeps this path a
// straight application of the general rule ("compile e, load old x, drop
// old, store new, return a copy").
func (c *Compiler) compileAssign(n typedast.Assign) jit.Thunk {
	entry, ok := c.Scope.Lookup(n.Name)
	if !ok {
		panic("codegen: variable not declared: " + n.Name)
	}
	rhs := c.compileExpr(n.Rhs)
	rhsTyp := n.Rhs.Typ()
	host := c.Host
	return func() value.Value {
		newVal := rhs()
		old := entry.Slot.Load()
		// The prior contents' tag is a runtime fact, not something this
		// assignment site can know statically — TUnknown forces the
		// dispatch to read old.Tag directly (the Aliasing rule, spec §3).
		jit.DropIfString(host, value.TUnknown, old)
		entry.Slot.Store(newVal)
		return jit.CopyIfString(host, rhsTyp, newVal)
	}
}

func arithApply(op typedast.ArithOp, l, r float64) float64 {
	switch op {
	case typedast.Add:
		return l + r
	case typedast.Sub:
		return l - r
	case typedast.Mul:
		return l * r
	case typedast.Div:
		return l / r
	case typedast.Mod:
		return math.Mod(l, r)
	case typedast.Pow:
		return math.Pow(l, r)
	default:
		panic("codegen: unknown arithmetic operator")
	}
}

func (c *Compiler) compileArith(n typedast.Arith) jit.Thunk {
	l := c.compileExpr(n.L)
	r := c.compileExpr(n.R)
	lt, rt := n.L.Typ(), n.R.Typ()
	host := c.Host
	op := n.Op
	return func() value.Value {
		lv := l()
		lf := jit.ToFloat(host, lt, lv)
		jit.DropIfString(host, lt, lv)
		rv := r()
		rf := jit.ToFloat(host, rt, rv)
		jit.DropIfString(host, rt, rv)
		return value.NewFloat(arithApply(op, lf, rf))
	}
}

func fcompare(op value.CompareOp, l, r float64) bool {
	switch op {
	case value.OpLt:
		return l < r
	case value.OpLe:
		return l <= r
	case value.OpGt:
		return l > r
	case value.OpGe:
		return l >= r
	case value.OpEq:
		return l == r
	case value.OpNe:
		return l != r
	default:
		panic("codegen: match/!match require string operands, not two floats")
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// compileCompare implements spec §4.6: a purely-float static shape
// collapses to a direct FP compare; any String/Unknown operand falls
// back to a runtime tag check, then (if not both floats) a conversion to
// String on each side and a call through to the runtime's binop.
func (c *Compiler) compileCompare(n typedast.Compare) jit.Thunk {
	l := c.compileExpr(n.L)
	r := c.compileExpr(n.R)
	lt, rt := n.L.Typ(), n.R.Typ()
	host := c.Host
	op := n.Op
	if lt == value.TFloat && rt == value.TFloat {
		return func() value.Value {
			lv, rv := l(), r()
			return value.NewFloat(boolToFloat(fcompare(op, lv.Float, rv.Float)))
		}
	}
	return func() value.Value {
		lv, rv := l(), r()
		if lv.Tag == value.FloatTag && rv.Tag == value.FloatTag {
			return value.NewFloat(boolToFloat(fcompare(op, lv.Float, rv.Float)))
		}
		ls := jit.ToString(host, lt, lv)
		rs := jit.ToString(host, rt, rv)
		return value.NewFloat(host.Binop(ls, rs, op))
	}
}

func (c *Compiler) compileLogical(n typedast.Logical) jit.Thunk {
	l := c.compileExpr(n.L)
	r := c.compileExpr(n.R)
	lt, rt := n.L.Typ(), n.R.Typ()
	host := c.Host
	and := n.And
	return func() value.Value {
		lv := l()
		lTruthy := lv.Truthy()
		jit.DropIfString(host, lt, lv)
		if and && !lTruthy {
			return value.NewFloat(0.0)
		}
		if !and && lTruthy {
			return value.NewFloat(1.0)
		}
		rv := r()
		rTruthy := rv.Truthy()
		jit.DropIfString(host, rt, rv)
		return value.NewFloat(boolToFloat(rTruthy))
	}
}

func (c *Compiler) compileTernary(n typedast.Ternary) jit.Thunk {
	cond := c.compileExpr(n.Cond)
	condTyp := n.Cond.Typ()
	a := c.compileExpr(n.A)
	b := c.compileExpr(n.B)
	host := c.Host
	return func() value.Value {
		cv := cond()
		taken := cv.Truthy()
		jit.DropIfString(host, condTyp, cv)
		if taken {
			return a()
		}
		return b()
	}
}

func (c *Compiler) compileConcat(n typedast.Concat) jit.Thunk {
	if len(n.Parts) == 0 {
		panic("codegen: concat with no operands")
	}
	parts := make([]jit.Thunk, len(n.Parts))
	types := make([]value.Type, len(n.Parts))
	for i, p := range n.Parts {
		parts[i] = c.compileExpr(p)
		types[i] = p.Typ()
	}
	host := c.Host
	return func() value.Value {
		acc := jit.ToString(host, types[0], parts[0]())
		for i := 1; i < len(parts); i++ {
			s := jit.ToString(host, types[i], parts[i]())
			acc = host.Concat(acc, s)
		}
		return value.NewStringOwned(acc)
	}
}

// compileColumn relies on Host.Column's documented contract — it already
// releases the index value if it was a String — so there is no separate
// drop to emit here.
func (c *Compiler) compileColumn(n typedast.Column) jit.Thunk {
	idx := c.compileExpr(n.Index)
	host := c.Host
	return func() value.Value {
		iv := idx()
		return value.NewStringOwned(host.Column(iv.Tag, iv.Float, iv.Ptr))
	}
}

// compileArrayKey implements spec §4.4's "multi-index handled by emitting
// concat_array_indices over the key expressions". A single index needs no
// join: it is passed through as-is and the runtime primitives stringify a
// Float key themselves.
func (c *Compiler) compileArrayKey(indices []typedast.Expr) jit.Thunk {
	if len(indices) == 0 {
		panic("codegen: array access with no index expressions")
	}
	if len(indices) == 1 {
		return c.compileExpr(indices[0])
	}
	thunks := make([]jit.Thunk, len(indices))
	types := make([]value.Type, len(indices))
	for i, idx := range indices {
		thunks[i] = c.compileExpr(idx)
		types[i] = idx.Typ()
	}
	host := c.Host
	return func() value.Value {
		acc := jit.ToString(host, types[0], thunks[0]())
		for i := 1; i < len(thunks); i++ {
			s := jit.ToString(host, types[i], thunks[i]())
			acc = host.ConcatArrayIndices(acc, s)
		}
		return value.NewStringOwned(acc)
	}
}

func (c *Compiler) compileArrayRead(n typedast.ArrayRead) jit.Thunk {
	key := c.compileArrayKey(n.Indices)
	host := c.Host
	id := n.ArrayID
	return func() value.Value {
		k := key()
		return host.ArrayAccess(id, k.Tag, k.Float, k.Ptr)
	}
}

// compileArrayWrite mirrors scalar assignment's "store new, return a
// copy": the copy is taken before the value is handed to ArrayAssign,
// which consumes it.
func (c *Compiler) compileArrayWrite(n typedast.ArrayWrite) jit.Thunk {
	key := c.compileArrayKey(n.Indices)
	val := c.compileExpr(n.Val)
	valTyp := n.Val.Typ()
	host := c.Host
	id := n.ArrayID
	return func() value.Value {
		k := key()
		v := val()
		result := jit.CopyIfString(host, valTyp, v)
		host.ArrayAssign(id, k.Tag, k.Float, k.Ptr, v)
		return result
	}
}

func (c *Compiler) compileInArray(n typedast.InArray) jit.Thunk {
	key := c.compileArrayKey(n.Indices)
	host := c.Host
	id := n.ArrayID
	return func() value.Value {
		k := key()
		return value.NewFloat(host.InArray(id, k.Tag, k.Float, k.Ptr))
	}
}
