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

	nlrm "github.com/launix-de/NonLockingReadMap"
	"github.com/launix-de/awkjit/jit"
	"github.com/launix-de/awkjit/typedast"
	"github.com/launix-de/awkjit/value"
)

// builtinEntry is one row of the C8 dispatch table. It is registered
// once at package init and read on every call-site this program compiles
// — exactly the read-heavy, write-once profile NonLockingReadMap
// documents itself for ("use this map if you read often but write very
// seldom"), unlike scope.Table's per-compile variable lookup which is
// used once and discarded.
type builtinEntry struct {
	name string
	emit func(c *Compiler, args []typedast.Expr) jit.Thunk
}

func (e builtinEntry) GetKey() string    { return e.name }
func (e builtinEntry) ComputeSize() uint { return uint(len(e.name)) + 48 }

var builtins = nlrm.New[builtinEntry, string]()

func register(name string, emit func(c *Compiler, args []typedast.Expr) jit.Thunk) {
	builtins.Set(&builtinEntry{name: name, emit: emit})
}

func init() {
	register("sin", mathUnary(math.Sin))
	register("cos", mathUnary(math.Cos))
	register("log", mathUnary(math.Log))
	register("exp", mathUnary(math.Exp))
	register("sqrt", mathUnary(math.Sqrt))
	register("int", mathUnary(math.Trunc)) // truncation toward zero, spec §4.8
	register("atan2", atan2Builtin)
	register("rand", randBuiltin)
	register("srand", srandBuiltin)
	register("length", lengthBuiltin)
	register("tolower", caseBuiltin(false))
	register("toupper", caseBuiltin(true))

	// Stubbed per SPEC_FULL.md §3 / spec.md's open questions: registered
	// so the dispatch table is total over every name AWK programs expect,
	// but not implemented — calling one is a runtime-fatal condition, not
	// a silently wrong answer.
	for _, name := range []string{"split", "gsub", "sub", "substr", "index", "match", "sprintf", "system", "close"} {
		register(name, unimplementedBuiltin(name))
	}
}

// compileBuiltin is C8's entry point from C6's Builtin case.
func (c *Compiler) compileBuiltin(n typedast.Builtin) jit.Thunk {
	e := builtins.Get(n.Name)
	if e == nil {
		panic("codegen: unknown builtin: " + n.Name)
	}
	return e.emit(c, n.Args)
}

func mathUnary(fn func(float64) float64) func(*Compiler, []typedast.Expr) jit.Thunk {
	return func(c *Compiler, args []typedast.Expr) jit.Thunk {
		if len(args) != 1 {
			panic("codegen: math builtin expects exactly one argument")
		}
		arg := c.compileExpr(args[0])
		typ := args[0].Typ()
		host := c.Host
		return func() value.Value {
			v := arg()
			f := jit.ToFloat(host, typ, v)
			jit.DropIfString(host, typ, v)
			return value.NewFloat(fn(f))
		}
	}
}

func atan2Builtin(c *Compiler, args []typedast.Expr) jit.Thunk {
	if len(args) != 2 {
		panic("codegen: atan2 expects exactly two arguments")
	}
	a := c.compileExpr(args[0])
	at := args[0].Typ()
	b := c.compileExpr(args[1])
	bt := args[1].Typ()
	host := c.Host
	return func() value.Value {
		av := a()
		af := jit.ToFloat(host, at, av)
		jit.DropIfString(host, at, av)
		bv := b()
		bf := jit.ToFloat(host, bt, bv)
		jit.DropIfString(host, bt, bv)
		return value.NewFloat(math.Atan2(af, bf))
	}
}

func randBuiltin(c *Compiler, args []typedast.Expr) jit.Thunk {
	if len(args) != 0 {
		panic("codegen: rand takes no arguments")
	}
	host := c.Host
	return func() value.Value { return value.NewFloat(host.Rand()) }
}

func srandBuiltin(c *Compiler, args []typedast.Expr) jit.Thunk {
	if len(args) != 1 {
		panic("codegen: srand expects exactly one argument")
	}
	arg := c.compileExpr(args[0])
	typ := args[0].Typ()
	host := c.Host
	return func() value.Value {
		v := arg()
		f := jit.ToFloat(host, typ, v)
		jit.DropIfString(host, typ, v)
		return value.NewFloat(host.Srand(f))
	}
}

func lengthBuiltin(c *Compiler, args []typedast.Expr) jit.Thunk {
	if len(args) != 1 {
		panic("codegen: length expects exactly one argument")
	}
	arg := c.compileExpr(args[0])
	typ := args[0].Typ()
	host := c.Host
	return func() value.Value {
		v := arg()
		s := jit.ToString(host, typ, v)
		return value.NewFloat(host.Length(s))
	}
}

func caseBuiltin(upper bool) func(*Compiler, []typedast.Expr) jit.Thunk {
	return func(c *Compiler, args []typedast.Expr) jit.Thunk {
		if len(args) != 1 {
			panic("codegen: tolower/toupper expect exactly one argument")
		}
		arg := c.compileExpr(args[0])
		typ := args[0].Typ()
		host := c.Host
		return func() value.Value {
			v := arg()
			s := jit.ToString(host, typ, v)
			if upper {
				return value.NewStringOwned(host.ToUpper(s))
			}
			return value.NewStringOwned(host.ToLower(s))
		}
	}
}

func unimplementedBuiltin(name string) func(*Compiler, []typedast.Expr) jit.Thunk {
	return func(c *Compiler, args []typedast.Expr) jit.Thunk {
		return func() value.Value { panic("unimplemented: " + name) }
	}
}
