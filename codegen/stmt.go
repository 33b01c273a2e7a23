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
	"github.com/launix-de/awkjit/jit"
	"github.com/launix-de/awkjit/typedast"
	"github.com/launix-de/awkjit/value"
)

// compileStmt is C7's contract (spec §4.7): emit code for a statement,
// enforcing that every expression's result is dropped exactly once.
func (c *Compiler) compileStmt(s typedast.Stmt) jit.VoidThunk {
	switch n := s.(type) {

	case typedast.ExprStmt:
		e := c.compileExpr(n.E)
		typ := n.E.Typ()
		host := c.Host
		return func() { jit.DropIfString(host, typ, e()) }

	case typedast.Print:
		return c.compilePrint(n)

	case typedast.Group:
		stmts := make([]jit.VoidThunk, len(n.Stmts))
		for i, s2 := range n.Stmts {
			stmts[i] = c.compileStmt(s2)
		}
		return func() {
			for _, st := range stmts {
				st()
			}
		}

	case typedast.If:
		return c.compileIf(n)

	case typedast.While:
		return c.compileWhile(n)

	default:
		panic("codegen: unrecognized statement node")
	}
}

func (c *Compiler) compilePrint(n typedast.Print) jit.VoidThunk {
	e := c.compileExpr(n.E)
	typ := n.E.Typ()
	host := c.Host
	switch typ {
	case value.TFloat:
		return func() { host.PrintFloat(e().Float) }
	case value.TString:
		return func() { host.PrintString(e().Ptr) }
	default:
		return func() {
			v := e()
			host.PrintString(jit.ToString(host, typ, v))
		}
	}
}

func (c *Compiler) compileIf(n typedast.If) jit.VoidThunk {
	cond := c.compileExpr(n.Cond)
	condTyp := n.Cond.Typ()
	then := c.compileStmt(n.Then)
	host := c.Host
	if n.Else == nil {
		return func() {
			cv := cond()
			taken := cv.Truthy()
			jit.DropIfString(host, condTyp, cv)
			if taken {
				then()
			}
		}
	}
	els := c.compileStmt(n.Else)
	return func() {
		cv := cond()
		taken := cv.Truthy()
		jit.DropIfString(host, condTyp, cv)
		if taken {
			then()
		} else {
			els()
		}
	}
}

func (c *Compiler) compileWhile(n typedast.While) jit.VoidThunk {
	cond := c.compileExpr(n.Cond)
	condTyp := n.Cond.Typ()
	body := c.compileStmt(n.Body)
	host := c.Host
	return func() {
		for {
			cv := cond()
			taken := cv.Truthy()
			jit.DropIfString(host, condTyp, cv)
			if !taken {
				return
			}
			body()
		}
	}
}
