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

import "github.com/launix-de/awkjit/typedast"

// LiteralKey identifies one distinct string/regex literal. Regex and
// plain-string literals with the same bytes get separate pseudo-variable
// slots — nothing requires them to share storage, and keeping them
// distinct sidesteps any question of whether a regex cache should key off
// the same bytes a print statement might emit.
type LiteralKey struct {
	Value   string
	IsRegex bool
}

// PrescanResult is what the driver needs before it can build a scope
// table: every variable name and every distinct literal the program
// references, each in first-seen order (spec §4.10 "pre-scans the AST to
// discover all variables, including string-literal pseudo-variables").
type PrescanResult struct {
	Vars     []string
	Literals []LiteralKey
}

// Prescan walks body once, collecting the set NewTable's capacity and
// BindVars/BindLiterals need.
func Prescan(body typedast.Stmt) PrescanResult {
	p := &prescanner{
		seenVar: make(map[string]bool),
		seenLit: make(map[LiteralKey]bool),
	}
	p.stmt(body)
	return PrescanResult{Vars: p.vars, Literals: p.lits}
}

type prescanner struct {
	seenVar map[string]bool
	vars    []string
	seenLit map[LiteralKey]bool
	lits    []LiteralKey
}

func (p *prescanner) addVar(name string) {
	if !p.seenVar[name] {
		p.seenVar[name] = true
		p.vars = append(p.vars, name)
	}
}

func (p *prescanner) addLit(k LiteralKey) {
	if !p.seenLit[k] {
		p.seenLit[k] = true
		p.lits = append(p.lits, k)
	}
}

func (p *prescanner) stmt(s typedast.Stmt) {
	switch n := s.(type) {
	case nil:
	case typedast.ExprStmt:
		p.expr(n.E)
	case typedast.Print:
		p.expr(n.E)
	case typedast.Group:
		for _, s2 := range n.Stmts {
			p.stmt(s2)
		}
	case typedast.If:
		p.expr(n.Cond)
		p.stmt(n.Then)
		if n.Else != nil {
			p.stmt(n.Else)
		}
	case typedast.While:
		p.expr(n.Cond)
		p.stmt(n.Body)
	default:
		panic("codegen: prescan: unrecognized statement node")
	}
}

func (p *prescanner) expr(e typedast.Expr) {
	switch n := e.(type) {
	case typedast.NumberLit:
	case typedast.StringLit:
		p.addLit(LiteralKey{Value: n.Value, IsRegex: n.IsRegex})
	case typedast.Var:
		p.addVar(n.Name)
	case typedast.Assign:
		p.addVar(n.Name)
		p.expr(n.Rhs)
	case typedast.Arith:
		p.expr(n.L)
		p.expr(n.R)
	case typedast.Compare:
		p.expr(n.L)
		p.expr(n.R)
	case typedast.Logical:
		p.expr(n.L)
		p.expr(n.R)
	case typedast.Ternary:
		p.expr(n.Cond)
		p.expr(n.A)
		p.expr(n.B)
	case typedast.Concat:
		for _, part := range n.Parts {
			p.expr(part)
		}
	case typedast.Column:
		p.expr(n.Index)
	case typedast.NextLineCall:
	case typedast.ArrayRead:
		for _, idx := range n.Indices {
			p.expr(idx)
		}
	case typedast.ArrayWrite:
		for _, idx := range n.Indices {
			p.expr(idx)
		}
		p.expr(n.Val)
	case typedast.InArray:
		for _, idx := range n.Indices {
			p.expr(idx)
		}
	case typedast.Builtin:
		for _, a := range n.Args {
			p.expr(a)
		}
	default:
		panic("codegen: prescan: unrecognized expression node")
	}
}
