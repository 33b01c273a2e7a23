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
package main

import (
	"github.com/launix-de/awkjit/typedast"
	"github.com/launix-de/awkjit/value"
)

// fixtures stands in for the lexer/parser/typing pass this core treats as
// an external collaborator (spec.md §1, "Out of scope"). Each entry is
// one of spec.md §8's end-to-end scenarios, already hand-typed the way a
// real pipeline would hand it to codegen.
var fixtures = map[string]typedast.Program{
	"sum": {Body: typedast.Print{
		E: typedast.NewArith(typedast.Add, typedast.Number(1), typedast.Number(2)),
	}},
	"columns": {Body: typedast.While{
		Cond: typedast.NewNextLineCall(),
		Body: typedast.Print{E: typedast.NewColumn(typedast.Number(1))},
	}},
	"concat": {Body: typedast.Group{Stmts: []typedast.Stmt{
		typedast.ExprStmt{E: typedast.NewAssign("a", typedast.String("hi"), value.TString)},
		typedast.ExprStmt{E: typedast.NewAssign("a", typedast.NewConcat(
			typedast.VarRef("a", value.TString), typedast.String(" there"),
		), value.TString)},
		typedast.Print{E: typedast.VarRef("a", value.TString)},
	}}},
	"ifelse": {Body: typedast.If{
		Cond: typedast.Number(0),
		Then: typedast.Print{E: typedast.String("no")},
		Else: typedast.Print{E: typedast.String("yes")},
	}},
	"loop": {Body: typedast.Group{Stmts: []typedast.Stmt{
		typedast.ExprStmt{E: typedast.NewAssign("x", typedast.Number(0), value.TFloat)},
		typedast.While{
			Cond: typedast.NewCompare(value.OpLt, typedast.VarRef("x", value.TFloat), typedast.Number(3)),
			Body: typedast.Group{Stmts: []typedast.Stmt{
				typedast.Print{E: typedast.VarRef("x", value.TFloat)},
				typedast.ExprStmt{E: typedast.NewAssign("x",
					typedast.NewArith(typedast.Add, typedast.VarRef("x", value.TFloat), typedast.Number(1)),
					value.TFloat)},
			}},
		},
	}}},
	"length": {Body: typedast.Print{
		E: typedast.NewBuiltin("length", value.TFloat, typedast.String("abcd")),
	}},
}

var fixtureOrder = []string{"sum", "columns", "concat", "ifelse", "loop", "length"}
