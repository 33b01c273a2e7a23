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

// Package codegen is C6/C7/C8/C9: it turns a typedast.Program into a
// jit.VoidThunk the driver can run. There is no separate "instruction
// stream" object to inspect afterward — building the thunk tree *is*
// code generation here (see the jit package doc comment for why).
package codegen

import (
	"fmt"

	"github.com/launix-de/awkjit/jit"
	"github.com/launix-de/awkjit/runtime"
	"github.com/launix-de/awkjit/scope"
	"github.com/launix-de/awkjit/typedast"
)

// Compiler holds everything expression/statement codegen needs to look
// up: the variable/literal slots (C5) and the host primitives (C2) it
// calls through to.
type Compiler struct {
	Scope *scope.Table
	Host  runtime.Host

	literals map[LiteralKey]scope.Entry
}

func NewCompiler(sc *scope.Table, host runtime.Host) *Compiler {
	return &Compiler{Scope: sc, Host: host, literals: make(map[LiteralKey]scope.Entry)}
}

// BindVars declares a scope slot for every variable name Prescan found.
// Must run before Compile.
func (c *Compiler) BindVars(vars []string) {
	for _, name := range vars {
		c.Scope.Declare(name)
	}
}

// BindLiterals declares a pseudo-variable slot for every literal Prescan
// found (spec §4.5: "String literals... are lifted to pseudo-variables
// with a reserved prefix"). Must run before Compile.
func (c *Compiler) BindLiterals(lits []LiteralKey) {
	for i, lit := range lits {
		name := fmt.Sprintf(" lit%d", i)
		e := c.Scope.DeclareStringLiteral(name, lit.Value)
		c.literals[lit] = e
	}
}

// Compile lowers one Program's body to a runnable statement thunk
// (C7, composed of C6/C8/C9 underneath).
func (c *Compiler) Compile(prog typedast.Program) jit.VoidThunk {
	return c.compileStmt(prog.Body)
}
