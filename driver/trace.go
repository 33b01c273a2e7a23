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
package driver

import (
	"fmt"
	"strings"

	"github.com/launix-de/awkjit/typedast"
)

// traceString walks the typed AST and renders one line per node, in the
// same structural order codegen visits them. There is no machine-code
// buffer for this backend to disassemble (jit package doc comment), so
// this is what "dump the instruction stream" (spec §4.10) means here.
func traceString(prog typedast.Program) string {
	var b strings.Builder
	traceStmt(&b, 0, prog.Body)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func traceStmt(b *strings.Builder, depth int, s typedast.Stmt) {
	switch n := s.(type) {
	case typedast.ExprStmt:
		indent(b, depth)
		b.WriteString("expr_stmt\n")
		traceExpr(b, depth+1, n.E)
	case typedast.Print:
		indent(b, depth)
		b.WriteString("print\n")
		traceExpr(b, depth+1, n.E)
	case typedast.Group:
		indent(b, depth)
		fmt.Fprintf(b, "group(%d)\n", len(n.Stmts))
		for _, s2 := range n.Stmts {
			traceStmt(b, depth+1, s2)
		}
	case typedast.If:
		indent(b, depth)
		b.WriteString("if\n")
		traceExpr(b, depth+1, n.Cond)
		traceStmt(b, depth+1, n.Then)
		if n.Else != nil {
			indent(b, depth)
			b.WriteString("else\n")
			traceStmt(b, depth+1, n.Else)
		}
	case typedast.While:
		indent(b, depth)
		b.WriteString("while\n")
		traceExpr(b, depth+1, n.Cond)
		traceStmt(b, depth+1, n.Body)
	default:
		indent(b, depth)
		b.WriteString("<unknown-stmt>\n")
	}
}

func traceExpr(b *strings.Builder, depth int, e typedast.Expr) {
	indent(b, depth)
	switch n := e.(type) {
	case typedast.NumberLit:
		fmt.Fprintf(b, "number %v\n", n.Value)
	case typedast.StringLit:
		fmt.Fprintf(b, "literal %q regex=%v\n", n.Value, n.IsRegex)
	case typedast.Var:
		fmt.Fprintf(b, "var %s (%s)\n", n.Name, n.Typ())
	case typedast.Assign:
		fmt.Fprintf(b, "assign %s\n", n.Name)
		traceExpr(b, depth+1, n.Rhs)
	case typedast.Arith:
		fmt.Fprintf(b, "arith op=%d\n", n.Op)
		traceExpr(b, depth+1, n.L)
		traceExpr(b, depth+1, n.R)
	case typedast.Compare:
		fmt.Fprintf(b, "compare op=%d\n", n.Op)
		traceExpr(b, depth+1, n.L)
		traceExpr(b, depth+1, n.R)
	case typedast.Logical:
		fmt.Fprintf(b, "logical and=%v\n", n.And)
		traceExpr(b, depth+1, n.L)
		traceExpr(b, depth+1, n.R)
	case typedast.Ternary:
		b.WriteString("ternary\n")
		traceExpr(b, depth+1, n.Cond)
		traceExpr(b, depth+1, n.A)
		traceExpr(b, depth+1, n.B)
	case typedast.Concat:
		fmt.Fprintf(b, "concat(%d)\n", len(n.Parts))
		for _, p := range n.Parts {
			traceExpr(b, depth+1, p)
		}
	case typedast.Column:
		b.WriteString("column\n")
		traceExpr(b, depth+1, n.Index)
	case typedast.NextLineCall:
		b.WriteString("next_line\n")
	case typedast.ArrayRead:
		fmt.Fprintf(b, "array_read id=%d\n", n.ArrayID)
	case typedast.ArrayWrite:
		fmt.Fprintf(b, "array_write id=%d\n", n.ArrayID)
		traceExpr(b, depth+1, n.Val)
	case typedast.InArray:
		fmt.Fprintf(b, "in_array id=%d\n", n.ArrayID)
	case typedast.Builtin:
		fmt.Fprintf(b, "builtin %s(%d)\n", n.Name, len(n.Args))
		for _, a := range n.Args {
			traceExpr(b, depth+1, a)
		}
	default:
		b.WriteString("<unknown-expr>\n")
	}
}
