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

// Package jit is the abstract instruction builder the spec treats as a
// black box (§1, "the JIT library itself... we treat it as a black-box
// instruction builder"). codegen (C6-C9) never touches amd64 opcodes
// directly; it compiles each typed AST node into a Thunk defined here — a
// composed closure tree that, once built, runs with no further AST
// walking — using this package's conversion and dispatch helpers.
//
// This mirrors the shape the teacher falls back to whenever it can't (or
// doesn't need to) emit truly specialized machine code: OptimizeProcToSerialFunction
// in optimizer.go and the plain `Fn func(...Scmer) Scmer` case of
// Declaration in declare.go both compile a call site down to a stored Go
// closure rather than bytes. We take that one step further and make it
// the whole backend: "compiling" a typed AST means building the closure
// tree once, ahead of any record being read, so that running the program
// is pure closure invocation with zero AST interpretation overhead on the
// hot path — the same separation of compile-time and run-time work a real
// JIT gives you, just without a native-code emission step.
//
// The spec's "scratch cell" (§3, a pair of fixed stack slots used to pass
// a value across a branch join) has no literal counterpart here: a Go
// closure's captured locals and the call stack already give every branch
// arm a private, stable place to stash its result until the join reads
// it. Cases (C9, cases.go) packages that join as a tag-dispatched pair of
// arms; codegen's own branch joins (ternary, if, while) are plain Go
// conditionals.
package jit

import "github.com/launix-de/awkjit/value"

// Thunk is one compiled expression: calling it performs the emitted
// "instructions" and produces an owned value.Value per the ownership rule
// (spec §3). Every codegen function for an expression form returns one of
// these; composing expressions is just composing closures.
type Thunk func() value.Value

// VoidThunk is one compiled statement: calling it performs its effects
// and returns nothing.
type VoidThunk func()

// BoolThunk is a compiled boolean test: the condition already evaluated,
// dropped (per spec §4.7, "drop test value"), and reduced to a plain bool.
type BoolThunk func() bool
