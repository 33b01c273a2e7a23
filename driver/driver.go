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

// Package driver is C10: it composes a typed AST into a runnable program,
// compiles it, runs it, and tears it down. Everything upstream (lexing,
// parsing, typing) and everything downstream (the real record reader) are
// the external collaborators spec.md puts out of scope — driver only
// wires together what this repo actually owns: scope, codegen, runtime.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/dc0d/onexit"
	"github.com/google/uuid"
	units "github.com/docker/go-units"
	"github.com/pierrec/lz4/v4"

	"github.com/launix-de/awkjit/codegen"
	"github.com/launix-de/awkjit/runtime"
	"github.com/launix-de/awkjit/scope"
	"github.com/launix-de/awkjit/typedast"
)

// Options are the plain compiler knobs, matching the teacher's
// JITContext/DeclarationParameter convention of configuration-as-struct
// rather than a config file format.
type Options struct {
	// Trace, when true, writes one line per Run invocation (run id,
	// variable/literal counts) to TraceOut, plus a second line with the
	// raw and compressed dump sizes when Dump is also set.
	Trace    bool
	TraceOut io.Writer // defaults to os.Stderr when nil and Trace is true

	// Dump, when true, records a human-readable instruction-trace string
	// (here: the sequence of compiled node kinds) and, if it grows past
	// DumpCompressThreshold bytes, compresses it with lz4 before handing
	// it to DumpSink.
	Dump                  bool
	DumpCompressThreshold int // bytes; 0 means "always compress when Dump is set"
	DumpSink              func(runID uuid.UUID, raw []byte, compressed bool)
}

// Result is what one Run produces: the run id stamped onto this
// invocation (for correlating trace output and test-host call logs) and
// the final variable table, left intact so callers/tests can inspect
// slot contents after the epilogue has run.
type Result struct {
	RunID uuid.UUID
	Scope *scope.Table
}

// Run pre-scans prog, builds a scope table sized for exactly what the
// pre-scan found, binds variables and literals, compiles the body,
// invokes it, then releases every variable slot through the epilogue
// (spec §4.10: "emits a drop-all-variables epilogue"). The epilogue is
// registered with onexit *and* run inline before Run returns normally —
// onexit only matters on the path where the compiled program (or a
// runtime-fatal Host call) exits the process directly, which is the
// "exit(0) skips cleanup" failure mode the open question in spec.md §9
// flags. Registering the hook makes that path safe without making the
// normal-return path depend on it.
func Run(host runtime.Host, prog typedast.Program, opts Options) Result {
	runID := uuid.New()

	pre := codegen.Prescan(prog.Body)
	sc := scope.NewTable(len(pre.Vars) + len(pre.Literals))
	c := codegen.NewCompiler(sc, host)
	c.BindVars(pre.Vars)
	c.BindLiterals(pre.Literals)

	epilogue := func() {
		sc.ReleaseAll(host.FreeString)
	}
	onexit.Register(epilogue)

	traceOut := opts.TraceOut
	if traceOut == nil {
		traceOut = os.Stderr
	}
	if opts.Trace {
		fmt.Fprintf(traceOut, "awkjit: run=%s vars=%d literals=%d\n",
			runID, len(pre.Vars), len(pre.Literals))
	}

	run := c.Compile(prog)

	if opts.Dump {
		dumpTrace(runID, prog, opts, traceOut)
	}

	run()
	epilogue()

	return Result{RunID: runID, Scope: sc}
}

// dumpTrace renders a one-line-per-node instruction trace (the closest
// analogue this backend has to disassembly, since there is no machine
// code buffer to hexdump — see the jit package doc comment), compresses
// it with lz4 above the configured threshold, and routes the bytes
// through DumpSink. Sizes are logged through go-units the same way the
// teacher's diagnostics format byte counts with units.BytesSize, rather
// than printing a raw integer.
func dumpTrace(runID uuid.UUID, prog typedast.Program, opts Options, traceOut io.Writer) {
	raw := []byte(traceString(prog))
	compressed, didCompress := raw, false
	if len(raw) > opts.DumpCompressThreshold {
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		var compressor lz4.Compressor
		n, err := compressor.CompressBlock(raw, buf)
		if err == nil && n > 0 {
			compressed, didCompress = buf[:n], true
		}
	}
	if opts.Trace {
		fmt.Fprintf(traceOut, "awkjit: run=%s trace=%s compressed=%s (lz4=%v)\n",
			runID, units.BytesSize(float64(len(raw))), units.BytesSize(float64(len(compressed))), didCompress)
	}
	if opts.DumpSink != nil {
		opts.DumpSink(runID, compressed, didCompress)
	}
}
