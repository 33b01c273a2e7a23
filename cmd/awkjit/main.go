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

// awkjit is the thin demo host: it cannot parse real AWK source (the
// lexer/parser/typing pass are out of scope, spec.md §1), so it drives
// the pipeline over a small set of hand-typed AST fixtures instead,
// either from an interactive prompt (github.com/chzyer/readline, the
// teacher's scm/prompt.go role) or by watching a fixture-input file with
// fsnotify and recompiling on save.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"

	"github.com/launix-de/awkjit/driver"
	"github.com/launix-de/awkjit/runtime"
)

func main() {
	watchPath := flag.String("watch", "", "path to a file whose lines feed the 'columns' fixture; re-runs on save")
	trace := flag.Bool("trace", false, "print a driver trace line for each run")
	flag.Parse()

	if *watchPath != "" {
		runWatchMode(*watchPath, *trace)
		return
	}
	runRepl(*trace)
}

func runFixture(name string, lines []string, out io.Writer, trace bool) error {
	prog, ok := fixtures[name]
	if !ok {
		return fmt.Errorf("unknown fixture %q (try: %s)", name, strings.Join(fixtureOrder, ", "))
	}
	host := runtime.NewLiveHost(newLineReader(lines), out)
	driver.Run(host, prog, driver.Options{Trace: trace, TraceOut: out})
	return nil
}

func runRepl(trace bool) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "awkjit> ",
		HistoryFile:       ".awkjit-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	fmt.Printf("fixtures: %s\n", strings.Join(fixtureOrder, ", "))
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			break
		} else if err != nil {
			panic(err)
		}
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if err := runFixture(name, []string{"a b", "c d"}, os.Stdout, trace); err != nil {
			fmt.Println(err)
		}
	}
}

// runWatchMode re-runs the "columns" fixture against path's contents
// every time the file is written, the same fsnotify-on-save loop a
// live-reload dev server uses.
func runWatchMode(path string, trace bool) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		panic(err)
	}
	defer watcher.Close()

	run := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "awkjit:", err)
			return
		}
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if err := runFixture("columns", lines, os.Stdout, trace); err != nil {
			fmt.Fprintln(os.Stderr, "awkjit:", err)
		}
	}

	if err := watcher.Add(path); err != nil {
		panic(err)
	}
	run()
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintln(os.Stderr, "awkjit: watch error:", err)
		}
	}
}
