// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lassandro/gouvsim/pkg/console"
	"github.com/lassandro/gouvsim/pkg/debugger"
	"github.com/lassandro/gouvsim/pkg/encoding"
	"github.com/lassandro/gouvsim/pkg/machine"
)

var helpvar bool
var debugvar bool
var formatvar string
var stepsvar int
var invar string
var shouldexit bool

// Shared by the console and the debug REPL when both read stdin
var stdin = bufio.NewScanner(os.Stdin)

const usage = "uvsim [-debug] [-format wide|narrow|auto] [-max-steps #] " +
	"[-in file] filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.StringVar(
		&formatvar, "format", "wide",
		"Word format of the program: 'wide' (6 digits), 'narrow' (4 digits) "+
			"or 'auto' to detect it from the program text",
	)
	flag.IntVar(
		&stepsvar, "max-steps", 0,
		"Stops the program after this many instructions (0 means no limit)",
	)
	flag.StringVar(
		&invar, "in", "",
		"Reads READ values from this file, one integer per line, "+
			"instead of the console",
	)
	flag.Parse()
}

func readProgram(filename string) ([]string, error) {
	file, err := os.Open(filename)

	if err != nil {
		return nil, errors.Wrap(err, "opening program")
	}

	defer file.Close()

	return machine.ReadLines(file)
}

func selectFormat(name string, lines []string) (machine.Format, error) {
	switch name {
	case "wide":
		return machine.Wide, nil
	case "narrow":
		return machine.Narrow, nil
	case "auto":
		digits, err := encoding.DetectFormat(lines)

		if err != nil {
			return machine.Format{}, err
		}

		format, _ := machine.FormatForDigits(digits)
		return format, nil
	}

	return machine.Format{}, errors.Errorf("unknown format '%s'", name)
}

// Words per memory dump row that fit the terminal: "[000] " then one
// sign-prefixed word and a space per column.
func memColumns(format machine.Format) int {
	width := terminalColumns(os.Stdout)

	if width == 0 {
		return 0
	}

	columns := (width - 6) / (format.Digits + 2)

	if columns < 1 {
		return 1
	}

	return columns
}

func uvsim() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	lines, err := readProgram(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	format, err := selectFormat(formatvar, lines)

	if err != nil {
		log.Println(err)
		return 1
	}

	con := &console.Console{
		Input:       stdin,
		Output:      os.Stdout,
		Format:      format,
		Interactive: isTerminal(os.Stdin),
		Labels:      isTerminal(os.Stdout),
	}

	if invar != "" {
		file, err := os.Open(invar)

		if err != nil {
			log.Println(errors.Wrap(err, "opening input"))
			return 1
		}

		defer file.Close()

		con.Input = bufio.NewScanner(file)
		con.Interactive = false
	}

	opts := []machine.Option{
		machine.WithFormat(format),
		machine.Input(con),
		machine.Output(con),
	}

	var dbg *debugger.Debugger

	if debugvar {
		dbg = &debugger.Debugger{
			Source:      lines,
			Columns:     memColumns(format),
			HandleBreak: handleBreak,
			HandleRead:  handleRead,
			HandleWrite: handleWrite,
		}
		opts = append(opts, machine.WithDebugger(dbg))

		c := make(chan os.Signal, 1)
		defer signal.Stop(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Break.Store(true)
			}
		}()
	}

	mc := machine.New(opts...)

	if err := mc.Load(lines); err != nil {
		log.Println(err)
		return 1
	}

	if debugvar {
		debugREPL(dbg, mc)
	}

	for steps := 0; !shouldexit; {
		state, err := mc.Step()

		if err != nil {
			log.Println(err)

			if debugvar {
				debugREPL(dbg, mc)

				if mc.State() != machine.Faulted {
					continue
				}
			}

			return 1
		}

		if state == machine.Halted {
			return 0
		}

		steps++

		if stepsvar > 0 && steps >= stepsvar {
			log.Printf(
				"stopped after %d steps at %03d", steps, mc.Program(),
			)
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(uvsim())
}
