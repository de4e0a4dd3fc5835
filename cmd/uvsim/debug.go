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
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/lassandro/gouvsim/pkg/debugger"
	"github.com/lassandro/gouvsim/pkg/encoding"
	"github.com/lassandro/gouvsim/pkg/machine"
)

var lastcmd []string

func decodeAddr(mc *machine.Machine, s string) (int, error) {
	value, err := encoding.DecodeInt(s)

	if err != nil {
		return 0, err
	}

	if value < 0 || value > int64(mc.Format().MaxAddress()) {
		return 0, errors.Errorf(
			"address %d out of range (000-%03d)", value, mc.Format().MaxAddress(),
		)
	}

	return int(value), nil
}

func decodeCount(s string) (int, error) {
	value, err := encoding.DecodeInt(s)

	if err != nil {
		return 0, err
	}

	if value < 1 {
		return 0, errors.Errorf("count must be positive")
	}

	return int(value), nil
}

func indexFormat(count int) string {
	digits := math.Floor(math.Log10(float64(count + 1)))
	return fmt.Sprintf("#%%0%dd: %%03d", int64(digits)+1)
}

func debugBreak(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "break [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [###]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		addr, err := decodeAddr(mc, args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Printf("Breakpoint added [%03d]\n", addr)
		}

	case "l", "ls", "list":
		fmtstring := indexFormat(len(dbg.Breakpoints)) + "\n"

		for i, breakpoint := range dbg.Breakpoints {
			fmt.Printf(fmtstring, i, breakpoint.Addr)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := encoding.DecodeInt(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(dbg.Breakpoints)) {
			log.Println("Invalid breakpoint number")
			return
		}

		dbg.Breakpoints[i] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
		dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]
		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		log.Printf("break: '%s' is not a valid command\n%s", cmd, usage)
	}
}

func debugWatch(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "watch [add|list|rm|clear]"

	if len(args) == 0 {
		log.Println(usage)
		return
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [###] [read|write|readwrite]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		addr, err := decodeAddr(mc, args[0])

		if err != nil {
			log.Println(err)
			return
		}

		var wtype debugger.WatchpointType

		switch args[1] {
		case "r", "read":
			wtype = debugger.ReadWatch
		case "w", "write":
			wtype = debugger.WriteWatch
		case "rw", "rwrite", "readwrite":
			wtype = debugger.ReadWriteWatch
		default:
			log.Println(usage)
			return
		}

		if dbg.AddWatchpoint(addr, wtype) {
			fmt.Printf("Watchpoint added [%03d] (%s)\n", addr, wtype)
		}

	case "l", "ls", "list":
		fmtstring := indexFormat(len(dbg.Watchpoints)) + " %s\n"

		for i, watchpoint := range dbg.Watchpoints {
			fmt.Printf(fmtstring, i, watchpoint.Addr, watchpoint.Type)
		}

	case "r", "rm", "remove":
		const usage = "watch rm [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := encoding.DecodeInt(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(dbg.Watchpoints)) {
			log.Println("Invalid watchpoint number")
			return
		}

		dbg.Watchpoints[i] = dbg.Watchpoints[len(dbg.Watchpoints)-1]
		dbg.Watchpoints = dbg.Watchpoints[:len(dbg.Watchpoints)-1]
		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = nil
		fmt.Println("Watchpoints reset")

	default:
		log.Printf("watch: '%s' is not a valid command\n%s", cmd, usage)
	}
}

func debugReg(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "register [ACC|PC] [#]"

	if len(args) == 0 {
		dbg.PrintRegisters(mc)
		return
	}

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	switch strings.ToUpper(args[0]) {
	case "ACC", "A":
		value, err := encoding.DecodeInt(args[1])

		if err != nil {
			log.Println(err)
			return
		}

		if err := mc.SetAccumulator(machine.Word(value)); err != nil {
			log.Println(err)
			return
		}

	case "PC":
		addr, err := decodeAddr(mc, args[1])

		if err != nil {
			log.Println(err)
			return
		}

		mc.SetProgram(addr)

	default:
		log.Println("Invalid register")
		return
	}

	dbg.PrintRegisters(mc)
}

// Parses the optional [address] [count] arguments shared by source and
// memory.
func debugRange(mc *machine.Machine, args []string, size int) (int, int, bool) {
	addr := mc.Program()

	if len(args) > 0 {
		value, err := decodeAddr(mc, args[0])

		if err != nil {
			log.Println(err)
			return 0, 0, false
		}

		addr = value
	}

	if len(args) > 1 {
		count, err := decodeCount(args[1])

		if err != nil {
			log.Println(err)
			return 0, 0, false
		}

		size = count
	}

	return addr, size, true
}

func debugSource(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "source [###] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	if addr, size, ok := debugRange(mc, args, 3); ok {
		dbg.PrintSource(mc, addr, size)
	}
}

func debugMemory(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "memory [###] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	if addr, size, ok := debugRange(mc, args, 1); ok {
		dbg.PrintMem(mc, addr, size)
	}
}

func debugSet(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "set [###] [+######]"

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := decodeAddr(mc, args[0])

	if err != nil {
		log.Println(err)
		return
	}

	value, err := encoding.DecodeInt(args[1])

	if err != nil {
		log.Println(err)
		return
	}

	if err := mc.Poke(addr, machine.Word(value)); err != nil {
		log.Println(err)
		return
	}

	dbg.PrintMem(mc, addr, 1)
}

func debugJump(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "jump [###]"

	if len(args) != 1 {
		fmt.Println(usage)
		return
	}

	addr, err := decodeAddr(mc, args[0])

	if err != nil {
		log.Println(err)
		return
	}

	mc.SetProgram(addr)
	fmt.Printf("\033[1mPC:\033[0m %03d\n", addr)
}

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !stdin.Scan() {
			fmt.Println()
			shouldexit = true
			return
		}

		args := strings.Fields(stdin.Text())

		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, mc, args)

		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, mc, args)

		case "r", "reg", "register", "registers":
			debugReg(dbg, mc, args)

		case "s", "src", "source":
			debugSource(dbg, mc, args)

		case "j", "jmp", "jump":
			debugJump(dbg, mc, args)

		case "m", "mem", "memory":
			debugMemory(dbg, mc, args)

		case "set":
			debugSet(dbg, mc, args)

		case "c", "continue":
			dbg.Break.Store(false)
			return

		case "n", "next":
			dbg.Break.Store(true)
			return

		case "q", "quit", "exit":
			shouldexit = true
			return

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "reset":
			if err := mc.Load(dbg.Source); err != nil {
				log.Println(err)
			} else {
				fmt.Println("Program reloaded")
			}

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if !dbg.Break.Load() {
		fmt.Println()
		fmt.Println("Program stopped")
		dbg.PrintSource(mc, mc.Program(), 8)
	}
	debugREPL(dbg, mc)
}

func handleRead(addr int, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")
	dbg.PrintMem(mc, addr, 1)
	debugREPL(dbg, mc)
}

func handleWrite(addr int, dbg *debugger.Debugger, mc *machine.Machine) {
	fmt.Println()
	fmt.Println("Program stopped")
	dbg.PrintMem(mc, addr, 1)
	debugREPL(dbg, mc)
}
