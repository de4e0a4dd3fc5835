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

package debugger

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"

	"github.com/lassandro/gouvsim/pkg/encoding"
	"github.com/lassandro/gouvsim/pkg/machine"
)

func (dbg *Debugger) out() io.Writer {
	if dbg.Output == nil {
		return os.Stdout
	}
	return dbg.Output
}

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.HandleBreak == nil {
		return
	}

	if dbg.Break.Load() || dbg.HasBreakpoint(mc.Program()) {
		dbg.HandleBreak(dbg, mc)
	}
}

func (dbg *Debugger) Read(addr int, mc *machine.Machine) {
	if dbg.HandleRead == nil {
		return
	}

	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr int, mc *machine.Machine) {
	if dbg.HandleWrite == nil {
		return
	}

	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) HasBreakpoint(addr int) bool {
	return slices.IndexFunc(dbg.Breakpoints, func(bp Breakpoint) bool {
		return bp.Addr == addr
	}) >= 0
}

// Adds a breakpoint unless one already exists at addr.
func (dbg *Debugger) AddBreakpoint(addr int) bool {
	if dbg.HasBreakpoint(addr) {
		return false
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{addr})
	return true
}

func (dbg *Debugger) AddWatchpoint(addr int, wtype WatchpointType) bool {
	watchpoint := Watchpoint{addr, wtype}

	if slices.Contains(dbg.Watchpoints, watchpoint) {
		return false
	}

	dbg.Watchpoints = append(dbg.Watchpoints, watchpoint)
	return true
}

// Prints count source lines starting at the line the word at addr was
// loaded from. Lines holding a word are prefixed with its address.
func (dbg *Debugger) PrintSource(mc *machine.Machine, addr, count int) {
	w := dbg.out()

	if dbg.Source == nil {
		fmt.Fprintln(w, "No source file loaded")
		return
	}

	start, exists := mc.SourceLine(addr)

	if !exists {
		fmt.Fprintf(w, "No instruction found at %03d\n", addr)
		return
	}

	addrs := make(map[int]int)
	for a := 0; a < mc.Format().Size; a++ {
		line, ok := mc.SourceLine(a)
		if !ok {
			break
		}
		addrs[line] = a
	}

	for line := start; line < start+count && line <= len(dbg.Source); line++ {
		if lineaddr, ok := addrs[line]; ok {
			fmt.Fprintf(w, "\033[1m[%03d]\033[0m ", lineaddr)
		} else {
			fmt.Fprint(w, "\033[1;30m~~~~~\033[0m ")
		}

		fmt.Fprintln(w, dbg.Source[line-1])
	}
}

func (dbg *Debugger) PrintMem(mc *machine.Machine, addr, count int) {
	w := dbg.out()
	memory := mc.Memory()
	digits := mc.Format().Digits

	columns := dbg.Columns
	if columns <= 0 {
		columns = 4
	}

	if addr < 0 || addr >= len(memory) {
		fmt.Fprintf(w, "Address %03d out of bounds\n", addr)
		return
	}

	for i := addr; i < addr+count && i < len(memory); i++ {
		if i == addr {
			fmt.Fprintf(w, "\033[1m[%03d]\033[0m ", i)
		} else if (i-addr)%columns == 0 {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "\033[1m[%03d]\033[0m ", i)
		}

		word := encoding.EncodeWord(int64(memory[i]), digits)

		if memory[i] == 0 {
			fmt.Fprintf(w, "\033[1;30m%s\033[0m ", word)
		} else {
			fmt.Fprintf(w, "%s ", word)
		}
	}

	fmt.Fprintln(w)
}

func (dbg *Debugger) PrintRegisters(mc *machine.Machine) {
	fmt.Fprintf(
		dbg.out(),
		"\033[1mACC:\033[0m %s\t\033[1mPC:\033[0m %03d\t\033[1mState:\033[0m %s\n",
		encoding.EncodeWord(int64(mc.Accumulator()), mc.Format().Digits),
		mc.Program(),
		mc.State(),
	)
}
