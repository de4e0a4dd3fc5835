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

package debugger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lassandro/gouvsim/pkg/debugger"
	"github.com/lassandro/gouvsim/pkg/machine"
)

var program = []string{
	"# add two numbers",
	"+020005",
	"+030006",
	"+021007",
	"+043000",
	"",
	"+000000",
	"+000002",
	"+000003",
}

func setup(t *testing.T, dbg *debugger.Debugger) *machine.Machine {
	mc := machine.New(machine.WithDebugger(dbg))
	dbg.Source = program

	if err := mc.Load(program); err != nil {
		t.Fatal(err)
	}

	return mc
}

func TestBreakpoint(t *testing.T) {
	var dbg debugger.Debugger
	var stops []int

	dbg.HandleBreak = func(dbg *debugger.Debugger, mc *machine.Machine) {
		stops = append(stops, mc.Program())
	}

	mc := setup(t, &dbg)

	if !dbg.AddBreakpoint(2) || dbg.AddBreakpoint(2) {
		t.Fatal("AddBreakpoint should add an address once")
	}

	if err := mc.Run(); err != nil {
		t.Fatal(err)
	}

	if len(stops) != 1 || stops[0] != 2 {
		t.Errorf("Breakpoint stops mismatch\nwant:[2]\nhave:%v", stops)
	}
}

func TestBreakFlag(t *testing.T) {
	var dbg debugger.Debugger
	count := 0

	dbg.HandleBreak = func(dbg *debugger.Debugger, mc *machine.Machine) {
		count++
	}

	mc := setup(t, &dbg)
	dbg.Break.Store(true)

	if err := mc.Run(); err != nil {
		t.Fatal(err)
	}

	// HALT completes without reaching the step hook
	if count != 3 {
		t.Errorf("Break count mismatch\nwant:3\nhave:%d", count)
	}
}

func TestWatchpoints(t *testing.T) {
	var dbg debugger.Debugger
	var reads, writes []int

	dbg.HandleRead = func(addr int, dbg *debugger.Debugger, mc *machine.Machine) {
		reads = append(reads, addr)
	}
	dbg.HandleWrite = func(addr int, dbg *debugger.Debugger, mc *machine.Machine) {
		writes = append(writes, addr)
	}

	mc := setup(t, &dbg)

	dbg.AddWatchpoint(5, debugger.ReadWatch)
	dbg.AddWatchpoint(6, debugger.WriteWatch)
	dbg.AddWatchpoint(7, debugger.ReadWriteWatch)

	if dbg.AddWatchpoint(7, debugger.ReadWriteWatch) {
		t.Error("Duplicate watchpoint added")
	}

	if err := mc.Run(); err != nil {
		t.Fatal(err)
	}

	if len(reads) != 1 || reads[0] != 5 {
		t.Errorf("Read watch mismatch\nwant:[5]\nhave:%v", reads)
	}

	if len(writes) != 1 || writes[0] != 7 {
		t.Errorf("Write watch mismatch\nwant:[7]\nhave:%v", writes)
	}

	if have, _ := mc.Peek(7); have != 5 {
		t.Errorf("Memory[007]\nwant:5\nhave:%d", have)
	}
}

func TestPrintMem(t *testing.T) {
	var dbg debugger.Debugger
	var out bytes.Buffer

	dbg.Output = &out
	dbg.Columns = 2

	mc := setup(t, &dbg)
	dbg.PrintMem(mc, 0, 3)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	if len(lines) != 2 {
		t.Fatalf("Row count mismatch\nwant:2\nhave:%d\n%s", len(lines), out.String())
	}

	if !strings.Contains(lines[0], "[000]") || !strings.Contains(lines[0], "+030006") {
		t.Errorf("First row mismatch\nhave:%q", lines[0])
	}

	if !strings.Contains(lines[1], "[002]") || !strings.Contains(lines[1], "+021007") {
		t.Errorf("Second row mismatch\nhave:%q", lines[1])
	}
}

func TestPrintSource(t *testing.T) {
	var dbg debugger.Debugger
	var out bytes.Buffer

	dbg.Output = &out

	mc := setup(t, &dbg)
	dbg.PrintSource(mc, 3, 3)

	have := out.String()

	lines := strings.Split(strings.TrimSpace(have), "\n")

	if len(lines) != 3 {
		t.Fatalf("Line count mismatch\nwant:3\nhave:%d\n%s", len(lines), have)
	}

	if !strings.Contains(lines[0], "[003]") || !strings.HasSuffix(lines[0], "+043000") {
		t.Errorf("Line mismatch\nhave:%q", lines[0])
	}

	if !strings.Contains(lines[1], "~~~~~") {
		t.Errorf("Blank line should carry no address\nhave:%q", lines[1])
	}

	if !strings.Contains(lines[2], "[004]") || !strings.HasSuffix(lines[2], "+000000") {
		t.Errorf("Line mismatch\nhave:%q", lines[2])
	}
}
