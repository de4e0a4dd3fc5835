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

package machine

type Word int64

type State uint

const (
	Ready State = iota
	Running
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}

	return "unknown"
}

// Supplies the next integer on READ. An error aborts the program.
type Reader interface {
	ReadInt() (int64, error)
}

// Receives the next integer on WRITE.
type Writer interface {
	WriteInt(value Word) error
}

type ReaderFunc func() (int64, error)

func (f ReaderFunc) ReadInt() (int64, error) { return f() }

type WriterFunc func(value Word) error

func (f WriterFunc) WriteInt(value Word) error { return f(value) }

type DeviceHandler struct {
	Keyboard Reader
	Display  Writer
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr int, mc *Machine)
	Write(addr int, mc *Machine)
}

type Machine struct {
	Devices  DeviceHandler
	Debugger MachineDebugger

	format      Format
	memory      *Memory
	accumulator Word
	program     int
	state       State
	fault       *Error
	lines       []int
}
