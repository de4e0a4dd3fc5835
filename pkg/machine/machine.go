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

import (
	"errors"

	"github.com/lassandro/gouvsim/pkg/encoding"
)

var ErrNoKeyboard = errors.New("no input device attached")

type Option func(*Machine)

// Selects the word width regime. The default is Wide.
func WithFormat(format Format) Option {
	return func(mc *Machine) { mc.format = format }
}

func Input(reader Reader) Option {
	return func(mc *Machine) { mc.Devices.Keyboard = reader }
}

// Configures the WRITE device. Without one, written words are discarded.
func Output(writer Writer) Option {
	return func(mc *Machine) { mc.Devices.Display = writer }
}

func WithDebugger(dbg MachineDebugger) Option {
	return func(mc *Machine) { mc.Debugger = dbg }
}

func New(opts ...Option) *Machine {
	mc := &Machine{format: Wide}

	for _, opt := range opts {
		opt(mc)
	}

	mc.memory = NewMemory(mc.format.Size)
	mc.Reset()

	return mc
}

// Clears memory and registers and returns the machine to Ready.
func (mc *Machine) Reset() {
	mc.memory.Reset()
	mc.accumulator = 0
	mc.program = 0
	mc.state = Ready
	mc.fault = nil
	mc.lines = nil
}

func (mc *Machine) Format() Format { return mc.format }

func (mc *Machine) Accumulator() Word { return mc.accumulator }

func (mc *Machine) Program() int { return mc.program }

func (mc *Machine) State() State { return mc.state }

// Returns a copy of memory for viewers; writes to it do not reach the
// machine.
func (mc *Machine) Memory() []Word { return mc.memory.Snapshot() }

func (mc *Machine) Peek(addr int) (Word, error) { return mc.memory.Read(addr) }

// Returns the fault that stopped the machine, or nil.
func (mc *Machine) Fault() error {
	if mc.fault == nil {
		return nil
	}
	return mc.fault
}

// Returns the 1-indexed source line the word at addr was loaded from.
func (mc *Machine) SourceLine(addr int) (int, bool) {
	if addr < 0 || addr >= len(mc.lines) {
		return 0, false
	}
	return mc.lines[addr], true
}

// Debugging mutators. Values are range checked; the program counter is
// not, an out of range address faults on the next Step.

func (mc *Machine) SetAccumulator(value Word) error {
	if !mc.format.InRange(int64(value)) {
		return &Error{
			Errno:  InputOutOfRange,
			PC:     mc.program,
			Value:  int64(value),
			Digits: mc.format.Digits,
		}
	}

	mc.accumulator = value
	return nil
}

func (mc *Machine) SetProgram(addr int) {
	mc.program = addr
}

func (mc *Machine) Poke(addr int, value Word) error {
	if !mc.format.InRange(int64(value)) {
		return &Error{
			Errno:  InputOutOfRange,
			PC:     mc.program,
			Value:  int64(value),
			Digits: mc.format.Digits,
		}
	}

	return mc.memory.Write(addr, value)
}

func formatWord(value Word, digits int) string {
	if digits == 0 {
		digits = encoding.WIDE_DIGITS
	}
	return encoding.EncodeWord(int64(value), digits)
}

// Operands are validated during decode, so data accesses never fail.
func (mc *Machine) read(addr int) Word {
	value, _ := mc.memory.Read(addr)

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return value
}

func (mc *Machine) write(addr int, value Word) {
	_ = mc.memory.Write(addr, value)

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

func (mc *Machine) raise(err *Error) (State, error) {
	err.Digits = mc.format.Digits
	mc.state = Faulted
	mc.fault = err
	return Faulted, err
}

// Executes one instruction. A halted machine stays halted without fetching
// and a faulted machine returns its original fault; only Reset or Load
// make it runnable again. Faults leave the accumulator, memory and program
// counter as they were before the instruction.
func (mc *Machine) Step() (State, error) {
	switch mc.state {
	case Halted:
		return Halted, nil
	case Faulted:
		return Faulted, mc.fault
	}

	mc.state = Running

	if mc.program < 0 || mc.program > mc.format.MaxAddress() {
		return mc.raise(&Error{
			Errno: ProgramCounterOutOfBounds,
			PC:    mc.program,
		})
	}

	instruction, _ := mc.memory.Read(mc.program)

	if instruction < 0 {
		return mc.raise(&Error{
			Errno:       InvalidInstruction,
			PC:          mc.program,
			Instruction: instruction,
		})
	}

	code, arg := encoding.SplitWord(int64(instruction), int64(mc.format.Scale))
	opcode := Opcode(code)
	operand := int(arg)

	fault := func(errno Errno) *Error {
		return &Error{
			Errno:       errno,
			PC:          mc.program,
			Instruction: instruction,
			Opcode:      opcode,
			Operand:     operand,
		}
	}

	if operand > mc.format.MaxAddress() {
		return mc.raise(fault(InvalidOperand))
	}

	next := mc.program + 1

	switch opcode {
	case OP_READ:
		if mc.Devices.Keyboard == nil {
			err := fault(InputAborted)
			err.Err = ErrNoKeyboard
			return mc.raise(err)
		}

		value, ioerr := mc.Devices.Keyboard.ReadInt()

		if ioerr != nil {
			err := fault(InputAborted)
			err.Err = ioerr
			return mc.raise(err)
		}

		if !mc.format.InRange(value) {
			err := fault(InputOutOfRange)
			err.Value = value
			return mc.raise(err)
		}

		mc.write(operand, Word(value))

	case OP_WRITE:
		value := mc.read(operand)

		if mc.Devices.Display != nil {
			if ioerr := mc.Devices.Display.WriteInt(value); ioerr != nil {
				err := fault(OutputFailed)
				err.Err = ioerr
				return mc.raise(err)
			}
		}

	case OP_LOAD:
		mc.accumulator = mc.read(operand)

	case OP_STORE:
		mc.write(operand, mc.accumulator)

	case OP_ADD, OP_SUBTRACT, OP_MULTIPLY, OP_DIVIDE:
		lhs := int64(mc.accumulator)
		rhs := int64(mc.read(operand))

		var result int64

		switch opcode {
		case OP_ADD:
			result = lhs + rhs
		case OP_SUBTRACT:
			result = lhs - rhs
		case OP_MULTIPLY:
			result = lhs * rhs
		case OP_DIVIDE:
			if rhs == 0 {
				return mc.raise(fault(DivisionByZero))
			}

			// Go integer division truncates toward zero
			result = lhs / rhs
		}

		if !mc.format.InRange(result) {
			err := fault(Overflow)
			err.Value = result
			return mc.raise(err)
		}

		mc.accumulator = Word(result)

	case OP_BRANCH:
		next = operand

	case OP_BRANCHNEG:
		if mc.accumulator < 0 {
			next = operand
		}

	case OP_BRANCHZERO:
		if mc.accumulator == 0 {
			next = operand
		}

	case OP_HALT:
		mc.state = Halted
		return Halted, nil

	default:
		return mc.raise(fault(InvalidOpcode))
	}

	// Falling off the end of memory completes the program
	if next > mc.format.MaxAddress() {
		mc.state = Halted
		return Halted, nil
	}

	mc.program = next

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return mc.state, nil
}

// Steps until the machine halts or faults. Returns nil once halted.
func (mc *Machine) Run() error {
	for {
		state, err := mc.Step()

		if err != nil {
			return err
		}

		if state == Halted {
			return nil
		}
	}
}
