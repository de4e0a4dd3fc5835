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
	"fmt"
)

// Runtime fault kinds
const (
	ProgramCounterOutOfBounds = Errno(iota)
	InvalidInstruction
	InvalidOpcode
	InvalidOperand
	Overflow
	DivisionByZero
	InputOutOfRange
	InputAborted
	OutputFailed
)

var strError = []string{
	"program counter out of bounds",
	"invalid instruction",
	"invalid opcode",
	"invalid operand",
	"overflow",
	"division by zero",
	"input out of range",
	"input aborted",
	"output failed",
}

// Errno describes the kind of a runtime fault.
type Errno int

func (e Errno) Error() string {
	if e < 0 || int(e) >= len(strError) {
		return fmt.Sprintf("errno %d", int(e))
	}
	return strError[e]
}

// Error describes a runtime fault and the machine context it occurred in.
type Error struct {
	Errno       Errno
	Err         error  // I/O error for InputAborted and OutputFailed
	PC          int    // address of the faulting instruction
	Instruction Word   // fetched word, zero for ProgramCounterOutOfBounds
	Opcode      Opcode // decoded opcode, if decoding got that far
	Operand     int    // decoded operand, if decoding got that far
	Value       int64  // offending value for Overflow and InputOutOfRange
	Digits      int
}

func (e *Error) Error() string {
	msg := e.Errno.Error()

	switch e.Errno {
	case ProgramCounterOutOfBounds:
		return fmt.Sprintf("%s: %03d", msg, e.PC)
	case InvalidInstruction:
		msg += " (negative instruction word)"
	case InvalidOpcode:
		msg += fmt.Sprintf(" %03d", int(e.Opcode))
	case InvalidOperand:
		msg += fmt.Sprintf(" %03d", e.Operand)
	case Overflow:
		msg += fmt.Sprintf(" during %s: %d", e.Opcode, e.Value)
	case InputOutOfRange:
		msg += fmt.Sprintf(": %d", e.Value)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return fmt.Sprintf(
		"%s at %03d (%s)", msg, e.PC, formatWord(e.Instruction, e.Digits),
	)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Matches an Errno target so callers can test errors.Is(err, Overflow).
func (e *Error) Is(target error) bool {
	errno, ok := target.(Errno)
	return ok && errno == e.Errno
}

// Returned by the loader when a line is not a well formed word.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (err *FormatError) Error() string {
	return fmt.Sprintf(
		"line %d: invalid word '%s': %s", err.Line, err.Text, err.Reason,
	)
}

// Returned by the loader when a program holds more words than memory.
type CapacityError struct {
	Line     int
	Capacity int
}

func (err *CapacityError) Error() string {
	return fmt.Sprintf(
		"line %d: program exceeds memory capacity of %d words",
		err.Line,
		err.Capacity,
	)
}
