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

import "github.com/lassandro/gouvsim/pkg/encoding"

type Opcode int

const (
	OP_READ       Opcode = 10
	OP_WRITE      Opcode = 11
	OP_LOAD       Opcode = 20
	OP_STORE      Opcode = 21
	OP_ADD        Opcode = 30
	OP_SUBTRACT   Opcode = 31
	OP_DIVIDE     Opcode = 32
	OP_MULTIPLY   Opcode = 33
	OP_BRANCH     Opcode = 40
	OP_BRANCHNEG  Opcode = 41
	OP_BRANCHZERO Opcode = 42
	OP_HALT       Opcode = 43
)

var opcodeNames = map[Opcode]string{
	OP_READ:       "READ",
	OP_WRITE:      "WRITE",
	OP_LOAD:       "LOAD",
	OP_STORE:      "STORE",
	OP_ADD:        "ADD",
	OP_SUBTRACT:   "SUBTRACT",
	OP_DIVIDE:     "DIVIDE",
	OP_MULTIPLY:   "MULTIPLY",
	OP_BRANCH:     "BRANCH",
	OP_BRANCHNEG:  "BRANCHNEG",
	OP_BRANCHZERO: "BRANCHZERO",
	OP_HALT:       "HALT",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}

	return "INVALID"
}

// Reports whether op is one of the twelve BasicML operations.
func (op Opcode) Valid() bool {
	_, ok := opcodeNames[op]
	return ok
}

// Format describes one word width regime. Opcodes and their semantics are
// shared; only the word width, memory size and encoding scale differ.
type Format struct {
	Name   string
	Digits int
	Scale  Word
	Size   int
}

var (
	// Canonical 6-digit machine: 250 words, OOOAAA instructions.
	Wide = Format{
		Name:   "wide",
		Digits: encoding.WIDE_DIGITS,
		Scale:  1000,
		Size:   250,
	}

	// Legacy 4-digit machine: 100 words, OOAA instructions.
	Narrow = Format{
		Name:   "narrow",
		Digits: encoding.NARROW_DIGITS,
		Scale:  100,
		Size:   100,
	}
)

func (f Format) MaxAddress() int {
	return f.Size - 1
}

func (f Format) MaxWord() Word {
	var max Word = 9

	for i := 1; i < f.Digits; i++ {
		max = max*10 + 9
	}

	return max
}

func (f Format) MinWord() Word {
	return -f.MaxWord()
}

func (f Format) InRange(value int64) bool {
	return value >= int64(f.MinWord()) && value <= int64(f.MaxWord())
}

// Returns the format matching a digit width, as reported by
// encoding.DetectFormat.
func FormatForDigits(digits int) (Format, bool) {
	switch digits {
	case Wide.Digits:
		return Wide, true
	case Narrow.Digits:
		return Narrow, true
	}

	return Format{}, false
}
