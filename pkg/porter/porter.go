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

package porter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lassandro/gouvsim/pkg/encoding"
	"github.com/lassandro/gouvsim/pkg/machine"
)

type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (err *FormatError) Error() string {
	return fmt.Sprintf(
		"line %d: invalid 4-digit word '%s': %s", err.Line, err.Text, err.Reason,
	)
}

type OperandOutOfRangeError struct {
	Line int
	Text string
}

func (err *OperandOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"line %d: operand of '%s' out of range (00-99)", err.Line, err.Text,
	)
}

type DataOutOfRangeError struct {
	Line int
	Text string
}

func (err *DataOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"line %d: data word '%s' out of range (-9999 to +9999)",
		err.Line,
		err.Text,
	)
}

// Converts a narrow (4-digit) program to the wide (6-digit) format line for
// line. Comment and blank lines are kept as they are. A code line starting
// with '+' whose first two digits name an opcode is an instruction and
// keeps its operand; every other code line is a data word.
func Port(lines []string) ([]string, error) {
	result := make([]string, 0, len(lines))

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if encoding.IsSkipped(line) {
			result = append(result, raw)
			continue
		}

		value, err := encoding.DecodeWord(line, machine.Narrow.Digits)

		if err != nil {
			return nil, &FormatError{i + 1, line, err.Error()}
		}

		// Sign and digits were validated, so the slices always parse
		opcode, _ := strconv.Atoi(line[1:3])
		operand, _ := strconv.Atoi(line[3:5])

		if line[0] == '+' && machine.Opcode(opcode).Valid() {
			if operand < 0 || operand > machine.Narrow.MaxAddress() {
				return nil, &OperandOutOfRangeError{i + 1, line}
			}

			word := int64(opcode)*int64(machine.Wide.Scale) + int64(operand)
			result = append(result, encoding.EncodeWord(word, machine.Wide.Digits))
			continue
		}

		if !machine.Narrow.InRange(value) {
			return nil, &DataOutOfRangeError{i + 1, line}
		}

		magnitude := value
		if magnitude < 0 {
			magnitude = -magnitude
		}

		result = append(
			result,
			fmt.Sprintf("%c%0*d", line[0], machine.Wide.Digits, magnitude),
		)
	}

	return result, nil
}
