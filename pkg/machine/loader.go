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
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/lassandro/gouvsim/pkg/encoding"
)

type Program struct {
	Words []Word
	Lines []int // 1-indexed source line of each word
}

// Validates every line of a program for the given format. Blank and
// comment lines are skipped and do not count against memory capacity.
func Parse(lines []string, format Format) (*Program, error) {
	program := &Program{
		Words: make([]Word, 0, len(lines)),
		Lines: make([]int, 0, len(lines)),
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if encoding.IsSkipped(line) {
			continue
		}

		if len(program.Words) >= format.Size {
			return nil, &CapacityError{i + 1, format.Size}
		}

		value, err := encoding.DecodeWord(line, format.Digits)

		if err != nil {
			return nil, &FormatError{i + 1, raw, err.Error()}
		}

		if !format.InRange(value) {
			return nil, &FormatError{i + 1, raw, "value out of range"}
		}

		program.Words = append(program.Words, Word(value))
		program.Lines = append(program.Lines, i+1)
	}

	return program, nil
}

// Resets the machine and loads lines into memory from address 0. Nothing
// is changed when any line fails validation.
func (mc *Machine) Load(lines []string) error {
	program, err := Parse(lines, mc.format)

	if err != nil {
		return err
	}

	mc.Reset()

	for addr, word := range program.Words {
		if err := mc.memory.Write(addr, word); err != nil {
			return err
		}
	}

	mc.lines = program.Lines

	return nil
}

func (mc *Machine) LoadReader(reader io.Reader) error {
	lines, err := ReadLines(reader)

	if err != nil {
		return err
	}

	return mc.Load(lines)
}

func ReadLines(reader io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading program")
	}

	return lines, nil
}
