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

	"golang.org/x/exp/slices"
)

type OutOfBoundsError struct {
	Addr int
	Size int
}

func (err *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"address %03d out of bounds (000-%03d)", err.Addr, err.Size-1,
	)
}

// Memory is a fixed-length array of words addressed from 0.
type Memory struct {
	cells []Word
}

func NewMemory(size int) *Memory {
	return &Memory{cells: make([]Word, size)}
}

func (m *Memory) Len() int {
	return len(m.cells)
}

func (m *Memory) Read(addr int) (Word, error) {
	if addr < 0 || addr >= len(m.cells) {
		return 0, &OutOfBoundsError{addr, len(m.cells)}
	}

	return m.cells[addr], nil
}

// Overwrites the cell at addr. The value is not range checked.
func (m *Memory) Write(addr int, value Word) error {
	if addr < 0 || addr >= len(m.cells) {
		return &OutOfBoundsError{addr, len(m.cells)}
	}

	m.cells[addr] = value
	return nil
}

func (m *Memory) Reset() {
	for i := range m.cells {
		m.cells[i] = 0
	}
}

func (m *Memory) Snapshot() []Word {
	return slices.Clone(m.cells)
}
