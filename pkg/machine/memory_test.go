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

package machine_test

import (
	"errors"
	"testing"

	"github.com/lassandro/gouvsim/pkg/machine"
)

func TestMemoryBounds(t *testing.T) {
	mem := machine.NewMemory(250)

	for _, addr := range []int{-1, 250, 1000} {
		var boundsErr *machine.OutOfBoundsError

		if _, err := mem.Read(addr); !errors.As(err, &boundsErr) {
			t.Errorf("Read(%d)\nwant:*machine.OutOfBoundsError\nhave:%v", addr, err)
		}

		if err := mem.Write(addr, 1); !errors.As(err, &boundsErr) {
			t.Errorf("Write(%d)\nwant:*machine.OutOfBoundsError\nhave:%v", addr, err)
		}
	}

	if err := mem.Write(249, 12345678); err != nil {
		t.Fatalf("Write(249)\nhave:%v", err)
	}

	if have, _ := mem.Read(249); have != 12345678 {
		t.Errorf("Read(249)\nwant:12345678\nhave:%d", have)
	}
}

func TestMemoryReset(t *testing.T) {
	mem := machine.NewMemory(100)

	for i := 0; i < mem.Len(); i++ {
		mem.Write(i, machine.Word(i+1))
	}

	snapshot := mem.Snapshot()
	mem.Reset()

	for i := 0; i < mem.Len(); i++ {
		if have, _ := mem.Read(i); have != 0 {
			t.Fatalf("Read(%d)\nwant:0\nhave:%d", i, have)
		}
	}

	if snapshot[99] != 100 {
		t.Errorf("Snapshot shares storage with memory\nwant:100\nhave:%d", snapshot[99])
	}
}
