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

package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lassandro/gouvsim/pkg/machine"
)

// Console implements the machine's READ and WRITE devices on line based
// text streams. In interactive mode invalid input is reported and asked
// for again; otherwise it is handed to the machine, which faults on it.
type Console struct {
	Input       *bufio.Scanner
	Output      io.Writer
	Format      machine.Format
	Interactive bool
	Labels      bool
}

func New(input io.Reader, output io.Writer, format machine.Format) *Console {
	return &Console{
		Input:  bufio.NewScanner(input),
		Output: output,
		Format: format,
	}
}

func (con *Console) ReadInt() (int64, error) {
	for {
		if con.Interactive {
			fmt.Fprintf(
				con.Output,
				"Enter an integer (%d to %d): ",
				con.Format.MinWord(),
				con.Format.MaxWord(),
			)
		}

		if !con.Input.Scan() {
			if err := con.Input.Err(); err != nil {
				return 0, errors.Wrap(err, "reading input")
			}

			return 0, io.EOF
		}

		text := strings.TrimSpace(con.Input.Text())
		value, err := strconv.ParseInt(text, 10, 64)

		if err != nil {
			if !con.Interactive {
				return 0, errors.Errorf("invalid input '%s'", text)
			}

			fmt.Fprintf(con.Output, "'%s' is not an integer\n", text)
			continue
		}

		if con.Interactive && !con.Format.InRange(value) {
			fmt.Fprintf(
				con.Output,
				"%d is outside %d to %d\n",
				value,
				con.Format.MinWord(),
				con.Format.MaxWord(),
			)
			continue
		}

		return value, nil
	}
}

func (con *Console) WriteInt(value machine.Word) error {
	var err error

	if con.Labels {
		_, err = fmt.Fprintf(con.Output, "Output: %d\n", value)
	} else {
		_, err = fmt.Fprintf(con.Output, "%d\n", value)
	}

	return errors.Wrap(err, "writing output")
}
