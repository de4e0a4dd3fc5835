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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/lassandro/gouvsim/pkg/machine"
	"github.com/lassandro/gouvsim/pkg/porter"
)

var helpvar bool
var outvar string

const usage = "uvsim-port [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default '<name> (port)<ext>'. "+
			"Use '-' for standard output",
	)
	flag.Parse()
}

// Returns the default output name for a ported file: "prog.txt" becomes
// "prog (port).txt".
func portName(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + " (port)" + ext
}

func uvsim_port() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var input io.Reader

	if stat, err := os.Stdin.Stat(); err == nil &&
		stat.Mode()&os.ModeCharDevice == 0 &&
		len(args) == 0 {
		input = os.Stdin
		log.SetPrefix("\033[1m<stdin>:\033[0m ")

		if outvar == "" {
			outvar = "-"
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])

		if err != nil {
			log.Println(err)
			return 1
		}

		defer file.Close()

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid BasicML file", filename)
			return 1
		}

		input = file
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m ", filename))

		if outvar == "" {
			outvar = portName(args[0])
		}
	}

	lines, err := machine.ReadLines(input)

	if err != nil {
		log.Println(err)
		return 1
	}

	result, err := porter.Port(lines)

	if err != nil {
		log.Println(err)
		return 1
	}

	output := strings.Join(result, "\n")
	if len(result) > 0 {
		output += "\n"
	}

	if outvar == "-" {
		if _, err := io.WriteString(os.Stdout, output); err != nil {
			log.Println(errors.Wrap(err, "writing output"))
			return 1
		}

		return 0
	}

	if err := os.WriteFile(outvar, []byte(output), 0666); err != nil {
		log.Println(errors.Wrap(err, "writing output file"))
		return 1
	}

	return 0
}

func main() {
	os.Exit(uvsim_port())
}
