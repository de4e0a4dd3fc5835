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

package encoding_test

import (
	"errors"
	"testing"

	"github.com/lassandro/gouvsim/pkg/encoding"
)

func TestDecodeWord(t *testing.T) {
	tests := []struct {
		Input  string
		Digits int
		Value  int64
		Err    error
	}{
		{"+010002", 6, 10002, nil},
		{"-999999", 6, -999999, nil},
		{"+000000", 6, 0, nil},
		{"-0000", 4, 0, nil},
		{"+1099", 4, 1099, nil},
		{"+12345", 6, 0, encoding.ErrLength},
		{"+1099", 6, 0, encoding.ErrLength},
		{"010002", 6, 0, encoding.ErrSign},
		{"", 6, 0, encoding.ErrSign},
		{"+01 002", 6, 0, encoding.ErrDigits},
		{"++12345", 6, 0, encoding.ErrDigits},
	}

	for _, test := range tests {
		value, err := encoding.DecodeWord(test.Input, test.Digits)

		if !errors.Is(err, test.Err) {
			t.Errorf("%q\nwant:%v\nhave:%v", test.Input, test.Err, err)
			continue
		}

		if value != test.Value {
			t.Errorf("%q\nwant:%d\nhave:%d", test.Input, test.Value, value)
		}
	}
}

func TestDecodeInt(t *testing.T) {
	tests := map[string]int64{
		"#123":    123,
		"123":     123,
		"+000123": 123,
		"-45":     -45,
	}

	for input, want := range tests {
		if have, err := encoding.DecodeInt(input); err != nil || have != want {
			t.Errorf("%q\nwant:%d\nhave:%d %v", input, want, have, err)
		}
	}

	for _, input := range []string{"", "#", "12a", "x12"} {
		if _, err := encoding.DecodeInt(input); err == nil {
			t.Errorf("%q\nwant:error\nhave:nil", input)
		}
	}
}

func TestEncodeWord(t *testing.T) {
	tests := []struct {
		Value  int64
		Digits int
		Output string
	}{
		{0, 6, "+000000"},
		{45, 6, "+000045"},
		{-45, 6, "-000045"},
		{-999999, 6, "-999999"},
		{1099, 4, "+1099"},
		{-7, 4, "-0007"},
	}

	for _, test := range tests {
		if have := encoding.EncodeWord(test.Value, test.Digits); have != test.Output {
			t.Errorf("%d\nwant:%s\nhave:%s", test.Value, test.Output, have)
		}
	}
}

func TestSplitWord(t *testing.T) {
	if op, arg := encoding.SplitWord(43_249, 1000); op != 43 || arg != 249 {
		t.Errorf("want:43 249\nhave:%d %d", op, arg)
	}

	if op, arg := encoding.SplitWord(10_05, 100); op != 10 || arg != 5 {
		t.Errorf("want:10 5\nhave:%d %d", op, arg)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		Name   string
		Lines  []string
		Digits int
		Line   int
	}{
		{"Wide", []string{"# c", "+010002", "-000001"}, 6, 0},
		{"Narrow", []string{"+1005", "", "-0045"}, 4, 0},
		{"Empty", []string{"# only comments", ""}, 6, 0},
		{"Mixed", []string{"+1005", "+010005"}, 0, 2},
		{"Bad Width", []string{"+10050"}, 0, 1},
		{"No Sign", []string{"+1005", "1005"}, 0, 2},
		{"Not A Number", []string{"+10x5"}, 0, 1},
	}

	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			digits, err := encoding.DetectFormat(test.Lines)

			if test.Line == 0 {
				if err != nil || digits != test.Digits {
					t.Errorf("want:%d\nhave:%d %v", test.Digits, digits, err)
				}
				return
			}

			var detectErr *encoding.DetectError

			if !errors.As(err, &detectErr) {
				t.Fatalf("want:*encoding.DetectError\nhave:%v", err)
			}

			if detectErr.Line != test.Line {
				t.Errorf("want:line %d\nhave:line %d", test.Line, detectErr.Line)
			}
		})
	}
}
