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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	NARROW_DIGITS = 4
	WIDE_DIGITS   = 6
)

const COMMENT_MARKER = "#"

var (
	ErrSign   = errors.New("word must start with '+' or '-'")
	ErrLength = errors.New("wrong number of digits")
	ErrDigits = errors.New("word contains non-digit characters")
)

// Decodes a base-10 string in the formats: #123, 123, +000123, -45
func DecodeInt(s string) (int64, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseInt(s, 10, 64)

	if err != nil {
		return 0, err
	}

	return result, nil
}

// Reports whether a trimmed source line carries no word: blank lines and
// lines beginning with the comment marker.
func IsSkipped(line string) bool {
	return line == "" || strings.HasPrefix(line, COMMENT_MARKER)
}

// Decodes a signed fixed-width word in the format [+-]DDDD or [+-]DDDDDD,
// depending on digits.
func DecodeWord(s string, digits int) (int64, error) {
	if len(s) == 0 || (s[0] != '+' && s[0] != '-') {
		return 0, ErrSign
	}

	if len(s)-1 != digits {
		return 0, ErrLength
	}

	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return 0, ErrDigits
		}
	}

	result, err := strconv.ParseInt(s, 10, 64)

	if err != nil {
		return 0, err
	}

	return result, nil
}

// Encodes value as a sign followed by digits zero padded digits.
func EncodeWord(value int64, digits int) string {
	sign := '+'

	if value < 0 {
		sign = '-'
		value = -value
	}

	return fmt.Sprintf("%c%0*d", sign, digits, value)
}

// Splits a non-negative instruction word into its opcode and operand.
func SplitWord(word int64, scale int64) (opcode, operand int64) {
	return word / scale, word % scale
}

type DetectError struct {
	Line   int
	Text   string
	Reason string
}

func (err *DetectError) Error() string {
	return fmt.Sprintf("line %d: %s: '%s'", err.Line, err.Reason, err.Text)
}

// Detects the digit width (4 or 6) shared by every code line. A program
// without code lines is reported as wide.
func DetectFormat(lines []string) (int, error) {
	detected := 0

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if IsSkipped(line) {
			continue
		}

		if line[0] != '+' && line[0] != '-' {
			return 0, &DetectError{i + 1, line, ErrSign.Error()}
		}

		width := len(line) - 1

		if width != NARROW_DIGITS && width != WIDE_DIGITS {
			return 0, &DetectError{
				i + 1, line, "word must carry 4 or 6 digits",
			}
		}

		if detected == 0 {
			detected = width
		} else if detected != width {
			return 0, &DetectError{
				i + 1,
				line,
				fmt.Sprintf(
					"mixed format, expected %d-digit word", detected,
				),
			}
		}

		if _, err := DecodeWord(line, width); err != nil {
			return 0, &DetectError{i + 1, line, err.Error()}
		}
	}

	if detected == 0 {
		return WIDE_DIGITS, nil
	}

	return detected, nil
}
