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
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"strconv"
	"strings"
)

const WORD_BITS = 16

var ErrInvalidDigits = errors.New("Invalid decimal string")

// Decodes an unsigned base-10 string in the format: 123
func DecodeInt(s string) (uint64, error) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	}) != -1 {
		return 0, ErrInvalidDigits
	}

	return strconv.ParseUint(s, 10, 64)
}

// Formats a word as WORD_BITS characters of '0'/'1', most significant first
func FormatWord(word uint16) string {
	s := strconv.FormatUint(uint64(word), 2)
	return strings.Repeat("0", WORD_BITS-len(s)) + s
}

// Writes one formatted word per line, newline terminated
func WriteWords(w io.Writer, words []uint16) error {
	writer := bufio.NewWriter(w)

	for _, word := range words {
		if _, err := writer.WriteString(FormatWord(word)); err != nil {
			return err
		}

		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// Writes the words as a raw big-endian image
func WriteImage(w io.Writer, words []uint16) error {
	return binary.Write(w, binary.BigEndian, words)
}
