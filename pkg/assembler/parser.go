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


package assembler

import (
	"strings"
	"unicode"
)

// Removes any trailing comment and surrounding whitespace, returning the
// remaining text and its byte offset within line.
func stripLine(line string) (string, int) {
	if i := strings.Index(line, MARKER_COMMENT); i != -1 {
		line = line[:i]
	}

	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	offset := len(line) - len(trimmed)

	return strings.TrimRightFunc(trimmed, unicode.IsSpace), offset
}

func isLabelLine(text string) bool {
	return strings.HasPrefix(text, MARKER_LABEL_OPEN)
}

func isSymbolChar(char rune) bool {
	switch {
	case char > unicode.MaxASCII:
		return false
	case unicode.IsLetter(char), unicode.IsDigit(char):
		return true
	case char == '_', char == '.', char == '$', char == ':':
		return true
	}

	return false
}

// Address targets may begin with a digit, either as a literal or as a
// malformed symbol the encoder rejects.
func isTargetText(s string) bool {
	if s == "" {
		return false
	}

	for _, char := range s {
		if !isSymbolChar(char) {
			return false
		}
	}

	return true
}

func isSymbolName(s string) bool {
	return isTargetText(s) && !unicode.IsDigit(rune(s[0]))
}

func locate(cursor Cursor, column int, value string) Token {
	return Token{
		Position: Cursor{
			Line:     cursor.Line,
			Column:   column + 1,
			Byte:     cursor.LineByte + int64(column),
			Size:     int64(len(value)),
			LineByte: cursor.LineByte,
		},
		Value: value,
	}
}

// Like locate, but trims whitespace surrounding value first
func locateField(cursor Cursor, column int, value string) Token {
	trimmed := strings.TrimLeftFunc(value, unicode.IsSpace)
	column += len(value) - len(trimmed)

	return locate(
		cursor, column, strings.TrimRightFunc(trimmed, unicode.IsSpace),
	)
}

// Classifies a single source line. Blank and comment-only lines produce a
// nil instruction and a nil error. cursor locates the start of the line.
func ParseLine(line string, cursor Cursor) (*Instruction, error) {
	text, offset := stripLine(line)

	if text == "" {
		return nil, nil
	}

	whole := locate(cursor, offset, text)
	inst := &Instruction{Position: whole.Position}

	switch {
	// @value
	case strings.HasPrefix(text, MARKER_ADDRESS):
		inst.Type = INSTRUCTION_ADDRESS
		inst.Target = locate(cursor, offset+1, text[1:])

		if !isTargetText(inst.Target.Value) {
			return nil, &MalformedLineError{whole.Position, text}
		}

	// (LABEL)
	case isLabelLine(text):
		if !strings.HasSuffix(text, MARKER_LABEL_CLOSE) || len(text) < 3 {
			return nil, &MalformedLineError{whole.Position, text}
		}

		inst.Type = INSTRUCTION_LABEL
		inst.Target = locate(cursor, offset+1, text[1:len(text)-1])

		if !isSymbolName(inst.Target.Value) {
			return nil, &MalformedLineError{whole.Position, text}
		}

	// dest=comp, comp;jump, dest=comp;jump
	default:
		inst.Type = INSTRUCTION_COMPUTE

		rest, restOffset := text, offset
		hasDest, hasJump := false, false

		if i := strings.Index(rest, SEPARATOR_DEST); i != -1 {
			hasDest = true
			inst.Dest = locateField(cursor, restOffset, rest[:i])
			rest, restOffset = rest[i+1:], restOffset+i+1
		}

		if i := strings.Index(rest, SEPARATOR_JUMP); i != -1 {
			hasJump = true
			inst.Comp = locateField(cursor, restOffset, rest[:i])
			inst.Jump = locateField(cursor, restOffset+i+1, rest[i+1:])
		} else {
			inst.Comp = locateField(cursor, restOffset, rest)
		}

		if !hasDest && !hasJump {
			return nil, &MalformedLineError{whole.Position, text}
		}

		if inst.Comp.Value == "" ||
			(hasDest && inst.Dest.Value == "") ||
			(hasJump && inst.Jump.Value == "") {
			return nil, &MalformedLineError{whole.Position, text}
		}
	}

	return inst, nil
}
