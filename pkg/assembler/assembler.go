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
	"bufio"
	"io"
)

type sourceLine struct {
	Text   string
	Cursor Cursor
}

// Reads every line holding more than whitespace or a comment
func readSource(input io.Reader) ([]sourceLine, error) {
	var lines []sourceLine
	var scanner = bufio.NewScanner(input)
	var cursor = Cursor{Line: 1, Column: 0, Size: 0, Byte: 0}

	for scanner.Scan() {
		line := scanner.Text()
		cursor.Size = int64(len(line))

		if text, _ := stripLine(line); text != "" {
			lines = append(lines, sourceLine{line, cursor})
		}

		cursor.Line++
		cursor.Byte += int64(len(line) + 1)
		cursor.LineByte += int64(len(line) + 1)
	}

	return lines, scanner.Err()
}

// Binds every label to the address of the instruction following it and
// returns the number of executable instructions.
func bindLabels(
	lines []sourceLine, symbols *SymbolTable, debug *DebugTable,
) (program int, errs []error) {
	for _, line := range lines {
		if text, _ := stripLine(line.Text); !isLabelLine(text) {
			program++
			continue
		}

		inst, err := ParseLine(line.Text, line.Cursor)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		label := &inst.Target

		if program > ADDRESS_MAX {
			errs = append(
				errs,
				&AddressOverflowError{
					label.Position, ADDRESS_MAX, uint64(program),
				},
			)

			continue
		}

		if !symbols.AddEntry(label.Value, uint16(program)) {
			addr, _ := symbols.Resolve(label.Value)

			errs = append(
				errs,
				&DuplicateSymbolError{label.Position, label.Value, addr},
			)

			continue
		}

		if debug != nil {
			debug.Labels[label.Value] = uint16(program)
		}
	}

	if program > PROGRAM_SIZE {
		errs = append(errs, &OversizedBinaryError{})
	}

	return
}

// Encodes every non-label line in source order, allocating variables as
// they are first referenced.
func encodeLines(
	lines []sourceLine, symbols *SymbolTable, debug *DebugTable,
) (result []uint16, errs []error) {
	var next uint16 = VARIABLE_BASE
	var program int = 0

	result = make([]uint16, 0, len(lines))

	for _, line := range lines {
		if text, _ := stripLine(line.Text); isLabelLine(text) {
			continue
		}

		addr := uint16(program)
		program++

		inst, err := ParseLine(line.Text, line.Cursor)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		allocated := next
		word, err := EncodeInstruction(inst, symbols, &next)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		if debug != nil {
			debug.Lines[addr] = line.Cursor.LineByte

			if next != allocated {
				debug.Variables[inst.Target.Value] = allocated
			}
		}

		result = append(result, word)
	}

	return
}

// Translates a complete program into machine words, one per address or
// compute instruction, in source order. If debug is non-nil it receives
// the label and variable bindings along with the line offset of every
// instruction. No words are returned when any error is found.
func AssembleHackSource(input io.Reader, debug *DebugTable) (result []uint16, errs []error) {
	lines, err := readSource(input)

	if err != nil {
		return nil, []error{err}
	}

	if debug != nil {
		if debug.Lines == nil {
			debug.Lines = make(map[uint16]int64)
		}

		if debug.Labels == nil {
			debug.Labels = make(map[string]uint16)
		}

		if debug.Variables == nil {
			debug.Variables = make(map[string]uint16)
		}
	}

	symbols := NewSymbolTable()

	// Labels
	// - Bind labels against the instruction count
	// - Completes before any instruction is encoded
	_, errs = bindLabels(lines, symbols, debug)

	// Encode
	// - Resolve symbols, allocating variables from VARIABLE_BASE
	// - Write instruction words to result
	result, encodeErrs := encodeLines(lines, symbols, debug)
	errs = append(errs, encodeErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	return result, nil
}
