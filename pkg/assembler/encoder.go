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
	"errors"
	"strconv"
	"unicode"

	"github.com/lassandro/gohack/pkg/encoding"
)

func encodeAddress(
	inst *Instruction, symbols *SymbolTable, next *uint16,
) (uint16, error) {
	target := &inst.Target

	var addr uint64

	if target.Value == "" {
		return 0, &MalformedLineError{inst.Position, MARKER_ADDRESS}
	}

	if unicode.IsDigit(rune(target.Value[0])) {
		literal, err := encoding.DecodeInt(target.Value)

		if errors.Is(err, strconv.ErrRange) {
			return 0, &AddressOverflowError{
				target.Position, ADDRESS_MAX, literal,
			}
		} else if err != nil {
			return 0, &UnknownSymbolError{target.Position, target.Value}
		}

		addr = literal
	} else if resolved, exists := symbols.Resolve(target.Value); exists {
		addr = uint64(resolved)
	} else {
		addr = uint64(*next)

		if addr <= ADDRESS_MAX {
			symbols.AddEntry(target.Value, uint16(addr))
			*next++
		}
	}

	if addr > ADDRESS_MAX {
		return 0, &AddressOverflowError{target.Position, ADDRESS_MAX, addr}
	}

	return OPCODE_ADDRESS | uint16(addr), nil
}

func encodeCompute(inst *Instruction) (uint16, error) {
	a, comp, exists := CompBits(inst.Comp.Value)

	if !exists {
		return 0, &UnknownMnemonicError{
			inst.Comp.Position, FIELD_COMP, inst.Comp.Value,
		}
	}

	dest, exists := DestBits(inst.Dest.Value)

	if !exists {
		return 0, &UnknownMnemonicError{
			inst.Dest.Position, FIELD_DEST, inst.Dest.Value,
		}
	}

	jump, exists := JumpBits(inst.Jump.Value)

	if !exists {
		return 0, &UnknownMnemonicError{
			inst.Jump.Position, FIELD_JUMP, inst.Jump.Value,
		}
	}

	var scratch uint16 = OPCODE_COMPUTE

	scratch |= a << 12
	scratch |= comp << 6
	scratch |= dest << 3
	scratch |= jump

	return scratch, nil
}

// Encodes an address or compute instruction into its machine word. Symbols
// unknown to the table are bound as variables at *next, which is then
// advanced.
func EncodeInstruction(
	inst *Instruction, symbols *SymbolTable, next *uint16,
) (uint16, error) {
	switch inst.Type {
	case INSTRUCTION_ADDRESS:
		return encodeAddress(inst, symbols, next)
	case INSTRUCTION_COMPUTE:
		return encodeCompute(inst)
	}

	return 0, &MalformedLineError{inst.Position, inst.Target.Value}
}
