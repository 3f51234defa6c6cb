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

const (
	INSTRUCTION_NONE InstructionType = iota
	INSTRUCTION_ADDRESS
	INSTRUCTION_COMPUTE
	INSTRUCTION_LABEL
)

const (
	MARKER_COMMENT     = "//"
	MARKER_ADDRESS     = "@"
	MARKER_LABEL_OPEN  = "("
	MARKER_LABEL_CLOSE = ")"
	SEPARATOR_DEST     = "="
	SEPARATOR_JUMP     = ";"
)

const (
	FIELD_COMP FieldType = iota
	FIELD_DEST
	FIELD_JUMP
)

const (
	ADDRESS_BITS  = 15
	ADDRESS_MAX   = (1 << ADDRESS_BITS) - 1
	PROGRAM_SIZE  = 1 << ADDRESS_BITS
	VARIABLE_BASE = 16
)

// ADDR |0|address                       | Address instruction
// COMP |111 |a|c1..c6     |d1-3 |j1-3   | Compute instruction
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
const (
	OPCODE_ADDRESS uint16 = 0b0 << 15
	OPCODE_COMPUTE uint16 = 0b111 << 13
)

var predefinedSymbols = map[string]uint16{
	"R0":     0,
	"R1":     1,
	"R2":     2,
	"R3":     3,
	"R4":     4,
	"R5":     5,
	"R6":     6,
	"R7":     7,
	"R8":     8,
	"R9":     9,
	"R10":    10,
	"R11":    11,
	"R12":    12,
	"R13":    13,
	"R14":    14,
	"R15":    15,
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": 0x4000,
	"KBD":    0x6000,
}

// a bit followed by c1..c6
var compTable = map[string]uint16{
	"0":   0b0_101010,
	"1":   0b0_111111,
	"-1":  0b0_111010,
	"D":   0b0_001100,
	"A":   0b0_110000,
	"!D":  0b0_001101,
	"!A":  0b0_110001,
	"-D":  0b0_001111,
	"-A":  0b0_110011,
	"D+1": 0b0_011111,
	"A+1": 0b0_110111,
	"D-1": 0b0_001110,
	"A-1": 0b0_110010,
	"D+A": 0b0_000010,
	"D-A": 0b0_010011,
	"A-D": 0b0_000111,
	"D&A": 0b0_000000,
	"D|A": 0b0_010101,
	"M":   0b1_110000,
	"!M":  0b1_110001,
	"-M":  0b1_110011,
	"M+1": 0b1_110111,
	"M-1": 0b1_110010,
	"D+M": 0b1_000010,
	"D-M": 0b1_010011,
	"M-D": 0b1_000111,
	"D&M": 0b1_000000,
	"D|M": 0b1_010101,
}

var destTable = map[string]uint16{
	"":    0b000,
	"M":   0b001,
	"D":   0b010,
	"MD":  0b011,
	"A":   0b100,
	"AM":  0b101,
	"AD":  0b110,
	"AMD": 0b111,
}

var jumpTable = map[string]uint16{
	"":    0b000,
	"JGT": 0b001,
	"JEQ": 0b010,
	"JGE": 0b011,
	"JLT": 0b100,
	"JNE": 0b101,
	"JLE": 0b110,
	"JMP": 0b111,
}
