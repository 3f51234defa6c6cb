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
	"fmt"
)

type InstructionType uint
type FieldType uint

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type Token struct {
	Position Cursor
	Value    string
}

// Instruction is one classified source line. Target is set for address
// instructions and label declarations, Dest/Comp/Jump for compute
// instructions. An absent dest or jump has an empty Value.
type Instruction struct {
	Type     InstructionType
	Position Cursor
	Target   Token
	Dest     Token
	Comp     Token
	Jump     Token
}

type SymbolTable struct {
	symbols map[string]uint16
}

type DebugTable struct {
	Source    string
	Lines     map[uint16]int64
	Labels    map[string]uint16
	Variables map[string]uint16
}

func (field FieldType) String() string {
	switch field {
	case FIELD_COMP:
		return "comp"
	case FIELD_DEST:
		return "dest"
	case FIELD_JUMP:
		return "jump"
	}

	return "<invalid>"
}

type TokenError interface {
	GetPosition() Cursor
}

type UnknownSymbolError struct {
	Position Cursor
	Received string
}

func (err *UnknownSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown symbol '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownMnemonicError struct {
	Position Cursor
	Field    FieldType
	Received string
}

func (err *UnknownMnemonicError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownMnemonicError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown %s mnemonic '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Field,
		err.Received,
	)
}

type DuplicateSymbolError struct {
	Position Cursor
	Received string
	Address  uint16
}

func (err *DuplicateSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *DuplicateSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of symbol '%s'\n\tbound:%d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Address,
	)
}

type AddressOverflowError struct {
	Position Cursor
	Required uint64
	Received uint64
}

func (err *AddressOverflowError) GetPosition() Cursor {
	return err.Position
}

func (err *AddressOverflowError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Address exceeds allowed size\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type MalformedLineError struct {
	Position Cursor
	Received string
}

func (err *MalformedLineError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedLineError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Malformed instruction '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type OversizedBinaryError struct{}

func (err *OversizedBinaryError) Error() string {
	return "Binary exceeds allowed size"
}
