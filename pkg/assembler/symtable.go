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

// Creates a table holding only the machine's predefined symbols
func NewSymbolTable() *SymbolTable {
	table := &SymbolTable{
		symbols: make(map[string]uint16, len(predefinedSymbols)),
	}

	for name, addr := range predefinedSymbols {
		table.symbols[name] = addr
	}

	return table
}

// Binds name to addr. Bindings are permanent: returns false and leaves the
// table untouched if name is already bound.
func (table *SymbolTable) AddEntry(name string, addr uint16) bool {
	if _, exists := table.symbols[name]; exists {
		return false
	}

	table.symbols[name] = addr
	return true
}

func (table *SymbolTable) Contains(name string) bool {
	_, exists := table.symbols[name]
	return exists
}

func (table *SymbolTable) Resolve(name string) (uint16, bool) {
	addr, exists := table.symbols[name]
	return addr, exists
}

func (table *SymbolTable) Len() int {
	return len(table.symbols)
}

func IsPredefined(name string) bool {
	_, exists := predefinedSymbols[name]
	return exists
}

// Returns the a bit and the six comp bits of a comp mnemonic
func CompBits(mnemonic string) (uint16, uint16, bool) {
	bits, exists := compTable[mnemonic]
	return (bits >> 6) & 0x1, bits & 0x3F, exists
}

func DestBits(mnemonic string) (uint16, bool) {
	bits, exists := destTable[mnemonic]
	return bits, exists
}

func JumpBits(mnemonic string) (uint16, bool) {
	bits, exists := jumpTable[mnemonic]
	return bits, exists
}
