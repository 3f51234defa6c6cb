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


package assembler_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
)

type testCase struct {
	Name   string
	Input  string
	Output []uint16
	Debug  *assembler.DebugTable
}

type failCase struct {
	Name  string
	Input string
	Error error
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	var debug assembler.DebugTable
	var debugtarget *assembler.DebugTable = nil

	if test.Debug != nil {
		debug.Lines = make(map[uint16]int64)
		debug.Labels = make(map[string]uint16)
		debug.Variables = make(map[string]uint16)
		debugtarget = &debug
	}

	result, errs := assembler.AssembleHackSource(
		strings.NewReader(test.Input), debugtarget,
	)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if have, want := len(result), len(test.Output); have != want {
		t.Fatalf(
			"Invalid instruction count\n"+
				"want:%d\n"+
				"have:%d",
			want,
			have,
		)
	}

	for addr, want := range test.Output {
		if have := result[addr]; have != want {
			t.Fatalf(
				"Instruction encoding mismatch\n"+
					"want:%016b (test.Output[%d])\n"+
					"have:%016b",
				want,
				addr,
				have,
			)
		}
	}

	if test.Debug == nil {
		return
	}

	if test.Debug.Lines != nil && !reflect.DeepEqual(debug.Lines, test.Debug.Lines) {
		t.Fatalf(
			"Debug line mismatch\nwant:%v\nhave:%v",
			test.Debug.Lines,
			debug.Lines,
		)
	}

	if !reflect.DeepEqual(debug.Labels, test.Debug.Labels) {
		t.Fatalf(
			"Debug label mismatch\nwant:%v\nhave:%v",
			test.Debug.Labels,
			debug.Labels,
		)
	}

	if !reflect.DeepEqual(debug.Variables, test.Debug.Variables) {
		t.Fatalf(
			"Debug variable mismatch\nwant:%v\nhave:%v",
			test.Debug.Variables,
			debug.Variables,
		)
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	result, errs := assembler.AssembleHackSource(
		strings.NewReader(test.Input), nil,
	)

	if test.Error == nil {
		panic("Fail case missing error value")
	}

	if result != nil {
		t.Fatalf("%s produced output alongside errors: %v", t.Name(), result)
	}

	if len(errs) == 0 {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if len(errs) > 1 {
		errTypes := make([]reflect.Type, 0, len(errs))
		for _, err := range errs {
			errTypes = append(errTypes, reflect.TypeOf(err))
		}

		t.Fatalf(
			"%s produced multiple errors:\n\twant:%T (test.Error)\n\thave:%v",
			t.Name(),
			test.Error,
			errTypes,
		)
	}

	if reflect.TypeOf(errs[0]) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T",
			t.Name(),
			test.Error,
			errs[0],
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerFail(t, &test)
			})
		}
	})
}

// ADDR |0|address                       | Address instruction
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestAddress(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Literal",
			Input:  `@2`,
			Output: []uint16{0b0_000000000000010},
		},
		{
			Name:   "Literal zero",
			Input:  `@0`,
			Output: []uint16{0b0_000000000000000},
		},
		{
			Name:   "Literal max",
			Input:  `@32767`,
			Output: []uint16{0b0_111111111111111},
		},
		{
			Name:   "SCREEN",
			Input:  `@SCREEN`,
			Output: []uint16{0b0_100000000000000},
		},
		{
			Name:   "KBD",
			Input:  `@KBD`,
			Output: []uint16{0b0_110000000000000},
		},
		{
			Name: "Registers",
			Input: `
				@R0
				@R7
				@R15
				@SP
				@LCL
				@ARG
				@THIS
				@THAT
			`,
			Output: []uint16{0, 7, 15, 0, 1, 2, 3, 4},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Literal overflow",
			Input: `@32768`,
			Error: &assembler.AddressOverflowError{},
		},
		{
			Name:  "Literal out of range",
			Input: `@99999999999999999999999`,
			Error: &assembler.AddressOverflowError{},
		},
		{
			Name:  "Digit-leading symbol",
			Input: `@12ab`,
			Error: &assembler.UnknownSymbolError{},
		},
		{
			Name:  "Missing target",
			Input: `@`,
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Negative literal",
			Input: `@-1`,
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Invalid character",
			Input: `@foo-bar`,
			Error: &assembler.MalformedLineError{},
		},
	})
}

// COMP |111 |a|c1..c6     |d1-3 |j1-3   | Compute instruction
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestCompute(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "D=A",
			Input:  `D=A`,
			Output: []uint16{0b111_0_110000_010_000},
		},
		{
			Name:   "D=D+A",
			Input:  `D=D+A`,
			Output: []uint16{0b111_0_000010_010_000},
		},
		{
			Name:   "M=D",
			Input:  `M=D`,
			Output: []uint16{0b111_0_001100_001_000},
		},
		{
			Name:   "AMD=M+1",
			Input:  `AMD=M+1`,
			Output: []uint16{0b111_1_110111_111_000},
		},
		{
			Name:   "MD=D|M",
			Input:  `MD=D|M`,
			Output: []uint16{0b111_1_010101_011_000},
		},
		{
			Name:   "0;JMP",
			Input:  `0;JMP`,
			Output: []uint16{0b111_0_101010_000_111},
		},
		{
			Name:   "D;JGT",
			Input:  `D;JGT`,
			Output: []uint16{0b111_0_001100_000_001},
		},
		{
			Name:   "D-1;JNE",
			Input:  `D-1;JNE`,
			Output: []uint16{0b111_0_001110_000_101},
		},
		{
			Name:   "Dest and jump",
			Input:  `D=M;JLE`,
			Output: []uint16{0b111_1_110000_010_110},
		},
		{
			Name:   "Spaced fields",
			Input:  `AD = -1 ; JEQ`,
			Output: []uint16{0b111_0_111010_110_010},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Unknown comp",
			Input: `D=A+M`,
			Error: &assembler.UnknownMnemonicError{},
		},
		{
			Name:  "Unknown dest",
			Input: `X=A`,
			Error: &assembler.UnknownMnemonicError{},
		},
		{
			Name:  "Unknown jump",
			Input: `0;JAA`,
			Error: &assembler.UnknownMnemonicError{},
		},
		{
			Name:  "Lowercase mnemonic",
			Input: `d=a`,
			Error: &assembler.UnknownMnemonicError{},
		},
		{
			Name:  "Bare comp",
			Input: `D+1`,
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Empty dest",
			Input: `=A`,
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Empty comp",
			Input: `D=`,
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Empty jump",
			Input: `0;`,
			Error: &assembler.MalformedLineError{},
		},
	})
}

func TestProgram(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Add",
			Input: `
				// Computes R0 = 2 + 3
				@2
				D=A
				@3
				D=D+A
				@0
				M=D
			`,
			Output: []uint16{
				0b0000000000000010,
				0b1110110000010000,
				0b0000000000000011,
				0b1110000010010000,
				0b0000000000000000,
				0b1110001100001000,
			},
		},
		{
			Name:   "Empty",
			Input:  "// nothing here\n\n   \n",
			Output: []uint16{},
		},
		{
			Name:   "Inline comments",
			Input:  "@5 // five\nD=A// store\n0;JMP   //loop",
			Output: []uint16{5, 0b111_0_110000_010_000, 0b111_0_101010_000_111},
		},
		{
			Name:   "CRLF",
			Input:  "@5\r\nD=A\r\n",
			Output: []uint16{5, 0b111_0_110000_010_000},
		},
	})
}

func TestLabels(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Forward reference",
			Input: `
				@LOOP
				D=A
				@1
				M=D
			(LOOP)
				0;JMP
			`,
			Output: []uint16{
				4,
				0b111_0_110000_010_000,
				1,
				0b111_0_001100_001_000,
				0b111_0_101010_000_111,
			},
			Debug: &assembler.DebugTable{
				Labels:    map[string]uint16{"LOOP": 4},
				Variables: map[string]uint16{},
			},
		},
		{
			Name: "Backward reference",
			Input: `
			(START)
				@START
				0;JMP
			`,
			Output: []uint16{0, 0b111_0_101010_000_111},
			Debug: &assembler.DebugTable{
				Labels:    map[string]uint16{"START": 0},
				Variables: map[string]uint16{},
			},
		},
		{
			Name: "Consecutive labels",
			Input: `
				@0
			(A.1)
			(B$2) // both bind to 1
				@A.1
				@B$2
			(END)
			`,
			Output: []uint16{0, 1, 1},
			Debug: &assembler.DebugTable{
				Labels: map[string]uint16{
					"A.1": 1,
					"B$2": 1,
					"END": 3,
				},
				Variables: map[string]uint16{},
			},
		},
		{
			Name: "Label is not a variable",
			Input: `
				@i
				@END
			(END)
				@j
			`,
			Output: []uint16{16, 2, 17},
			Debug: &assembler.DebugTable{
				Labels:    map[string]uint16{"END": 2},
				Variables: map[string]uint16{"i": 16, "j": 17},
			},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Duplicate label",
			Input: "(LOOP)\n@0\n(LOOP)\n0;JMP",
			Error: &assembler.DuplicateSymbolError{},
		},
		{
			Name:  "Predefined label",
			Input: "(SCREEN)\n@0",
			Error: &assembler.DuplicateSymbolError{},
		},
		{
			Name:  "Unclosed label",
			Input: "(LOOP\n@0",
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Empty label",
			Input: "()\n@0",
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Digit-leading label",
			Input: "(1LOOP)\n@0",
			Error: &assembler.MalformedLineError{},
		},
		{
			Name:  "Trailing instruction",
			Input: "(LOOP) 0;JMP",
			Error: &assembler.MalformedLineError{},
		},
	})
}

func TestVariables(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:  "Reuse",
			Input: "@foo\nM=0\n@bar\nM=1\n@foo\nD=M",
			Output: []uint16{
				16,
				0b111_0_101010_001_000,
				17,
				0b111_0_111111_001_000,
				16,
				0b111_1_110000_010_000,
			},
			Debug: &assembler.DebugTable{
				Lines: map[uint16]int64{
					0: 0,
					1: 5,
					2: 9,
					3: 14,
					4: 18,
					5: 23,
				},
				Labels:    map[string]uint16{},
				Variables: map[string]uint16{"foo": 16, "bar": 17},
			},
		},
		{
			Name:   "Predefined is not a variable",
			Input:  "@R1\n@x\n@THAT\n@y",
			Output: []uint16{1, 16, 4, 17},
		},
	})
}

func TestOversizedBinary(t *testing.T) {
	testFail(t, []failCase{
		{
			Name:  "ROM overflow",
			Input: strings.Repeat("D=A\n", assembler.PROGRAM_SIZE+1),
			Error: &assembler.OversizedBinaryError{},
		},
	})

	testSuccess(t, []testCase{
		{
			Name:   "ROM full",
			Input:  strings.Repeat("@7\n", assembler.PROGRAM_SIZE),
			Output: repeatWord(7, assembler.PROGRAM_SIZE),
		},
	})
}

func repeatWord(word uint16, count int) []uint16 {
	result := make([]uint16, count)
	for i := range result {
		result[i] = word
	}

	return result
}

func TestCollectsErrors(t *testing.T) {
	input := "@1\nD=Q\n(SP)\nX;JMP\n@99999"

	result, errs := assembler.AssembleHackSource(strings.NewReader(input), nil)

	if result != nil {
		t.Fatalf("Unexpected output: %v", result)
	}

	want := []reflect.Type{
		reflect.TypeOf(&assembler.DuplicateSymbolError{}),
		reflect.TypeOf(&assembler.UnknownMnemonicError{}),
		reflect.TypeOf(&assembler.UnknownMnemonicError{}),
		reflect.TypeOf(&assembler.AddressOverflowError{}),
	}

	have := make([]reflect.Type, 0, len(errs))
	for _, err := range errs {
		have = append(have, reflect.TypeOf(err))
	}

	if !reflect.DeepEqual(have, want) {
		t.Fatalf("Error mismatch\nwant:%v\nhave:%v", want, have)
	}
}

func TestErrorPosition(t *testing.T) {
	input := "@1\n\n   D=D+Q // oops\n"

	_, errs := assembler.AssembleHackSource(strings.NewReader(input), nil)

	if len(errs) != 1 {
		t.Fatalf("want 1 error, have %d: %v", len(errs), errs)
	}

	tokenErr, ok := errs[0].(assembler.TokenError)

	if !ok {
		t.Fatalf("%T does not carry a position", errs[0])
	}

	want := assembler.Cursor{
		Line:     3,
		Column:   6,
		Byte:     9,
		Size:     3,
		LineByte: 4,
	}

	if have := tokenErr.GetPosition(); have != want {
		t.Fatalf("Position mismatch\nwant:%+v\nhave:%+v", want, have)
	}

	if msg := errs[0].Error(); msg != "03:06: Unknown comp mnemonic 'D+Q'" {
		t.Fatalf("Unexpected message %q", msg)
	}
}

func TestDeterministic(t *testing.T) {
	input := "@a\n@b\n(L)\n@c\n@L\n@b\nD;JMP"

	first, errs := assembler.AssembleHackSource(strings.NewReader(input), nil)
	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	second, errs := assembler.AssembleHackSource(strings.NewReader(input), nil)
	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Output differs between runs\nfirst:%v\nsecond:%v", first, second)
	}
}
