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


package main

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/encoding"
)

var helpvar bool
var debugvar bool
var tracevar bool
var binaryvar bool
var outvar string

var colorvar bool

const usage = "gohack-asm [-debug] [-trace] [-binary] [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	colorvar = isTerminal(int(os.Stderr.Fd()))
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.hackdb'",
	)
	flag.BoolVar(
		&tracevar, "trace", false,
		"Prints the resolved labels and variables to stderr",
	)
	flag.BoolVar(
		&binaryvar, "binary", false,
		"Writes a raw big-endian image instead of one binary string per line",
	)
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.Parse()
}

func bold(s string) string {
	if !colorvar {
		return s
	}

	return "\033[1m" + s + "\033[0m"
}

func red(s string) string {
	if !colorvar {
		return s
	}

	return "\033[31m" + s + "\033[0m"
}

func reportErrors(input io.ReadSeeker, errs []error) {
	for _, err := range errs {
		tokenErr, ok := err.(assembler.TokenError)

		if !ok {
			log.Println(err)
			continue
		}

		cursor := tokenErr.GetPosition()

		if _, err := input.Seek(cursor.LineByte, io.SeekStart); err != nil {
			panic(err)
		}

		line, _ := bufio.NewReader(input).ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		size := int(cursor.Size)
		if size < 1 {
			size = 1
		}

		underlinefmt := fmt.Sprintf(
			"%% %ds%s",
			int(cursor.Byte-cursor.LineByte)+1,
			strings.Repeat("~", size-1),
		)

		log.Printf(
			"%s\n%s\n%s",
			err,
			line,
			red(fmt.Sprintf(underlinefmt, "^")),
		)
	}
}

func gohack_asm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var infile string
	var source []byte

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		var err error

		if source, err = io.ReadAll(os.Stdin); err != nil {
			log.Println(err)
			return 1
		}

		log.SetPrefix(bold("<stdin>:"))

		if outvar == "" {
			outvar = "out.hack"
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		filename := filepath.Base(args[0])

		if stat, err := os.Stat(args[0]); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid Hack assembly file", filename)
			return 1
		}

		var err error

		if source, err = os.ReadFile(args[0]); err != nil {
			log.Println(err)
			return 1
		}

		infile = args[0]
		log.SetPrefix(bold(filename + ":"))

		if outvar == "" {
			outvar = strings.TrimSuffix(
				filename, filepath.Ext(filename),
			) + ".hack"
		}
	}

	var debug assembler.DebugTable
	var debugtarget *assembler.DebugTable = nil

	if debugvar || tracevar {
		if infile != "" {
			var err error
			if debug.Source, err = filepath.Abs(infile); err != nil {
				log.Println(err)
				debug.Source = ""
			}
		}
		debug.Lines = make(map[uint16]int64)
		debug.Labels = make(map[string]uint16)
		debug.Variables = make(map[string]uint16)
		debugtarget = &debug
	}

	input := bytes.NewReader(source)
	result, errs := assembler.AssembleHackSource(input, debugtarget)

	if len(errs) > 0 {
		reportErrors(input, errs)
		return 1
	}

	if tracevar {
		printer := pp.New()
		printer.SetOutput(os.Stderr)
		printer.SetColoringEnabled(colorvar)
		printer.Println(debug.Labels)
		printer.Println(debug.Variables)
	}

	{
		buffer := new(bytes.Buffer)

		var err error
		if binaryvar {
			err = encoding.WriteImage(buffer, result)
		} else {
			err = encoding.WriteWords(buffer, result)
		}

		if err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}

		if err := os.WriteFile(outvar, buffer.Bytes(), 0666); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	if debugvar {
		filename := filepath.Join(
			filepath.Dir(outvar),
			strings.TrimSuffix(
				filepath.Base(outvar), filepath.Ext(outvar),
			)+".hackdb",
		)

		if file, err := os.Create(filename); err == nil {
			defer file.Close()

			if err := gob.NewEncoder(file).Encode(debug); err != nil {
				log.Println("Error writing symbol table")
				log.Println(err)
				return 1
			}
		} else {
			log.Println("Error creating symbol table")
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(gohack_asm())
}
