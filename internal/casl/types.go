/*
 * COMET - CASL assembler data types.
 *
 * Copyright 2026, The COMET Project Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package casl

import (
	"fmt"

	"github.com/comet-toolchain/comet/internal/isa"
	"github.com/comet-toolchain/comet/internal/symtab"
)

// Line is one tokenized source line.
type Line struct {
	Label    string
	Op       string
	Operands []string
	File     string
	LineNo   int
	Raw      string
}

// Word is one emitted memory cell. During pass 1 its value may still
// be a pending label or literal spelling; pass 2 reduces every
// pending word to a resolved one.
type Word struct {
	Resolved bool
	Value    uint16
	Pending  string // label name or literal spelling ("=..."), set when emitted unresolved; kept after pass 2 resolves it
	Addr     uint16
	File     string
	LineNo   int
	Raw      string
}

// ListLine is one rendered line of the -a listing / object file body:
// possibly several Words sharing one source line.
type ListLine struct {
	LineNo int
	Raw    string
	Words  []ListWord
}

// ListWord is one word within a ListLine, with its own address (only
// the first word of a source line carries the address column).
type ListWord struct {
	Addr     uint16
	HasAddr  bool
	Value    uint16
}

// Warning is a non-fatal diagnostic.
type Warning struct {
	File string
	Line int
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: warning: %s", w.File, w.Line, w.Msg)
}

// AssembleError is a fatal lex/semantic error, always naming the
// offending source line.
type AssembleError struct {
	File string
	Line int
	Raw  string
	Msg  string
}

func (e *AssembleError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Program is the result of a successful two-pass assembly.
type Program struct {
	Filename  string
	StartAddr uint16
	EndAddr   uint16
	Words     []Word // in emission order, matching the object file
	Labels    *symtab.Table
	Listing   []ListLine
}

// formEntryFor intersects the candidate forms for an operand count
// against the forms the mnemonic table allows, per spec section 4.3.
func formEntryFor(m isa.Mnemonic, candidates []isa.Form) (isa.Form, error) {
	allowed := isa.FormsForMnemonic(m)
	var match isa.Form
	found := 0
	for _, c := range candidates {
		for _, a := range allowed {
			if c == a {
				match = c
				found++
				break
			}
		}
	}
	switch found {
	case 0:
		return 0, fmt.Errorf("no addressing form of %s matches operand shape", m)
	case 1:
		return match, nil
	default:
		return 0, fmt.Errorf("ambiguous addressing form for %s", m)
	}
}
