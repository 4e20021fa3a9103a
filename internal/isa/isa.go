/*
 * COMET - COMET instruction set and opcode table.
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

package isa

// Form is one of the five COMET addressing encodings.
type Form int

const (
	FormNopr Form = iota
	FormR
	FormR1R2
	FormAdrX
	FormRAdrX
)

// Size returns the instruction size in words for the form.
func (f Form) Size() int {
	switch f {
	case FormAdrX, FormRAdrX:
		return 2
	default:
		return 1
	}
}

func (f Form) String() string {
	switch f {
	case FormNopr:
		return "nopr"
	case FormR:
		return "r"
	case FormR1R2:
		return "r1_r2"
	case FormAdrX:
		return "adr_x"
	case FormRAdrX:
		return "r_adr_x"
	default:
		return "?"
	}
}

// Mnemonic is the closed enumeration of COMET mnemonics. DC is not a
// real instruction; it is the synthetic mnemonic the disassembler
// emits for an opcode byte with no table entry.
type Mnemonic int

const (
	NOP Mnemonic = iota
	LD
	ST
	LAD
	ADDA
	SUBA
	ADDL
	SUBL
	AND
	OR
	XOR
	CPA
	CPL
	SLA
	SRA
	SLL
	SRL
	JMI
	JNZ
	JZE
	JUMP
	JPL
	JOV
	PUSH
	POP
	CALL
	RET
	SVC
	DC
)

var mnemonicNames = map[Mnemonic]string{
	NOP: "NOP", LD: "LD", ST: "ST", LAD: "LAD", ADDA: "ADDA", SUBA: "SUBA",
	ADDL: "ADDL", SUBL: "SUBL", AND: "AND", OR: "OR", XOR: "XOR",
	CPA: "CPA", CPL: "CPL", SLA: "SLA", SRA: "SRA", SLL: "SLL", SRL: "SRL",
	JMI: "JMI", JNZ: "JNZ", JZE: "JZE", JUMP: "JUMP", JPL: "JPL", JOV: "JOV",
	PUSH: "PUSH", POP: "POP", CALL: "CALL", RET: "RET", SVC: "SVC", DC: "DC",
}

func (m Mnemonic) String() string {
	if s, ok := mnemonicNames[m]; ok {
		return s
	}
	return "?"
}

// Entry describes one opcode byte: which mnemonic it decodes to and
// the addressing form that opcode byte encodes. FormsForMnemonic
// gathers the forms of every entry of a mnemonic for assembler form
// inference.
type Entry struct {
	Opcode   byte
	Mnemonic Mnemonic
	Forms    []Form
}

// byOpcode and byMnemonic are built from table at init; byMnemonic can
// have multiple opcode entries for one mnemonic (e.g. LD is both
// r_adr_x at 0x10 and r1_r2 at 0x14).
var (
	byOpcode   = map[byte]Entry{}
	byMnemonic = map[Mnemonic][]Entry{}
	byName     = map[string]Mnemonic{}
)

// table is the opcode map transcribed from the instruction set
// definition: opcode byte -> (mnemonic, addressing form).
var table = []Entry{
	{0x00, NOP, []Form{FormNopr}},
	{0x10, LD, []Form{FormRAdrX}},
	{0x11, ST, []Form{FormRAdrX}},
	{0x12, LAD, []Form{FormRAdrX}},
	{0x14, LD, []Form{FormR1R2}},
	{0x20, ADDA, []Form{FormRAdrX}},
	{0x21, SUBA, []Form{FormRAdrX}},
	{0x22, ADDL, []Form{FormRAdrX}},
	{0x23, SUBL, []Form{FormRAdrX}},
	{0x24, ADDA, []Form{FormR1R2}},
	{0x25, SUBA, []Form{FormR1R2}},
	{0x26, ADDL, []Form{FormR1R2}},
	{0x27, SUBL, []Form{FormR1R2}},
	{0x30, AND, []Form{FormRAdrX}},
	{0x31, OR, []Form{FormRAdrX}},
	{0x32, XOR, []Form{FormRAdrX}},
	{0x34, AND, []Form{FormR1R2}},
	{0x35, OR, []Form{FormR1R2}},
	{0x36, XOR, []Form{FormR1R2}},
	{0x40, CPA, []Form{FormRAdrX}},
	{0x41, CPL, []Form{FormRAdrX}},
	{0x44, CPA, []Form{FormR1R2}},
	{0x45, CPL, []Form{FormR1R2}},
	{0x50, SLA, []Form{FormRAdrX}},
	{0x51, SRA, []Form{FormRAdrX}},
	{0x52, SLL, []Form{FormRAdrX}},
	{0x53, SRL, []Form{FormRAdrX}},
	{0x61, JMI, []Form{FormAdrX}},
	{0x62, JNZ, []Form{FormAdrX}},
	{0x63, JZE, []Form{FormAdrX}},
	{0x64, JUMP, []Form{FormAdrX}},
	{0x65, JPL, []Form{FormAdrX}},
	{0x66, JOV, []Form{FormAdrX}},
	{0x70, PUSH, []Form{FormAdrX}},
	{0x71, POP, []Form{FormR}},
	{0x80, CALL, []Form{FormAdrX}},
	{0x81, RET, []Form{FormNopr}},
	{0xF0, SVC, []Form{FormAdrX}},
}

func init() {
	for _, e := range table {
		byOpcode[e.Opcode] = e
		byMnemonic[e.Mnemonic] = append(byMnemonic[e.Mnemonic], e)
	}
	for m, s := range mnemonicNames {
		byName[s] = m
	}
}

// ByOpcode looks up the table entry for a decoded opcode byte.
func ByOpcode(b byte) (Entry, bool) {
	e, ok := byOpcode[b]
	return e, ok
}

// EntriesForMnemonic returns every opcode/form pair a mnemonic is
// defined under (more than one when a mnemonic has both an r_adr_x
// and r1_r2 encoding).
func EntriesForMnemonic(m Mnemonic) []Entry {
	return byMnemonic[m]
}

// FormsForMnemonic is the candidate set the assembler's form
// inference intersects against.
func FormsForMnemonic(m Mnemonic) []Form {
	var forms []Form
	for _, e := range byMnemonic[m] {
		forms = append(forms, e.Forms...)
	}
	return forms
}

// OpcodeFor returns the opcode byte for a (mnemonic, form) pair.
func OpcodeFor(m Mnemonic, f Form) (byte, bool) {
	for _, e := range byMnemonic[m] {
		for _, ef := range e.Forms {
			if ef == f {
				return e.Opcode, true
			}
		}
	}
	return 0, false
}

// MnemonicByName resolves an uppercase mnemonic string to its
// enumeration value, for the lexer.
func MnemonicByName(name string) (Mnemonic, bool) {
	m, ok := byName[name]
	return m, ok
}
