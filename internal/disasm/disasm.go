/*
 * COMET - COMET instruction decoder/disassembler.
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

package disasm

import (
	"fmt"

	"github.com/comet-toolchain/comet/internal/hexfmt"
	"github.com/comet-toolchain/comet/internal/isa"
	"github.com/comet-toolchain/comet/internal/memory"
)

// Decoded is the result of decoding one instruction at an address.
type Decoded struct {
	Addr     uint16
	Raw      uint16
	Mnemonic string
	Operands string
	Size     int
}

// Decode reads mem[addr] (and, for two-word forms, mem[addr+1]) and
// renders the instruction. An opcode byte with no isa table entry
// decodes as a synthetic one-word DC, per spec section 4.7; reverse
// maps a known address to its label for operand annotation and may
// be nil.
func Decode(m *memory.Image, addr uint16, reverse map[uint16]string) Decoded {
	word := m.Read(addr)
	opcode := byte(word >> 8)
	gr := (word >> 4) & 0xF
	xr := word & 0xF
	adr := m.Read(addr + 1)

	entry, ok := isa.ByOpcode(opcode)
	if !ok {
		return Decoded{Addr: addr, Raw: word, Mnemonic: "DC", Operands: "#" + hexfmt.Word(word), Size: 1}
	}

	form := formFor(entry)
	operands := renderOperands(form, gr, xr, adr, reverse)
	return Decoded{
		Addr:     addr,
		Raw:      word,
		Mnemonic: entry.Mnemonic.String(),
		Operands: operands,
		Size:     form.Size(),
	}
}

// formFor picks the form this opcode byte was actually encoded with.
// Each table entry names exactly one opcode byte, so its Forms slice
// always has exactly one element for the decoder's purposes (the
// r1_r2/r_adr_x duals live at distinct opcode bytes).
func formFor(e isa.Entry) isa.Form {
	if len(e.Forms) == 0 {
		return isa.FormNopr
	}
	return e.Forms[0]
}

func renderOperands(form isa.Form, gr, xr, adr uint16, reverse map[uint16]string) string {
	switch form {
	case isa.FormNopr:
		return ""
	case isa.FormR:
		return fmt.Sprintf("GR%d", gr)
	case isa.FormR1R2:
		return fmt.Sprintf("GR%d, GR%d", gr, xr)
	case isa.FormAdrX:
		s := renderAddr(adr, reverse)
		if xr != 0 {
			s += fmt.Sprintf(", GR%d", xr)
		}
		return s
	case isa.FormRAdrX:
		s := fmt.Sprintf("GR%d, %s", gr, renderAddr(adr, reverse))
		if xr != 0 {
			s += fmt.Sprintf(", GR%d", xr)
		}
		return s
	default:
		return ""
	}
}

func renderAddr(adr uint16, reverse map[uint16]string) string {
	if reverse != nil {
		if label, ok := reverse[adr]; ok {
			return fmt.Sprintf("#%s %s", hexfmt.Word(adr), label)
		}
	}
	return "#" + hexfmt.Word(adr)
}
