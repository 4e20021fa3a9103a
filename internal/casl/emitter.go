/*
 * COMET - CASL per-form code emitter and literal pool.
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
	"strings"

	"github.com/comet-toolchain/comet/internal/isa"
	"github.com/comet-toolchain/comet/internal/memory"
	"github.com/comet-toolchain/comet/internal/numlit"
	"github.com/comet-toolchain/comet/internal/symtab"
)

// Emitter owns the memory shadow, address cursor, label table, and
// literal pool during pass 1. It never resolves a Pending word; that
// is pass 2's job (see driver.go).
type Emitter struct {
	Mem     *memory.Image
	Labels  *symtab.Table
	Cursor  uint16
	Words   []Word
	Listing []ListLine

	total      int          // cumulative words emitted; monotonic, used for overflow detection
	literals   []literalUse // first-seen order
	literalSet map[string]bool
}

// literalUse records where a literal spelling was first encountered,
// so its pool entry can carry a real (file, line) back-reference and
// its pool word can be attributed to a source line in the listing.
type literalUse struct {
	spelling string
	file     string
	line     int
	raw      string
}

// NewEmitter returns an emitter starting at address 0.
func NewEmitter(m *memory.Image, labels *symtab.Table) *Emitter {
	return &Emitter{
		Mem:        m,
		Labels:     labels,
		literalSet: make(map[string]bool),
	}
}

// emit appends one resolved or pending word at the current cursor and
// advances it by one. The cursor is monotonic by construction (every
// caller only ever advances it); emit refuses to run the image past
// address 0xFFFF rather than silently wrapping.
func (e *Emitter) emit(l Line, w Word) error {
	if e.total >= memory.Size {
		return fmt.Errorf("program exceeds address space (%#04x words)", memory.Size)
	}
	w.Addr = e.Cursor
	w.File = l.File
	w.LineNo = l.LineNo
	w.Raw = l.Raw
	e.Words = append(e.Words, w)
	if w.Resolved {
		e.Mem.Write(e.Cursor, w.Value)
	}
	e.Mem.SetOrigin(e.Cursor, memory.Origin{File: l.File, Line: l.LineNo, Source: l.Raw})
	e.Cursor++
	e.total++
	return nil
}

func resolvedWord(v uint16) Word   { return Word{Resolved: true, Value: v} }
func pendingWord(s string) Word    { return Word{Resolved: false, Pending: s} }

// recordLiteral adds spelling to the pool the first time it is seen,
// remembering the source line of that first use for diagnostics and
// for the listing row its pool word will need later.
func (e *Emitter) recordLiteral(spelling string, l Line) {
	if e.literalSet[spelling] {
		return
	}
	e.literalSet[spelling] = true
	e.literals = append(e.literals, literalUse{spelling: spelling, file: l.File, line: l.LineNo, raw: l.Raw})
}

// AllocateLiterals assigns each pooled literal a word at the current
// cursor, once, after pass 1 has finished walking the source. Each
// literal's label entry is its own spelling, so pass 2's generic
// label lookup resolves it like any other label. The pool words are
// also appended to e.Listing so they travel through the object file
// in emission order like every other word, instead of being dropped
// because they never belonged to a driver-built ListLine.
func (e *Emitter) AllocateLiterals() error {
	for _, use := range e.literals {
		value, err := literalValue(use.spelling)
		if err != nil {
			return err
		}
		addr := e.Cursor
		if err := e.Labels.Define(use.spelling, addr, use.file, use.line); err != nil {
			return err
		}
		e.Mem.Write(addr, value)
		e.Words = append(e.Words, Word{Resolved: true, Value: value, Addr: addr, File: use.file, LineNo: use.line, Raw: use.raw})
		e.Listing = append(e.Listing, ListLine{
			LineNo: use.line,
			Raw:    use.raw,
			Words:  []ListWord{{Addr: addr, HasAddr: true, Value: value}},
		})
		e.Cursor++
	}
	return nil
}

// literalValue parses the body of a "=..." literal spelling into its
// 16-bit value. Only numeric literal bodies are supported, per spec.
func literalValue(spelling string) (uint16, error) {
	body := strings.TrimPrefix(spelling, "=")
	op, err := numlit.ParseOperand(body)
	if err != nil {
		return 0, fmt.Errorf("invalid literal %q: %w", spelling, err)
	}
	if op.Kind != numlit.KindNumber {
		return 0, fmt.Errorf("literal %q does not resolve to a number", spelling)
	}
	return op.Number, nil
}

// operandWordFor turns one already-parsed operand into the deferred
// representation an emitted address word needs: immediate numbers
// resolve now, labels and literals stay Pending.
func operandWordFor(op numlit.Operand) (Word, error) {
	switch op.Kind {
	case numlit.KindNumber:
		return resolvedWord(op.Number), nil
	case numlit.KindLabel:
		return pendingWord(op.Label), nil
	case numlit.KindLiteral:
		return pendingWord(op.Label), nil
	default:
		return Word{}, fmt.Errorf("operand cannot appear as an address")
	}
}

// EmitLine encodes one tokenized instruction line (DS/DC/macros are
// handled by the driver before reaching here; EmitLine only sees true
// machine instructions). It validates operand counts/shapes per
// spec section 4.4 and returns any non-fatal warning text.
func (e *Emitter) EmitLine(l Line, m isa.Mnemonic, form isa.Form) (warn string, err error) {
	switch form {
	case isa.FormNopr:
		if len(l.Operands) != 0 {
			return "", fmt.Errorf("%s takes no operands", m)
		}
		opcode, _ := isa.OpcodeFor(m, form)
		if err := e.emit(l, resolvedWord(uint16(opcode)<<8)); err != nil {
			return "", err
		}

	case isa.FormR:
		if len(l.Operands) != 1 {
			return "", fmt.Errorf("%s requires exactly one register operand", m)
		}
		gr, err := parseRegister(l.Operands[0])
		if err != nil {
			return "", err
		}
		opcode, _ := isa.OpcodeFor(m, form)
		if err := e.emit(l, resolvedWord(uint16(opcode)<<8|uint16(gr)<<4)); err != nil {
			return "", err
		}

	case isa.FormR1R2:
		if len(l.Operands) != 2 {
			return "", fmt.Errorf("%s requires exactly two register operands", m)
		}
		r1, err := parseRegister(l.Operands[0])
		if err != nil {
			return "", err
		}
		r2, err := parseRegister(l.Operands[1])
		if err != nil {
			return "", err
		}
		opcode, _ := isa.OpcodeFor(m, form)
		if err := e.emit(l, resolvedWord(uint16(opcode)<<8|uint16(r1)<<4|uint16(r2))); err != nil {
			return "", err
		}

	case isa.FormAdrX:
		if len(l.Operands) < 1 || len(l.Operands) > 2 {
			return "", fmt.Errorf("%s requires 1 or 2 operands", m)
		}
		xr, err := parseIndexOperand(l.Operands, 1)
		if err != nil {
			return "", err
		}
		opcode, _ := isa.OpcodeFor(m, form)
		if err := e.emit(l, resolvedWord(uint16(opcode)<<8|uint16(xr))); err != nil {
			return "", err
		}
		addrWord, err := addressOperandWord(l.Operands[0])
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(addrWord.Pending, "=") {
			e.recordLiteral(addrWord.Pending, l)
		}
		if err := e.emit(l, addrWord); err != nil {
			return "", err
		}

	case isa.FormRAdrX:
		if len(l.Operands) < 2 || len(l.Operands) > 3 {
			return "", fmt.Errorf("%s requires 2 or 3 operands", m)
		}
		gr, err := parseRegister(l.Operands[0])
		if err != nil {
			return "", err
		}
		xr, err := parseIndexOperand(l.Operands, 2)
		if err != nil {
			return "", err
		}
		if m == isa.LD && len(l.Operands) == 2 {
			op, perr := numlit.ParseOperand(l.Operands[1])
			if perr == nil && op.Kind == numlit.KindNumber && !op.HasLetter {
				warn = "LD with a bare numeric second operand; did you mean LAD?"
			}
		}
		opcode, _ := isa.OpcodeFor(m, form)
		if err := e.emit(l, resolvedWord(uint16(opcode)<<8|uint16(gr)<<4|uint16(xr))); err != nil {
			return "", err
		}
		addrWord, err := addressOperandWord(l.Operands[1])
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(addrWord.Pending, "=") {
			e.recordLiteral(addrWord.Pending, l)
		}
		if err := e.emit(l, addrWord); err != nil {
			return "", err
		}
	}
	return warn, nil
}

func parseRegister(s string) (int, error) {
	op, err := numlit.ParseOperand(s)
	if err != nil || op.Kind != numlit.KindRegister {
		return 0, fmt.Errorf("expected a register operand, got %q", s)
	}
	return int(op.Number), nil
}

// parseIndexOperand reads the optional trailing index-register
// operand at position idx, if present. GR0 is rejected: it is wired
// to zero and produces a degenerate form.
func parseIndexOperand(operands []string, idx int) (int, error) {
	if idx >= len(operands) {
		return 0, nil
	}
	gr, err := parseRegister(operands[idx])
	if err != nil {
		return 0, err
	}
	if gr == 0 {
		return 0, fmt.Errorf("GR0 cannot be used as an index register")
	}
	return gr, nil
}

func addressOperandWord(s string) (Word, error) {
	op, err := numlit.ParseOperand(s)
	if err != nil {
		return Word{}, err
	}
	return operandWordFor(op)
}
