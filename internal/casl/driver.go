/*
 * COMET - CASL two-pass assembly driver.
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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/comet-toolchain/comet/internal/isa"
	"github.com/comet-toolchain/comet/internal/memory"
	"github.com/comet-toolchain/comet/internal/symtab"
)

// Assemble runs the full two-pass assembly of src (named filename for
// diagnostics) and returns the resulting program, any non-fatal
// warnings, and the first fatal error encountered.
//
// Pass 1 tokenizes every line, registers labels at the current cursor
// before emitting that line's own code, expands the four pseudo-op
// macros, and defers every label/literal operand as a Pending word.
// Pass 2 walks the emitted words in order and resolves every Pending
// one against the label table, failing on any name it cannot find.
func Assemble(src io.Reader, filename string) (*Program, []Warning, error) {
	mem := memory.New()
	labels := symtab.New()
	em := NewEmitter(mem, labels)

	var warnings []Warning
	var listing []ListLine
	inBlock := false
	started := false
	ended := false
	var startAddr uint16
	var startOverride string

	scanner := bufio.NewScanner(src)
	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		line, err := Tokenize(raw, filename, lineno)
		if err != nil {
			return nil, warnings, err
		}
		if line.Op == "" {
			continue // blank or comment-only line
		}

		if !started {
			if line.Op != "START" {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: "first instruction must be START"}
			}
			started = true
			inBlock = true
			if line.Label == "" {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: "START requires a label"}
			}
			if err := labels.Define(line.Label, em.Cursor, filename, lineno); err != nil {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
			}
			startAddr = em.Cursor
			switch len(line.Operands) {
			case 0:
			case 1:
				// Overrides the default entry point; the label may be a
				// forward reference, so resolution waits for pass 2.
				startOverride = strings.TrimSpace(line.Operands[0])
			default:
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: "START takes at most one operand"}
			}
			listing = append(listing, ListLine{LineNo: lineno, Raw: raw})
			continue
		}

		if !inBlock {
			return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: "instruction outside START/END block"}
		}

		if line.Op == "END" {
			if len(line.Operands) != 0 {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: "END takes no operand"}
			}
			inBlock = false
			ended = true
			listing = append(listing, ListLine{LineNo: lineno, Raw: raw})
			continue
		}

		before := len(em.Words)
		if line.Label != "" {
			if err := labels.Define(line.Label, em.Cursor, filename, lineno); err != nil {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
			}
		}

		switch {
		case line.Op == "DS":
			if err := em.EmitDS(line); err != nil {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
			}
		case line.Op == "DC":
			if err := em.EmitDC(line); err != nil {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
			}
		case IsMacro(line.Op):
			expanded, err := ExpandMacro(line)
			if err != nil {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
			}
			for _, sub := range expanded {
				sub.File, sub.LineNo, sub.Raw = filename, lineno, raw
				if err := emitReal(em, sub); err != nil {
					return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
				}
			}
		default:
			warn, err := emitRealWithWarning(em, line)
			if err != nil {
				return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: raw, Msg: err.Error()}
			}
			if warn != "" {
				warnings = append(warnings, Warning{File: filename, Line: lineno, Msg: warn})
			}
		}

		listing = append(listing, ListLine{LineNo: lineno, Raw: raw, Words: listWordsFor(em.Words[before:])})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("reading %s: %w", filename, err)
	}

	if !started {
		return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: "", Msg: "missing START"}
	}
	if !ended {
		return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: "", Msg: "missing END"}
	}

	if err := em.AllocateLiterals(); err != nil {
		return nil, warnings, &AssembleError{File: filename, Line: lineno, Raw: "", Msg: err.Error()}
	}
	listing = append(listing, em.Listing...)

	endAddr := em.Cursor - 1

	// Pass 2: resolve every pending word against the label table and
	// write it into the shadowed memory image.
	for i := range em.Words {
		w := &em.Words[i]
		if w.Resolved {
			continue
		}
		entry, ok := labels.Lookup(w.Pending)
		if !ok {
			return nil, warnings, &AssembleError{File: w.File, Line: w.LineNo, Raw: w.Raw, Msg: fmt.Sprintf("unresolved label %q", w.Pending)}
		}
		w.Value = entry.Address
		w.Resolved = true
		mem.Write(w.Addr, w.Value)
	}

	// Listing rows were captured in pass 1, before pending words had a
	// value; refresh them from the now fully resolved image.
	for i := range listing {
		for j := range listing[i].Words {
			lw := &listing[i].Words[j]
			lw.Value = mem.Read(lw.Addr)
		}
	}

	if startOverride != "" {
		entry, ok := labels.Lookup(startOverride)
		if !ok {
			return nil, warnings, &AssembleError{File: filename, Msg: fmt.Sprintf("unresolved START entry label %q", startOverride)}
		}
		startAddr = entry.Address
	}

	return &Program{
		Filename:  filename,
		StartAddr: startAddr,
		EndAddr:   endAddr,
		Words:     em.Words,
		Labels:    labels,
		Listing:   listing,
	}, warnings, nil
}

// emitReal infers the form of a real machine instruction (label-less,
// already expanded from a macro or parsed directly) and emits it,
// discarding any warning.
func emitReal(em *Emitter, l Line) error {
	_, err := emitRealWithWarning(em, l)
	return err
}

// emitRealWithWarning infers the addressing form for l and emits it,
// returning any non-fatal warning text from the emitter.
func emitRealWithWarning(em *Emitter, l Line) (string, error) {
	m, ok := isa.MnemonicByName(l.Op)
	if !ok {
		return "", fmt.Errorf("unknown mnemonic %q", l.Op)
	}
	form, err := InferForm(m, l.Operands)
	if err != nil {
		return "", fmt.Errorf("%s: %w", l.Op, err)
	}
	return em.EmitLine(l, m, form)
}

// listWordsFor renders emitted words as listing columns: only the
// first word of a source line carries its own address column.
func listWordsFor(words []Word) []ListWord {
	out := make([]ListWord, len(words))
	for i, w := range words {
		out[i] = ListWord{Addr: w.Addr, HasAddr: i == 0, Value: w.Value}
	}
	return out
}
