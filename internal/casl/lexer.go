/*
 * COMET - CASL source line tokenizer and form inference.
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
	"github.com/comet-toolchain/comet/internal/numlit"
)

// stripComment removes everything from the first semicolon that is
// not inside a single-quoted string through end of line.
func stripComment(raw string) string {
	inQuote := false
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\'':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return raw[:i]
			}
		}
	}
	return raw
}

// Tokenize splits one raw source line into (label, op, operands).
// The label column starts at column 0 with no leading whitespace; the
// operator follows whitespace; operands are comma-separated, except
// inside a DC single-quoted string, where commas and escaped quotes
// ('') are part of the literal.
func Tokenize(raw string, file string, lineno int) (Line, error) {
	stripped := stripComment(raw)
	trimmedRight := strings.TrimRight(stripped, " \t\r")
	if strings.TrimSpace(trimmedRight) == "" {
		return Line{File: file, LineNo: lineno, Raw: raw}, nil
	}

	var label string
	rest := trimmedRight
	if !isSpace(rest[0]) {
		i := 0
		for i < len(rest) && !isSpace(rest[i]) {
			i++
		}
		label = rest[:i]
		rest = rest[i:]
	}

	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return Line{}, &AssembleError{File: file, Line: lineno, Raw: raw, Msg: "label with no operator"}
	}

	i := 0
	for i < len(rest) && !isSpace(rest[i]) {
		i++
	}
	op := rest[:i]
	for _, r := range op {
		if r < 'A' || r > 'Z' {
			return Line{}, &AssembleError{File: file, Line: lineno, Raw: raw, Msg: fmt.Sprintf("illegal operator %q", op)}
		}
	}
	rest = strings.TrimLeft(rest[i:], " \t")

	operands, err := splitOperands(rest)
	if err != nil {
		return Line{}, &AssembleError{File: file, Line: lineno, Raw: raw, Msg: err.Error()}
	}

	return Line{
		Label:    label,
		Op:       op,
		Operands: operands,
		File:     file,
		LineNo:   lineno,
		Raw:      raw,
	}, nil
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// splitOperands splits a comma-separated operand list, treating a
// single-quoted string (with '' escapes) as one atomic field even
// when it contains commas.
func splitOperands(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var fields []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			cur.WriteByte(c)
		case c == ',' && !inQuote:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields, nil
}

// InferForm determines the unique addressing form implied by the
// operand count and shape, per spec section 4.3, then intersects it
// against the forms the mnemonic table allows for m.
func InferForm(m isa.Mnemonic, operands []string) (isa.Form, error) {
	var candidates []isa.Form
	switch len(operands) {
	case 0:
		candidates = []isa.Form{isa.FormNopr}
	case 1:
		candidates = []isa.Form{isa.FormR, isa.FormAdrX}
	case 2:
		if isRegisterOperand(operands[1]) {
			candidates = []isa.Form{isa.FormR1R2, isa.FormAdrX}
		} else {
			candidates = []isa.Form{isa.FormRAdrX}
		}
	case 3:
		candidates = []isa.Form{isa.FormRAdrX}
	default:
		return 0, fmt.Errorf("too many operands (%d)", len(operands))
	}
	return formEntryFor(m, candidates)
}

func isRegisterOperand(s string) bool {
	op, err := numlit.ParseOperand(strings.TrimSpace(s))
	return err == nil && op.Kind == numlit.KindRegister
}
