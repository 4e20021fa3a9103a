/*
 * COMET - CASL macro expansion and DS/DC emission.
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
	"strconv"
	"strings"
)

// synthLine builds a macro-expansion line with no label and no source
// position of its own; the driver re-stamps File/LineNo/Raw from the
// originating line before emitting it so listing/shadow output still
// attributes every expanded word to the macro invocation.
func synthLine(op string, operands ...string) Line {
	return Line{Op: op, Operands: operands}
}

// ExpandMacro rewrites one of the four pseudo-instructions into the
// real instructions it stands for. Every other line passes through
// unchanged (a single-element slice).
func ExpandMacro(l Line) ([]Line, error) {
	switch l.Op {
	case "RPUSH":
		if len(l.Operands) != 0 {
			return nil, fmt.Errorf("RPUSH takes no operands")
		}
		var out []Line
		for r := 1; r <= 7; r++ {
			out = append(out, synthLine("PUSH", "0", fmt.Sprintf("GR%d", r)))
		}
		return out, nil

	case "RPOP":
		if len(l.Operands) != 0 {
			return nil, fmt.Errorf("RPOP takes no operands")
		}
		var out []Line
		for r := 7; r >= 1; r-- {
			out = append(out, synthLine("POP", fmt.Sprintf("GR%d", r)))
		}
		return out, nil

	case "IN", "OUT":
		if len(l.Operands) != 2 {
			return nil, fmt.Errorf("%s requires buf, len operands", l.Op)
		}
		buf, length := l.Operands[0], l.Operands[1]
		svc := "1"
		if l.Op == "OUT" {
			svc = "2"
		}
		return []Line{
			synthLine("PUSH", "0", "GR1"),
			synthLine("PUSH", "0", "GR2"),
			synthLine("LAD", "GR1", buf),
			synthLine("LAD", "GR2", length),
			synthLine("SVC", svc),
			synthLine("POP", "GR2"),
			synthLine("POP", "GR1"),
		}, nil

	default:
		return []Line{l}, nil
	}
}

// IsMacro reports whether op names one of the four expandable pseudo-ops.
func IsMacro(op string) bool {
	switch op {
	case "RPUSH", "RPOP", "IN", "OUT":
		return true
	default:
		return false
	}
}

// EmitDS reserves n zero words starting at the cursor.
func (e *Emitter) EmitDS(l Line) error {
	if len(l.Operands) != 1 {
		return fmt.Errorf("DS requires exactly one operand")
	}
	n, err := strconv.Atoi(strings.TrimSpace(l.Operands[0]))
	if err != nil || n < 0 {
		return fmt.Errorf("invalid DS count %q", l.Operands[0])
	}
	for i := 0; i < n; i++ {
		if err := e.emit(l, resolvedWord(0)); err != nil {
			return err
		}
	}
	return nil
}

// EmitDC emits one word per operand: a quoted string contributes one
// word per character (high byte zero, '' collapsing to a literal
// quote), a bare number or label contributes a single word (numbers
// resolve now, labels stay Pending for pass 2).
func (e *Emitter) EmitDC(l Line) error {
	if len(l.Operands) == 0 {
		return fmt.Errorf("DC requires at least one operand")
	}
	for _, raw := range l.Operands {
		raw = strings.TrimSpace(raw)
		if strings.HasPrefix(raw, "'") {
			chars, err := unquoteDC(raw)
			if err != nil {
				return err
			}
			for _, c := range chars {
				if err := e.emit(l, resolvedWord(uint16(c))); err != nil {
					return err
				}
			}
			continue
		}
		w, err := addressOperandWord(raw)
		if err != nil {
			return fmt.Errorf("invalid DC operand %q: %w", raw, err)
		}
		if strings.HasPrefix(w.Pending, "=") {
			e.recordLiteral(w.Pending, l)
		}
		if err := e.emit(l, w); err != nil {
			return err
		}
	}
	return nil
}

// unquoteDC strips the surrounding quotes of a DC string operand and
// collapses '' escapes to a single embedded quote character.
func unquoteDC(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", fmt.Errorf("malformed quoted DC operand %q", s)
	}
	body := s[1 : len(s)-1]
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\'' {
			if i+1 < len(body) && body[i+1] == '\'' {
				out.WriteByte('\'')
				i++
				continue
			}
			return "", fmt.Errorf("unescaped quote inside DC string %q", s)
		}
		out.WriteByte(body[i])
	}
	return out.String(), nil
}
