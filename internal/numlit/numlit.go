/*
 * COMET - Assembler operand token parser.
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

package numlit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a parsed operand token.
type Kind int

const (
	KindNumber Kind = iota
	KindRegister
	KindLabel
	KindLiteral
)

// Operand is the result of parsing one token.
type Operand struct {
	Kind     Kind
	Number   uint16 // valid for KindNumber and KindRegister (register index)
	Label    string // valid for KindLabel (bare name) and KindLiteral (full "=..." spelling)
	HasLetter bool  // true if the raw token contains an alphabetic character (used by the LD/LAD warning heuristic)
}

var labelRE = regexp.MustCompile(`^[A-Z][0-9A-Za-z]{0,7}$`)

// registerRE matches a GR operand, GR0 through GR7.
var registerRE = regexp.MustCompile(`^GR([0-7])$`)

// ParseOperand classifies and decodes a single operand token. It does
// not resolve labels or literals to addresses; that happens in pass 2.
func ParseOperand(tok string) (Operand, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Operand{}, fmt.Errorf("empty operand")
	}

	if m := registerRE.FindStringSubmatch(tok); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Operand{Kind: KindRegister, Number: uint16(n), HasLetter: true}, nil
	}

	if strings.HasPrefix(tok, "=") {
		return Operand{Kind: KindLiteral, Label: tok, HasLetter: hasLetter(tok)}, nil
	}

	if strings.HasPrefix(tok, "#") {
		digits := tok[1:]
		if len(digits) == 0 || len(digits) > 4 {
			return Operand{}, fmt.Errorf("invalid hex operand %q", tok)
		}
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return Operand{}, fmt.Errorf("invalid hex operand %q: %w", tok, err)
		}
		return Operand{Kind: KindNumber, Number: uint16(v), HasLetter: hasLetter(digits)}, nil
	}

	if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return Operand{Kind: KindNumber, Number: uint16(uint32(int32(v))), HasLetter: false}, nil
	}

	if !labelRE.MatchString(tok) {
		return Operand{}, fmt.Errorf("illegal label syntax %q", tok)
	}
	return Operand{Kind: KindLabel, Label: tok, HasLetter: true}, nil
}

// ValidLabel reports whether s is a syntactically legal label name
// (not counting the literal "=" form).
func ValidLabel(s string) bool {
	return labelRE.MatchString(s)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
