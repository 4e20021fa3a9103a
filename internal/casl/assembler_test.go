/*
 * COMET - CASL assembler driver tests.
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
	"strings"
	"testing"
)

func assembleSrc(t *testing.T, src string) *Program {
	t.Helper()
	p, warnings, err := Assemble(strings.NewReader(src), "test.cas")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	for _, w := range warnings {
		t.Logf("warning: %s", w)
	}
	return p
}

func TestAssembleMinProgram(t *testing.T) {
	p := assembleSrc(t, "MAIN START\n    RET\n    END\n")
	if p.StartAddr != 0 {
		t.Errorf("StartAddr = %#04x, want 0", p.StartAddr)
	}
	if len(p.Words) != 1 || p.Words[0].Value != 0x8100 {
		t.Fatalf("Words = %+v, want one word 0x8100", p.Words)
	}
}

func TestAssembleMissingStart(t *testing.T) {
	_, _, err := Assemble(strings.NewReader("    RET\n    END\n"), "test.cas")
	if err == nil {
		t.Fatal("expected error for missing START")
	}
}

func TestAssembleMissingEnd(t *testing.T) {
	_, _, err := Assemble(strings.NewReader("MAIN START\n    RET\n"), "test.cas")
	if err == nil {
		t.Fatal("expected error for missing END")
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := "MAIN START\nL1   LD GR1, L1\nL1   LD GR2, L1\n    END\n"
	_, _, err := Assemble(strings.NewReader(src), "test.cas")
	if err == nil {
		t.Fatal("expected duplicate label error")
	}
}

func TestAssembleUnresolvedLabel(t *testing.T) {
	src := "MAIN START\n    LD GR1, NOWHERE\n    END\n"
	_, _, err := Assemble(strings.NewReader(src), "test.cas")
	if err == nil {
		t.Fatal("expected unresolved label error")
	}
}

func TestAssembleForwardReference(t *testing.T) {
	src := "MAIN START\n    JUMP L1\nL1   RET\n    END\n"
	p := assembleSrc(t, src)
	// JUMP L1 is 2 words at addr 0,1; L1 is at addr 2.
	if p.Words[1].Value != 2 {
		t.Errorf("JUMP operand = %#04x, want 2", p.Words[1].Value)
	}
}

func TestAssembleLiteralPool(t *testing.T) {
	src := "MAIN START\n    LD GR1, =#000A\n    RET\n    END\n"
	p := assembleSrc(t, src)
	// 3 real words (LD = 2, RET = 1) + 1 literal word.
	if len(p.Words) != 4 {
		t.Fatalf("Words = %+v, want 4 entries", p.Words)
	}
	if p.Words[3].Value != 0x000A {
		t.Errorf("literal value = %#04x, want 0x000A", p.Words[3].Value)
	}
	if p.Words[1].Value != p.Words[3].Addr {
		t.Errorf("LD operand %#04x does not point at literal addr %#04x", p.Words[1].Value, p.Words[3].Addr)
	}
}

func TestAssembleGR0AsIndexRejected(t *testing.T) {
	src := "MAIN START\n    LD GR1, TGT, GR0\nTGT  DS 1\n    END\n"
	_, _, err := Assemble(strings.NewReader(src), "test.cas")
	if err == nil {
		t.Fatal("expected GR0-as-index error")
	}
}

func TestAssembleLDWarnsOnBareNumeric(t *testing.T) {
	src := "MAIN START\n    LD GR1, 5\n    END\n"
	_, warnings, err := Assemble(strings.NewReader(src), "test.cas")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want exactly one", warnings)
	}
}

func TestAssembleRPUSHRPOP(t *testing.T) {
	src := "MAIN START\n    RPUSH\n    RPOP\n    END\n"
	p := assembleSrc(t, src)
	// RPUSH expands to 7 PUSH instructions (2 words each, adr_x form);
	// RPOP expands to 7 POP instructions (1 word each, r form).
	if len(p.Words) != 21 {
		t.Fatalf("Words = %d, want 21 (7*2 PUSH + 7*1 POP)", len(p.Words))
	}
}

func TestAssembleDCString(t *testing.T) {
	src := "MAIN START\nMSG  DC 'AB'\n    END\n"
	p := assembleSrc(t, src)
	if len(p.Words) != 2 || p.Words[0].Value != 'A' || p.Words[1].Value != 'B' {
		t.Fatalf("Words = %+v, want [A, B]", p.Words)
	}
}

func TestAssembleDCEscapedQuote(t *testing.T) {
	src := "MAIN START\nMSG  DC 'A''B'\n    END\n"
	p := assembleSrc(t, src)
	if len(p.Words) != 3 || p.Words[1].Value != '\'' {
		t.Fatalf("Words = %+v, want [A, ', B]", p.Words)
	}
}

func TestAssembleCommentInsideQuote(t *testing.T) {
	src := "MAIN START\nMSG  DC 'A;B'\n    END\n"
	p := assembleSrc(t, src)
	if len(p.Words) != 3 {
		t.Fatalf("Words = %+v, want 3 words (semicolon kept inside quotes)", p.Words)
	}
}

func TestAssembleStartOverride(t *testing.T) {
	src := "MAIN START ENTRY\n    RET\nENTRY RET\n    END\n"
	p := assembleSrc(t, src)
	if p.StartAddr != 1 {
		t.Errorf("StartAddr = %#04x, want 1 (ENTRY)", p.StartAddr)
	}
}

func TestInferFormNoMatchingForm(t *testing.T) {
	src := "MAIN START\n    PUSH GR1, GR2, GR3\n    END\n"
	_, _, err := Assemble(strings.NewReader(src), "test.cas")
	if err == nil {
		t.Fatal("expected a form-inference error for too many operands")
	}
}
