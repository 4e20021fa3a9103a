/*
 * COMET - Instruction set table tests.
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

import "testing"

func TestByOpcode(t *testing.T) {
	e, ok := ByOpcode(0x14)
	if !ok || e.Mnemonic != LD || len(e.Forms) != 1 || e.Forms[0] != FormR1R2 {
		t.Fatalf("ByOpcode(0x14) = %+v, %v", e, ok)
	}

	if _, ok := ByOpcode(0xEE); ok {
		t.Fatalf("ByOpcode(0xEE) should be unknown")
	}
}

func TestFormsForMnemonic(t *testing.T) {
	forms := FormsForMnemonic(LD)
	if len(forms) != 2 {
		t.Fatalf("LD forms = %v, want 2 entries (r_adr_x, r1_r2)", forms)
	}
}

func TestOpcodeFor(t *testing.T) {
	op, ok := OpcodeFor(ADDA, FormR1R2)
	if !ok || op != 0x24 {
		t.Fatalf("OpcodeFor(ADDA, r1_r2) = %#x, %v, want 0x24, true", op, ok)
	}
}

func TestMnemonicByName(t *testing.T) {
	m, ok := MnemonicByName("JUMP")
	if !ok || m != JUMP {
		t.Fatalf("MnemonicByName(JUMP) = %v, %v", m, ok)
	}
	if _, ok := MnemonicByName("BOGUS"); ok {
		t.Fatal("MnemonicByName(BOGUS) should fail")
	}
}

func TestFormSize(t *testing.T) {
	if FormNopr.Size() != 1 || FormR.Size() != 1 || FormR1R2.Size() != 1 {
		t.Fatal("1-word forms should size 1")
	}
	if FormAdrX.Size() != 2 || FormRAdrX.Size() != 2 {
		t.Fatal("2-word forms should size 2")
	}
}
