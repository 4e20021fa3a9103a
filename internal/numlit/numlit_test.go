/*
 * COMET - Operand parser tests.
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

import "testing"

func TestParseOperandNumber(t *testing.T) {
	op, err := ParseOperand("42")
	if err != nil || op.Kind != KindNumber || op.Number != 42 {
		t.Fatalf("ParseOperand(42) = %+v, %v", op, err)
	}
}

func TestParseOperandNegative(t *testing.T) {
	op, err := ParseOperand("-5")
	if err != nil || op.Kind != KindNumber || op.Number != 0xFFFB {
		t.Fatalf("ParseOperand(-5) = %+v, %v, want 0xFFFB", op, err)
	}
}

func TestParseOperandHex(t *testing.T) {
	op, err := ParseOperand("#000A")
	if err != nil || op.Kind != KindNumber || op.Number != 0x000A {
		t.Fatalf("ParseOperand(#000A) = %+v, %v", op, err)
	}

	if _, err := ParseOperand("#"); err == nil {
		t.Fatal("ParseOperand(#) should fail: no digits")
	}
	if _, err := ParseOperand("#12345"); err == nil {
		t.Fatal("ParseOperand(#12345) should fail: too many digits")
	}
}

func TestParseOperandRegister(t *testing.T) {
	op, err := ParseOperand("GR3")
	if err != nil || op.Kind != KindRegister || op.Number != 3 {
		t.Fatalf("ParseOperand(GR3) = %+v, %v", op, err)
	}
	// GR8 is outside the register range 0-7, so it is not matched as a
	// register and falls through to the label rule instead (it is a
	// syntactically legal label, coincidentally register-shaped).
	op, err = ParseOperand("GR8")
	if err != nil || op.Kind != KindLabel {
		t.Fatalf("ParseOperand(GR8) = %+v, %v, want label", op, err)
	}
}

func TestParseOperandLabel(t *testing.T) {
	op, err := ParseOperand("MAIN")
	if err != nil || op.Kind != KindLabel || op.Label != "MAIN" {
		t.Fatalf("ParseOperand(MAIN) = %+v, %v", op, err)
	}
	if _, err := ParseOperand("lowercase"); err == nil {
		t.Fatal("ParseOperand(lowercase) should fail: must start uppercase")
	}
	if _, err := ParseOperand("NINECHARLBL"); err == nil {
		t.Fatal("ParseOperand(NINECHARLBL) should fail: too long")
	}
}

func TestParseOperandLiteral(t *testing.T) {
	op, err := ParseOperand("=#000A")
	if err != nil || op.Kind != KindLiteral || op.Label != "=#000A" {
		t.Fatalf("ParseOperand(=#000A) = %+v, %v", op, err)
	}
}

func TestValidLabel(t *testing.T) {
	if !ValidLabel("A") || !ValidLabel("MAIN1") {
		t.Fatal("expected valid labels to pass")
	}
	if ValidLabel("1ABC") || ValidLabel("") {
		t.Fatal("expected invalid labels to fail")
	}
}
