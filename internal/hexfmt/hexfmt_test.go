/*
 * COMET - Hex formatting tests.
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

package hexfmt

import "testing"

func TestWord(t *testing.T) {
	if got := Word(0x0A); got != "000A" {
		t.Fatalf("Word(0x0A) = %q, want \"000A\"", got)
	}
	if got := Word(0xFFFF); got != "FFFF" {
		t.Fatalf("Word(0xFFFF) = %q, want \"FFFF\"", got)
	}
}

func TestByte(t *testing.T) {
	if got := Byte(0x0A); got != "0A" {
		t.Fatalf("Byte(0x0A) = %q, want \"0A\"", got)
	}
}
