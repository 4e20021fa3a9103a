/*
 * COMET - Hex word/byte formatting.
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

import "strings"

const digits = "0123456789ABCDEF"

// Word renders v as exactly four uppercase hex digits, no prefix.
func Word(v uint16) string {
	var b strings.Builder
	b.Grow(4)
	WriteWord(&b, v)
	return b.String()
}

// WriteWord appends the four hex digits of v to b.
func WriteWord(b *strings.Builder, v uint16) {
	shift := 12
	for range 4 {
		b.WriteByte(digits[(v>>shift)&0xF])
		shift -= 4
	}
}

// Byte renders v as two uppercase hex digits.
func Byte(v byte) string {
	return string([]byte{digits[v>>4], digits[v&0xF]})
}
