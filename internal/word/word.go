/*
 * COMET - Word arithmetic helpers.
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

package word

const (
	signBit  = 0x8000
	fullMask = 0x10000
)

// ToSigned interprets u as a two's complement 16-bit value.
func ToSigned(u uint16) int32 {
	if u > 0x7FFF {
		return int32(u) - fullMask
	}
	return int32(u)
}

// ToUnsigned reduces s modulo 2^16 and returns the positive representative.
func ToUnsigned(s int32) uint16 {
	v := s % fullMask
	if v < 0 {
		v += fullMask
	}
	return uint16(v)
}

// AddSignedOverflow adds two signed 16-bit values and reports whether the
// mathematical result falls outside [-32768, 32767].
func AddSignedOverflow(a, b int16) (result uint16, overflow bool) {
	sum := int32(a) + int32(b)
	return ToUnsigned(sum), sum < -32768 || sum > 32767
}

// SubSignedOverflow subtracts b from a as signed 16-bit values.
func SubSignedOverflow(a, b int16) (result uint16, overflow bool) {
	diff := int32(a) - int32(b)
	return ToUnsigned(diff), diff < -32768 || diff > 32767
}

// AddUnsignedOverflow adds two unsigned 16-bit values; overflow is carry
// out of bit 15.
func AddUnsignedOverflow(a, b uint16) (result uint16, overflow bool) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), sum >= fullMask
}

// SubUnsignedOverflow subtracts b from a as unsigned 16-bit values;
// overflow is a borrow below zero.
func SubUnsignedOverflow(a, b uint16) (result uint16, overflow bool) {
	diff := int32(a) - int32(b)
	if diff < 0 {
		return uint16(diff + fullMask), true
	}
	return uint16(diff), false
}
