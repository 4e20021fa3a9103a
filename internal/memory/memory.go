/*
 * COMET - Low level memory.
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

package memory

const Size = 0x10000

// Origin records where a word of assembled code came from; the
// assembler's emitter sets it for every word it emits. The -a listing
// is rendered from the program's listing lines, not from Origin. It is
// the zero value everywhere the assembler hasn't touched, and is never
// populated by the loader or engine.
type Origin struct {
	File   string
	Line   int
	Source string
}

// Image is the 16-bit, 65536-word address space.
type Image struct {
	words  [Size]uint16
	shadow [Size]Origin
}

// New returns a freshly zeroed memory image.
func New() *Image {
	return &Image{}
}

// Read returns the word at addr.
func (m *Image) Read(addr uint16) uint16 {
	return m.words[addr]
}

// Write stores v at addr.
func (m *Image) Write(addr uint16, v uint16) {
	m.words[addr] = v
}

// SetOrigin records the source origin of the word at addr. Assembler use only.
func (m *Image) SetOrigin(addr uint16, o Origin) {
	m.shadow[addr] = o
}

// OriginAt returns the source origin recorded for addr, or the zero
// Origin if none was recorded.
func (m *Image) OriginAt(addr uint16) Origin {
	return m.shadow[addr]
}

// Reset zeroes every word and every shadow entry, as though the image
// had just been allocated.
func (m *Image) Reset() {
	for i := range m.words {
		m.words[i] = 0
		m.shadow[i] = Origin{}
	}
}
