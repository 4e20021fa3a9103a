/*
 * COMET - Assembler -a listing renderer.
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

package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/comet-toolchain/comet/internal/casl"
)

// Write renders p's listing and defined-label table to w, in the same
// column layout as the object file body.
func Write(w io.Writer, p *casl.Program) {
	fmt.Fprintf(w, "CASL LISTING %s\n", p.Filename)
	for _, line := range p.Listing {
		if len(line.Words) == 0 {
			fmt.Fprintf(w, "%4d %s\t%s\n", line.LineNo, strings.Repeat(" ", 8), line.Raw)
			continue
		}
		for _, word := range line.Words {
			addrCol := "    "
			if word.HasAddr {
				addrCol = fmt.Sprintf("%04X", word.Addr)
			}
			fmt.Fprintf(w, "%4d %s %04X\t%s\n", line.LineNo, addrCol, word.Value, line.Raw)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DEFINED LABELS")
	for _, name := range p.Labels.All() {
		entry, _ := p.Labels.Lookup(name)
		fmt.Fprintf(w, "               %s:%d\t%04X %s\n", entry.File, entry.Line, entry.Address, name)
	}
}

// WriteWarnings prints one line per warning, in the file:line:
// warning: msg shape shared with fatal assembly errors.
func WriteWarnings(w io.Writer, warnings []casl.Warning) {
	for _, wrn := range warnings {
		fmt.Fprintln(w, wrn.String())
	}
}
