/*
 * COMET - Object file writer and loader.
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

package objfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/comet-toolchain/comet/internal/casl"
	"github.com/comet-toolchain/comet/internal/memory"
)

var headerRE = regexp.MustCompile(`^COMET\s+([0-9A-Fa-f]+)`)

const definedLabelsSentinel = "DEFINED LABELS"

// Write renders p as the object file text format:
//
//	COMET <start_hex>
//	CASL LISTING <input_path>
//	<lineno:4d> <addr:04x or blank> <word:04x>\t<source line>
//	...
//	(blank)
//	DEFINED LABELS
//	               <file>:<lineno>\t<addr:04x> <label>
//	...
func Write(w io.Writer, p *casl.Program) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "COMET %04X\n", p.StartAddr); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "CASL LISTING %s\n", p.Filename); err != nil {
		return err
	}
	for _, line := range p.Listing {
		if len(line.Words) == 0 {
			if _, err := fmt.Fprintf(bw, "%4d %s\t%s\n", line.LineNo, strings.Repeat(" ", 8), line.Raw); err != nil {
				return err
			}
			continue
		}
		for _, word := range line.Words {
			addrCol := "    "
			if word.HasAddr {
				addrCol = fmt.Sprintf("%04X", word.Addr)
			}
			if _, err := fmt.Fprintf(bw, "%4d %s %04X\t%s\n", line.LineNo, addrCol, word.Value, line.Raw); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, definedLabelsSentinel); err != nil {
		return err
	}
	for _, name := range p.Labels.All() {
		entry, _ := p.Labels.Lookup(name)
		if _, err := fmt.Fprintf(bw, "               %s:%d\t%04X %s\n", entry.File, entry.Line, entry.Address, name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Loaded is the result of reading an object file back in: the words
// in emission order, the label table, and its reverse for disassembly.
type Loaded struct {
	StartAddr     uint16
	EndAddr       uint16
	Words         []uint16
	Labels        map[string]uint16
	ReverseLabels map[uint16]string
}

var labelLineRE = regexp.MustCompile(`^\s*(\S+):(\d+)\s+([0-9A-Fa-f]+)\s+(\S+)\s*$`)
var wordLineRE = regexp.MustCompile(`^\s*\d+\s+([0-9A-Fa-f]{4}|\s{4})\s+([0-9A-Fa-f]{4})\t`)

// Load parses an object file. It only inspects the header line, the
// word lines, and the DEFINED LABELS section, per the loader's
// documented scope; it does not care about the listing's source text.
func Load(r io.Reader) (*Loaded, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, &FormatError{Reason: "empty object file"}
	}
	header := scanner.Text()
	m := headerRE.FindStringSubmatch(header)
	if m == nil {
		return nil, &FormatError{Reason: fmt.Sprintf("missing COMET header, got %q", header)}
	}
	start, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("invalid start address %q", m[1])}
	}

	loaded := &Loaded{
		StartAddr:     uint16(start),
		Labels:        make(map[string]uint16),
		ReverseLabels: make(map[uint16]string),
	}

	inLabels := false
	var addr uint16
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == definedLabelsSentinel {
			inLabels = true
			continue
		}
		if inLabels {
			lm := labelLineRE.FindStringSubmatch(line)
			if lm == nil {
				continue
			}
			v, err := strconv.ParseUint(lm[3], 16, 32)
			if err != nil {
				return nil, &FormatError{Reason: fmt.Sprintf("invalid label address %q", lm[3])}
			}
			label := lm[4]
			loaded.Labels[label] = uint16(v)
			loaded.ReverseLabels[uint16(v)] = label
			continue
		}
		wm := wordLineRE.FindStringSubmatch(line)
		if wm == nil {
			continue // header/listing-banner lines, blank separator
		}
		v, err := strconv.ParseUint(wm[2], 16, 32)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("invalid word %q", wm[2])}
		}
		loaded.Words = append(loaded.Words, uint16(v))
		addr = uint16(len(loaded.Words) - 1)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading object file: %w", err)
	}
	if len(loaded.Words) > 0 {
		loaded.EndAddr = addr
	}
	return loaded, nil
}

// Install writes l's words into m starting at address 0, in emission
// order. It does not clear m first: per the documented "retained
// memory" resolution (see DESIGN.md), callers that want a clean load
// are expected to call m.Reset() themselves before Install.
func (l *Loaded) Install(m *memory.Image) {
	for addr, v := range l.Words {
		m.Write(uint16(addr), v)
	}
}

// FormatError reports a malformed object file.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("object file format: %s", e.Reason)
}
