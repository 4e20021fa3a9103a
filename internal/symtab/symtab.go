/*
 * COMET - Assembler label table.
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

package symtab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/comet-toolchain/comet/internal/numlit"
)

// Entry is one label definition.
type Entry struct {
	Address uint16
	File    string
	Line    int
}

// Table maps label names to their definition. Every label may be
// defined at most once.
type Table struct {
	entries map[string]Entry
}

// New returns an empty label table.
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Define registers label at addr. It is an error to redefine a label
// or to use a syntactically illegal name. A literal spelling ("=...")
// is accepted without the bare-label check: its own pool accounting
// guarantees it is well-formed before Define ever sees it.
func (t *Table) Define(label string, addr uint16, file string, line int) error {
	if !strings.HasPrefix(label, "=") && !numlit.ValidLabel(label) {
		return fmt.Errorf("%s:%d: illegal label name %q", file, line, label)
	}
	if prev, ok := t.entries[label]; ok {
		return fmt.Errorf("%s:%d: label %q already defined at %s:%d", file, line, label, prev.File, prev.Line)
	}
	t.entries[label] = Entry{Address: addr, File: file, Line: line}
	return nil
}

// Lookup returns the entry for label, if defined.
func (t *Table) Lookup(label string) (Entry, bool) {
	e, ok := t.entries[label]
	return e, ok
}

// All returns every defined label name, sorted, for the object file's
// "DEFINED LABELS" section.
func (t *Table) All() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of defined labels.
func (t *Table) Len() int {
	return len(t.entries)
}
