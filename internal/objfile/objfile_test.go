/*
 * COMET - Object file round-trip tests.
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
	"bytes"
	"strings"
	"testing"

	"github.com/comet-toolchain/comet/internal/casl"
)

func assembleSrc(t *testing.T, src string) *casl.Program {
	t.Helper()
	p, _, err := casl.Assemble(strings.NewReader(src), "test.cas")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return p
}

func TestWriteLoadRoundTrip(t *testing.T) {
	src := "MAIN START\nL1   LD GR1, =#0005\n    ADDA GR1, GR1\n    RET\n    END\n"
	p := assembleSrc(t, src)

	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.StartAddr != p.StartAddr {
		t.Errorf("StartAddr = %#04x, want %#04x", loaded.StartAddr, p.StartAddr)
	}
	if len(loaded.Words) != len(p.Words) {
		t.Fatalf("len(Words) = %d, want %d", len(loaded.Words), len(p.Words))
	}
	for i, w := range p.Words {
		if loaded.Words[i] != w.Value {
			t.Errorf("Words[%d] = %#04x, want %#04x", i, loaded.Words[i], w.Value)
		}
	}
	if _, ok := loaded.Labels["L1"]; !ok {
		t.Error("L1 missing from loaded label table")
	}
}

func TestLoadMissingHeader(t *testing.T) {
	_, err := Load(strings.NewReader("not an object file\n"))
	if err == nil {
		t.Fatal("expected a format error for missing COMET header")
	}
}

func TestLoadMinProgram(t *testing.T) {
	loaded, err := Load(strings.NewReader("COMET 0000\nCASL LISTING x\n   1 0000 8100\tRET\n\nDEFINED LABELS\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.StartAddr != 0 || len(loaded.Words) != 1 || loaded.Words[0] != 0x8100 {
		t.Fatalf("loaded = %+v, want start 0, one word 0x8100", loaded)
	}
}
