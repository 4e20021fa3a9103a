/*
 * COMET - Execution engine tests.
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

package engine

import (
	"testing"

	"github.com/comet-toolchain/comet/internal/memory"
)

// radrx packs an r_adr_x first word: opcode, gr nibble, xr nibble.
func radrx(opcode byte, gr, xr int) uint16 {
	return uint16(opcode)<<8 | uint16(gr)<<4 | uint16(xr)
}

func r1r2(opcode byte, r1, r2 int) uint16 {
	return uint16(opcode)<<8 | uint16(r1)<<4 | uint16(r2)
}

func newTestState() *State {
	return New(memory.New())
}

func TestADDASignedOverflow(t *testing.T) {
	s := newTestState()
	s.GR[1] = 0x7FFF
	s.GR[2] = 0x0001
	s.Mem.Write(0, r1r2(0x24, 1, 2)) // ADDA GR1, GR2 (r1_r2 form)
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if s.GR[1] != 0x8000 {
		t.Errorf("GR1 = %#04x, want 0x8000", s.GR[1])
	}
	if !s.OF || !s.SF || s.ZF {
		t.Errorf("flags OF=%v SF=%v ZF=%v, want true true false", s.OF, s.SF, s.ZF)
	}
}

func TestADDLUnsignedOverflow(t *testing.T) {
	s := newTestState()
	s.GR[1] = 0xFFFF
	s.GR[2] = 0x0001
	s.Mem.Write(0, r1r2(0x26, 1, 2)) // ADDL GR1, GR2
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if s.GR[1] != 0x0000 {
		t.Errorf("GR1 = %#04x, want 0", s.GR[1])
	}
	if !s.OF || !s.ZF || s.SF {
		t.Errorf("flags OF=%v SF=%v ZF=%v, want true false true", s.OF, s.SF, s.ZF)
	}
}

func TestSRASignExtension(t *testing.T) {
	s := newTestState()
	s.GR[1] = 0x8000
	// SRA GR1, 1 (r_adr_x form, eadr computed from a literal address operand of 1)
	s.Mem.Write(0, radrx(0x51, 1, 0))
	s.Mem.Write(1, 1)
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if s.GR[1] != 0xC000 {
		t.Errorf("GR1 = %#04x, want 0xC000", s.GR[1])
	}
	if s.OF || !s.SF || s.ZF {
		t.Errorf("flags OF=%v SF=%v ZF=%v, want false true false", s.OF, s.SF, s.ZF)
	}
}

func TestCallRetRoundTrip(t *testing.T) {
	s := newTestState()
	s.SP = EmptySP
	s.EndAddr = 0
	// 0: CALL 3   3: RET  (subroutine falls through to RET immediately)
	s.Mem.Write(0, radrx(0x80, 0, 0))
	s.Mem.Write(1, 3)
	s.Mem.Write(2, uint16(0x8100)) // filler word after CALL's 2-word encoding
	s.Mem.Write(3, 0x8100)         // RET
	s.PR = 0

	if err := s.Step(); err != nil { // executes CALL
		t.Fatalf("Step() error = %v", err)
	}
	if s.PR != 3 {
		t.Fatalf("PR after CALL = %#04x, want 3", s.PR)
	}
	if s.SP != EmptySP-1 {
		t.Fatalf("SP after CALL = %#04x, want %#04x", s.SP, EmptySP-1)
	}

	if err := s.Step(); err != nil { // executes RET
		t.Fatalf("Step() error = %v", err)
	}
	if s.PR != 2 {
		t.Fatalf("PR after RET = %#04x, want 2 (instruction after CALL)", s.PR)
	}
	if s.SP != EmptySP {
		t.Fatalf("SP after RET = %#04x, want %#04x", s.SP, EmptySP)
	}
}

func TestRetEmptyStackTerminates(t *testing.T) {
	s := newTestState()
	s.SP = EmptySP
	s.Mem.Write(0, 0x8100) // RET
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !s.Terminated {
		t.Fatal("expected Terminated after RET with empty stack")
	}
}

func TestInvalidRegisterSuspends(t *testing.T) {
	s := newTestState()
	s.Mem.Write(0, 0x10F0) // LD with gr nibble 0xF, invalid register
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !s.Suspended {
		t.Fatal("expected Suspended for invalid register")
	}
}

func TestStackExhaustionSuspends(t *testing.T) {
	s := newTestState()
	s.EndAddr = 5
	s.SP = 6
	s.Mem.Write(0, radrx(0x70, 0, 0)) // PUSH 0
	s.Mem.Write(1, 0)
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !s.Suspended {
		t.Fatal("expected Suspended for stack exhaustion (SP <= EndAddr)")
	}
}

func TestEffectiveAddressIndexing(t *testing.T) {
	s := newTestState()
	s.GR[3] = 5
	if got := s.effectiveAddress(10, 0); got != 10 {
		t.Errorf("eadr(xr=0) = %#04x, want 10", got)
	}
	if got := s.effectiveAddress(10, 3); got != 15 {
		t.Errorf("eadr(xr=3) = %#04x, want 15", got)
	}
}

type stubSVC struct {
	inLines []string
	eof     bool
	out     []string
}

func (s *stubSVC) Input() (string, bool) {
	if len(s.inLines) == 0 {
		return "", true
	}
	line := s.inLines[0]
	s.inLines = s.inLines[1:]
	return line, false
}

func (s *stubSVC) Output(text string) {
	s.out = append(s.out, text)
}

func TestSVCInputOutput(t *testing.T) {
	s := newTestState()
	svc := &stubSVC{inLines: []string{"hello"}}
	s.SVC = svc
	s.GR[1] = 0x100 // buffer address
	s.GR[2] = 0x200 // length address
	s.Mem.Write(0, radrx(0xF0, 0, 0))
	s.Mem.Write(1, 1) // SVC 1 (input)
	s.PR = 0

	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if s.Mem.Read(0x200) != 5 {
		t.Errorf("length word = %d, want 5", s.Mem.Read(0x200))
	}
	if s.Mem.Read(0x100) != 'h' {
		t.Errorf("first char = %q, want 'h'", s.Mem.Read(0x100))
	}

	// SVC's PR += 1 quirk (spec.md section 4.8) means the natural
	// fall-through address does not land on a fresh instruction here;
	// place the next instruction explicitly to exercise SVC 2 in
	// isolation.
	s.PR = 2
	s.Mem.Write(2, radrx(0xF0, 0, 0))
	s.Mem.Write(3, 2) // SVC 2 (output)
	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if len(svc.out) != 1 || svc.out[0] != "hello" {
		t.Fatalf("out = %+v, want [hello]", svc.out)
	}
}
