/*
 * COMET - COMET execution engine.
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
	"fmt"

	"github.com/comet-toolchain/comet/internal/isa"
	"github.com/comet-toolchain/comet/internal/memory"
	"github.com/comet-toolchain/comet/internal/word"
)

// EmptySP is the stack-pointer sentinel value for an empty stack.
const EmptySP = 0xFFFF

// SVCHandler services the two supervisor calls. Input returns one
// line of stdin (without its trailing newline) and whether it hit
// EOF; Output writes s to the emulator's console.
type SVCHandler interface {
	Input() (line string, eof bool)
	Output(s string)
}

// State is the full machine state the engine owns: registers, flags,
// the memory image, and enough bookkeeping for the debugger to report
// why execution stopped. Only the engine mutates PR/SP/GR/flags/Mem
// during Step; the debugger reads and writes them only through its
// own defined operations (Jump, Memory, Print, ...).
type State struct {
	PR, SP     uint16
	GR         [8]uint16
	OF, SF, ZF bool

	Mem     *memory.Image
	EndAddr uint16

	Suspended  bool
	SuspendMsg string
	Terminated bool // RET with an empty stack: normal program end

	SVC SVCHandler
}

// New returns a fresh engine state bound to mem. SP starts at the
// empty-stack sentinel; callers set PR/EndAddr after loading a program.
func New(mem *memory.Image) *State {
	return &State{Mem: mem, SP: EmptySP}
}

// Reset restores registers, flags, and PR/SP to their post-load
// values without touching memory or breakpoints.
func (s *State) Reset(startAddr, endAddr uint16) {
	s.PR = startAddr
	s.EndAddr = endAddr
	s.SP = EmptySP
	s.GR = [8]uint16{}
	s.OF, s.SF, s.ZF = false, false, false
	s.Suspended = false
	s.SuspendMsg = ""
	s.Terminated = false
}

// decoded is the engine's own instruction decode: the raw fields
// Step needs to dispatch, distinct from disasm.Decoded which renders
// operands as text for display.
type decoded struct {
	mnemonic isa.Mnemonic
	form     isa.Form
	gr, xr   uint16
	adr      uint16
	size     int
	known    bool
}

func (s *State) decode(addr uint16) decoded {
	w := s.Mem.Read(addr)
	opcode := byte(w >> 8)
	gr := (w >> 4) & 0xF
	xr := w & 0xF
	adr := s.Mem.Read(addr + 1)

	entry, ok := isa.ByOpcode(opcode)
	if !ok {
		return decoded{known: false}
	}
	form := entry.Forms[0]
	return decoded{mnemonic: entry.Mnemonic, form: form, gr: gr, xr: xr, adr: adr, size: form.Size(), known: true}
}

// Step executes exactly one instruction, per spec.md section 4.8:
// decode, validate registers, compute the effective address, dispatch,
// then check for stack exhaustion. It never partially executes an
// instruction: any trap suspends the engine before anything changes,
// except instructions where the suspend check is necessarily checked
// only after the fact (stack exhaustion, which is only knowable once
// SP has moved).
func (s *State) Step() error {
	if s.Suspended || s.Terminated {
		return fmt.Errorf("engine is suspended: %s", s.SuspendMsg)
	}

	d := s.decode(s.PR)
	if !d.known {
		s.suspend(fmt.Sprintf("invalid opcode at #%04X", s.PR))
		return nil
	}
	if d.gr > 7 || d.xr > 7 {
		s.suspend(fmt.Sprintf("invalid register at #%04X", s.PR))
		return nil
	}

	eadr := s.effectiveAddress(d.adr, d.xr)
	s.dispatch(d, eadr)

	if !s.Suspended && !s.Terminated && s.SP <= s.EndAddr {
		s.suspend("stack exhausted")
	}
	return nil
}

func (s *State) suspend(msg string) {
	s.Suspended = true
	s.SuspendMsg = msg
}

// effectiveAddress computes (adr + (xr==0 ? 0 : GR[xr])) mod 0x10000.
func (s *State) effectiveAddress(adr, xr uint16) uint16 {
	if xr == 0 {
		return adr
	}
	return adr + s.GR[xr]
}

func (s *State) setFlagsZS(v uint16) {
	s.ZF = v == 0
	s.SF = v>>15 != 0
}

func (s *State) dispatch(d decoded, eadr uint16) {
	switch d.mnemonic {
	case isa.NOP:
		s.PR++

	case isa.LD:
		var v uint16
		if d.form == isa.FormR1R2 {
			v = s.GR[d.xr]
		} else {
			v = s.Mem.Read(eadr)
		}
		s.GR[d.gr] = v
		s.setFlagsZS(v)
		s.OF = false
		s.PR += uint16(d.size)

	case isa.ST:
		s.Mem.Write(eadr, s.GR[d.gr])
		s.PR += uint16(d.size)

	case isa.LAD:
		s.GR[d.gr] = eadr
		s.PR += uint16(d.size)

	case isa.ADDA:
		a, b := s.operand16(d, eadr)
		res, ovf := word.AddSignedOverflow(int16(a), int16(b))
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = ovf
		s.PR += uint16(d.size)

	case isa.SUBA:
		a, b := s.operand16(d, eadr)
		res, ovf := word.SubSignedOverflow(int16(a), int16(b))
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = ovf
		s.PR += uint16(d.size)

	case isa.ADDL:
		a, b := s.operand16(d, eadr)
		res, ovf := word.AddUnsignedOverflow(a, b)
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = ovf
		s.PR += uint16(d.size)

	case isa.SUBL:
		a, b := s.operand16(d, eadr)
		res, ovf := word.SubUnsignedOverflow(a, b)
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = ovf
		s.PR += uint16(d.size)

	case isa.AND:
		a, b := s.operand16(d, eadr)
		res := a & b
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = false
		s.PR += uint16(d.size)

	case isa.OR:
		a, b := s.operand16(d, eadr)
		res := a | b
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = false
		s.PR += uint16(d.size)

	case isa.XOR:
		a, b := s.operand16(d, eadr)
		res := a ^ b
		s.GR[d.gr] = res
		s.setFlagsZS(res)
		s.OF = false
		s.PR += uint16(d.size)

	case isa.CPA:
		a, b := s.operand16(d, eadr)
		diff := word.ToSigned(a) - word.ToSigned(b)
		wrapped := word.ToUnsigned(diff)
		s.setFlagsZS(wrapped)
		s.PR += uint16(d.size)

	case isa.CPL:
		a, b := s.operand16(d, eadr)
		diff := int64(a) - int64(b)
		if diff > 32767 {
			diff = 32767
		}
		if diff < -32768 {
			diff = -32768
		}
		s.setFlagsZS(word.ToUnsigned(int32(diff)))
		s.PR += uint16(d.size)

	case isa.SLA:
		s.shiftArithmetic(d, eadr, true)

	case isa.SRA:
		s.shiftArithmetic(d, eadr, false)

	case isa.SLL:
		s.shiftLogical(d, eadr, true)

	case isa.SRL:
		s.shiftLogical(d, eadr, false)

	case isa.JPL:
		if !s.SF && !s.ZF {
			s.PR = eadr
		} else {
			s.PR += uint16(d.size)
		}

	case isa.JMI:
		if s.SF {
			s.PR = eadr
		} else {
			s.PR += uint16(d.size)
		}

	case isa.JNZ:
		if !s.ZF {
			s.PR = eadr
		} else {
			s.PR += uint16(d.size)
		}

	case isa.JZE:
		if s.ZF {
			s.PR = eadr
		} else {
			s.PR += uint16(d.size)
		}

	case isa.JOV:
		if s.OF {
			s.PR = eadr
		} else {
			s.PR += uint16(d.size)
		}

	case isa.JUMP:
		s.PR = eadr

	case isa.PUSH:
		s.SP--
		s.Mem.Write(s.SP, eadr)
		s.PR += 2

	case isa.POP:
		s.GR[d.gr] = s.Mem.Read(s.SP)
		s.SP++
		s.PR++

	case isa.CALL:
		s.SP--
		s.Mem.Write(s.SP, s.PR+2)
		s.PR = eadr

	case isa.RET:
		if s.SP >= EmptySP {
			s.Terminated = true
			return
		}
		s.PR = s.Mem.Read(s.SP)
		s.SP++

	case isa.SVC:
		// spec.md section 4.8 states PR advances by 1 here, not by the
		// instruction's own 2-word size; preserved verbatim as a
		// documented quirk (see DESIGN.md).
		s.doSVC(eadr)
		s.PR++

	default:
		s.suspend(fmt.Sprintf("unimplemented mnemonic %s", d.mnemonic))
	}
}

// operand16 reads the two 16-bit operands for a dyadic r_adr_x/r1_r2
// instruction: GR[gr] and either mem[eadr] or GR[xr].
func (s *State) operand16(d decoded, eadr uint16) (a, b uint16) {
	a = s.GR[d.gr]
	if d.form == isa.FormR1R2 {
		b = s.GR[d.xr]
	} else {
		b = s.Mem.Read(eadr)
	}
	return a, b
}

func (s *State) shiftArithmetic(d decoded, eadr uint16, left bool) {
	v := int32(word.ToSigned(s.GR[d.gr]))
	sign := v & (1 << 15)
	var ofBit int32
	if left {
		for i := uint16(0); i < eadr; i++ {
			ofBit = (v >> 14) & 1
			v = (v << 1) & 0x7FFF
			v |= sign
		}
	} else {
		for i := uint16(0); i < eadr; i++ {
			ofBit = v & 1
			v = (v >> 1) & 0x7FFF
			v |= sign
		}
	}
	res := uint16(v) & 0x7FFF
	if sign != 0 {
		res |= 0x8000
	}
	s.GR[d.gr] = res
	s.setFlagsZS(res)
	s.OF = ofBit != 0
	s.PR += uint16(d.size)
}

func (s *State) shiftLogical(d decoded, eadr uint16, left bool) {
	v := uint32(s.GR[d.gr])
	var ofBit uint32
	if left {
		for i := uint16(0); i < eadr; i++ {
			ofBit = (v >> 15) & 1
			v = (v << 1) & 0xFFFF
		}
	} else {
		for i := uint16(0); i < eadr; i++ {
			ofBit = v & 1
			v >>= 1
		}
	}
	res := uint16(v)
	s.GR[d.gr] = res
	s.setFlagsZS(res)
	s.OF = ofBit != 0
	s.PR += uint16(d.size)
}

const maxLineLen = 256

// doSVC services eadr==1 (input) and eadr==2 (output); any other
// value leaves GR/flags untouched, matching the "implementation
// defined" clobber spec.md section 4.8 documents.
func (s *State) doSVC(eadr uint16) {
	if s.SVC == nil {
		return
	}
	switch eadr {
	case 1:
		line, eof := s.SVC.Input()
		if eof {
			s.Mem.Write(s.GR[2], 0xFFFF)
			return
		}
		if len(line) > maxLineLen {
			line = line[:maxLineLen]
		}
		base := s.GR[1]
		for i, c := range []byte(line) {
			s.Mem.Write(base+uint16(i), uint16(c))
		}
		s.Mem.Write(s.GR[2], uint16(len(line)))
	case 2:
		n := s.Mem.Read(s.GR[2])
		base := s.GR[1]
		buf := make([]byte, 0, n)
		for i := uint16(0); i < n; i++ {
			buf = append(buf, byte(s.Mem.Read(base+i)))
		}
		s.SVC.Output(string(buf))
	}
}
