/*
 * COMET - Debugger operations over engine state.
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

package debugger

import (
	"context"
	"fmt"
	"os"

	"github.com/comet-toolchain/comet/internal/disasm"
	"github.com/comet-toolchain/comet/internal/engine"
	"github.com/comet-toolchain/comet/internal/memory"
	"github.com/comet-toolchain/comet/internal/objfile"
)

const maxBreakpoints = 99

// Debugger bundles the engine state, the currently loaded program,
// and the breakpoint table, which persists across reloads by design
// (spec.md section 3).
type Debugger struct {
	Eng         *engine.State
	Mem         *memory.Image
	Loaded      *objfile.Loaded
	CurrentFile string

	breakpoints map[int]uint16 // slot -> address, slots 1..99

	lastGR [8]uint16
	lastOF bool
	lastSF bool
	lastZF bool
}

// New returns a debugger with a fresh, empty memory image and no
// program loaded yet.
func New(svc engine.SVCHandler) *Debugger {
	mem := memory.New()
	eng := engine.New(mem)
	eng.SVC = svc
	return &Debugger{
		Eng:         eng,
		Mem:         mem,
		breakpoints: make(map[int]uint16),
	}
}

// File loads path as the current object file, without executing it.
// Per the resolved open question (spec.md section 9 / SPEC_FULL.md
// section 11), memory is always zeroed before install: the debugger
// session does not retain stale words across a reload.
func (d *Debugger) File(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	loaded, err := objfile.Load(f)
	if err != nil {
		return err
	}
	d.CurrentFile = path
	d.Loaded = loaded
	return d.Run()
}

// Run reloads the current file into memory and resets the engine to
// its start address. Breakpoints survive; registers and flags do not.
func (d *Debugger) Run() error {
	if d.Loaded == nil {
		return fmt.Errorf("no file loaded")
	}
	d.Mem.Reset()
	d.Loaded.Install(d.Mem)
	d.Eng.Reset(d.Loaded.StartAddr, d.Loaded.EndAddr)
	return nil
}

// Continue executes instructions until the engine suspends (including
// normal termination), a breakpoint address is reached, or ctx is
// canceled. It never partially executes an instruction: the
// cancellation and breakpoint checks both happen only at instruction
// boundaries.
func (d *Debugger) Continue(ctx context.Context) (reason string, err error) {
	if d.Eng.Suspended || d.Eng.Terminated {
		return "", fmt.Errorf("nothing to run")
	}
	for {
		select {
		case <-ctx.Done():
			return "interrupted", nil
		default:
		}
		if err := d.Eng.Step(); err != nil {
			return "", err
		}
		if d.Eng.Terminated {
			return "terminated", nil
		}
		if d.Eng.Suspended {
			return d.Eng.SuspendMsg, nil
		}
		if slot := d.breakSlotAt(d.Eng.PR); slot != 0 {
			return fmt.Sprintf("breakpoint %d at #%04X", slot, d.Eng.PR), nil
		}
	}
}

// Step executes up to n instructions (n defaults to 1 if <= 0),
// stopping early on suspend/termination, and returns how many it
// actually executed.
func (d *Debugger) Step(n int) (executed int, err error) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if d.Eng.Suspended || d.Eng.Terminated {
			break
		}
		if err := d.Eng.Step(); err != nil {
			return executed, err
		}
		executed++
		if d.Eng.Terminated || d.Eng.Suspended {
			break
		}
	}
	return executed, nil
}

// Break installs a breakpoint at addr in the lowest free slot
// (1..99) and returns that slot, or 0 if the table is full.
func (d *Debugger) Break(addr uint16) (slot int) {
	for s := 1; s <= maxBreakpoints; s++ {
		if _, used := d.breakpoints[s]; !used {
			d.breakpoints[s] = addr
			return s
		}
	}
	return 0
}

// Delete removes breakpoint slot. slot == 0 deletes every breakpoint.
// Deleting an already-empty table (or a slot that doesn't exist) is a
// silent no-op.
func (d *Debugger) Delete(slot int) {
	if slot == 0 {
		d.breakpoints = make(map[int]uint16)
		return
	}
	delete(d.breakpoints, slot)
}

// Breakpoints returns a snapshot of the slot -> address table.
func (d *Debugger) Breakpoints() map[int]uint16 {
	out := make(map[int]uint16, len(d.breakpoints))
	for k, v := range d.breakpoints {
		out[k] = v
	}
	return out
}

func (d *Debugger) breakSlotAt(addr uint16) int {
	for slot, a := range d.breakpoints {
		if a == addr {
			return slot
		}
	}
	return 0
}

// Info summarizes the current session state, by analogy with the
// teacher's "show" command.
type Info struct {
	File            string
	StartAddr       uint16
	EndAddr         uint16
	PR              uint16
	SP              uint16
	BreakpointCount int
	Suspended       bool
	SuspendMsg      string
	Terminated      bool
}

func (d *Debugger) Info() Info {
	info := Info{
		File:            d.CurrentFile,
		PR:              d.Eng.PR,
		SP:              d.Eng.SP,
		BreakpointCount: len(d.breakpoints),
		Suspended:       d.Eng.Suspended,
		SuspendMsg:      d.Eng.SuspendMsg,
		Terminated:      d.Eng.Terminated,
	}
	if d.Loaded != nil {
		info.StartAddr = d.Loaded.StartAddr
		info.EndAddr = d.Loaded.EndAddr
	}
	return info
}

// RegisterDump is a snapshot of registers and flags plus which ones
// changed since the previous Print call, for the shell's
// change-since-last highlight.
type RegisterDump struct {
	PR, SP     uint16
	GR         [8]uint16
	OF, SF, ZF bool
	ChangedGR  [8]bool
	ChangedOF  bool
	ChangedSF  bool
	ChangedZF  bool
}

func (d *Debugger) Print() RegisterDump {
	dump := RegisterDump{
		PR: d.Eng.PR, SP: d.Eng.SP, GR: d.Eng.GR,
		OF: d.Eng.OF, SF: d.Eng.SF, ZF: d.Eng.ZF,
	}
	for i := range dump.GR {
		dump.ChangedGR[i] = dump.GR[i] != d.lastGR[i]
	}
	dump.ChangedOF = dump.OF != d.lastOF
	dump.ChangedSF = dump.SF != d.lastSF
	dump.ChangedZF = dump.ZF != d.lastZF
	d.lastGR = d.Eng.GR
	d.lastOF, d.lastSF, d.lastZF = d.Eng.OF, d.Eng.SF, d.Eng.ZF
	return dump
}

// Dump returns 16 rows of 8 words each, starting at addr.
func (d *Debugger) Dump(addr uint16) [16][8]uint16 {
	var rows [16][8]uint16
	a := addr
	for r := 0; r < 16; r++ {
		for c := 0; c < 8; c++ {
			rows[r][c] = d.Mem.Read(a)
			a++
		}
	}
	return rows
}

// Stack returns 16 rows of 8 words starting at the current SP, the
// same shape as Dump, for the shell's "stack" command.
func (d *Debugger) Stack() [16][8]uint16 {
	return d.Dump(d.Eng.SP)
}

// Jump sets PR directly, without executing anything.
func (d *Debugger) Jump(addr uint16) {
	d.Eng.PR = addr
}

// Memory writes v at addr.
func (d *Debugger) Memory(addr uint16, v uint16) {
	d.Mem.Write(addr, v)
}

// Disasm decodes 16 instructions starting at addr, advancing by each
// decoded instruction's own size.
func (d *Debugger) Disasm(addr uint16) []disasm.Decoded {
	out := make([]disasm.Decoded, 0, 16)
	a := addr
	reverse := d.reverseLabels()
	for i := 0; i < 16; i++ {
		dec := disasm.Decode(d.Mem, a, reverse)
		out = append(out, dec)
		a += uint16(dec.Size)
	}
	return out
}

// Label returns the label -> address table for the loaded program.
func (d *Debugger) Label() map[string]uint16 {
	if d.Loaded == nil {
		return nil
	}
	return d.Loaded.Labels
}

func (d *Debugger) reverseLabels() map[uint16]string {
	if d.Loaded == nil {
		return nil
	}
	return d.Loaded.ReverseLabels
}
