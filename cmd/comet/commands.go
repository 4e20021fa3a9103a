/*
 * COMET - Comet debugger shell command dispatch.
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

package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/comet-toolchain/comet/internal/debugger"
)

// lastCommand lets an empty input line repeat the previous command,
// per spec.md section 7 "Shell" error handling.
var lastCommand string

// dispatch runs one command line against dbg. It returns quit=true
// when the shell should exit.
func dispatch(ctx context.Context, dbg *debugger.Debugger, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		line = lastCommand
	}
	if line == "" {
		return false
	}
	lastCommand = line

	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "run":
		report(dbg.Run())
	case "continue", "cont":
		reason, err := dbg.Continue(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return false
		}
		if reason == "terminated" {
			fmt.Println("Program terminated.")
		} else {
			fmt.Println(reason)
		}
	case "step":
		n := 1
		if len(args) == 1 {
			if v, err := strconv.Atoi(args[0]); err == nil {
				n = v
			}
		}
		executed, err := dbg.Step(n)
		if err != nil {
			fmt.Println("Error:", err)
			return false
		}
		fmt.Printf("executed %d instruction(s)\n", executed)
		if dbg.Eng.Terminated {
			fmt.Println("Program terminated.")
		} else if dbg.Eng.Suspended {
			fmt.Println(dbg.Eng.SuspendMsg)
		}
	case "break":
		if len(args) != 1 {
			fmt.Println("usage: break <addr>")
			return false
		}
		addr, err := parseHex(args[0])
		if err != nil {
			fmt.Println("Error:", err)
			return false
		}
		slot := dbg.Break(addr)
		if slot == 0 {
			fmt.Println("breakpoint table full")
			return false
		}
		fmt.Printf("breakpoint %d at #%04X\n", slot, addr)
	case "del":
		slot := 0
		if len(args) == 1 {
			if v, err := strconv.Atoi(args[0]); err == nil {
				slot = v
			}
		}
		dbg.Delete(slot)
	case "info":
		printInfo(dbg.Info())
	case "print":
		printRegisters(dbg.Print())
	case "dump":
		addr := uint16(0)
		if len(args) == 1 {
			a, err := parseHex(args[0])
			if err == nil {
				addr = a
			}
		}
		printRows(addr, dbg.Dump(addr))
	case "stack":
		printRows(dbg.Eng.SP, dbg.Stack())
	case "file":
		if len(args) != 1 {
			fmt.Println("usage: file <path>")
			return false
		}
		report(dbg.File(args[0]))
	case "jump":
		if len(args) != 1 {
			fmt.Println("usage: jump <addr>")
			return false
		}
		addr, err := parseHex(args[0])
		if err != nil {
			fmt.Println("Error:", err)
			return false
		}
		dbg.Jump(addr)
	case "memory":
		if len(args) != 2 {
			fmt.Println("usage: memory <addr> <value>")
			return false
		}
		addr, err1 := parseHex(args[0])
		v, err2 := parseHex(args[1])
		if err1 != nil || err2 != nil {
			fmt.Println("Error: invalid address or value")
			return false
		}
		dbg.Memory(addr, v)
	case "disasm":
		addr := dbg.Eng.PR
		if len(args) == 1 {
			a, err := parseHex(args[0])
			if err == nil {
				addr = a
			}
		}
		for _, d := range dbg.Disasm(addr) {
			fmt.Printf("#%04X  %-4s %s\n", d.Addr, d.Mnemonic, d.Operands)
		}
	case "label":
		printLabels(dbg.Label())
	case "help":
		printHelp()
	case "quit":
		return true
	default:
		fmt.Println("unknown command:", cmd)
	}
	return false
}

func report(err error) {
	if err != nil {
		fmt.Println("Error:", err)
	}
}

func parseHex(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func printInfo(info debugger.Info) {
	fmt.Printf("file:        %s\n", info.File)
	fmt.Printf("start/end:   #%04X / #%04X\n", info.StartAddr, info.EndAddr)
	fmt.Printf("PR/SP:       #%04X / #%04X\n", info.PR, info.SP)
	fmt.Printf("breakpoints: %d\n", info.BreakpointCount)
	if info.Terminated {
		fmt.Println("state:       terminated")
	} else if info.Suspended {
		fmt.Println("state:       suspended: " + info.SuspendMsg)
	} else {
		fmt.Println("state:       ready")
	}
}

func printRegisters(d debugger.RegisterDump) {
	mark := func(changed bool) string {
		if changed {
			return "*"
		}
		return " "
	}
	fmt.Printf("PR=#%04X SP=#%04X  OF=%d%s SF=%d%s ZF=%d%s\n",
		d.PR, d.SP,
		boolInt(d.OF), mark(d.ChangedOF),
		boolInt(d.SF), mark(d.ChangedSF),
		boolInt(d.ZF), mark(d.ChangedZF))
	for i, v := range d.GR {
		fmt.Printf("GR%d=#%04X%s ", i, v, mark(d.ChangedGR[i]))
	}
	fmt.Println()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func printRows(base uint16, rows [16][8]uint16) {
	for r, row := range rows {
		addr := base + uint16(r*8)
		fmt.Printf("#%04X: ", addr)
		var ascii strings.Builder
		for _, w := range row {
			fmt.Printf("%04X ", w)
			lo := byte(w)
			if lo >= 0x20 && lo < 0x7F {
				ascii.WriteByte(lo)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Printf(" %s\n", ascii.String())
	}
}

func printLabels(labels map[string]uint16) {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("#%04X %s\n", labels[name], name)
	}
}

func printHelp() {
	fmt.Println(`commands:
  run              reload current file
  continue         execute until breakpoint or suspend
  step [n]         execute n instructions (default 1)
  break <addr>     set a breakpoint
  del [slot]       delete a breakpoint, or all if slot omitted
  info             summarize session state
  print            dump registers and flags
  dump [addr]      dump 16x8 words of memory
  stack            dump 16x8 words at the stack pointer
  file <path>      load an object file
  jump <addr>      set PR without executing
  memory <a> <v>   write a word
  disasm [addr]    disassemble 16 instructions
  label            list defined labels
  quit             exit`)
}
