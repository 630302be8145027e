/*
   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/psx/emu/debugger"
	"github.com/rcornwell/psx/emu/disassemble"
	"github.com/rcornwell/psx/util/hex"

	"github.com/rcornwell/psx/emu/core"
)

func parseAddr(tok string) (uint32, error) {
	tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
	v, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", tok, err)
	}
	return uint32(v), nil
}

func step(line *cmdLine, m *core.Machine) (bool, error) {
	count := 1
	if tok := line.getWord(); tok != "" {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return false, fmt.Errorf("invalid step count: %w", err)
		}
		count = n
	}
	for i := 0; i < count; i++ {
		hit, addr := m.Step()
		if hit {
			fmt.Printf("stopped at %#08x\n", addr)
			break
		}
	}
	fmt.Printf("pc=%#08x\n", m.CPU.PC())
	return false, nil
}

func goCmd(line *cmdLine, m *core.Machine) (bool, error) {
	max := 0
	if tok := line.getWord(); tok != "" {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return false, fmt.Errorf("invalid step limit: %w", err)
		}
		max = n
	}
	steps, hit, addr := m.Run(max)
	if hit {
		fmt.Printf("stopped at %#08x after %d steps\n", addr, steps)
	} else {
		fmt.Printf("ran %d steps\n", steps)
	}
	return false, nil
}

func reset(_ *cmdLine, m *core.Machine) (bool, error) {
	m.Reset()
	fmt.Println("reset")
	return false, nil
}

func setBreak(line *cmdLine, m *core.Machine) (bool, error) {
	tok := line.getWord()
	if tok == "" {
		return false, errors.New("break requires an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, err
	}
	m.Debugger.AddBreakpoint(addr)
	fmt.Printf("breakpoint set at %#08x\n", addr)
	return false, nil
}

func deleteBreak(line *cmdLine, m *core.Machine) (bool, error) {
	tok := line.getWord()
	if tok == "" {
		return false, errors.New("delete requires an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, err
	}
	m.Debugger.DeleteBreakpoint(addr)
	fmt.Printf("breakpoint cleared at %#08x\n", addr)
	return false, nil
}

func watch(line *cmdLine, m *core.Machine) (bool, error) {
	kind := line.getWord()
	tok := line.getWord()
	if tok == "" {
		return false, errors.New("watch requires read|write and an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, err
	}
	switch kind {
	case "read":
		m.Debugger.AddReadWatch(addr)
	case "write":
		m.Debugger.AddWriteWatch(addr)
	default:
		return false, fmt.Errorf("watch kind must be read or write, got %q", kind)
	}
	fmt.Printf("%s watch set at %#08x\n", kind, addr)
	return false, nil
}

func unwatch(line *cmdLine, m *core.Machine) (bool, error) {
	kind := line.getWord()
	tok := line.getWord()
	if tok == "" {
		return false, errors.New("unwatch requires read|write and an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, err
	}
	switch kind {
	case "read":
		m.Debugger.DeleteReadWatch(addr)
	case "write":
		m.Debugger.DeleteWriteWatch(addr)
	default:
		return false, fmt.Errorf("unwatch kind must be read or write, got %q", kind)
	}
	return false, nil
}

func registers(_ *cmdLine, m *core.Machine) (bool, error) {
	view := m.CPU.View()

	var b strings.Builder
	b.WriteString("pc=")
	hex.FormatWord(&b, []uint32{view.PC})
	b.WriteString("hi=")
	hex.FormatWord(&b, []uint32{view.HI})
	b.WriteString("lo=")
	hex.FormatWord(&b, []uint32{view.LO})
	b.WriteString("sr=")
	hex.FormatWord(&b, []uint32{view.SR})
	b.WriteString("cause=")
	hex.FormatWord(&b, []uint32{view.Cause})
	b.WriteString("epc=")
	hex.FormatWord(&b, []uint32{view.EPC})
	fmt.Println(b.String())

	for i := 0; i < 32; i += 4 {
		var row strings.Builder
		hex.FormatWord(&row, view.Regs[i:i+4])
		fmt.Printf("r%-2d..r%-2d: %s\n", i, i+3, row.String())
	}
	return false, nil
}

func examine(line *cmdLine, m *core.Machine) (bool, error) {
	tok := line.getWord()
	if tok == "" {
		return false, errors.New("examine requires an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, err
	}
	view := debugger.CPUView{}
	value := m.Bus.Load32(view, addr)
	fmt.Printf("%#08x: %#08x\n", addr, value)
	return false, nil
}

func deposit(line *cmdLine, m *core.Machine) (bool, error) {
	addrTok := line.getWord()
	valTok := line.getWord()
	if addrTok == "" || valTok == "" {
		return false, errors.New("deposit requires an address and a value")
	}
	addr, err := parseAddr(addrTok)
	if err != nil {
		return false, err
	}
	value, err := parseAddr(valTok)
	if err != nil {
		return false, err
	}
	m.Bus.Store32(debugger.CPUView{}, addr, value)
	fmt.Printf("%#08x <- %#08x\n", addr, value)
	return false, nil
}

func disassembleCmd(line *cmdLine, m *core.Machine) (bool, error) {
	count := 1
	addr := m.CPU.PC()
	if tok := line.getWord(); tok != "" {
		if a, err := parseAddr(tok); err == nil {
			addr = a
		}
	}
	if tok := line.getWord(); tok != "" {
		if n, err := strconv.Atoi(tok); err == nil {
			count = n
		}
	}
	for i := 0; i < count; i++ {
		word := m.Bus.Load32(debugger.CPUView{}, addr)
		fmt.Printf("%#08x: %s\n", addr, disassemble.Instruction(addr, word))
		addr += 4
	}
	return false, nil
}

func quit(_ *cmdLine, _ *core.Machine) (bool, error) {
	return true, nil
}
