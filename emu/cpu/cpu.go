/*
   R3000A core: fetch/decode/execute, register banks, Cop0, exceptions.

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

// Package cpu implements the R3000A fetch/decode/execute engine: the
// branch and load delay slots as explicit shadow state, the Cop0
// exception machinery, and a dense switch over opcode.Tag for dispatch,
// the same way a normalized tag set drives one decode loop for S/370
// RR/RX/RS execution.
package cpu

import (
	"github.com/rcornwell/psx/emu/debugger"
	"github.com/rcornwell/psx/emu/opcode"
)

// Bus is the memory/IO surface the core drives. It matches
// *github.com/rcornwell/psx/emu/bus.Bus's method set without importing
// it: the core depends on its memory/IO peer through a narrow
// interface rather than a concrete type.
type Bus interface {
	Fetch32(vaddr uint32) uint32
	Load8(view debugger.CPUView, vaddr uint32) uint8
	Load16(view debugger.CPUView, vaddr uint32) uint16
	Load32(view debugger.CPUView, vaddr uint32) uint32
	Store8(view debugger.CPUView, vaddr uint32, value uint8)
	Store16(view debugger.CPUView, vaddr uint32, value uint16)
	Store32(view debugger.CPUView, vaddr uint32, value uint32)
}

// Exception cause codes modeled by triggerException.
const (
	CauseLoadAddressError  = 4
	CauseStoreAddressError = 5
	CauseSyscall           = 8
	CauseBreak             = 9
	CauseIllegalInstr      = 10
	CauseCoprocessorError  = 11
	CauseOverflow          = 12
)

const (
	srIsolateCache = 1 << 16
	srBEV          = 1 << 22
)

// pendingLoad is the one-entry record implementing the load delay slot.
type pendingLoad struct {
	target uint32
	value  uint32
	valid  bool
}

// CPU holds all R3000A-visible state: the two register banks, HI/LO,
// Cop0's SR/Cause/EPC, and the branch/load delay shadow state.
type CPU struct {
	pc     uint32
	nextPC uint32

	regs [32]uint32 // visible bank: operand reads for the current step
	bank [32]uint32 // output bank: this step's writes, becomes regs at step end

	hi uint32
	lo uint32

	sr    uint32
	cause uint32
	epc   uint32

	isBranching    bool
	isInDelaySlot  bool
	pending        pendingLoad

	Bus      Bus
	Debugger debugger.Debugger
}

// New returns a CPU wired to bus and (optionally) a debugger, reset to
// the BIOS entry point.
func New(bus Bus, dbg debugger.Debugger) *CPU {
	c := &CPU{Bus: bus, Debugger: dbg}
	c.Reset()
	return c
}

// Reset restores power-on state: pc at the KSEG1 BIOS entry, all
// registers zero, no pending load, no delay-slot shadow state.
func (c *CPU) Reset() {
	c.pc = 0xBFC0_0000
	c.nextPC = c.pc + 4
	c.regs = [32]uint32{}
	c.bank = [32]uint32{}
	c.hi = 0
	c.lo = 0
	c.sr = 0
	c.cause = 0
	c.epc = 0
	c.isBranching = false
	c.isInDelaySlot = false
	c.pending = pendingLoad{}
}

// PC returns the address of the instruction about to execute.
func (c *CPU) PC() uint32 { return c.pc }

// Registers returns a copy of the visible register bank.
func (c *CPU) Registers() [32]uint32 { return c.regs }

// View snapshots CPU state for the debugger contract.
func (c *CPU) View() debugger.CPUView {
	return debugger.CPUView{
		PC:    c.pc,
		Regs:  c.regs,
		HI:    c.hi,
		LO:    c.lo,
		SR:    c.sr,
		Cause: c.cause,
		EPC:   c.epc,
	}
}

// reg reads a general-purpose register from the visible bank: the
// value finalized by the end of the *previous* step.
func (c *CPU) reg(i uint32) uint32 { return c.regs[i] }

// setReg writes a general-purpose register into the output bank,
// visible starting next step. Writes to R0 are dropped.
func (c *CPU) setReg(i uint32, v uint32) {
	if i == 0 {
		return
	}
	c.bank[i] = v
}

// bankReg reads the in-progress output bank. LWL/LWR merge against this
// directly, bypassing the load-delay rule.
func (c *CPU) bankReg(i uint32) uint32 { return c.bank[i] }

// Step executes exactly one instruction, per the core's cooperative,
// single-threaded contract: fetch, decode, execute, with the two
// pipeline-delay shadows advanced in a fixed order.
func (c *CPU) Step() {
	c.isInDelaySlot = c.isBranching
	c.isBranching = false

	currentPC := c.pc

	if c.Debugger != nil {
		c.Debugger.OnPCChange(c.View())
	}

	if currentPC&3 != 0 {
		c.triggerException(CauseLoadAddressError, currentPC)
		return
	}

	instWord := c.Bus.Fetch32(currentPC)

	c.pc = c.nextPC
	c.nextPC += 4

	c.bank = c.regs
	if c.pending.valid {
		c.setReg(c.pending.target, c.pending.value)
		c.pending.valid = false
	}

	c.execute(opcode.Word(instWord), currentPC)

	c.regs = c.bank
}

// scheduleLoad records a pending load; it is applied at the start of
// the next step, before that instruction executes.
func (c *CPU) scheduleLoad(target uint32, value uint32) {
	c.pending = pendingLoad{target: target, value: value, valid: true}
}

// triggerException enters the guest exception handler per §4.6: it
// shifts the KU/IE stack, records the cause and return address, and
// redirects pc/nextPC with no delay slot of its own.
func (c *CPU) triggerException(cause uint32, currentPC uint32) {
	var handler uint32
	if c.sr&srBEV == 0 {
		handler = 0x8000_0080
	} else {
		handler = 0xBFC0_0180
	}

	mode := c.sr & 0x3F
	c.sr = (c.sr &^ 0x3F) | ((mode << 2) & 0x3F)

	c.cause = (c.cause &^ (0x1F << 2)) | ((cause & 0x1F) << 2)
	c.cause &^= 1 << 31

	if c.isInDelaySlot {
		c.epc = currentPC - 4
		c.cause |= 1 << 31
	} else {
		c.epc = currentPC
	}

	c.pc = handler
	c.nextPC = handler + 4
}
