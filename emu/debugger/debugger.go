/*
   Debugger collaborator contract and a concrete breakpoint list.

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

// Package debugger defines the observer contract the core notifies on PC
// change and memory access, following an interface-as-contract style
// interface-as-contract style (emu/device/device.go): a small method set
// the core depends on, implemented elsewhere.
package debugger

// CPUView is a read-only snapshot of core state handed to debugger
// callbacks. It must never be mutated by the callback.
type CPUView struct {
	PC   uint32
	Regs [32]uint32
	HI   uint32
	LO   uint32
	SR   uint32
	Cause uint32
	EPC  uint32
}

// Debugger is the external observer collaborator from the host-driver
// contract: six list mutators plus three synchronous hooks invoked
// inside Step(). Hooks must not mutate CPU state and must not add or
// remove breakpoints/watchpoints from within a callback.
type Debugger interface {
	AddBreakpoint(addr uint32)
	DeleteBreakpoint(addr uint32)
	AddReadWatch(addr uint32)
	DeleteReadWatch(addr uint32)
	AddWriteWatch(addr uint32)
	DeleteWriteWatch(addr uint32)

	OnPCChange(view CPUView)
	OnMemoryRead(view CPUView, addr uint32)
	OnMemoryWrite(view CPUView, addr uint32)
}

// BreakpointList is a small, direct implementation of Debugger suitable
// for the console front end: it scans short address lists on each hook,
// matching the "cheap, short list" requirement from the concurrency
// model (the hook is called once per Step()).
type BreakpointList struct {
	Breakpoints []uint32
	ReadWatches []uint32
	WriteWatches []uint32

	// Hit records whether the most recent Step() landed on a breakpoint
	// or watchpoint; the console polls it after each Step() call.
	Hit bool
	HitAddr uint32
}

// NewBreakpointList returns an empty breakpoint/watchpoint list.
func NewBreakpointList() *BreakpointList {
	return &BreakpointList{}
}

func (b *BreakpointList) AddBreakpoint(addr uint32) {
	b.Breakpoints = appendUnique(b.Breakpoints, addr)
}

func (b *BreakpointList) DeleteBreakpoint(addr uint32) {
	b.Breakpoints = removeValue(b.Breakpoints, addr)
}

func (b *BreakpointList) AddReadWatch(addr uint32) {
	b.ReadWatches = appendUnique(b.ReadWatches, addr)
}

func (b *BreakpointList) DeleteReadWatch(addr uint32) {
	b.ReadWatches = removeValue(b.ReadWatches, addr)
}

func (b *BreakpointList) AddWriteWatch(addr uint32) {
	b.WriteWatches = appendUnique(b.WriteWatches, addr)
}

func (b *BreakpointList) DeleteWriteWatch(addr uint32) {
	b.WriteWatches = removeValue(b.WriteWatches, addr)
}

func (b *BreakpointList) OnPCChange(view CPUView) {
	if contains(b.Breakpoints, view.PC) {
		b.Hit = true
		b.HitAddr = view.PC
	}
}

func (b *BreakpointList) OnMemoryRead(view CPUView, addr uint32) {
	if contains(b.ReadWatches, addr) {
		b.Hit = true
		b.HitAddr = addr
	}
}

func (b *BreakpointList) OnMemoryWrite(view CPUView, addr uint32) {
	if contains(b.WriteWatches, addr) {
		b.Hit = true
		b.HitAddr = addr
	}
}

// ClearHit resets the hit latch; core.Machine calls it before every
// Step and on Reset.
func (b *BreakpointList) ClearHit() {
	b.Hit = false
}

func contains(list []uint32, v uint32) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func appendUnique(list []uint32, v uint32) []uint32 {
	if contains(list, v) {
		return list
	}
	return append(list, v)
}

func removeValue(list []uint32, v uint32) []uint32 {
	out := list[:0]
	for _, e := range list {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}
