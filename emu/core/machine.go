/*
   Machine wiring: composes the bus, CPU, DMA controller and GPU front
   end into the single-threaded cooperative core described by the
   concurrency model.

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

// Package core assembles the R3000A CPU, the bus interconnect, the DMA
// controller and the GPU front end into one cooperative Machine, the
// same way an S/370 CPU and its channel peer are assembled into a
// single runnable unit. Here, though, the PSX core has no goroutine of
// its own: Step() is called synchronously by the console loop, per the
// single-threaded cooperative concurrency model.
package core

import (
	"fmt"

	"github.com/rcornwell/psx/emu/bus"
	"github.com/rcornwell/psx/emu/cpu"
	"github.com/rcornwell/psx/emu/debugger"
	"github.com/rcornwell/psx/emu/dma"
	"github.com/rcornwell/psx/emu/gpu"
	"github.com/rcornwell/psx/emu/memory"
)

// Machine owns every device on the bus plus the CPU core that drives
// it, per the shared-resource policy: the Interconnect uniquely owns
// BIOS/RAM/GPU/DMA, and the CPU uniquely owns its own register state.
type Machine struct {
	CPU   *cpu.CPU
	Bus   *bus.Bus
	DMA   *dma.Controller
	GPU   *gpu.GPU
	RAM   *memory.RAM
	BIOS  *memory.BIOS

	Debugger *debugger.BreakpointList
}

// New assembles a Machine from a BIOS image and a render sink. sink may
// be nil, in which case the GPU accumulates command state but forwards
// nothing.
func New(biosImage []byte, sink gpu.Sink) (*Machine, error) {
	bios, err := memory.NewBIOS(biosImage)
	if err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	ram := memory.NewRAM()
	g := gpu.New(sink)
	d := dma.New(ram, g)
	b := bus.New(bios, ram, g, d)
	dbg := debugger.NewBreakpointList()
	b.Debugger = dbg
	c := cpu.New(b, dbg)

	return &Machine{
		CPU:      c,
		Bus:      b,
		DMA:      d,
		GPU:      g,
		RAM:      ram,
		BIOS:     bios,
		Debugger: dbg,
	}, nil
}

// Reset restores power-on state across the CPU, RAM, GPU, and clears
// any latched breakpoint hit. The BIOS image itself is never reset.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.RAM.Reset()
	m.GPU.Reset()
	m.Debugger.ClearHit()
}

// Step executes exactly one CPU instruction and reports whether a
// breakpoint or watchpoint fired during it.
func (m *Machine) Step() (hit bool, hitAddr uint32) {
	m.Debugger.ClearHit()
	m.CPU.Step()
	return m.Debugger.Hit, m.Debugger.HitAddr
}

// Run steps the machine until a breakpoint/watchpoint fires or max
// steps have executed, whichever comes first. It is the console's
// "go"/"continue" primitive; max <= 0 means unbounded.
func (m *Machine) Run(max int) (steps int, hit bool, hitAddr uint32) {
	for max <= 0 || steps < max {
		hit, hitAddr = m.Step()
		steps++
		if hit {
			return steps, hit, hitAddr
		}
	}
	return steps, false, 0
}
