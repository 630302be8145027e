/*
   Bus interconnect: virtual-to-physical translation and device routing.

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

// Package bus routes every CPU and DMA memory access through the
// physical address map, following the dispatch-by-range style used to route a
// start-I/O request to the subchannel and device it names, with every
// unroutable address a fatal programming error rather than a silent
// no-op.
package bus

import (
	"fmt"

	"github.com/rcornwell/psx/emu/addr"
	"github.com/rcornwell/psx/emu/debugger"
	"github.com/rcornwell/psx/util/debug"
)

// BIOS is the read-only ROM backend.
type BIOS interface {
	Read8(offset uint32) uint8
	Read16(offset uint32) uint16
	Read32(offset uint32) uint32
}

// RAM is the read/write main-memory backend.
type RAM interface {
	Read8(offset uint32) uint8
	Read16(offset uint32) uint16
	Read32(offset uint32) uint32
	Write8(offset uint32, value uint8)
	Write16(offset uint32, value uint16)
	Write32(offset uint32, value uint32)
}

// GPU is the front end's register surface as seen from the bus.
type GPU interface {
	SetGP0(word uint32)
	SetGP1(word uint32)
	Status() uint32
}

// DMA is the controller's register surface as seen from the bus.
type DMA interface {
	Load(offset uint32) uint32
	Store(offset uint32, value uint32)
}

// Bus is the Interconnect: it uniquely owns the BIOS, RAM, GPU, and DMA
// peers and dispatches every CPU-issued load/store to the one that
// claims the translated physical address.
type Bus struct {
	BIOS BIOS
	RAM  RAM
	GPU  GPU
	DMA  DMA

	Debugger debugger.Debugger
}

// New returns a Bus wired to its peers. GPU and Debugger may be nil.
func New(bios BIOS, ram RAM, gpu GPU, dma DMA) *Bus {
	return &Bus{BIOS: bios, RAM: ram, GPU: gpu, DMA: dma}
}

// Fetch32 reads an instruction word with no debugger notification; the
// core notifies on PC change itself (§4.6 step 3), not on fetch.
func (b *Bus) Fetch32(vaddr uint32) uint32 {
	return b.load32(vaddr)
}

// Load8/Load16/Load32 read a guest-visible value and notify the
// debugger of the access.
func (b *Bus) Load8(view debugger.CPUView, vaddr uint32) uint8 {
	v := b.load8(vaddr)
	b.notifyRead(view, vaddr)
	return v
}

func (b *Bus) Load16(view debugger.CPUView, vaddr uint32) uint16 {
	v := b.load16(vaddr)
	b.notifyRead(view, vaddr)
	return v
}

func (b *Bus) Load32(view debugger.CPUView, vaddr uint32) uint32 {
	v := b.load32(vaddr)
	b.notifyRead(view, vaddr)
	return v
}

// Store8/Store16/Store32 write a guest-visible value and notify the
// debugger of the access.
func (b *Bus) Store8(view debugger.CPUView, vaddr uint32, value uint8) {
	b.store8(vaddr, value)
	b.notifyWrite(view, vaddr)
}

func (b *Bus) Store16(view debugger.CPUView, vaddr uint32, value uint16) {
	b.store16(vaddr, value)
	b.notifyWrite(view, vaddr)
}

func (b *Bus) Store32(view debugger.CPUView, vaddr uint32, value uint32) {
	b.store32(vaddr, value)
	b.notifyWrite(view, vaddr)
}

func (b *Bus) notifyRead(view debugger.CPUView, vaddr uint32) {
	if b.Debugger != nil {
		b.Debugger.OnMemoryRead(view, vaddr)
	}
}

func (b *Bus) notifyWrite(view debugger.CPUView, vaddr uint32) {
	if b.Debugger != nil {
		b.Debugger.OnMemoryWrite(view, vaddr)
	}
}

func (b *Bus) load8(vaddr uint32) uint8 {
	paddr := addr.Phys(vaddr)

	if off, ok := addr.RAM.Contains(paddr); ok {
		return b.RAM.Read8(off)
	}
	if off, ok := addr.BIOS.Contains(paddr); ok {
		return b.BIOS.Read8(off)
	}
	if _, ok := addr.Expansion1.Contains(paddr); ok {
		return 0xFF
	}
	if _, ok := ignoredRanges(paddr); ok {
		return 0
	}
	panic(fmt.Sprintf("bus: unhandled address %#x (load8)", paddr))
}

func (b *Bus) load16(vaddr uint32) uint16 {
	paddr := addr.Phys(vaddr)

	if off, ok := addr.RAM.Contains(paddr); ok {
		return b.RAM.Read16(off)
	}
	if off, ok := addr.BIOS.Contains(paddr); ok {
		return b.BIOS.Read16(off)
	}
	if _, ok := addr.Expansion1.Contains(paddr); ok {
		return 0xFFFF
	}
	if _, ok := ignoredRanges(paddr); ok {
		return 0
	}
	panic(fmt.Sprintf("bus: unhandled address %#x (load16)", paddr))
}

func (b *Bus) load32(vaddr uint32) uint32 {
	paddr := addr.Phys(vaddr)

	if off, ok := addr.RAM.Contains(paddr); ok {
		return b.RAM.Read32(off)
	}
	if off, ok := addr.BIOS.Contains(paddr); ok {
		return b.BIOS.Read32(off)
	}
	if off, ok := addr.DMA.Contains(paddr); ok {
		v := b.DMA.Load(off)
		debug.Tracef("dma", "read offset %#x -> %#08x", off, v)
		return v
	}
	if off, ok := addr.GPU.Contains(paddr); ok {
		v := b.loadGPU(off)
		debug.Tracef("gpu", "read offset %#x -> %#08x", off, v)
		return v
	}
	if _, ok := addr.Expansion1.Contains(paddr); ok {
		return 0xFFFF_FFFF
	}
	if _, ok := ignoredRanges(paddr); ok {
		return 0
	}
	panic(fmt.Sprintf("bus: unhandled address %#x (load32)", paddr))
}

func (b *Bus) loadGPU(offset uint32) uint32 {
	switch offset {
	case 0:
		return 0
	case 4:
		if b.GPU != nil {
			return b.GPU.Status()
		}
		return 1 << 28
	default:
		panic(fmt.Sprintf("bus: unhandled gpu register offset %#x", offset))
	}
}

func (b *Bus) store8(vaddr uint32, value uint8) {
	paddr := addr.Phys(vaddr)

	if off, ok := addr.RAM.Contains(paddr); ok {
		b.RAM.Write8(off, value)
		return
	}
	if _, ok := addr.BIOS.Contains(paddr); ok {
		return // read-only: silent no-op
	}
	if _, ok := ignoredRanges(paddr); ok {
		return
	}
	if _, ok := addr.Expansion1.Contains(paddr); ok {
		return
	}
	panic(fmt.Sprintf("bus: unhandled address %#x (store8)", paddr))
}

func (b *Bus) store16(vaddr uint32, value uint16) {
	paddr := addr.Phys(vaddr)

	if off, ok := addr.RAM.Contains(paddr); ok {
		b.RAM.Write16(off, value)
		return
	}
	if _, ok := addr.BIOS.Contains(paddr); ok {
		return
	}
	if _, ok := ignoredRanges(paddr); ok {
		return
	}
	if _, ok := addr.Expansion1.Contains(paddr); ok {
		return
	}
	panic(fmt.Sprintf("bus: unhandled address %#x (store16)", paddr))
}

func (b *Bus) store32(vaddr uint32, value uint32) {
	paddr := addr.Phys(vaddr)

	if off, ok := addr.RAM.Contains(paddr); ok {
		b.RAM.Write32(off, value)
		return
	}
	if _, ok := addr.BIOS.Contains(paddr); ok {
		return
	}
	if off, ok := addr.DMA.Contains(paddr); ok {
		debug.Tracef("dma", "write offset %#x <- %#08x", off, value)
		b.DMA.Store(off, value)
		return
	}
	if off, ok := addr.GPU.Contains(paddr); ok {
		debug.Tracef("gpu", "write offset %#x <- %#08x", off, value)
		b.storeGPU(off, value)
		return
	}
	if _, ok := ignoredRanges(paddr); ok {
		return
	}
	if _, ok := addr.Expansion1.Contains(paddr); ok {
		return
	}
	panic(fmt.Sprintf("bus: unhandled address %#x (store32)", paddr))
}

func (b *Bus) storeGPU(offset uint32, value uint32) {
	switch offset {
	case 0:
		if b.GPU != nil {
			b.GPU.SetGP0(value)
		}
	case 4:
		if b.GPU != nil {
			b.GPU.SetGP1(value)
		}
	default:
		panic(fmt.Sprintf("bus: unhandled gpu register offset %#x", offset))
	}
}

// ignoredRanges reports whether paddr falls in one of the MMIO windows
// this core models as present but functionally inert.
func ignoredRanges(paddr uint32) (uint32, bool) {
	for _, r := range []addr.Range{
		addr.MemControl, addr.IRQControl, addr.Timers,
		addr.SPU, addr.Expansion2, addr.CacheControl,
	} {
		if off, ok := r.Contains(paddr); ok {
			return off, true
		}
	}
	return 0, false
}
