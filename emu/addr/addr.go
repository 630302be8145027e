/*
   Physical address map and region decode for the R3000A bus.

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

// Package addr holds the MIPS physical-address segmentation tables shared
// by the bus interconnect: the KSEG0/KSEG1 region mask and the named MMIO
// ranges each device on the bus claims.
package addr

// Range is a half-open [Base, Base+Length) window of physical address
// space claimed by one device.
type Range struct {
	Base   uint32
	Length uint32
}

// Contains reports whether addr falls in the range, returning the
// device-relative offset.
func (r Range) Contains(address uint32) (offset uint32, ok bool) {
	if address < r.Base || address >= r.Base+r.Length {
		return 0, false
	}
	return address - r.Base, true
}

// Named physical ranges from the PSX memory map.
var (
	RAM          = Range{Base: 0x0000_0000, Length: 2 * 1024 * 1024}
	Expansion1   = Range{Base: 0x1F00_0000, Length: 8 * 1024 * 1024}
	MemControl   = Range{Base: 0x1F80_1000, Length: 36}
	IRQControl   = Range{Base: 0x1F80_1070, Length: 8}
	DMA          = Range{Base: 0x1F80_1080, Length: 0x80}
	Timers       = Range{Base: 0x1F80_1100, Length: 0x30}
	SPU          = Range{Base: 0x1F80_1C00, Length: 0x280}
	Expansion2   = Range{Base: 0x1F80_2000, Length: 66}
	GPU          = Range{Base: 0x1F81_0000, Length: 8}
	BIOS         = Range{Base: 0x1FC0_0000, Length: 512 * 1024}
	CacheControl = Range{Base: 0xFFFE_0130, Length: 4}
)

// regionMask zeroes the top bits of KSEG0/KSEG1 virtual addresses so
// cached and uncached kernel windows alias the same physical memory.
var regionMask = [8]uint32{
	0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF, // KUSEG
	0x7FFF_FFFF, // KSEG0
	0x1FFF_FFFF, // KSEG1
	0xFFFF_FFFF, 0xFFFF_FFFF, // KSEG2
}

// Phys maps a virtual address to its physical address.
func Phys(virt uint32) uint32 {
	return virt & regionMask[virt>>29]
}
