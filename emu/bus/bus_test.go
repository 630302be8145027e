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

package bus

import (
	"testing"

	"github.com/rcornwell/psx/emu/debugger"
	"github.com/rcornwell/psx/emu/memory"
)

type fakeGPU struct {
	gp0, gp1 []uint32
	status   uint32
}

func (g *fakeGPU) SetGP0(word uint32) { g.gp0 = append(g.gp0, word) }
func (g *fakeGPU) SetGP1(word uint32) { g.gp1 = append(g.gp1, word) }
func (g *fakeGPU) Status() uint32     { return g.status }

type fakeDMA struct {
	lastLoadOffset           uint32
	lastStoreOffset, lastVal uint32
}

func (d *fakeDMA) Load(offset uint32) uint32 {
	d.lastLoadOffset = offset
	return 0xABCD_EF01
}

func (d *fakeDMA) Store(offset uint32, value uint32) {
	d.lastStoreOffset = offset
	d.lastVal = value
}

func newTestBus(t *testing.T) (*Bus, *memory.RAM, *fakeGPU, *fakeDMA) {
	t.Helper()
	ram := memory.NewRAM()
	image := make([]byte, memory.BIOSSize)
	bios, err := memory.NewBIOS(image)
	if err != nil {
		t.Fatalf("NewBIOS: %v", err)
	}
	gpu := &fakeGPU{}
	dma := &fakeDMA{}
	return New(bios, ram, gpu, dma), ram, gpu, dma
}

func TestRAMStoreLoadRoundTrip(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	view := debugger.CPUView{}

	b.Store32(view, 0x0000_1000, 0xDEAD_BEEF)
	if got := b.Load32(view, 0x0000_1000); got != 0xDEAD_BEEF {
		t.Fatalf("load32 = %#x, want 0xDEADBEEF", got)
	}
}

func TestKSEG0AndKSEG1AliasSamePhysicalRAM(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	view := debugger.CPUView{}

	b.Store32(view, 0x0000_2000, 0x1234_5678)
	if got := b.Load32(view, 0x8000_2000); got != 0x1234_5678 {
		t.Fatalf("KSEG0 alias = %#x, want 0x12345678", got)
	}
	if got := b.Load32(view, 0xA000_2000); got != 0x1234_5678 {
		t.Fatalf("KSEG1 alias = %#x, want 0x12345678", got)
	}
}

func TestBIOSStoreIsSilentNoOp(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	view := debugger.CPUView{}

	before := b.Load32(view, 0xBFC0_0000)
	b.Store32(view, 0xBFC0_0000, 0xFFFF_FFFF)
	after := b.Load32(view, 0xBFC0_0000)
	if before != after {
		t.Fatalf("bios value changed after store: %#x -> %#x", before, after)
	}
}

func TestExpansion1ReadsAllOnes(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	view := debugger.CPUView{}
	if got := b.Load8(view, 0x1F00_0000); got != 0xFF {
		t.Fatalf("expansion1 load8 = %#x, want 0xFF", got)
	}
}

func TestIgnoredRangesReadZeroAndIgnoreWrites(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	view := debugger.CPUView{}

	b.Store32(view, 0x1F80_1070, 0xFFFF_FFFF) // IRQ_CONTROL
	if got := b.Load32(view, 0x1F80_1070); got != 0 {
		t.Fatalf("irq control load = %#x, want 0", got)
	}
}

func TestGPURegisterRouting(t *testing.T) {
	b, _, gpu, _ := newTestBus(t)
	view := debugger.CPUView{}

	b.Store32(view, 0x1F81_0000, 0x2800_0000)
	if len(gpu.gp0) != 1 || gpu.gp0[0] != 0x2800_0000 {
		t.Fatalf("gp0 not routed: %v", gpu.gp0)
	}

	b.Store32(view, 0x1F81_0004, 0x0000_0001)
	if len(gpu.gp1) != 1 || gpu.gp1[0] != 0x0000_0001 {
		t.Fatalf("gp1 not routed: %v", gpu.gp1)
	}

	gpu.status = 0x1C00_0000
	if got := b.Load32(view, 0x1F81_0004); got != gpu.status {
		t.Fatalf("status load = %#x, want %#x", got, gpu.status)
	}
}

func TestGPUStatusPlaceholderWhenUnattached(t *testing.T) {
	ram := memory.NewRAM()
	image := make([]byte, memory.BIOSSize)
	bios, _ := memory.NewBIOS(image)
	b := New(bios, ram, nil, &fakeDMA{})
	view := debugger.CPUView{}

	if got := b.Load32(view, 0x1F81_0004); got != 1<<28 {
		t.Fatalf("status placeholder = %#x, want bit 28 set", got)
	}
}

func TestDMARegisterRouting(t *testing.T) {
	b, _, _, dma := newTestBus(t)
	view := debugger.CPUView{}

	b.Store32(view, 0x1F80_1080+0x20, 0x1111_1111)
	if dma.lastStoreOffset != 0x20 || dma.lastVal != 0x1111_1111 {
		t.Fatalf("dma store offset = %#x value = %#x", dma.lastStoreOffset, dma.lastVal)
	}

	if got := b.Load32(view, 0x1F80_1080+0x20); got != 0xABCD_EF01 {
		t.Fatalf("dma load = %#x, want 0xABCDEF01", got)
	}
	if dma.lastLoadOffset != 0x20 {
		t.Fatalf("dma load offset = %#x, want 0x20", dma.lastLoadOffset)
	}
}

func TestUnhandledAddressPanics(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	view := debugger.CPUView{}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unhandled address")
		}
	}()
	b.Load32(view, 0x2000_0000)
}

func TestMemoryAccessNotifiesDebugger(t *testing.T) {
	b, _, _, _ := newTestBus(t)
	bp := debugger.NewBreakpointList()
	b.Debugger = bp
	bp.AddWriteWatch(0x0000_3000)

	b.Store32(debugger.CPUView{}, 0x0000_3000, 0x1)
	if !bp.Hit || bp.HitAddr != 0x0000_3000 {
		t.Fatalf("write watch did not fire: hit=%v addr=%#x", bp.Hit, bp.HitAddr)
	}
}
