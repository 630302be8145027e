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

package dma

import "testing"

type fakeRAM struct {
	data [2 * 1024 * 1024]byte
}

func (r *fakeRAM) Read32(offset uint32) uint32 {
	return uint32(r.data[offset]) | uint32(r.data[offset+1])<<8 |
		uint32(r.data[offset+2])<<16 | uint32(r.data[offset+3])<<24
}

func (r *fakeRAM) Write32(offset uint32, value uint32) {
	r.data[offset] = byte(value)
	r.data[offset+1] = byte(value >> 8)
	r.data[offset+2] = byte(value >> 16)
	r.data[offset+3] = byte(value >> 24)
}

type fakeGPU struct {
	words []uint32
}

func (g *fakeGPU) SetGP0(word uint32) {
	g.words = append(g.words, word)
}

func TestOTCClearScenario(t *testing.T) {
	ram := &fakeRAM{}
	d := New(ram, &fakeGPU{})

	ch := &d.Channel[Otc]
	ch.Base = 0x0000_1000
	ch.BlockSize = 8
	ch.Sync = Manual
	ch.Step = Dec
	ch.Direction = ToRam
	ch.Enable = true
	ch.Trigger = true

	d.run(Otc)

	want := []struct {
		addr uint32
		val  uint32
	}{
		{0x1000, 0x0000_0FFC},
		{0x0FFC, 0x0000_0FF8},
		{0x0FF8, 0x0000_0FF4},
		{0x0FF4, 0x0000_0FF0},
		{0x0FF0, 0x0000_0FEC},
		{0x0FEC, 0x0000_0FE8},
		{0x0FE8, 0x0000_0FE4},
		{0x0FE4, 0x00FF_FFFF},
	}
	for _, w := range want {
		if got := ram.Read32(w.addr); got != w.val {
			t.Fatalf("RAM[%#x] = %#x, want %#x", w.addr, got, w.val)
		}
	}
	if ch.Enable || ch.Trigger {
		t.Fatalf("channel must be disabled after completion: enable=%v trigger=%v", ch.Enable, ch.Trigger)
	}
}

func TestStoreControlRegisterStartsActiveChannel(t *testing.T) {
	ram := &fakeRAM{}
	gpu := &fakeGPU{}
	d := New(ram, gpu)

	ram.Write32(0, 0xAAAA_AAAA)
	ram.Write32(4, 0xBBBB_BBBB)

	d.Store(0x20+0x0, 0x0000_0000) // channel 2 (Gpu) base = 0
	d.Store(0x20+0x4, 0x0000_0002) // block_size=2, block_count=0
	// direction=FromRam(bit0=1), step=Inc, sync=Manual(0), enable(bit24), trigger(bit28)
	d.Store(0x20+0x8, 1|1<<24|1<<28)

	if len(gpu.words) != 2 {
		t.Fatalf("gpu received %d words, want 2", len(gpu.words))
	}
	if gpu.words[0] != 0xAAAA_AAAA || gpu.words[1] != 0xBBBB_BBBB {
		t.Fatalf("gpu words = %#x, want [0xAAAAAAAA 0xBBBBBBBB]", gpu.words)
	}
	if d.Channel[Gpu].Enable {
		t.Fatalf("channel must be disabled after a completed manual transfer")
	}
}

func TestChannelControlRegisterRoundTrips(t *testing.T) {
	ch := &Channel{
		Direction:   FromRam,
		Step:        Dec,
		Sync:        Request,
		Chop:        true,
		ChopDMALog2: 5,
		ChopCPULog2: 3,
		Enable:      true,
		Trigger:     true,
		Unknown:     2,
	}
	packed := ch.control()

	var round Channel
	round.setControl(packed)

	if round != *ch {
		t.Fatalf("control register round trip mismatch: got %+v, want %+v", round, *ch)
	}
}

func TestInterruptRegisterMasterIRQ(t *testing.T) {
	var ctl Control

	ctl.MasterIRQEnable = true
	ctl.ChannelEnable = 0x04
	ctl.ChannelFlags = 0x04
	if !ctl.masterIRQ() {
		t.Fatalf("master irq must assert when enabled bit matches a set flag bit")
	}

	ctl.ChannelFlags = 0x02
	if ctl.masterIRQ() {
		t.Fatalf("master irq must not assert when no enabled bit has its flag set")
	}

	ctl.ForceIRQ = true
	if !ctl.masterIRQ() {
		t.Fatalf("force irq must assert master irq unconditionally")
	}
}

func TestInterruptRegisterFlagsWriteOneToClear(t *testing.T) {
	var ctl Control
	ctl.ChannelFlags = 0b0110_0110

	// Acknowledge bits 1 and 2 only.
	write := uint32(0b0000_0110) << 24
	ctl.setIRQRegister(write)

	if ctl.ChannelFlags != 0b0110_0000 {
		t.Fatalf("channel flags after ack = %#b, want 0b01100000", ctl.ChannelFlags)
	}
}

func TestLinkedListCopyFollowsChainToTerminator(t *testing.T) {
	ram := &fakeRAM{}
	gpu := &fakeGPU{}
	d := New(ram, gpu)

	// Node at 0: header says 2 payload words follow, next node at 0x10.
	ram.Write32(0x00, 2<<24|0x10)
	ram.Write32(0x04, 0x1111_1111)
	ram.Write32(0x08, 0x2222_2222)

	// Node at 0x10: header says 1 payload word, terminator.
	ram.Write32(0x10, 1<<24|otcEnd)
	ram.Write32(0x14, 0x3333_3333)

	ch := &d.Channel[Gpu]
	ch.Base = 0
	ch.Direction = FromRam
	ch.Sync = LinkedList
	ch.Enable = true

	d.run(Gpu)

	want := []uint32{0x1111_1111, 0x2222_2222, 0x3333_3333}
	if len(gpu.words) != len(want) {
		t.Fatalf("gpu received %d words, want %d", len(gpu.words), len(want))
	}
	for i, w := range want {
		if gpu.words[i] != w {
			t.Fatalf("word %d = %#x, want %#x", i, gpu.words[i], w)
		}
	}
}

func TestLinkedListCopySingleNodeTerminatesImmediately(t *testing.T) {
	ram := &fakeRAM{}
	gpu := &fakeGPU{}
	d := New(ram, gpu)

	// A single node with no payload words, immediately terminated: the
	// low 24 bits of the header equal the end-of-list marker, not
	// otcMask's 21-bit truncation of it.
	ram.Write32(0x00, 0<<24|otcEnd)

	ch := &d.Channel[Gpu]
	ch.Base = 0
	ch.Direction = FromRam
	ch.Sync = LinkedList
	ch.Enable = true

	d.run(Gpu)

	if len(gpu.words) != 0 {
		t.Fatalf("gpu received %d words, want 0", len(gpu.words))
	}
}

func TestBaseRegisterRoundTripsThroughTwentyFourBitMask(t *testing.T) {
	ram := &fakeRAM{}
	d := New(ram, &fakeGPU{})

	d.Store(0x10, 0xFF12_3456) // channel 1 (MDecOut) base register
	want := uint32(0xFF12_3456) & 0xFF_FFFF
	if got := d.Load(0x10); got != want {
		t.Fatalf("base load = %#x, want %#x", got, want)
	}
}
