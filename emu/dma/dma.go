/*
   DMA controller: seven channels, block and linked-list transfer modes.

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

// Package dma implements the PSX DMA controller: seven fixed-purpose
// channels moving words between RAM and the GPU, following the
// S/370 channel layer's register-decode-and-packed-control-word
// style (channel.go) adapted from IBM channel command words to PSX
// DMA channel control/interrupt registers.
package dma

import "fmt"

// Port identifies one of the seven fixed-purpose DMA channels.
type Port uint8

const (
	MDecIn Port = iota
	MDecOut
	Gpu
	CdRom
	Spu
	Pio
	Otc
	numPorts
)

// Direction is a channel's transfer direction.
type Direction uint8

const (
	ToRam Direction = iota
	FromRam
)

// Step is the per-word address increment direction.
type Step uint8

const (
	Inc Step = iota
	Dec
)

// Sync is a channel's synchronization mode.
type Sync uint8

const (
	Manual Sync = iota
	Request
	LinkedList
)

const (
	controlMask = 0x1F_FFFC // word-aligned offset mask within RAM, used per hop
	otcMask     = 0x1F_FFFF // mask applied to OTC back-pointer values
	otcEnd      = 0x00FF_FFFF
)

// RAM is the word-addressable memory DMA moves data to and from. Offsets
// are relative to the start of RAM, already range-checked by the bus.
type RAM interface {
	Read32(offset uint32) uint32
	Write32(offset uint32, value uint32)
}

// GPUSink is the only defined FromRam destination: each transferred word
// is forwarded to the GPU's render command stream.
type GPUSink interface {
	SetGP0(word uint32)
}

// Channel is one DMA channel's register-visible state.
type Channel struct {
	Enable      bool
	Trigger     bool
	Direction   Direction
	Step        Step
	Sync        Sync
	Chop        bool
	ChopDMALog2 uint8
	ChopCPULog2 uint8
	Unknown     uint8
	Base        uint32
	BlockSize   uint16
	BlockCount  uint16
}

// Active reports whether the channel is eligible to run: enabled, and,
// for Manual sync, also triggered.
func (c *Channel) Active() bool {
	if !c.Enable {
		return false
	}
	if c.Sync == Manual {
		return c.Trigger
	}
	return true
}

// control packs the channel's control register.
func (c *Channel) control() uint32 {
	var v uint32
	if c.Direction == FromRam {
		v |= 1 << 0
	}
	if c.Step == Dec {
		v |= 1 << 1
	}
	if c.Chop {
		v |= 1 << 8
	}
	v |= uint32(c.Sync&0x3) << 9
	v |= uint32(c.ChopDMALog2&0x7) << 16
	v |= uint32(c.ChopCPULog2&0x7) << 20
	if c.Enable {
		v |= 1 << 24
	}
	if c.Trigger {
		v |= 1 << 28
	}
	v |= uint32(c.Unknown&0x3) << 29
	return v
}

// setControl unpacks a channel control register write.
func (c *Channel) setControl(v uint32) {
	if v&1 != 0 {
		c.Direction = FromRam
	} else {
		c.Direction = ToRam
	}
	if (v>>1)&1 != 0 {
		c.Step = Dec
	} else {
		c.Step = Inc
	}
	c.Chop = (v>>8)&1 != 0
	c.Sync = Sync((v >> 9) & 0x3)
	c.ChopDMALog2 = uint8((v >> 16) & 0x7)
	c.ChopCPULog2 = uint8((v >> 20) & 0x7)
	c.Enable = (v>>24)&1 != 0
	c.Trigger = (v>>28)&1 != 0
	c.Unknown = uint8((v >> 29) & 0x3)
}

func (c *Channel) blockControl() uint32 {
	return uint32(c.BlockSize) | uint32(c.BlockCount)<<16
}

func (c *Channel) setBlockControl(v uint32) {
	c.BlockSize = uint16(v)
	c.BlockCount = uint16(v >> 16)
}

// Control is the DMA controller's shared interrupt/control bookkeeping.
type Control struct {
	MasterIRQEnable bool
	ChannelEnable   uint8 // one bit per channel
	ChannelFlags    uint8 // one bit per channel, write-one-to-clear
	ForceIRQ        bool
	Dummy           uint8 // low 6 bits, read/write, no behavior
	ControlWord     uint32
}

// irqRegister packs the DMA interrupt register.
func (ctl *Control) irqRegister() uint32 {
	var v uint32
	v |= uint32(ctl.Dummy) & 0x3F
	if ctl.ForceIRQ {
		v |= 1 << 15
	}
	v |= uint32(ctl.ChannelEnable) << 16
	if ctl.MasterIRQEnable {
		v |= 1 << 23
	}
	v |= uint32(ctl.ChannelFlags) << 24
	if ctl.masterIRQ() {
		v |= 1 << 31
	}
	return v
}

func (ctl *Control) masterIRQ() bool {
	if ctl.ForceIRQ {
		return true
	}
	return ctl.MasterIRQEnable && (ctl.ChannelEnable&ctl.ChannelFlags) != 0
}

// setIRQRegister unpacks a write to the DMA interrupt register. The
// flags byte is write-one-to-clear: only bits set in v are acknowledged.
func (ctl *Control) setIRQRegister(v uint32) {
	ctl.Dummy = uint8(v & 0x3F)
	ctl.ForceIRQ = (v>>15)&1 != 0
	ctl.ChannelEnable = uint8((v >> 16) & 0x7F)
	ctl.MasterIRQEnable = (v>>23)&1 != 0
	ctl.ChannelFlags &^= uint8((v >> 24) & 0x7F)
}

// Controller is the seven-channel DMA engine.
type Controller struct {
	Channel [numPorts]Channel
	Control Control

	RAM RAM
	GPU GPUSink
}

// New returns a Controller with the reset-value control word and all
// channels disabled.
func New(ram RAM, gpu GPUSink) *Controller {
	d := &Controller{RAM: ram, GPU: gpu}
	d.Control.ControlWord = 0x0765_4321
	return d
}

// Load reads a DMA register at bus offset O (relative to addr.DMA.Base).
func (d *Controller) Load(offset uint32) uint32 {
	major := (offset >> 4) & 7
	minor := offset & 0xF

	if major <= 6 {
		ch := &d.Channel[major]
		switch minor {
		case 0x0:
			return ch.Base
		case 0x4:
			return ch.blockControl()
		case 0x8:
			return ch.control()
		default:
			panic(fmt.Sprintf("dma: unhandled channel register read, offset %#x", offset))
		}
	}

	switch minor {
	case 0x0:
		return d.Control.ControlWord
	case 0x4:
		return d.Control.irqRegister()
	default:
		panic(fmt.Sprintf("dma: unhandled common register read, offset %#x", offset))
	}
}

// Store writes a DMA register at bus offset O and runs any channel that
// the write leaves active.
func (d *Controller) Store(offset uint32, value uint32) {
	major := (offset >> 4) & 7
	minor := offset & 0xF

	if major <= 6 {
		ch := &d.Channel[major]
		switch minor {
		case 0x0:
			ch.Base = value & 0xFF_FFFF
		case 0x4:
			ch.setBlockControl(value)
		case 0x8:
			ch.setControl(value)
		default:
			panic(fmt.Sprintf("dma: unhandled channel register write, offset %#x", offset))
		}
		if ch.Active() {
			d.run(Port(major))
		}
		return
	}

	switch minor {
	case 0x0:
		d.Control.ControlWord = value
	case 0x4:
		d.Control.setIRQRegister(value)
	default:
		panic(fmt.Sprintf("dma: unhandled common register write, offset %#x", offset))
	}
}

// run executes one channel's transfer to completion, synchronously.
func (d *Controller) run(port Port) {
	ch := &d.Channel[port]
	switch ch.Sync {
	case LinkedList:
		d.linkedListCopy(port, ch)
	default:
		d.blockCopy(port, ch)
	}
	ch.Enable = false
	ch.Trigger = false
}

func (d *Controller) blockCopy(port Port, ch *Channel) {
	words := uint32(ch.BlockSize)
	if ch.Sync == Request {
		words *= uint32(ch.BlockCount)
	}

	addr := ch.Base
	for i := uint32(0); i < words; i++ {
		cur := addr & controlMask

		switch ch.Direction {
		case FromRam:
			word := d.RAM.Read32(cur)
			d.pushFromRam(port, word)
		case ToRam:
			var word uint32
			if port == Otc {
				if i == words-1 {
					word = otcEnd
				} else {
					word = (addr - 4) & otcMask
				}
				d.RAM.Write32(cur, word)
			}
		}

		if ch.Step == Inc {
			addr += 4
		} else {
			addr -= 4
		}
	}
	ch.Base = addr & 0xFF_FFFF
}

func (d *Controller) pushFromRam(port Port, word uint32) {
	if port == Gpu && d.GPU != nil {
		d.GPU.SetGP0(word)
	}
}

// linkedListCopy walks a descending chain of RAM-resident packets,
// forwarding each packet's payload words to the GPU. Only the Gpu port
// with direction FromRam is defined.
func (d *Controller) linkedListCopy(port Port, ch *Channel) {
	if port != Gpu || ch.Direction != FromRam {
		return
	}

	addr := ch.Base & controlMask
	for {
		header := d.RAM.Read32(addr)
		count := header >> 24

		for i := uint32(0); i < count; i++ {
			addr = (addr + 4) & controlMask
			word := d.RAM.Read32(addr)
			if d.GPU != nil {
				d.GPU.SetGP0(word)
			}
		}

		next := header & otcEnd
		if next == otcEnd {
			break
		}
		addr = next & controlMask
	}
}
