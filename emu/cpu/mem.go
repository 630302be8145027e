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

package cpu

import "github.com/rcornwell/psx/emu/opcode"

// load implements LB/LBU/LH/LHU/LW: compute ea, align-check, read through
// the bus, and schedule a pending load rather than writing the register
// directly. Cache isolation makes loads return the all-ones sentinel
// without touching the bus.
func (c *CPU) load(w opcode.Word, currentPC uint32, width uint32, signed bool) {
	ea := c.reg(w.Rs()) + w.ImmSE()
	if ea%width != 0 {
		c.triggerException(CauseLoadAddressError, currentPC)
		return
	}

	if c.sr&srIsolateCache != 0 {
		c.scheduleLoad(w.Rt(), 0xFFFF_FFFF)
		return
	}

	view := c.View()
	var value uint32
	switch width {
	case 1:
		b := c.Bus.Load8(view, ea)
		if signed {
			value = uint32(int32(int8(b)))
		} else {
			value = uint32(b)
		}
	case 2:
		h := c.Bus.Load16(view, ea)
		if signed {
			value = uint32(int32(int16(h)))
		} else {
			value = uint32(h)
		}
	default:
		value = c.Bus.Load32(view, ea)
	}

	c.scheduleLoad(w.Rt(), value)
}

// store implements SB/SH/SW: compute ea, align-check, write through the
// bus. Cache isolation drops the write without touching the bus.
func (c *CPU) store(w opcode.Word, currentPC uint32, width uint32) {
	ea := c.reg(w.Rs()) + w.ImmSE()
	if ea%width != 0 {
		c.triggerException(CauseStoreAddressError, currentPC)
		return
	}

	if c.sr&srIsolateCache != 0 {
		return
	}

	view := c.View()
	value := c.reg(w.Rt())
	switch width {
	case 1:
		c.Bus.Store8(view, ea, uint8(value))
	case 2:
		c.Bus.Store16(view, ea, uint16(value))
	default:
		c.Bus.Store32(view, ea, value)
	}
}

// loadUnalignedLeft implements LWL: merge the low-order 1-4 bytes of the
// aligned word into the most-significant bytes of the current *output
// bank* value of rt, bypassing the load delay rule.
func (c *CPU) loadUnalignedLeft(w opcode.Word) {
	ea := c.reg(w.Rs()) + w.ImmSE()
	aligned := ea &^ 3
	word := c.Bus.Load32(c.View(), aligned)
	cur := c.bankReg(w.Rt())

	var v uint32
	switch ea & 3 {
	case 0:
		v = (cur & 0x00FF_FFFF) | (word << 24)
	case 1:
		v = (cur & 0x0000_FFFF) | (word << 16)
	case 2:
		v = (cur & 0x0000_00FF) | (word << 8)
	default:
		v = word
	}
	c.setReg(w.Rt(), v)
}

// loadUnalignedRight implements LWR: the symmetric least-significant
// merge, also bypassing the load delay rule.
func (c *CPU) loadUnalignedRight(w opcode.Word) {
	ea := c.reg(w.Rs()) + w.ImmSE()
	aligned := ea &^ 3
	word := c.Bus.Load32(c.View(), aligned)
	cur := c.bankReg(w.Rt())

	var v uint32
	switch ea & 3 {
	case 0:
		v = word
	case 1:
		v = (cur & 0xFF00_0000) | (word >> 8)
	case 2:
		v = (cur & 0xFFFF_0000) | (word >> 16)
	default:
		v = (cur & 0xFFFF_FF00) | (word >> 24)
	}
	c.setReg(w.Rt(), v)
}

// storeUnalignedLeft implements SWL: read-modify-write the aligned word
// with the most-significant 1-4 bytes of rt's value.
func (c *CPU) storeUnalignedLeft(w opcode.Word) {
	ea := c.reg(w.Rs()) + w.ImmSE()
	aligned := ea &^ 3
	value := c.reg(w.Rt())
	view := c.View()
	cur := c.Bus.Load32(view, aligned)

	var v uint32
	switch ea & 3 {
	case 0:
		v = (cur & 0xFFFF_FF00) | (value >> 24)
	case 1:
		v = (cur & 0xFFFF_0000) | (value >> 16)
	case 2:
		v = (cur & 0xFF00_0000) | (value >> 8)
	default:
		v = value
	}
	c.Bus.Store32(view, aligned, v)
}

// storeUnalignedRight implements SWR: the symmetric least-significant
// merge.
func (c *CPU) storeUnalignedRight(w opcode.Word) {
	ea := c.reg(w.Rs()) + w.ImmSE()
	aligned := ea &^ 3
	value := c.reg(w.Rt())
	view := c.View()
	cur := c.Bus.Load32(view, aligned)

	var v uint32
	switch ea & 3 {
	case 0:
		v = value
	case 1:
		v = (cur & 0x0000_00FF) | (value << 8)
	case 2:
		v = (cur & 0x0000_FFFF) | (value << 16)
	default:
		v = (cur & 0x00FF_FFFF) | (value << 24)
	}
	c.Bus.Store32(view, aligned, v)
}
