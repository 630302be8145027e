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

// mult implements the signed 64-bit product MULT: HI:LO = rs * rt.
func (c *CPU) mult(w opcode.Word) {
	a := int64(int32(c.reg(w.Rs())))
	b := int64(int32(c.reg(w.Rt())))
	product := uint64(a * b)
	c.hi = uint32(product >> 32)
	c.lo = uint32(product)
}

// multu implements the unsigned 64-bit product MULTU.
func (c *CPU) multu(w opcode.Word) {
	product := uint64(c.reg(w.Rs())) * uint64(c.reg(w.Rt()))
	c.hi = uint32(product >> 32)
	c.lo = uint32(product)
}

// div implements signed DIV, including the hardware's two degenerate
// cases: division by zero and INT32_MIN / -1 overflow. Neither case
// traps; both produce a defined HI/LO per the real R3000A.
func (c *CPU) div(w opcode.Word) {
	num := int32(c.reg(w.Rs()))
	den := int32(c.reg(w.Rt()))

	switch {
	case den == 0:
		c.hi = uint32(num)
		if num >= 0 {
			c.lo = 0xFFFF_FFFF
		} else {
			c.lo = 1
		}
	case num == int32(-0x8000_0000) && den == -1:
		c.hi = 0
		c.lo = 0x8000_0000
	default:
		c.hi = uint32(num % den)
		c.lo = uint32(num / den)
	}
}

// divu implements unsigned DIVU, including the division-by-zero case.
func (c *CPU) divu(w opcode.Word) {
	num := c.reg(w.Rs())
	den := c.reg(w.Rt())

	if den == 0 {
		c.hi = num
		c.lo = 0xFFFF_FFFF
		return
	}
	c.hi = num % den
	c.lo = num / den
}
