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

// Cop0 register indices modeled by MFC0/MTC0.
const (
	cop0SR    = 12
	cop0Cause = 13
	cop0EPC   = 14
)

// mfc0 implements MFC0: only SR/Cause/EPC are readable, and the result
// is delivered through the pending-load mechanism like any other load,
// so it too is subject to the load delay slot.
func (c *CPU) mfc0(w opcode.Word) {
	var value uint32
	switch w.Rd() {
	case cop0SR:
		value = c.sr
	case cop0Cause:
		value = c.cause
	case cop0EPC:
		value = c.epc
	default:
		return
	}
	c.scheduleLoad(w.Rt(), value)
}

// mtc0 implements MTC0: only SR (rd=12) is writable; every other
// register is silently ignored.
func (c *CPU) mtc0(w opcode.Word) {
	if w.Rd() != cop0SR {
		return
	}
	c.sr = c.reg(w.Rt())
}
