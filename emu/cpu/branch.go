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

// branchIf sets next_pc to the branch target when taken, leaving pc
// untouched so the delay slot instruction already latched into pc still
// executes. next_pc, not pc, carries the redirection.
func (c *CPU) branchIf(w opcode.Word, taken bool) {
	if !taken {
		return
	}
	c.isBranching = true
	c.nextPC += w.ImmSE() << 2
}

// jumpTo redirects next_pc to an absolute target, for J/JAL/JR/JALR.
func (c *CPU) jumpTo(target uint32) {
	c.isBranching = true
	c.nextPC = target
}
