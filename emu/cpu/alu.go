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

// addOverflows reports whether a+b overflows signed 32-bit arithmetic:
// the operands share a sign and the result's sign differs from it.
func addOverflows(a, b int32) bool {
	res := a + b
	return (a^b) >= 0 && (a^res) < 0
}

// subOverflows reports whether a-b overflows signed 32-bit arithmetic.
func subOverflows(a, b int32) bool {
	res := a - b
	return (a^b) < 0 && (a^res) < 0
}

// addTrapping implements ADD/ADDI: detect overflow before writing the
// destination; on overflow, raise OVERFLOW and leave the destination
// unchanged.
func (c *CPU) addTrapping(dest uint32, a, b int32, currentPC uint32) {
	if addOverflows(a, b) {
		c.triggerException(CauseOverflow, currentPC)
		return
	}
	c.setReg(dest, uint32(a+b))
}

// subTrapping implements SUB: same contract as addTrapping.
func (c *CPU) subTrapping(dest uint32, a, b int32, currentPC uint32) {
	if subOverflows(a, b) {
		c.triggerException(CauseOverflow, currentPC)
		return
	}
	c.setReg(dest, uint32(a-b))
}
