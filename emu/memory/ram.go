/*
   RAM - 2MiB main memory backend.

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

package memory

// RAMSize is the PSX's 2MiB of main memory.
const RAMSize = 2 * 1024 * 1024

// ramFill is the power-on garbage pattern real PSX RAM reads as.
const ramFill = 0xCA

// RAM is the console's 2MiB main memory. Offsets are preconditions: a
// caller handing RAM an out-of-range offset is a programming error in
// the bus, not a recoverable fault (the bus is the one that range-checks
// against addr.RAM before calling in).
type RAM struct {
	data [RAMSize]byte
}

// NewRAM returns RAM initialised to the hardware's power-on pattern.
func NewRAM() *RAM {
	r := &RAM{}
	r.Reset()
	return r
}

// Reset fills RAM with the power-on garbage pattern.
func (r *RAM) Reset() {
	for i := range r.data {
		r.data[i] = ramFill
	}
}

// Read8 returns the byte at offset.
func (r *RAM) Read8(offset uint32) uint8 {
	return r.data[offset]
}

// Read16 returns the little-endian halfword at offset.
func (r *RAM) Read16(offset uint32) uint16 {
	return uint16(r.data[offset]) | uint16(r.data[offset+1])<<8
}

// Read32 returns the little-endian word at offset.
func (r *RAM) Read32(offset uint32) uint32 {
	return uint32(r.data[offset]) |
		uint32(r.data[offset+1])<<8 |
		uint32(r.data[offset+2])<<16 |
		uint32(r.data[offset+3])<<24
}

// Write8 stores a byte at offset.
func (r *RAM) Write8(offset uint32, value uint8) {
	r.data[offset] = value
}

// Write16 stores a little-endian halfword at offset.
func (r *RAM) Write16(offset uint32, value uint16) {
	r.data[offset] = byte(value)
	r.data[offset+1] = byte(value >> 8)
}

// Write32 stores a little-endian word at offset.
func (r *RAM) Write32(offset uint32, value uint32) {
	r.data[offset] = byte(value)
	r.data[offset+1] = byte(value >> 8)
	r.data[offset+2] = byte(value >> 16)
	r.data[offset+3] = byte(value >> 24)
}
