/*
   BIOS - Read-only BIOS ROM backend.

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

import "fmt"

// BIOSSize is the fixed size of the PSX BIOS ROM image.
const BIOSSize = 512 * 1024

// BIOS is a read-only byte buffer loaded verbatim from a host-supplied
// image. Stores to it are silent no-ops (handled by the bus, not here).
type BIOS struct {
	data [BIOSSize]byte
}

// NewBIOS builds a BIOS backend from a raw image. The image must be
// exactly BIOSSize bytes, matching the real ROM's capacity.
func NewBIOS(image []byte) (*BIOS, error) {
	if len(image) != BIOSSize {
		return nil, fmt.Errorf("memory: bios image is %d bytes, want %d", len(image), BIOSSize)
	}
	b := &BIOS{}
	copy(b.data[:], image)
	return b, nil
}

// Read8 returns the byte at offset.
func (b *BIOS) Read8(offset uint32) uint8 {
	return b.data[offset]
}

// Read16 returns the little-endian halfword at offset.
func (b *BIOS) Read16(offset uint32) uint16 {
	return uint16(b.data[offset]) | uint16(b.data[offset+1])<<8
}

// Read32 returns the little-endian word at offset.
func (b *BIOS) Read32(offset uint32) uint32 {
	return uint32(b.data[offset]) |
		uint32(b.data[offset+1])<<8 |
		uint32(b.data[offset+2])<<16 |
		uint32(b.data[offset+3])<<24
}
