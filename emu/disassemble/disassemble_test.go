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

package disassemble

import "testing"

func encodeI(op, rs, rt, imm uint32) uint32 {
	return (op << 26) | (rs << 21) | (rt << 16) | (imm & 0xFFFF)
}

func encodeR(funct, rs, rt, rd, shamt uint32) uint32 {
	return (rs << 21) | (rt << 16) | (rd << 11) | (shamt << 6) | funct
}

func TestInstructionFormatsImmediateShape(t *testing.T) {
	got := Instruction(0, encodeI(0x09, 5, 1, 0x10)) // ADDIU $1, $5, 0x10
	want := "ADDIU   $1, $5, 0x10"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInstructionFormatsBranchWithResolvedTarget(t *testing.T) {
	got := Instruction(0x1000, encodeI(0x04, 1, 2, 2)) // BEQ $1, $2, +2
	want := "BEQ     $1, $2, 0x100c"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInstructionFormatsLoadStoreShape(t *testing.T) {
	got := Instruction(0, encodeI(0x23, 2, 1, 4)) // LW $1, 4($2)
	want := "LW      $1, 0x4($2)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInstructionFormatsJumpTarget(t *testing.T) {
	got := Instruction(0x8000_0000, (0x02<<26)|0x100) // J 0x100
	want := "J       0x80000400"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInstructionFormatsNoOperandShape(t *testing.T) {
	got := Instruction(0, encodeR(0x0C, 0, 0, 0, 0)) // SYSCALL
	want := "SYSCALL "
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
