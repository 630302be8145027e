/*
   R3000A disassembler.

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

// Package disassemble renders an R3000A instruction word as a mnemonic
// operand string, following the table-driven style used to render
// an S/370 instruction from its opMap table: one small table mapping a
// normalized opcode identity to the operand shape it packs, keyed here
// on emu/opcode.Tag rather than a raw opcode byte.
package disassemble

import (
	"fmt"

	"github.com/rcornwell/psx/emu/opcode"
)

// shape names the operand layout a tag formats with.
type shape int

const (
	shapeRd shape = iota // rd, rs, rt
	shapeSh              // rd, rt, shamt
	shapeJR              // rs
	shapeJALR            // rd, rs
	shapeBranch          // rs, rt, offset
	shapeBranchZ         // rs, offset
	shapeJump            // target
	shapeImm             // rt, rs, imm
	shapeLUI             // rt, imm
	shapeLoadStore       // rt, imm(rs)
	shapeHiLo            // rd
	shapeHiLoSet         // rs
	shapeMulDiv          // rs, rt
	shapeCop0            // rt, rd
	shapeNone            // no operands
)

var tagShape = map[opcode.Tag]shape{
	opcode.ADD: shapeRd, opcode.ADDU: shapeRd, opcode.SUB: shapeRd, opcode.SUBU: shapeRd,
	opcode.AND: shapeRd, opcode.OR: shapeRd, opcode.XOR: shapeRd, opcode.NOR: shapeRd,
	opcode.SLT: shapeRd, opcode.SLTU: shapeRd,
	opcode.SLLV: shapeRd, opcode.SRLV: shapeRd, opcode.SRAV: shapeRd,

	opcode.SLL: shapeSh, opcode.SRL: shapeSh, opcode.SRA: shapeSh,

	opcode.JR: shapeJR,
	opcode.JALR: shapeJALR,

	opcode.BEQ: shapeBranch, opcode.BNE: shapeBranch,
	opcode.BLEZ: shapeBranchZ, opcode.BGTZ: shapeBranchZ,
	opcode.BLTZ: shapeBranchZ, opcode.BGEZ: shapeBranchZ,
	opcode.BLTZAL: shapeBranchZ, opcode.BGEZAL: shapeBranchZ,

	opcode.J: shapeJump, opcode.JAL: shapeJump,

	opcode.ADDI: shapeImm, opcode.ADDIU: shapeImm,
	opcode.SLTI: shapeImm, opcode.SLTIU: shapeImm,
	opcode.ANDI: shapeImm, opcode.ORI: shapeImm, opcode.XORI: shapeImm,

	opcode.LUI: shapeLUI,

	opcode.LB: shapeLoadStore, opcode.LBU: shapeLoadStore,
	opcode.LH: shapeLoadStore, opcode.LHU: shapeLoadStore,
	opcode.LW: shapeLoadStore, opcode.LWL: shapeLoadStore, opcode.LWR: shapeLoadStore,
	opcode.SB: shapeLoadStore, opcode.SH: shapeLoadStore,
	opcode.SW: shapeLoadStore, opcode.SWL: shapeLoadStore, opcode.SWR: shapeLoadStore,

	opcode.MFHI: shapeHiLo, opcode.MFLO: shapeHiLo,
	opcode.MTHI: shapeHiLoSet, opcode.MTLO: shapeHiLoSet,
	opcode.MULT: shapeMulDiv, opcode.MULTU: shapeMulDiv,
	opcode.DIV: shapeMulDiv, opcode.DIVU: shapeMulDiv,

	opcode.MFC0: shapeCop0, opcode.MTC0: shapeCop0,

	opcode.SYSCALL: shapeNone, opcode.BREAK: shapeNone, opcode.RFE: shapeNone,
	opcode.COP1: shapeNone, opcode.COP2: shapeNone, opcode.COP3: shapeNone,
}

// regName renders a GPR index the way MIPS disassembly traditionally
// does: $0..$31, not the o32 ABI mnemonics, matching this core's ABI-
// agnostic register file.
func regName(i uint32) string {
	return fmt.Sprintf("$%d", i)
}

// Instruction disassembles one 32-bit instruction word, fetched from
// pc, returning its mnemonic and operand string. Word length is always
// 4: the R3000A has no variable-length encoding.
func Instruction(pc uint32, raw uint32) string {
	w := opcode.Word(raw)
	tag := opcode.Decode(w)
	mnemonic := tag.String()

	sh, ok := tagShape[tag]
	if !ok {
		return fmt.Sprintf("%-8s", mnemonic)
	}

	switch sh {
	case shapeRd:
		return fmt.Sprintf("%-8s%s, %s, %s", mnemonic, regName(w.Rd()), regName(w.Rs()), regName(w.Rt()))
	case shapeSh:
		return fmt.Sprintf("%-8s%s, %s, %d", mnemonic, regName(w.Rd()), regName(w.Rt()), w.Shamt())
	case shapeJR:
		return fmt.Sprintf("%-8s%s", mnemonic, regName(w.Rs()))
	case shapeJALR:
		return fmt.Sprintf("%-8s%s, %s", mnemonic, regName(w.Rd()), regName(w.Rs()))
	case shapeBranch:
		target := pc + 4 + (w.ImmSE() << 2)
		return fmt.Sprintf("%-8s%s, %s, %#x", mnemonic, regName(w.Rs()), regName(w.Rt()), target)
	case shapeBranchZ:
		target := pc + 4 + (w.ImmSE() << 2)
		return fmt.Sprintf("%-8s%s, %#x", mnemonic, regName(w.Rs()), target)
	case shapeJump:
		target := (pc & 0xF000_0000) | (w.Target() << 2)
		return fmt.Sprintf("%-8s%#x", mnemonic, target)
	case shapeImm:
		return fmt.Sprintf("%-8s%s, %s, %#x", mnemonic, regName(w.Rt()), regName(w.Rs()), w.Imm())
	case shapeLUI:
		return fmt.Sprintf("%-8s%s, %#x", mnemonic, regName(w.Rt()), w.Imm())
	case shapeLoadStore:
		return fmt.Sprintf("%-8s%s, %#x(%s)", mnemonic, regName(w.Rt()), w.ImmSE(), regName(w.Rs()))
	case shapeHiLo:
		return fmt.Sprintf("%-8s%s", mnemonic, regName(w.Rd()))
	case shapeHiLoSet:
		return fmt.Sprintf("%-8s%s", mnemonic, regName(w.Rs()))
	case shapeMulDiv:
		return fmt.Sprintf("%-8s%s, %s", mnemonic, regName(w.Rs()), regName(w.Rt()))
	case shapeCop0:
		return fmt.Sprintf("%-8s%s, $%d", mnemonic, regName(w.Rt()), w.Rd())
	default:
		return fmt.Sprintf("%-8s", mnemonic)
	}
}
