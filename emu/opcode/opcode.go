/*
   CPU opcode tags for decode and disassembly.

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

// Package opcode normalizes every R3000A instruction word into a single
// Tag value, following the same approach used to normalize S/370
// RR/RX/RS op bytes into named Op constants for the executor and the
// disassembler to share.
package opcode

// Word is a raw 32-bit instruction as fetched from memory.
type Word uint32

// Op returns the primary opcode field, bits [31:26].
func (w Word) Op() uint32 { return uint32(w>>26) & 0x3F }

// Rs returns bits [25:21].
func (w Word) Rs() uint32 { return uint32(w>>21) & 0x1F }

// Rt returns bits [20:16].
func (w Word) Rt() uint32 { return uint32(w>>16) & 0x1F }

// Rd returns bits [15:11].
func (w Word) Rd() uint32 { return uint32(w>>11) & 0x1F }

// Shamt returns bits [10:6].
func (w Word) Shamt() uint32 { return uint32(w>>6) & 0x1F }

// Funct returns bits [5:0].
func (w Word) Funct() uint32 { return uint32(w) & 0x3F }

// Imm returns the zero-extended 16-bit immediate field.
func (w Word) Imm() uint32 { return uint32(w) & 0xFFFF }

// ImmSE returns the sign-extended 16-bit immediate field.
func (w Word) ImmSE() uint32 { return uint32(int32(int16(w))) }

// Target returns the 26-bit jump target field.
func (w Word) Target() uint32 { return uint32(w) & 0x03FF_FFFF }

// Tag is a normalized opcode identity: exactly one per decode priority
// rule, independent of which instruction field the encoding packs it
// into.
type Tag uint8

const (
	ILLEGAL Tag = iota

	// SPECIAL (op=0x00, dispatched on funct).
	SLL
	SRL
	SRA
	SLLV
	SRLV
	SRAV
	JR
	JALR
	SYSCALL
	BREAK
	MFHI
	MTHI
	MFLO
	MTLO
	MULT
	MULTU
	DIV
	DIVU
	ADD
	ADDU
	SUB
	SUBU
	AND
	OR
	XOR
	NOR
	SLT
	SLTU

	// BCOND (op=0x01, dispatched on rt).
	BLTZ
	BGEZ
	BLTZAL
	BGEZAL

	// Primary opcodes.
	J
	JAL
	BEQ
	BNE
	BLEZ
	BGTZ
	ADDI
	ADDIU
	SLTI
	SLTIU
	ANDI
	ORI
	XORI
	LUI
	LB
	LH
	LWL
	LW
	LBU
	LHU
	LWR
	SB
	SH
	SWL
	SW
	SWR
	LWC0
	LWC1
	LWC2
	LWC3
	SWC0
	SWC1
	SWC2
	SWC3

	// Cop0 (op=0x10, dispatched on rs).
	MFC0
	MTC0
	RFE

	// Absent coprocessors (op=0x11..0x13).
	COP1
	COP2
	COP3
)

// primaryTag maps a primary op field (for ops outside SPECIAL/BCOND/COPz)
// directly to its tag.
var primaryTag = map[uint32]Tag{
	0x02: J, 0x03: JAL, 0x04: BEQ, 0x05: BNE, 0x06: BLEZ, 0x07: BGTZ,
	0x08: ADDI, 0x09: ADDIU, 0x0A: SLTI, 0x0B: SLTIU,
	0x0C: ANDI, 0x0D: ORI, 0x0E: XORI, 0x0F: LUI,
	0x20: LB, 0x21: LH, 0x22: LWL, 0x23: LW,
	0x24: LBU, 0x25: LHU, 0x26: LWR,
	0x28: SB, 0x29: SH, 0x2A: SWL, 0x2B: SW, 0x2E: SWR,
	0x30: LWC0, 0x31: LWC1, 0x32: LWC2, 0x33: LWC3,
	0x38: SWC0, 0x39: SWC1, 0x3A: SWC2, 0x3B: SWC3,
}

// functTag maps a SPECIAL (op=0) funct field to its tag.
var functTag = map[uint32]Tag{
	0x00: SLL, 0x02: SRL, 0x03: SRA,
	0x04: SLLV, 0x06: SRLV, 0x07: SRAV,
	0x08: JR, 0x09: JALR,
	0x0C: SYSCALL, 0x0D: BREAK,
	0x10: MFHI, 0x11: MTHI, 0x12: MFLO, 0x13: MTLO,
	0x18: MULT, 0x19: MULTU, 0x1A: DIV, 0x1B: DIVU,
	0x20: ADD, 0x21: ADDU, 0x22: SUB, 0x23: SUBU,
	0x24: AND, 0x25: OR, 0x26: XOR, 0x27: NOR,
	0x2A: SLT, 0x2B: SLTU,
}

// bcondTag maps a BCOND (op=0x01) rt field to its tag.
var bcondTag = map[uint32]Tag{
	0x00: BLTZ, 0x01: BGEZ, 0x10: BLTZAL, 0x11: BGEZAL,
}

// cop0Tag maps a Cop0 (op=0x10) rs field to its tag. Only MFC0/MTC0/RFE
// are modeled; any other rs is reserved and decodes as ILLEGAL.
var cop0Tag = map[uint32]Tag{
	0x00: MFC0, 0x04: MTC0, 0x10: RFE,
}

// Decode normalizes an instruction word into a single Tag, applying the
// priority rule: COPz class first (bits [31:28]==0b0100), else a
// non-zero primary op, else the SPECIAL funct field, with BCOND further
// split on rt.
func Decode(w Word) Tag {
	op := w.Op()

	if op&0x3C == 0x10 { // bits [31:28] == 0b0100: op 0x10..0x13
		switch op {
		case 0x10:
			if tag, ok := cop0Tag[w.Rs()]; ok {
				return tag
			}
			return ILLEGAL
		case 0x11:
			return COP1
		case 0x12:
			return COP2
		case 0x13:
			return COP3
		}
	}

	if op != 0 {
		if op == 0x01 {
			if tag, ok := bcondTag[w.Rt()]; ok {
				return tag
			}
			return ILLEGAL
		}
		if tag, ok := primaryTag[op]; ok {
			return tag
		}
		return ILLEGAL
	}

	if tag, ok := functTag[w.Funct()]; ok {
		return tag
	}
	return ILLEGAL
}

// Mnemonic names a tag for disassembly and trace logging.
var Mnemonic = map[Tag]string{
	ILLEGAL: "ILLEGAL",
	SLL: "SLL", SRL: "SRL", SRA: "SRA", SLLV: "SLLV", SRLV: "SRLV", SRAV: "SRAV",
	JR: "JR", JALR: "JALR", SYSCALL: "SYSCALL", BREAK: "BREAK",
	MFHI: "MFHI", MTHI: "MTHI", MFLO: "MFLO", MTLO: "MTLO",
	MULT: "MULT", MULTU: "MULTU", DIV: "DIV", DIVU: "DIVU",
	ADD: "ADD", ADDU: "ADDU", SUB: "SUB", SUBU: "SUBU",
	AND: "AND", OR: "OR", XOR: "XOR", NOR: "NOR", SLT: "SLT", SLTU: "SLTU",
	BLTZ: "BLTZ", BGEZ: "BGEZ", BLTZAL: "BLTZAL", BGEZAL: "BGEZAL",
	J: "J", JAL: "JAL", BEQ: "BEQ", BNE: "BNE", BLEZ: "BLEZ", BGTZ: "BGTZ",
	ADDI: "ADDI", ADDIU: "ADDIU", SLTI: "SLTI", SLTIU: "SLTIU",
	ANDI: "ANDI", ORI: "ORI", XORI: "XORI", LUI: "LUI",
	LB: "LB", LH: "LH", LWL: "LWL", LW: "LW", LBU: "LBU", LHU: "LHU", LWR: "LWR",
	SB: "SB", SH: "SH", SWL: "SWL", SW: "SW", SWR: "SWR",
	LWC0: "LWC0", LWC1: "LWC1", LWC2: "LWC2", LWC3: "LWC3",
	SWC0: "SWC0", SWC1: "SWC1", SWC2: "SWC2", SWC3: "SWC3",
	MFC0: "MFC0", MTC0: "MTC0", RFE: "RFE",
	COP1: "COP1", COP2: "COP2", COP3: "COP3",
}

// String implements fmt.Stringer for trace logging.
func (t Tag) String() string {
	if name, ok := Mnemonic[t]; ok {
		return name
	}
	return "UNKNOWN"
}
