package refsim

import "fmt"

// Instruction is a fully-decoded RISC-V instruction: mnemonic plus
// resolved operands. Decode is written independently of the riscv
// package's encoders so that round-trip tests (spec.md §8 property 1)
// are a genuine cross-check, not a tautology.
type Instruction struct {
	Mnemonic string
	Rd, Rs1, Rs2 int
	Imm      int64
}

const (
	opAluR   = 0x33
	opAluI   = 0x13
	opAluIW  = 0x1b
	opAluW   = 0x3b
	opLoad   = 0x03
	opStore  = 0x23
	opBranch = 0x63
	opLui    = 0x37
	opAuipc  = 0x17
	opJal    = 0x6f
	opJalr   = 0x67
)

func bits(w uint32, hi, lo uint) uint32 {
	return (w >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func signExtend(v uint32, bit uint) int64 {
	shift := 31 - bit
	return int64(int32(v<<shift)) >> shift
}

// Decode decodes one 32-bit little-endian-assembled instruction word.
func Decode(w uint32) (Instruction, error) {
	opcode := w & 0x7f
	rd := int(bits(w, 11, 7))
	funct3 := bits(w, 14, 12)
	rs1 := int(bits(w, 19, 15))
	rs2 := int(bits(w, 24, 20))
	funct7 := bits(w, 31, 25)

	switch opcode {
	case opAluI:
		imm := signExtend(bits(w, 31, 20), 11)
		switch funct3 {
		case 0x0:
			return Instruction{Mnemonic: "ADDI", Rd: rd, Rs1: rs1, Imm: imm}, nil
		case 0x7:
			return Instruction{Mnemonic: "ANDI", Rd: rd, Rs1: rs1, Imm: imm}, nil
		case 0x6:
			return Instruction{Mnemonic: "ORI", Rd: rd, Rs1: rs1, Imm: imm}, nil
		case 0x4:
			return Instruction{Mnemonic: "XORI", Rd: rd, Rs1: rs1, Imm: imm}, nil
		case 0x1:
			return Instruction{Mnemonic: "SLLI", Rd: rd, Rs1: rs1, Imm: int64(bits(w, 25, 20))}, nil
		case 0x5:
			shamt := int64(bits(w, 25, 20))
			if funct7>>5 == 1 {
				return Instruction{Mnemonic: "SRAI", Rd: rd, Rs1: rs1, Imm: shamt}, nil
			}
			return Instruction{Mnemonic: "SRLI", Rd: rd, Rs1: rs1, Imm: shamt}, nil
		case 0x2:
			return Instruction{Mnemonic: "SLTI", Rd: rd, Rs1: rs1, Imm: imm}, nil
		case 0x3:
			return Instruction{Mnemonic: "SLTIU", Rd: rd, Rs1: rs1, Imm: imm}, nil
		}
	case opAluIW:
		imm := signExtend(bits(w, 31, 20), 11)
		if funct3 == 0x0 {
			return Instruction{Mnemonic: "ADDIW", Rd: rd, Rs1: rs1, Imm: imm}, nil
		}
	case opAluR:
		switch {
		case funct7 == 0x00 && funct3 == 0x0:
			return Instruction{Mnemonic: "ADD", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x20 && funct3 == 0x0:
			return Instruction{Mnemonic: "SUB", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x01 && funct3 == 0x0:
			return Instruction{Mnemonic: "MUL", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x00 && funct3 == 0x7:
			return Instruction{Mnemonic: "AND", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x00 && funct3 == 0x6:
			return Instruction{Mnemonic: "OR", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x00 && funct3 == 0x1:
			return Instruction{Mnemonic: "SLL", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x00 && funct3 == 0x5:
			return Instruction{Mnemonic: "SRL", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x20 && funct3 == 0x5:
			return Instruction{Mnemonic: "SRA", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		}
	case opAluW:
		switch {
		case funct7 == 0x00 && funct3 == 0x0:
			return Instruction{Mnemonic: "ADDW", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case funct7 == 0x20 && funct3 == 0x0:
			return Instruction{Mnemonic: "SUBW", Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		}
	case opLui:
		return Instruction{Mnemonic: "LUI", Rd: rd, Imm: int64(int32(w & 0xfffff000))}, nil
	case opAuipc:
		return Instruction{Mnemonic: "AUIPC", Rd: rd, Imm: int64(int32(w & 0xfffff000))}, nil
	case opLoad:
		imm := signExtend(bits(w, 31, 20), 11)
		switch funct3 {
		case 0x2:
			return Instruction{Mnemonic: "LW", Rd: rd, Rs1: rs1, Imm: imm}, nil
		case 0x3:
			return Instruction{Mnemonic: "LD", Rd: rd, Rs1: rs1, Imm: imm}, nil
		}
	case opStore:
		immLo := bits(w, 11, 7)
		immHi := bits(w, 31, 25)
		imm := signExtend(immHi<<5|immLo, 11)
		switch funct3 {
		case 0x2:
			return Instruction{Mnemonic: "SW", Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case 0x3:
			return Instruction{Mnemonic: "SD", Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		}
	case opBranch:
		b12 := bits(w, 31, 31)
		b11 := bits(w, 7, 7)
		b10_5 := bits(w, 30, 25)
		b4_1 := bits(w, 11, 8)
		raw := b12<<12 | b11<<11 | b10_5<<5 | b4_1<<1
		imm := signExtend(raw, 12)
		names := map[uint32]string{0: "BEQ", 1: "BNE", 4: "BLT", 5: "BGE", 6: "BLTU", 7: "BGEU"}
		if name, ok := names[funct3]; ok {
			return Instruction{Mnemonic: name, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		}
	case opJal:
		b20 := bits(w, 31, 31)
		b19_12 := bits(w, 19, 12)
		b11 := bits(w, 20, 20)
		b10_1 := bits(w, 30, 21)
		raw := b20<<20 | b19_12<<12 | b11<<11 | b10_1<<1
		return Instruction{Mnemonic: "JAL", Rd: rd, Imm: signExtend(raw, 20)}, nil
	case opJalr:
		imm := signExtend(bits(w, 31, 20), 11)
		return Instruction{Mnemonic: "JALR", Rd: rd, Rs1: rs1, Imm: imm}, nil
	}
	return Instruction{}, fmt.Errorf("refsim: cannot decode word 0x%08x", w)
}
