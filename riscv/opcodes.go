package riscv

// Op is a pre-baked 32-bit opcode constant with funct3/funct7 already
// merged in. Encoders OR-mask register and immediate fields into the
// fixed positions documented in the RV32I/RV64I/M specification;
// values below are bit-identical to it (conformance is checked by
// disassembling emitted bytes in refsim).
type Op uint32

// RV32I/RV64I base integer opcodes plus the M extension.
const (
	OpAdd   Op = 0x33
	OpAddi  Op = 0x13
	OpAddiw Op = 0x1b
	OpAddw  Op = 0x3b
	OpAnd   Op = 0x7033
	OpAndi  Op = 0x7013
	OpAuipc Op = 0x17
	OpBeq   Op = 0x63
	OpBge   Op = 0x5063
	OpBgeu  Op = 0x7063
	OpBlt   Op = 0x4063
	OpBltu  Op = 0x6063
	OpBne   Op = 0x1063
	OpDiv   Op = 0x2004033
	OpDivu  Op = 0x2005033
	OpDivuw Op = 0x200503b
	OpDivw  Op = 0x200403b
	OpJal   Op = 0x6f
	OpJalr  Op = 0x67
	OpLb    Op = 0x3
	OpLbu   Op = 0x4003
	OpLd    Op = 0x3003
	OpLh    Op = 0x1003
	OpLhu   Op = 0x5003
	OpLui   Op = 0x37
	OpLw    Op = 0x2003
	OpLwu   Op = 0x6003
	OpMul   Op = 0x2000033
	OpMulh  Op = 0x2001033
	OpMulhsu Op = 0x2002033
	OpMulhu Op = 0x2003033
	OpMulw  Op = 0x200003b
	OpOr    Op = 0x6033
	OpOri   Op = 0x6013
	OpRem   Op = 0x2006033
	OpRemu  Op = 0x2007033
	OpRemuw Op = 0x200703b
	OpRemw  Op = 0x200603b
	OpSb    Op = 0x23
	OpSd    Op = 0x3023
	OpSh    Op = 0x1023
	OpSll   Op = 0x1033
	OpSlli  Op = 0x1013
	OpSlliw Op = 0x101b
	OpSllw  Op = 0x103b
	OpSlt   Op = 0x2033
	OpSlti  Op = 0x2013
	OpSltiu Op = 0x3013
	OpSltu  Op = 0x3033
	OpSra   Op = 0x40005033
	OpSrai  Op = 0x40005013
	OpSraiw Op = 0x4000501b
	OpSraw  Op = 0x4000503b
	OpSrl   Op = 0x5033
	OpSrli  Op = 0x5013
	OpSrliw Op = 0x501b
	OpSrlw  Op = 0x503b
	OpSub   Op = 0x40000033
	OpSubw  Op = 0x4000003b
	OpSw    Op = 0x2023
	OpXor   Op = 0x4033
	OpXori  Op = 0x4013

	// Fence variants: seven admissible predecessor/successor combinations.
	OpFenceRwRw Op = 0x0330000f
	OpFenceRR   Op = 0x0220000f
	OpFenceWR   Op = 0x0120000f
	OpFenceRW   Op = 0x0210000f
	OpFenceWW   Op = 0x0110000f
	OpFenceRRw  Op = 0x0230000f
	OpFenceRwW  Op = 0x0310000f
)
