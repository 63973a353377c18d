package riscv

// Reg identifies one of the 32 RISC-V general-purpose registers.
type Reg uint32

// The 32 general-purpose registers, in RISC-V calling-convention order.
const (
	Zero Reg = iota // hard-wired zero
	RA              // return address
	SP              // stack pointer
	GP              // global pointer
	TP              // thread pointer
	T0              // temporaries
	T1
	T2
	S0 // saved / translator area-base
	S1 // saved registers
	A0 // function arguments / return values
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	T3
	T4
	T5
	T6
)

// NumRegs is the size of the RISC-V general-purpose register file.
const NumRegs = 32

// RegNames gives the ABI name of every register, indexed by Reg.
var RegNames = [NumRegs]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// String returns the ABI name of r, or "x?" if out of range.
func (r Reg) String() string {
	if int(r) < len(RegNames) {
		return RegNames[r]
	}
	return "x?"
}

// ParseReg resolves an ABI register name (e.g. "a0", "t3", "sp") to its
// Reg value. ok is false for an unrecognised name.
func ParseReg(name string) (r Reg, ok bool) {
	for i, n := range RegNames {
		if n == name {
			return Reg(i), true
		}
	}
	return 0, false
}

// RegAllocOrder is the fixed, static register allocation sequence:
// callee-saved (s1-s11) first, then caller-saved temporaries (t0-t6,
// except TMP2), then argument registers (a0-a7). S0 is reserved as the
// translator's area-base and never appears here; Zero is hard-wired and
// never allocated.
var RegAllocOrder = []Reg{
	S1, S2, S3, S4, S5, S6, S7, S8, S9, S10, S11,
	T0, T1, T2, T4, T5, T6,
	A0, A1, A2, A3, A4, A5, A6, A7,
}

// TMP2 is the scratch register reserved for large load/store offset
// materialization (see OutLdst) and for the softmmu TLB-lookup helper
// under the 'L' constraint. It is never handed out by RegAllocOrder.
const TMP2 = T3

// AllRegsMask is a bitmask with every one of the 32 general-purpose
// registers set.
const AllRegsMask uint32 = 0xFFFFFFFF

// softmmuReservedMask clears TMP2 and the first five argument registers
// from a register mask, modeling the 'L' constraint's reservation for
// the TLB lookup helper (see ParseConstraint and the DESIGN.md note on
// softmmu register reservation).
func softmmuReservedMask(mask uint32) uint32 {
	mask &^= 1 << TMP2
	mask &^= 1 << A0
	mask &^= 1 << A1
	mask &^= 1 << A2
	mask &^= 1 << A3
	mask &^= 1 << A4
	return mask
}
