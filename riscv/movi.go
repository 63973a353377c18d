package riscv

import "math/bits"

// ctz64 returns the number of trailing zero bits of v, treating v as a
// 64-bit pattern. Callers only invoke it on non-zero values.
func ctz64(v uint64) int {
	return bits.TrailingZeros64(v)
}

// isPow2 reports whether v is a non-zero power of two.
func isPow2(v int64) bool {
	return v != 0 && v&(v-1) == 0
}

// signed12 returns the low 12 bits of v sign-extended, i.e. the value
// ADDI rd, zero, imm would materialize for that raw bit pattern.
func signed12(v int64) int64 {
	x := v & 0xfff
	if x&0x800 != 0 {
		x |= ^int64(0xfff)
	}
	return x
}

// fitsSignExt32 reports whether v, when sign-extended from its low 32
// bits, reproduces v exactly -- i.e. v is representable as a
// sign-extended 32-bit pattern.
func fitsSignExt32(v int64) bool {
	return int64(int32(v)) == v
}

// Movi materializes the 64-bit (or 32-bit, if !e.Is64) constant value
// into rd using the shortest correct sequence, cascading the five
// cases of spec.md §4.A.3 in fixed order. pcRelOK reports whether a
// pc-relative ±2GiB materialization via AUIPC+ADDI is legal for this
// target value at the current emit cursor (case 4); callers that don't
// support CALL-style relocations may pass a function that always
// returns false.
func (e *Encoder) Movi(rd Reg, value int64, pcRelOK func(v int64, cursor uint32) bool) {
	// Case 1: fits a signed 12-bit field.
	if FitsS12(value) {
		e.OutOpImm(OpAddi, rd, Zero, int32(value))
		return
	}

	// Case 2: non-zero power of two.
	if isPow2(value) {
		e.OutOpImm(OpAddi, rd, Zero, 1)
		shift := ctz64(uint64(value))
		e.OutOpImm(OpSlli, rd, rd, int32(shift))
		return
	}

	// Case 3: RV64 target, and value is NOT representable as a
	// sign-extended 32-bit pattern: split into hi<<shift + lo and
	// recurse on hi.
	if e.Is64 && !fitsSignExt32(value) {
		lo := signed12(value)
		hi := (value - lo)
		shift := 12 + ctz64(uint64(hi)>>12)
		hi = hi >> uint(shift)
		e.Movi(rd, hi, pcRelOK)
		e.OutOpImm(OpSlli, rd, rd, int32(shift))
		if lo != 0 {
			e.OutOpImm(OpAddi, rd, rd, int32(lo))
		}
		return
	}

	// Case 4: RV64 target, and value is within pc-relative ±2GiB of the
	// emit cursor: AUIPC + ADDI, then record a CALL-style relocation.
	if e.Is64 && pcRelOK != nil && pcRelOK(value, e.Sink.Cursor()) {
		site := e.emitU(OpAuipc, rd, 0)
		e.emitI(OpAddi, rd, rd, 0)
		e.recordRelocAbs(RelocCall, site, uint64(value))
		return
	}

	// Case 5: general LUI + ADDI/ADDIW fallback.
	hi20, lo12 := splitHiLo(value)
	if hi20 != 0 {
		e.emitU(OpLui, rd, uint32(hi20))
		if lo12 != 0 {
			if e.Is64 {
				e.emitI(OpAddiw, rd, rd, uint32(lo12))
			} else {
				e.emitI(OpAddi, rd, rd, uint32(lo12))
			}
		}
		return
	}
	// hi20 == 0: only the low 12 bits matter, added to zero.
	if e.Is64 {
		e.emitI(OpAddiw, rd, Zero, uint32(lo12))
	} else {
		e.emitI(OpAddi, rd, Zero, uint32(lo12))
	}
}

// splitHiLo splits value into a LUI-compatible hi20 (already shifted
// into bits 31:12) and a signed lo12, such that hi20 + signExt(lo12)
// == int32(value)'s bit pattern, biasing hi20 by 0x1000 when lo12's
// sign bit would otherwise corrupt the sum.
func splitHiLo(value int64) (hi20 uint32, lo12 int32) {
	v := uint32(value)
	lo := int32(v & 0xfff)
	if lo&0x800 != 0 {
		lo -= 0x1000
	}
	hi := v - uint32(lo)
	return hi &^ 0xfff, lo
}
