package riscv

// OutLdst implements tcg_out_ldst (spec.md §4.A.4): emit a load or
// store of data into/from rd (load) or rd (store source) relative to
// base+offset. If offset does not fit a signed 12-bit field, the
// residual is materialized into TMP2 (never allocated by
// RegAllocOrder), the original base is added in (unless base is
// Zero), and the memory op is emitted against TMP2 with the reduced
// imm12 residual.
//
// isStore selects S-type (store) vs I-type (load) encoding; opc must
// already be the matching load or store opcode (e.g. OpSw for a
// 32-bit store, OpLw for a 32-bit load).
func (e *Encoder) OutLdst(opc Op, isStore bool, rd, base Reg, offset int64) {
	if FitsS12(offset) {
		e.emitLdst(opc, isStore, rd, base, int32(offset))
		return
	}

	residual := signed12(offset)
	hi := offset - residual

	e.Movi(TMP2, hi, nil)
	if base != Zero {
		e.OutOp(OpAdd, TMP2, TMP2, base)
	}
	e.emitLdst(opc, isStore, rd, TMP2, int32(residual))
}

// emitLdst emits a single load or store instruction with an
// already-in-range 12-bit immediate.
func (e *Encoder) emitLdst(opc Op, isStore bool, rd, base Reg, imm12 int32) {
	if isStore {
		e.emitS(opc, base, rd, uint32(imm12))
	} else {
		e.emitI(opc, rd, base, uint32(imm12))
	}
}
