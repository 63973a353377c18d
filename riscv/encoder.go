package riscv

// Encoder holds the per-translation-unit state described in spec.md
// §3: the emit sink, the set of pending relocations, and the target
// width (RV32 vs RV64) that governs movi and sign-extension choices.
//
// An Encoder is exclusively owned by the translating thread for the
// duration of one translation block (spec.md §5); it performs no
// internal synchronization.
type Encoder struct {
	Sink EmitSink
	Is64 bool

	relocs []Relocation
}

// NewEncoder creates an Encoder targeting sink. is64 selects RV64I
// (true) or RV32I (false) semantics for movi and sign/zero extension.
func NewEncoder(sink EmitSink, is64 bool) *Encoder {
	return &Encoder{Sink: sink, Is64: is64}
}

// emitR/emitI/... wrap the bit-layout primitives in encode.go with the
// encoder's sink, returning the code cursor the word was written at.

func (e *Encoder) emitR(opc Op, rd, rs1, rs2 Reg) uint32 {
	return e.Sink.Emit(encodeR(opc, rd, rs1, rs2))
}

func (e *Encoder) emitI(opc Op, rd, rs1 Reg, imm uint32) uint32 {
	return e.Sink.Emit(encodeI(opc, rd, rs1, imm))
}

func (e *Encoder) emitS(opc Op, rs1, rs2 Reg, imm uint32) uint32 {
	return e.Sink.Emit(encodeS(opc, rs1, rs2, imm))
}

func (e *Encoder) emitU(opc Op, rd Reg, imm uint32) uint32 {
	return e.Sink.Emit(encodeU(opc, rd, imm))
}

// OutOp emits a plain three-register R-type ALU or M-extension
// instruction (ADD, SUB, MUL, DIV, ...).
func (e *Encoder) OutOp(opc Op, rd, rs1, rs2 Reg) uint32 {
	return e.emitR(opc, rd, rs1, rs2)
}

// OutOpImm emits an I-type (register-immediate) instruction such as ADDI or ANDI.
// imm must already have been checked against the operation's
// constraint (S12/N12) by the caller.
func (e *Encoder) OutOpImm(opc Op, rd, rs1 Reg, imm int32) uint32 {
	return e.emitI(opc, rd, rs1, uint32(imm))
}

// Relocations returns the relocations recorded so far, in emit order.
func (e *Encoder) Relocations() []Relocation {
	return e.relocs
}

// recordReloc appends a pending relocation for later resolution (see
// reloc.go). site is the code cursor at time of emit.
func (e *Encoder) recordReloc(kind RelocKind, site uint32, target string) {
	e.relocs = append(e.relocs, Relocation{Kind: kind, Site: site, Target: target})
}
