package riscv

// RegBits is the register width used for shift amounts in the
// extension helpers below: 64 when the encoder targets RV64I, else 32.
func (e *Encoder) RegBits() int {
	if e.Is64 {
		return 64
	}
	return 32
}

// Mov emits ADDI rd, src, 0, the canonical RISC-V register move. It is
// a no-op (emits nothing) when src == dst, per spec.md §4.A.5.
func (e *Encoder) Mov(dst, src Reg) {
	if dst == src {
		return
	}
	e.OutOpImm(OpAddi, dst, src, 0)
}

// ExtU zero-extends arg into ret from an n-bit field (n one of 8, 16, 32).
// 8-bit uses a single ANDI; 16/32-bit shift left then logical shift
// right by (RegBits - n).
func (e *Encoder) ExtU(ret, arg Reg, n int) error {
	switch n {
	case 8:
		e.OutOpImm(OpAndi, ret, arg, 0xff)
		return nil
	case 16, 32:
		shift := e.RegBits() - n
		e.OutOpImm(OpSlli, ret, arg, int32(shift))
		e.OutOpImm(OpSrli, ret, ret, int32(shift))
		return nil
	default:
		return newUnsupportedTypeError("ExtU", n)
	}
}

// ExtS sign-extends arg into ret from an n-bit field. 32-bit targets on
// RV64 use ADDIW; all other widths shift left then arithmetic shift
// right by (RegBits - n).
func (e *Encoder) ExtS(ret, arg Reg, n int) error {
	if n == 32 && e.Is64 {
		e.emitI(OpAddiw, ret, arg, 0)
		return nil
	}
	switch n {
	case 8, 16, 32:
		shift := e.RegBits() - n
		e.OutOpImm(OpSlli, ret, arg, int32(shift))
		e.OutOpImm(OpSrai, ret, ret, int32(shift))
		return nil
	default:
		return newUnsupportedTypeError("ExtS", n)
	}
}
