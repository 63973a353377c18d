package riscv

// FrameSize is the fixed stack frame size the debug frame's CFA
// (CFA = sp + FrameSize) and all callee-saved slot offsets are
// computed against. It must match the translator's actual prologue.
const FrameSize = 144

// calleeSavedOffsets gives the well-known DWARF offset (from the CFA)
// at which each callee-saved register is spilled: s1 at -96, each
// subsequent s-register +8, ra at -8. Used only by host unwinders for
// profiling (spec.md §4.A.8); never read at translation time.
var calleeSavedOffsets = []struct {
	reg    Reg
	offset int8
}{
	{S1, -96},
	{S2, -88},
	{S3, -80},
	{S4, -72},
	{S5, -64},
	{S6, -56},
	{S7, -48},
	{S8, -40},
	{S9, -32},
	{S10, -24},
	{S11, -16},
	{RA, -8},
}

// DebugFrame returns the static CIE/FDE byte sequence describing the
// stack layout used by host unwinders. It is immutable, global data
// with no initialization hazard (spec.md §9): the same bytes are
// returned on every call.
func DebugFrame() []byte {
	var buf []byte

	// CIE. Length placeholder patched below; version 1, empty augmentation,
	// code_align=1, data_align=-(reg size)/8 as sleb128, return column = RA.
	cie := []byte{
		0, 0, 0, 0, // length (patched)
		0xff, 0xff, 0xff, 0xff, // CIE id (-1)
		1,    // version
		0,    // augmentation (empty string terminator)
		1,    // code_align = 1 (uleb128)
		0x78, // data_align = -8 (sleb128, 8 bytes per register)
		byte(RA),
	}
	patchLen32(cie, 0, len(cie)-4)
	buf = append(buf, cie...)

	// FDE: def_cfa sp, FRAME_SIZE, then offset entries for each
	// callee-saved register.
	var fdeBody []byte
	fdeBody = append(fdeBody, 0, 0, 0, 0) // cie_offset placeholder (patched by linker in practice)
	fdeBody = append(fdeBody, dwDefCFA(SP, FrameSize)...)
	for _, r := range calleeSavedOffsets {
		fdeBody = append(fdeBody, dwOffset(r.reg, r.offset)...)
	}

	fdeLen := make([]byte, 4)
	putLen32(fdeLen, len(fdeBody))
	buf = append(buf, fdeLen...)
	buf = append(buf, fdeBody...)

	return buf
}

// dwDefCFA encodes DW_CFA_def_cfa reg, uleb128(frameSize).
func dwDefCFA(reg Reg, frameSize int) []byte {
	out := []byte{12, byte(reg)}
	out = append(out, uleb128(uint64(frameSize))...)
	return out
}

// dwOffset encodes DW_CFA_offset reg, uleb128(offset/-dataAlign), with
// the well-known sign convention: a negative CFA offset -8*n is
// recorded as the uleb128 n.
func dwOffset(reg Reg, offset int8) []byte {
	n := uint64((-int(offset)) / 8)
	out := []byte{0x80 | byte(reg)}
	out = append(out, uleb128(n)...)
	return out
}

func uleb128(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

func putLen32(dst []byte, v int) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

func patchLen32(dst []byte, at, v int) {
	dst[at+0] = byte(v)
	dst[at+1] = byte(v >> 8)
	dst[at+2] = byte(v >> 16)
	dst[at+3] = byte(v >> 24)
}
