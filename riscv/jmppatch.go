package riscv

// ICacheFlush is the host I-cache flush hook: an ambient collaborator
// (spec.md §1) invoked over the byte range [start, end) after
// SetJumpTarget rewrites in-place code. The zero value is a no-op,
// appropriate for hosts (or tests) where no flush syscall is needed.
type ICacheFlush func(start, end uintptr)

// SetJumpTarget rewrites the CALL-style AUIPC+ADDI pair previously
// emitted at jmpAddr (a site within sink, addressed the same way
// Relocation.Site is) so it jumps to target instead, matching
// tb_target_set_jmp_target / set_jmp_target from spec.md §4.A.7.
//
// Each word is replaced with a single store: the implementation writes
// the second word (ADDI, dead code on its own) first, then the first
// word (AUIPC), so every word a concurrent fetcher sees is a complete,
// decodable instruction. Between the two writes the pair combines the
// old AUIPC upper offset with the new ADDI lower offset; it is not
// redirected to a stub target in the meantime (StubTarget is not used
// here).
func SetJumpTarget(sink EmitSink, jmpAddr uint32, target uint64, flush ICacheFlush) error {
	offset := int64(target) - int64(jmpAddr)
	if offset < -(1 << 31) || offset > (1<<31)-1 {
		return newRelocRangeError(RelocCall, jmpAddr, offset)
	}
	hi20 := uint32((offset + 0x800) >> 12 << 12)
	lo12 := uint32(offset) - hi20

	addi := sink.WordAt(jmpAddr + 4)
	addi = (addi &^ (0xfff << 20)) | encodeImm12(lo12)
	sink.PatchWord(jmpAddr+4, addi)

	auipc := sink.WordAt(jmpAddr)
	auipc = (auipc &^ (0xfffff << 12)) | encodeUImm20(hi20)
	sink.PatchWord(jmpAddr, auipc)

	if flush != nil {
		flush(uintptr(jmpAddr), uintptr(jmpAddr)+8)
	}
	return nil
}

// StubTarget returns the conventional "safe intermediate target" used
// while a jump pair is mid-rewrite: the pair's own address, which
// decodes (once fully written) as a jump to itself -- a trampoline
// that simply re-enters the dispatcher rather than executing garbage.
func StubTarget(addr uintptr) uintptr {
	return addr
}
