package riscv

import "fmt"

// RelocKind identifies one of the three relocation kinds from
// spec.md §3/§4.A.6, each patching an already-emitted site once its
// target is known.
type RelocKind int

const (
	RelocBranch RelocKind = iota // 12-bit SB, 2-byte aligned
	RelocJal                     // 20-bit UJ, 2-byte aligned
	RelocCall                    // hi20+lo12 AUIPC/ADDI pair
)

// String implements fmt.Stringer for error messages.
func (k RelocKind) String() string {
	switch k {
	case RelocBranch:
		return "BRANCH"
	case RelocJal:
		return "JAL"
	case RelocCall:
		return "CALL"
	default:
		return "UNKNOWN"
	}
}

// Relocation is a deferred patch into already-emitted code: a
// (code_cursor, kind, target) triple, patched when Resolve is called
// (label targets look up their address there; absolute targets carry
// it in Addr).
type Relocation struct {
	Kind   RelocKind
	Site   uint32 // code cursor at time of emit
	Target string // label name, empty if TargetAddr is used directly
	Abs    bool   // true if this relocation targets an absolute address
	Addr   uint64 // absolute target, valid when Abs is true
}

// recordRelocAbs appends a pending relocation with an already-known
// absolute target address (used by Movi's case 4 and by callers that
// resolve labels themselves before calling Resolve).
func (e *Encoder) recordRelocAbs(kind RelocKind, site uint32, addr uint64) {
	e.relocs = append(e.relocs, Relocation{Kind: kind, Site: site, Abs: true, Addr: addr})
}

// RecordLabelReloc appends a pending relocation against a named label,
// to be resolved later via Resolve once the label's address is known.
func (e *Encoder) RecordLabelReloc(kind RelocKind, site uint32, label string) {
	e.relocs = append(e.relocs, Relocation{Kind: kind, Site: site, Target: label})
}

// Resolve patches every pending relocation in one pass, in the order
// the relocations were recorded. Label relocations take their address
// from labels (a map from label name to absolute byte address);
// relocations already carrying an absolute address (Abs == true) use
// Addr. All labels are supplied together, so there is no notion of
// label-binding order here. Returns the first error encountered (an
// unbound label or a range violation); per spec.md §4.A.6 a range
// violation is always a fatal programmer error.
func (e *Encoder) Resolve(labels map[string]uint32) error {
	for _, r := range e.relocs {
		target := r.Addr
		if !r.Abs {
			addr, ok := labels[r.Target]
			if !ok {
				return fmt.Errorf("riscv: relocation target label %q never bound", r.Target)
			}
			target = uint64(addr)
		}
		if err := e.applyReloc(r, target); err != nil {
			return err
		}
	}
	return nil
}

// applyReloc patches one relocation's site given its resolved absolute
// target address.
func (e *Encoder) applyReloc(r Relocation, target uint64) error {
	switch r.Kind {
	case RelocBranch:
		return e.patchSBImm12(r.Site, int64(target)-int64(r.Site))
	case RelocJal:
		return e.patchUJImm20(r.Site, int64(target)-int64(r.Site))
	case RelocCall:
		return e.patchCall(r.Site, int64(target)-int64(r.Site))
	default:
		return fmt.Errorf("riscv: unknown relocation kind %v", r.Kind)
	}
}

// patchSBImm12 validates and ORs a branch-offset immediate into the
// word already emitted at site. offset must equal
// sextract(offset, 1, 12) << 1: a 12-bit signed, 2-byte-aligned value.
func (e *Encoder) patchSBImm12(site uint32, offset int64) error {
	if offset&1 != 0 || offset < -4096 || offset > 4094 {
		return newRelocRangeError(RelocBranch, site, offset)
	}
	word := e.Sink.WordAt(site)
	word |= encodeSBImm12(uint32(offset))
	e.Sink.PatchWord(site, word)
	return nil
}

// patchUJImm20 validates and ORs a jal-offset immediate into the word
// already emitted at site. offset must equal
// sextract(offset, 1, 20) << 1: a 20-bit signed, 2-byte-aligned value.
func (e *Encoder) patchUJImm20(site uint32, offset int64) error {
	if offset&1 != 0 || offset < -(1<<20) || offset > (1<<20)-2 {
		return newRelocRangeError(RelocJal, site, offset)
	}
	word := e.Sink.WordAt(site)
	word |= encodeUJImm20(uint32(offset))
	e.Sink.PatchWord(site, word)
	return nil
}

// patchCall validates a pc-relative 32-bit offset and rewrites the
// two-instruction AUIPC+ADDI pair at site and site+4, biasing hi20 by
// 0x800 to compensate for the following 12-bit add's sign extension.
func (e *Encoder) patchCall(site uint32, offset int64) error {
	if offset < -(1 << 31) || offset > (1<<31)-1 {
		return newRelocRangeError(RelocCall, site, offset)
	}
	hi20 := uint32((offset + 0x800) >> 12 << 12)
	lo12 := uint32(offset) - hi20

	auipc := e.Sink.WordAt(site)
	auipc |= encodeUImm20(hi20)
	e.Sink.PatchWord(site, auipc)

	addi := e.Sink.WordAt(site + 4)
	addi |= encodeImm12(lo12)
	e.Sink.PatchWord(site+4, addi)
	return nil
}
