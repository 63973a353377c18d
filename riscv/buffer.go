package riscv

// EmitSink is the ambient collaborator the encoder writes into: an
// append-only destination for 32-bit little-endian instruction words
// that tracks its own write cursor. The wider translator supplies the
// concrete implementation (typically the code-cache's backing page);
// Buffer below is the in-memory reference implementation used by tests
// and the CLI demo.
type EmitSink interface {
	// Emit appends one little-endian 32-bit word and returns the code
	// cursor (byte offset) it was written at.
	Emit(word uint32) uint32
	// Cursor returns the current write cursor, in bytes.
	Cursor() uint32
	// PatchWord overwrites the word at the given byte offset. Used only
	// by relocation resolution and SetJumpTarget.
	PatchWord(offset uint32, word uint32)
	// WordAt returns the word previously written at the given byte offset.
	WordAt(offset uint32) uint32
}

// Buffer is the exclusively-owned, append-only machine-code buffer for
// one translation unit (spec.md §3). It is sealed by calling Seal,
// after which Emit panics: a sealed buffer's ownership has passed to
// the code-cache and must not be mutated except via PatchWord (which
// SetJumpTarget still legitimately needs for already-sealed code).
type Buffer struct {
	words  []uint32
	sealed bool
}

// NewBuffer creates an empty, writable code buffer.
func NewBuffer() *Buffer {
	return &Buffer{words: make([]uint32, 0, 64)}
}

// Emit implements EmitSink.
func (b *Buffer) Emit(word uint32) uint32 {
	if b.sealed {
		panic("riscv: Emit on a sealed buffer")
	}
	cursor := uint32(len(b.words)) * 4
	b.words = append(b.words, word)
	return cursor
}

// Cursor implements EmitSink.
func (b *Buffer) Cursor() uint32 {
	return uint32(len(b.words)) * 4
}

// PatchWord implements EmitSink.
func (b *Buffer) PatchWord(offset uint32, word uint32) {
	b.words[offset/4] = word
}

// WordAt implements EmitSink.
func (b *Buffer) WordAt(offset uint32) uint32 {
	return b.words[offset/4]
}

// Seal marks the buffer immutable to further Emit calls; only
// PatchWord (used by relocation resolution and jump-target patching)
// remains valid afterward.
func (b *Buffer) Seal() {
	b.sealed = true
}

// Bytes returns the buffer contents as a little-endian byte stream,
// the encoder's external interface (spec.md §6).
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.words)*4)
	for i, w := range b.words {
		out[i*4+0] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	return out
}

// Len returns the number of emitted words.
func (b *Buffer) Len() int {
	return len(b.words)
}

// Words returns a copy of the emitted word stream, in emit order.
func (b *Buffer) Words() []uint32 {
	out := make([]uint32, len(b.words))
	copy(out, b.words)
	return out
}
