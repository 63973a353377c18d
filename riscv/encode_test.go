package riscv

import (
	"testing"

	"github.com/lookbusy1344/riscv-stm32-core/refsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundTripEncodeDecode covers spec.md §8 property 1 for a sample
// of R-, I-, S- and U-type encodings (ADDI, ADD, SUB, LUI, SW, LW): the
// encoded word, decoded by the independent refsim decoder, must
// reproduce the original mnemonic and operands.
func TestRoundTripEncodeDecode(t *testing.T) {
	cases := []struct {
		name string
		word uint32
		want refsim.Instruction
	}{
		{"addi", encodeI(OpAddi, T0, A0, uint32(int32(-5))), refsim.Instruction{Mnemonic: "ADDI", Rd: int(T0), Rs1: int(A0), Imm: -5}},
		{"add", encodeR(OpAdd, T1, A1, A2), refsim.Instruction{Mnemonic: "ADD", Rd: int(T1), Rs1: int(A1), Rs2: int(A2)}},
		{"sub", encodeR(OpSub, S1, S2, S3), refsim.Instruction{Mnemonic: "SUB", Rd: int(S1), Rs1: int(S2), Rs2: int(S3)}},
		{"lui", encodeU(OpLui, T2, 0x12345000), refsim.Instruction{Mnemonic: "LUI", Rd: int(T2), Imm: 0x12345000}},
		{"sw", encodeS(OpSw, SP, A0, uint32(int32(-4))), refsim.Instruction{Mnemonic: "SW", Rs1: int(SP), Rs2: int(A0), Imm: -4}},
		{"lw", encodeI(OpLw, A0, SP, uint32(int32(16))), refsim.Instruction{Mnemonic: "LW", Rd: int(A0), Rs1: int(SP), Imm: 16}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := refsim.Decode(c.word)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

// TestBranchBitScatter covers spec.md §8 property 4: after patching a
// branch relocation, bits 7, 8-11, 25-30, 31 must match the RISC-V
// B-type scatter; all other bits in the base word are unchanged.
func TestBranchBitScatter(t *testing.T) {
	for _, delta := range []int64{-4096, -2, 0, 2, 4094} {
		buf := NewBuffer()
		enc := NewEncoder(buf, false)
		site := buf.Emit(encodeSB(OpBeq, A0, A1, 0))
		require.NoError(t, enc.patchSBImm12(site, delta))

		want := encodeSB(OpBeq, A0, A1, uint32(delta))
		got := buf.WordAt(site)
		assert.Equal(t, want, got)
	}
}

// TestConstantMaterializationMinimality covers spec.md §8 property 2.
func TestConstantMaterializationMinimality(t *testing.T) {
	values := []int64{0, 1, -1, 2047, -2048, 2048, 0x10000, 0xFFFFFFFF, 0x123456789ABCDEF0}
	for _, v := range values {
		for _, is64 := range []bool{false, true} {
			t.Run(modeLabel(is64), func(t *testing.T) {
				buf := NewBuffer()
				enc := NewEncoder(buf, is64)
				enc.Movi(T0, truncatedFor(v, is64), neverPCRelOK)

				cpu := &refsim.CPU{Is64: is64}
				mem := refsim.NewMem()
				words := wordsOf(buf)
				require.NoError(t, refsim.Run(cpu, mem, words))

				want := truncatedFor(v, is64)
				got := cpu.Get(int(T0))
				if is64 {
					assert.Equal(t, uint64(want), got)
				} else {
					assert.Equal(t, uint64(uint32(want)), got)
				}
			})
		}
	}
}

func modeLabel(is64 bool) string {
	if is64 {
		return "rv64"
	}
	return "rv32"
}

func truncatedFor(v int64, is64 bool) int64 {
	if is64 {
		return v
	}
	return int64(int32(v))
}

func neverPCRelOK(v int64, cursor uint32) bool {
	return false
}

func wordsOf(b *Buffer) []uint32 {
	out := make([]uint32, b.Len())
	for i := range out {
		out[i] = b.WordAt(uint32(i) * 4)
	}
	return out
}
