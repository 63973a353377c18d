package riscv

import (
	"testing"

	"github.com/lookbusy1344/riscv-stm32-core/refsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovSameRegIsNoOp(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	enc.Mov(A0, A0)
	assert.Equal(t, uint32(0), buf.Cursor())
}

func TestMovDifferentRegsEmitsAddi(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	enc.Mov(A0, A1)

	inst, err := refsim.Decode(buf.WordAt(0))
	require.NoError(t, err)
	assert.Equal(t, "ADDI", inst.Mnemonic)
	assert.Equal(t, int64(0), inst.Imm)
}

func TestExtU8UsesAndi(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	require.NoError(t, enc.ExtU(A0, A1, 8))

	inst, err := refsim.Decode(buf.WordAt(0))
	require.NoError(t, err)
	assert.Equal(t, "ANDI", inst.Mnemonic)
	assert.Equal(t, int64(0xff), inst.Imm)
}

func TestExtU16ShiftsByRegBitsMinusN(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	require.NoError(t, enc.ExtU(A0, A1, 16))

	shl, err := refsim.Decode(buf.WordAt(0))
	require.NoError(t, err)
	shr, err := refsim.Decode(buf.WordAt(4))
	require.NoError(t, err)

	assert.Equal(t, "SLLI", shl.Mnemonic)
	assert.Equal(t, int64(48), shl.Imm)
	assert.Equal(t, "SRLI", shr.Mnemonic)
	assert.Equal(t, int64(48), shr.Imm)
}

func TestExtUUnsupportedWidthErrors(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	err := enc.ExtU(A0, A1, 24)
	require.Error(t, err)
}

func TestExtS32OnRV64UsesAddiw(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	require.NoError(t, enc.ExtS(A0, A1, 32))

	inst, err := refsim.Decode(buf.WordAt(0))
	require.NoError(t, err)
	assert.Equal(t, "ADDIW", inst.Mnemonic)
}

func TestExtS32OnRV32UsesShiftPair(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, false)
	require.NoError(t, enc.ExtS(A0, A1, 32))

	shl, err := refsim.Decode(buf.WordAt(0))
	require.NoError(t, err)
	sra, err := refsim.Decode(buf.WordAt(4))
	require.NoError(t, err)

	assert.Equal(t, "SLLI", shl.Mnemonic)
	assert.Equal(t, int64(0), shl.Imm)
	assert.Equal(t, "SRAI", sra.Mnemonic)
	assert.Equal(t, int64(0), sra.Imm)
}

func TestExtSUnsupportedWidthErrors(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	err := enc.ExtS(A0, A1, 24)
	require.Error(t, err)
}

func TestRegBitsFollowsTargetWidth(t *testing.T) {
	enc64 := NewEncoder(NewBuffer(), true)
	enc32 := NewEncoder(NewBuffer(), false)
	assert.Equal(t, 64, enc64.RegBits())
	assert.Equal(t, 32, enc32.RegBits())
}
