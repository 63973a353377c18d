package riscv

import (
	"testing"

	"github.com/lookbusy1344/riscv-stm32-core/refsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetJumpTargetNeverDecodesInvalid covers spec.md §8 property 9 on
// the state after each complete SetJumpTarget call: both words of the
// pair must decode as valid instructions -- never garbage. The state
// between the two word writes is not observed by this test.
func TestSetJumpTargetNeverDecodesInvalid(t *testing.T) {
	buf := NewBuffer()
	site := buf.Emit(encodeU(OpAuipc, T0, 0))
	buf.Emit(encodeI(OpAddi, T0, T0, 0))

	// After a full rewrite: both the ADDI and the AUIPC word patched.
	require.NoError(t, SetJumpTarget(buf, site, 0x10000, nil))
	_, err := refsim.Decode(buf.WordAt(site))
	assert.NoError(t, err)
	_, err = refsim.Decode(buf.WordAt(site + 4))
	assert.NoError(t, err)

	flushed := false
	require.NoError(t, SetJumpTarget(buf, site, 0x20000, func(start, end uintptr) {
		flushed = true
		assert.Equal(t, uintptr(site), start)
		assert.Equal(t, uintptr(site)+8, end)
	}))
	assert.True(t, flushed)
}

func TestRelocRangeViolationIsFatal(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	site := buf.Emit(encodeSB(OpBeq, A0, A1, 0))
	err := enc.patchSBImm12(site, 1<<20)
	require.Error(t, err)
	var encErr *EncodingError
	assert.ErrorAs(t, err, &encErr)
}
