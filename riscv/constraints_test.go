package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraintLetters(t *testing.T) {
	c, err := ParseConstraint('r', false)
	require.NoError(t, err)
	assert.True(t, c.MatchesReg(T0))

	c, err = ParseConstraint('L', true)
	require.NoError(t, err)
	assert.False(t, c.MatchesReg(TMP2), "L must reserve TMP2 under softmmu")
	assert.False(t, c.MatchesReg(A0), "L must reserve the first five arg regs under softmmu")
	assert.True(t, c.MatchesReg(T1))

	c, err = ParseConstraint('L', false)
	require.NoError(t, err)
	assert.True(t, c.MatchesReg(TMP2), "L collapses to r when softmmu is disabled")

	_, err = ParseConstraint('?', false)
	assert.Error(t, err)
	var encErr *EncodingError
	assert.ErrorAs(t, err, &encErr)
}

func TestConstantConstraintRanges(t *testing.T) {
	s12, _ := ParseConstraint('I', false)
	assert.True(t, s12.MatchesConst(2047))
	assert.False(t, s12.MatchesConst(2048))
	assert.True(t, s12.MatchesConst(-2048))
	assert.False(t, s12.MatchesConst(-2049))

	n12, _ := ParseConstraint('N', false)
	assert.True(t, n12.MatchesConst(2048))
	assert.False(t, n12.MatchesConst(2049))
	assert.True(t, n12.MatchesConst(-2047))
	assert.False(t, n12.MatchesConst(-2048))
}
