package riscv

import (
	"testing"

	"github.com/lookbusy1344/riscv-stm32-core/refsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveLabelRelocations covers spec.md §5: a JAL relocation
// recorded against a label name resolves once the label's address is
// supplied, and the patched word still decodes as a JAL.
func TestResolveLabelRelocations(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)

	jalSite := buf.Emit(encodeUJ(OpJal, RA, 0))
	enc.RecordLabelReloc(RelocJal, jalSite, "target")

	// Padding so the label lands somewhere nonzero.
	buf.Emit(encodeI(OpAddi, Zero, Zero, 0))
	buf.Emit(encodeI(OpAddi, Zero, Zero, 0))

	require.NoError(t, enc.Resolve(map[string]uint32{"target": buf.Cursor()}))

	word := buf.WordAt(jalSite)
	inst, err := refsim.Decode(word)
	require.NoError(t, err)
	assert.Equal(t, "JAL", inst.Mnemonic)
}

// TestResolveUnknownLabelIsFatal covers spec.md §4.A.6: an unbound
// label is a fatal programmer error, not a silently-ignored relocation.
func TestResolveUnknownLabelIsFatal(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)

	site := buf.Emit(encodeUJ(OpJal, RA, 0))
	enc.RecordLabelReloc(RelocJal, site, "nowhere")

	err := enc.Resolve(map[string]uint32{})
	require.Error(t, err)
}

// TestPatchCallRangeLimit covers spec.md §4.A.6: a CALL relocation
// outside the pc-relative ±2GiB window is a fatal range error.
func TestPatchCallRangeLimit(t *testing.T) {
	buf := NewBuffer()
	enc := NewEncoder(buf, true)
	site := buf.Emit(encodeU(OpAuipc, T0, 0))
	buf.Emit(encodeI(OpAddi, T0, T0, 0))

	err := enc.patchCall(site, 1<<32)
	require.Error(t, err)
	var encErr *EncodingError
	assert.ErrorAs(t, err, &encErr)
}
