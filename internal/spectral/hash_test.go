package spectral

import (
	"encoding/hex"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureLengthAndHex(t *testing.T) {
	h := NewHasher()
	sig := h.Signature([]byte("genesis_block"))
	require.Len(t, sig, 64)
	_, err := hex.DecodeString(sig)
	assert.NoError(t, err)
}

func TestSignatureDeterministic(t *testing.T) {
	h := NewHasher()
	data := []byte("genesis_block0")
	assert.Equal(t, h.Signature(data), h.Signature(data))
}

func TestSignatureDiffersOnDifferentInput(t *testing.T) {
	h := NewHasher()
	assert.NotEqual(t, h.Signature([]byte("a")), h.Signature([]byte("b")))
}

func TestSignatureAvalanche(t *testing.T) {
	h := NewHasher()
	a := h.Signature([]byte("genesis_block0"))
	b := h.Signature([]byte("genesis_block1"))

	aBytes, err := hex.DecodeString(a)
	require.NoError(t, err)
	bBytes, err := hex.DecodeString(b)
	require.NoError(t, err)

	diffBits := 0
	for i := range aBytes {
		diffBits += bits.OnesCount8(aBytes[i] ^ bBytes[i])
	}
	assert.GreaterOrEqual(t, diffBits, 50)
}
