// Package spectral implements the SVD-augmented SHA-256 fingerprint used as
// the proof-of-work difficulty gate.
package spectral

import (
	"crypto/sha256"
	"encoding/hex"
	"math"

	"gonum.org/v1/gonum/mat"
)

// matDim is the fixed dimension of the seed matrix the spectral signature
// is derived from. It is not the IIT node count — see phi.Engine for that.
const matDim = 8

// Hasher computes the spectral signature of arbitrary byte strings.
//
// The signature mixes a plain SHA-256 digest with an 8x8 singular-value
// fingerprint of that digest's bytes, then re-hashes the concatenation.
// The SVD step is a mixing layer, not a security primitive: the final
// SHA-256 is what carries the avalanche property PoW relies on.
type Hasher struct{}

// NewHasher returns a ready-to-use spectral hasher. It holds no state.
func NewHasher() *Hasher { return &Hasher{} }

// Signature returns the 64-character lowercase hex spectral signature of data.
func (h *Hasher) Signature(data []byte) string {
	seed := sha256.Sum256(data)

	m := seedMatrix(seed[:])
	sv := singularValues(m)

	sum := 0.0
	for _, v := range sv {
		sum += v
	}
	if sum <= 0 {
		sum = 1
	}

	fingerprint := make([]byte, len(sv))
	for i, v := range sv {
		b := int(math.Floor(v/sum*255+0.5))
		if b > 255 {
			b = 255
		}
		if b < 0 {
			b = 0
		}
		fingerprint[i] = byte(b)
	}

	final := sha256.New()
	final.Write(seed[:])
	final.Write(fingerprint)
	return hex.EncodeToString(final.Sum(nil))
}

// seedMatrix builds the 8x8 affine-mapped matrix from a 32-byte SHA-256
// digest: the digest is viewed as a 4x8 byte matrix, stacked with its
// row-reversed mirror to make 8x8, then mapped into [-1, 1] via b/127.5 - 1.
func seedMatrix(seed []byte) *mat.Dense {
	m := mat.NewDense(matDim, matDim, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 8; c++ {
			v := float64(seed[r*8+c])/127.5 - 1.0
			m.Set(r, c, v)
			m.Set(7-r, c, v)
		}
	}
	return m
}

// singularValues returns the singular values of m using gonum's SVD, which
// emits them in descending order — the canonical order spec.md §4.1 requires
// for a reproducible byte-for-byte fingerprint.
func singularValues(m *mat.Dense) []float64 {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDNone); !ok {
		return make([]float64, matDim)
	}
	sv := svd.Values(nil)
	for i, v := range sv {
		if math.IsNaN(v) {
			sv[i] = 0
		}
	}
	return sv
}
