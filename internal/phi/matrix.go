// Package phi implements the IIT-derived component scores (the seven
// Φ components plus the weighted composite) that make up the
// consciousness and curvature mining gates.
package phi

import (
	"crypto/sha256"
	"encoding/binary"

	"gonum.org/v1/gonum/mat"
)

// stochasticMatrix builds a deterministic n x n row-stochastic matrix from
// data and a domain suffix: SHA-256(data||suffix) seeds an expanding
// keystream of SHA-256(seed||LE32(i)) blocks, which is reshaped row-major
// into n² little-endian uint32 values in [0, 2^32), scaled to [0, 1), and
// row-normalized.
func stochasticMatrix(data, suffix []byte, n int) *mat.Dense {
	h := sha256.New()
	h.Write(data)
	h.Write(suffix)
	seed := h.Sum(nil)

	needed := n * n * 4
	raw := make([]byte, 0, needed+sha256.Size)
	var ctr [4]byte
	for i := uint32(0); len(raw) < needed; i++ {
		binary.LittleEndian.PutUint32(ctr[:], i)
		block := sha256.New()
		block.Write(seed)
		block.Write(ctr[:])
		raw = append(raw, block.Sum(nil)...)
	}
	raw = raw[:needed]

	m := mat.NewDense(n, n, nil)
	idx := 0
	for r := 0; r < n; r++ {
		rowSum := 0.0
		vals := make([]float64, n)
		for c := 0; c < n; c++ {
			u := binary.LittleEndian.Uint32(raw[idx : idx+4])
			idx += 4
			v := float64(u) / 4294967296.0 // 2^32
			vals[c] = v
			rowSum += v
		}
		rowSum += 1e-12
		for c := 0; c < n; c++ {
			m.Set(r, c, vals[c]/rowSum)
		}
	}
	return m
}
