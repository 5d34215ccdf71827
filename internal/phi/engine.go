package phi

import (
	"crypto/sha256"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Domain suffixes decorrelate the seven component matrices from a shared
// block-data seed: each component sees an independent keystream even though
// all seven start from the same candidate bytes.
var (
	suffixTau  = []byte("\x01tau")
	suffixGWT  = []byte("\x02gwt")
	suffixICP  = []byte("\x03icp")
	suffixFano = []byte("\x04fano")
	suffixNab  = []byte("\x05nab")
	suffixQG   = []byte("\x06qg")
	suffixHolo = []byte("\x07holo")
)

// Engine computes the seven IIT component scores over a fixed matrix
// dimension and temporal depth.
type Engine struct {
	NNodes        int
	TemporalDepth int
}

// NewEngine returns an Engine with nNodes clamped to >= 2 and temporalDepth
// clamped to >= 1, per spec.md §7's silent-clamp configuration policy.
func NewEngine(nNodes, temporalDepth int) *Engine {
	if nNodes < 2 {
		nNodes = 2
	}
	if temporalDepth < 1 {
		temporalDepth = 1
	}
	return &Engine{NNodes: nNodes, TemporalDepth: temporalDepth}
}

// PhiTau computes the temporal-depth Φ_τ: normalized eigenvalue entropy of
// M raised to TemporalDepth, after symmetrizing.
func (e *Engine) PhiTau(data []byte) float64 {
	n := e.NNodes
	m := stochasticMatrix(data, suffixTau, n)

	var powered mat.Dense
	powered.Pow(m, e.TemporalDepth)

	sym := symmetrize(&powered, n)
	ev := symEigenvalues(sym, n)
	for i, v := range ev {
		ev[i] = math.Abs(v)
	}

	maxH := 1.0
	if n > 1 {
		maxH = math.Log2(float64(n))
	}
	return clip01(shannonEntropy(ev) / maxH)
}

// GWTScore computes the Global Workspace Theory spectral gap |λ1| - |λ2|
// over the (possibly complex) eigenvalues of the raw stochastic matrix.
func (e *Engine) GWTScore(data []byte) float64 {
	n := e.NNodes
	m := stochasticMatrix(data, suffixGWT, n)

	var eig mat.Eigen
	moduli := make([]float64, n)
	if eig.Factorize(m, mat.EigenNone) {
		vals := eig.Values(nil)
		for i, v := range vals {
			moduli[i] = cmplxAbs(v)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(moduli)))

	gap := 0.0
	if len(moduli) >= 2 {
		gap = moduli[0] - moduli[1]
	}
	return clip01(gap)
}

// ICPAvg computes the Integrated Causal Power average: the inverse
// condition number σ_min / σ_max of the raw stochastic matrix.
func (e *Engine) ICPAvg(data []byte) float64 {
	n := e.NNodes
	m := stochasticMatrix(data, suffixICP, n)
	sv := descendingSingularValues(m)
	last := sv[len(sv)-1]
	return clip01(last / (sv[0] + 1e-12))
}

// FanoScore computes the octonionic Fano plane alignment: 1 minus the
// dominance of the leading singular value of a 4x7 matrix built from the
// first 28 seed bytes.
func (e *Engine) FanoScore(data []byte) float64 {
	seed := domainSeed(data, suffixFano)
	m := mat.NewDense(4, 7, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 7; c++ {
			m.Set(r, c, float64(seed[r*7+c])/255.0)
		}
	}
	sv := descendingSingularValues(m)
	sum := 0.0
	for _, v := range sv {
		sum += v
	}
	svNorm0 := sv[0] / (sum + 1e-12)
	return clip01(1.0 - svNorm0)
}

// PhiNab computes the normalized Frobenius norm of the antisymmetric part
// of the raw stochastic matrix — the magnitude of non-reciprocal flow.
func (e *Engine) PhiNab(data []byte) float64 {
	n := e.NNodes
	m := stochasticMatrix(data, suffixNab, n)

	var antisym mat.Dense
	antisym.Sub(m, m.T())
	antisym.Scale(0.5, &antisym)

	nrm := frobeniusNorm(&antisym, n)
	maxNrm := 0.5*math.Sqrt(float64(n*(n-1))) + 1e-12
	return clip01(nrm / maxNrm)
}

// QGScore computes the quantum-gravity curvature score: the normalized
// eigenvalue variance of a symmetrized 4x4 curvature tensor.
func (e *Engine) QGScore(data []byte) float64 {
	seed := domainSeed(data, suffixQG)
	m := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, float64(seed[r*4+c])/255.0)
		}
	}
	sym := symmetrize(m, 4)
	ev := symEigenvalues(sym, 4)

	mean := 0.0
	for _, v := range ev {
		mean += v
	}
	mean /= float64(len(ev))
	variance := 0.0
	for _, v := range ev {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(ev))

	lo, hi := ev[0], ev[0]
	for _, v := range ev {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := (hi - lo) + 1e-12
	return clip01(variance / (math.Pow(rng/2.0, 2) + 1e-12))
}

// HoloScore computes the holographic entanglement entropy: the normalized
// Shannon entropy of the 32 raw SHA-256 bytes treated as unnormalized mass.
func (e *Engine) HoloScore(data []byte) float64 {
	seed := sha256Of(data, suffixHolo)
	vals := make([]float64, len(seed))
	for i, b := range seed {
		vals[i] = float64(b)
	}
	maxH := math.Log2(float64(len(vals)))
	return clip01(shannonEntropy(vals) / maxH)
}

// ── shared helpers ──────────────────────────────────────────────────────────

func sha256Of(data, suffix []byte) []byte {
	h := sha256.New()
	h.Write(data)
	h.Write(suffix)
	return h.Sum(nil)
}

// domainSeed returns the 32-byte SHA-256(data||suffix) digest.
func domainSeed(data, suffix []byte) []byte {
	return sha256Of(data, suffix)
}

func shannonEntropy(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	sum += 1e-12
	h := 0.0
	for _, v := range values {
		p := v / sum
		h -= p * math.Log2(p+1e-12)
	}
	return h
}

func symmetrize(m *mat.Dense, n int) *mat.SymDense {
	var sym mat.Dense
	sym.Add(m, m.T())
	sym.Scale(0.5, &sym)

	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data[r*n+c] = sym.At(r, c)
		}
	}
	return mat.NewSymDense(n, data)
}

// symEigenvalues returns the eigenvalues of sym in ascending order (gonum's
// native EigenSym order), mapping any NaN from non-convergence to 0.
func symEigenvalues(sym *mat.SymDense, n int) []float64 {
	var eig mat.EigenSym
	ev := make([]float64, n)
	if eig.Factorize(sym, false) {
		eig.Values(ev)
	}
	for i, v := range ev {
		if math.IsNaN(v) {
			ev[i] = 0
		}
	}
	return ev
}

// descendingSingularValues returns m's singular values in descending order
// (gonum's native SVD order), mapping any NaN to 0.
func descendingSingularValues(m mat.Matrix) []float64 {
	var svd mat.SVD
	r, c := m.Dims()
	n := r
	if c < n {
		n = c
	}
	sv := make([]float64, n)
	if svd.Factorize(m, mat.SVDNone) {
		svd.Values(sv)
	}
	for i, v := range sv {
		if math.IsNaN(v) {
			sv[i] = 0
		}
	}
	return sv
}

func frobeniusNorm(m mat.Matrix, n int) float64 {
	sum := 0.0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := m.At(r, c)
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

func cmplxAbs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}
