package kernel

import (
	"math/big"

	"github.com/chimera-pool/quantum-gravity-miner/internal/metrics"
	"github.com/chimera-pool/quantum-gravity-miner/internal/phi"
	"github.com/chimera-pool/quantum-gravity-miner/internal/spectral"
)

// Gate-failure tags returned by Pipeline.Evaluate. The empty string means
// every gate passed.
const (
	GateNone          = ""
	GateDifficulty    = "difficulty"
	GateConsciousness = "consciousness"
	GateQGCurvature   = "qg_curvature"
)

// Pipeline evaluates the three validity gates in strict cheapest-first
// order, short-circuiting (and skipping the Φ computation entirely) on a
// difficulty-gate failure.
type Pipeline struct {
	hasher   *spectral.Hasher
	composer *phi.Composer
	cfg      Config
	recorder *metrics.Recorder
}

func newPipeline(cfg Config) *Pipeline {
	engine := phi.NewEngine(cfg.NNodes, cfg.TemporalDepth)
	return &Pipeline{
		hasher:   spectral.NewHasher(),
		composer: phi.NewComposer(engine, cfg.Weights),
		cfg:      cfg,
	}
}

// Evaluate runs the three-gate check over data for the given difficulty and
// network node count. It returns whether data is a valid candidate, the Φ
// structure (the zero Structure on an early difficulty-gate exit), and the
// tag of the first gate that failed ("" on success).
func (p *Pipeline) Evaluate(data []byte, difficulty *big.Int, nNodes uint64) (bool, phi.Structure, string) {
	hashHex := p.hasher.Signature(data)
	if !MeetsDifficulty(hashHex, difficulty) {
		return false, phi.Structure{}, GateDifficulty
	}

	structure := p.composer.Compute(data)
	if !p.cfg.Weights.ConsciousnessOK(structure.PhiTotal, structure.FanoScore, structure.QGScore, nNodes) {
		return false, structure, GateConsciousness
	}

	if structure.QGScore < p.cfg.QGThreshold {
		return false, structure, GateQGCurvature
	}

	return true, structure, GateNone
}

// maxDifficultyBits is the bit width of the hash space. Difficulty integers
// whose bit length would exceed it are clamped so the computed target never
// falls below 1 — preserving "impossible difficulty yields no acceptance"
// (spec.md §9) for difficulty values at or beyond 2^256.
//
// spec.md §6 types difficulty as u64, but §8 scenario 2 exercises
// difficulty = 2^256 - 1, which cannot be represented in a uint64. Since the
// source this was distilled from carries difficulty as an arbitrary-
// precision Python int, MeetsDifficulty and the mining loop accept
// difficulty as *big.Int (n_nodes and max_attempts remain uint64, matching
// spec.md §6 exactly) — see DESIGN.md's Open Question resolution.
const maxDifficultyBits = 256

// MeetsDifficulty reports whether hashHex (a 64-char hex digest) is
// numerically below the difficulty target 2^(256 - bitLength(difficulty)).
// difficulty <= 0 always passes (no work required).
func MeetsDifficulty(hashHex string, difficulty *big.Int) bool {
	if difficulty == nil || difficulty.Sign() <= 0 {
		return true
	}
	bitLen := difficulty.BitLen()
	if bitLen > maxDifficultyBits {
		bitLen = maxDifficultyBits
	}
	exp := maxDifficultyBits - bitLen

	target := new(big.Int).Lsh(big.NewInt(1), uint(exp))

	hashInt, ok := new(big.Int).SetString(hashHex, 16)
	if !ok {
		return false
	}
	return hashInt.Cmp(target) < 0
}
