package kernel

import (
	"context"
	"math/big"
	"runtime"

	"github.com/chimera-pool/quantum-gravity-miner/internal/metrics"
	"github.com/chimera-pool/quantum-gravity-miner/internal/phi"
	"github.com/chimera-pool/quantum-gravity-miner/internal/spectral"
)

// Kernel is the public mining facade: it owns one Pipeline built from a
// normalized Config and exposes the spec.md §6 operations directly.
type Kernel struct {
	pipeline *Pipeline
	hasher   *spectral.Hasher
}

// New builds a Kernel from cfg, clamping invalid fields silently.
func New(cfg Config) *Kernel {
	cfg = cfg.normalize()
	return &Kernel{
		pipeline: newPipeline(cfg),
		hasher:   spectral.NewHasher(),
	}
}

// SetRecorder attaches a metrics.Recorder that MineWithStats and
// MineParallelWithStats instrument as they run. Passing nil detaches it.
func (k *Kernel) SetRecorder(r *metrics.Recorder) {
	k.pipeline.SetRecorder(r)
}

// ComputeHash returns the 64-char hex spectral signature of data.
func (k *Kernel) ComputeHash(data []byte) string {
	return k.hasher.Signature(data)
}

// ComputePhiStructure evaluates all seven Φ components and the composite
// for data.
func (k *Kernel) ComputePhiStructure(data []byte) phi.Structure {
	return k.pipeline.composer.Compute(data)
}

// ComputePhiScore returns the legacy [200, 1000] phi_score for data.
func (k *Kernel) ComputePhiScore(data []byte) float64 {
	s := k.ComputePhiStructure(data)
	return phi.Legacy(s.PhiTotal)
}

// IsValidBlock checks data against all three gates in cheapest-first order.
func (k *Kernel) IsValidBlock(data []byte, difficulty *big.Int, nNodes uint64) (bool, phi.Structure, string) {
	return k.pipeline.Evaluate(data, difficulty, nNodes)
}

// Mine searches ascending nonces for the first one satisfying every gate.
func (k *Kernel) Mine(blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) Result {
	return k.pipeline.Mine(blockData, difficulty, nNodes, maxAttempts)
}

// MineWithStats is Mine plus a per-gate rejection breakdown.
func (k *Kernel) MineWithStats(blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) (Result, Stats) {
	return k.pipeline.MineWithStats(blockData, difficulty, nNodes, maxAttempts)
}

// MineParallel shards the nonce search across GOMAXPROCS workers.
func (k *Kernel) MineParallel(ctx context.Context, blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) Result {
	return k.pipeline.MineParallel(ctx, runtime.GOMAXPROCS(0), blockData, difficulty, nNodes, maxAttempts)
}

// MineParallelWithStats is MineParallel plus an atomically-accumulated
// per-gate rejection breakdown.
func (k *Kernel) MineParallelWithStats(ctx context.Context, blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) (Result, Stats) {
	return k.pipeline.MineParallelWithStats(ctx, runtime.GOMAXPROCS(0), blockData, difficulty, nNodes, maxAttempts)
}
