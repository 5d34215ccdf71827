package kernel

import (
	"context"
	"math/big"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/chimera-pool/quantum-gravity-miner/internal/metrics"
	"github.com/chimera-pool/quantum-gravity-miner/internal/phi"
	"github.com/chimera-pool/quantum-gravity-miner/internal/spectral"
)

// Result is the outcome of a single Mine/MineWithStats/MineParallel call.
// Nonce and BlockHash are nil when the search exhausted MaxAttempts without
// finding a valid candidate; every score field is then 0 and PhiScore is
// the legacy floor, 200.
type Result struct {
	Nonce     *uint64
	BlockHash *string
	PhiTotal  float64
	QGScore   float64
	HoloScore float64
	FanoScore float64
	PhiScore  float64
	Attempts  uint64
}

func emptyResult(attempts uint64) Result {
	return Result{Attempts: attempts, PhiScore: 200.0}
}

// Stats accumulates per-gate rejection counts across a MineWithStats or
// MineParallelWithStats call. On a successful search the four breakdown
// counters sum to TotalAttempts and Accepted is 1.
type Stats struct {
	TotalAttempts         uint64
	DifficultyRejected    uint64
	ConsciousnessRejected uint64
	QGCurvatureRejected   uint64
	Accepted              uint64
}

// encodeCandidate concatenates blockData with the decimal (no leading
// zeros, no sign) ASCII representation of nonce, UTF-8 encoded. This is
// the wire-contract byte encoding from spec.md §6.
func encodeCandidate(blockData string, nonce uint64) []byte {
	buf := make([]byte, 0, len(blockData)+20)
	buf = append(buf, blockData...)
	buf = strconv.AppendUint(buf, nonce, 10)
	return buf
}

// Mine searches nonces 0, 1, 2, ... in ascending order for the first one
// whose candidate bytes pass all three gates, stopping after maxAttempts
// iterations without a match.
func (p *Pipeline) Mine(blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) Result {
	hasher := spectral.NewHasher()
	for nonce := uint64(0); nonce < maxAttempts; nonce++ {
		data := encodeCandidate(blockData, nonce)
		valid, structure, _ := p.Evaluate(data, difficulty, nNodes)
		if valid {
			return acceptedResult(hasher, data, nonce, structure)
		}
	}
	return emptyResult(maxAttempts)
}

// MineWithStats behaves like Mine but also returns the per-gate rejection
// breakdown for every nonce tried.
func (p *Pipeline) MineWithStats(blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) (Result, Stats) {
	hasher := spectral.NewHasher()
	var stats Stats
	for nonce := uint64(0); nonce < maxAttempts; nonce++ {
		stats.TotalAttempts++
		if p.recorder != nil {
			p.recorder.RecordAttempt()
		}
		data := encodeCandidate(blockData, nonce)
		valid, structure, gate := p.Evaluate(data, difficulty, nNodes)

		switch gate {
		case GateDifficulty:
			stats.DifficultyRejected++
			if p.recorder != nil {
				p.recorder.RecordRejection(gate)
			}
			continue
		case GateConsciousness:
			stats.ConsciousnessRejected++
			if p.recorder != nil {
				p.recorder.RecordRejection(gate)
			}
			continue
		case GateQGCurvature:
			stats.QGCurvatureRejected++
			if p.recorder != nil {
				p.recorder.RecordRejection(gate)
			}
			continue
		}

		if valid {
			stats.Accepted = 1
			result := acceptedResult(hasher, data, nonce, structure)
			if p.recorder != nil {
				p.recorder.RecordAccepted(result.PhiTotal, result.QGScore)
			}
			return result, stats
		}
	}
	return emptyResult(maxAttempts), stats
}

// SetRecorder attaches a metrics.Recorder that MineWithStats and
// MineParallelWithStats instrument as they run. Passing nil detaches it.
func (p *Pipeline) SetRecorder(r *metrics.Recorder) {
	p.recorder = r
}

func acceptedResult(hasher *spectral.Hasher, data []byte, nonce uint64, structure phi.Structure) Result {
	hashHex := hasher.Signature(data)
	n := nonce
	h := hashHex
	return Result{
		Nonce:     &n,
		BlockHash: &h,
		PhiTotal:  structure.PhiTotal,
		QGScore:   structure.QGScore,
		HoloScore: structure.HoloScore,
		FanoScore: structure.FanoScore,
		PhiScore:  phi.Legacy(structure.PhiTotal),
		Attempts:  nonce + 1,
	}
}

// MineParallel shards the nonce space [0, maxAttempts) across the given
// number of workers (Kernel.MineParallel passes runtime.GOMAXPROCS(0)) and
// returns as soon as any worker finds a
// valid candidate, cancelling the rest via ctx. The winning nonce is
// whichever shard found one first, not necessarily the smallest — spec.md
// §5 explicitly permits forfeiting the smallest-nonce guarantee once the
// search is parallelized.
func (p *Pipeline) MineParallel(ctx context.Context, workers int, blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) Result {
	result, _ := p.mineParallel(ctx, workers, blockData, difficulty, nNodes, maxAttempts, false)
	return result
}

// MineParallelWithStats is the sharded counterpart of MineWithStats. The
// four breakdown counters are accumulated across workers with atomics so
// their sum still equals TotalAttempts even though nonces are no longer
// tried in a single sequential stream.
func (p *Pipeline) MineParallelWithStats(ctx context.Context, workers int, blockData string, difficulty *big.Int, nNodes, maxAttempts uint64) (Result, Stats) {
	return p.mineParallel(ctx, workers, blockData, difficulty, nNodes, maxAttempts, true)
}

func (p *Pipeline) mineParallel(ctx context.Context, workers int, blockData string, difficulty *big.Int, nNodes, maxAttempts uint64, withStats bool) (Result, Stats) {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts == 0 {
		return emptyResult(0), Stats{}
	}

	shardSize := (maxAttempts + uint64(workers) - 1) / uint64(workers)

	var (
		difficultyRejected    uint64
		consciousnessRejected uint64
		qgCurvatureRejected   uint64
		totalAttempts         uint64
		winner                atomic.Value // stores Result
	)

	grpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, grpCtx := errgroup.WithContext(grpCtx)

	for w := 0; w < workers; w++ {
		start := uint64(w) * shardSize
		end := start + shardSize
		if end > maxAttempts {
			end = maxAttempts
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			hasher := spectral.NewHasher()
			for nonce := start; nonce < end; nonce++ {
				select {
				case <-grpCtx.Done():
					return nil
				default:
				}

				if withStats {
					atomic.AddUint64(&totalAttempts, 1)
					if p.recorder != nil {
						p.recorder.RecordAttempt()
					}
				}
				data := encodeCandidate(blockData, nonce)
				valid, structure, gate := p.Evaluate(data, difficulty, nNodes)

				if withStats {
					switch gate {
					case GateDifficulty:
						atomic.AddUint64(&difficultyRejected, 1)
					case GateConsciousness:
						atomic.AddUint64(&consciousnessRejected, 1)
					case GateQGCurvature:
						atomic.AddUint64(&qgCurvatureRejected, 1)
					}
					if gate != GateNone && p.recorder != nil {
						p.recorder.RecordRejection(gate)
					}
				}

				if valid {
					result := acceptedResult(hasher, data, nonce, structure)
					if p.recorder != nil {
						p.recorder.RecordAccepted(result.PhiTotal, result.QGScore)
					}
					winner.Store(result)
					cancel()
					return nil
				}
			}
			return nil
		})
	}

	_ = g.Wait()

	stats := Stats{
		TotalAttempts:         totalAttempts,
		DifficultyRejected:    difficultyRejected,
		ConsciousnessRejected: consciousnessRejected,
		QGCurvatureRejected:   qgCurvatureRejected,
	}

	if v := winner.Load(); v != nil {
		res := v.(Result)
		stats.Accepted = 1
		return res, stats
	}
	return emptyResult(maxAttempts), stats
}
