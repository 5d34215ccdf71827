package phi

import "math"

// Weights holds the per-component weights of the Φ_total composite. The
// defaults sum to 1.0, which keeps Φ_total in [0, 1] without needing its
// own clip in the common case (it is still clipped defensively).
type Weights struct {
	Alpha   float64 // phi_tau
	Beta    float64 // gwt_s
	Gamma   float64 // icp_avg
	Delta   float64 // fano_score (also used by the consciousness gate)
	Epsilon float64 // phi_nab
	Zeta    float64 // qg_score (also used by the consciousness gate)
	Eta     float64 // holo_score
}

// DefaultWeights returns the kernel's default weighting scheme
// (0.30, 0.15, 0.15, 0.15, 0.10, 0.10, 0.05), summing to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Alpha:   0.30,
		Beta:    0.15,
		Gamma:   0.15,
		Delta:   0.15,
		Epsilon: 0.10,
		Zeta:    0.10,
		Eta:     0.05,
	}
}

// Composer evaluates the seven component scores for a candidate and
// combines them into a full Structure.
type Composer struct {
	engine  *Engine
	weights Weights
}

// NewComposer builds a Composer over the given node/temporal-depth engine
// and weight scheme.
func NewComposer(engine *Engine, weights Weights) *Composer {
	return &Composer{engine: engine, weights: weights}
}

// Compute evaluates all seven components for data and returns the full
// Structure, including the weighted, clipped Φ_total composite.
func (c *Composer) Compute(data []byte) Structure {
	s := Structure{
		PhiTau:    c.engine.PhiTau(data),
		GWTScore:  c.engine.GWTScore(data),
		ICPAvg:    c.engine.ICPAvg(data),
		FanoScore: c.engine.FanoScore(data),
		PhiNab:    c.engine.PhiNab(data),
		QGScore:   c.engine.QGScore(data),
		HoloScore: c.engine.HoloScore(data),
	}
	w := c.weights
	total := w.Alpha*s.PhiTau + w.Beta*s.GWTScore + w.Gamma*s.ICPAvg +
		w.Delta*s.FanoScore + w.Epsilon*s.PhiNab + w.Zeta*s.QGScore + w.Eta*s.HoloScore
	s.PhiTotal = clip01(total)
	return s
}

// Legacy remaps a Φ_total in [0, 1] to the legacy phi_score range
// [200, 1000] external block-storage consumers expect.
func Legacy(phiTotal float64) float64 {
	v := 200.0 + 800.0*phiTotal
	if v < 200 {
		return 200
	}
	if v > 1000 {
		return 1000
	}
	return v
}

// ConsciousnessOK evaluates the strict consciousness gate:
//
//	Φ_total > log2(n) + δ·Φ_fano + ζ·Φ_qg
//
// nNodes is clamped to >= 1 so log2(n) never goes negative.
func (w Weights) ConsciousnessOK(phiTotal, fano, qg float64, nNodes uint64) bool {
	n := nNodes
	if n < 1 {
		n = 1
	}
	threshold := math.Log2(float64(n)) + w.Delta*fano + w.Zeta*qg
	return phiTotal > threshold
}
