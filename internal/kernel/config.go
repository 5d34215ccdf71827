// Package kernel wires the spectral hash, the IIT Φ composite, and the
// three-gate mining loop into the public Kernel facade.
package kernel

import "github.com/chimera-pool/quantum-gravity-miner/internal/phi"

// Config holds the tunable knobs of a Kernel. Invalid values are clamped
// silently at construction time rather than surfaced as errors, per
// spec.md §7's configuration error-handling policy.
type Config struct {
	Weights       phi.Weights
	NNodes        int
	TemporalDepth int
	QGThreshold   float64
}

// DefaultConfig returns the kernel's default tuning: the default weight
// scheme, 3 IIT nodes, temporal depth 2, and a QG curvature floor of 0.10.
func DefaultConfig() Config {
	return Config{
		Weights:       phi.DefaultWeights(),
		NNodes:        3,
		TemporalDepth: 2,
		QGThreshold:   0.10,
	}
}

// normalize clamps NNodes (>=2), TemporalDepth (>=1), and QGThreshold
// (into [0,1]) — mirrors IITv8Engine.__init__ and
// QuantumGravityMinerIITv8.__init__ in the original source.
func (c Config) normalize() Config {
	if c.NNodes < 2 {
		c.NNodes = 2
	}
	if c.TemporalDepth < 1 {
		c.TemporalDepth = 1
	}
	if c.QGThreshold < 0 {
		c.QGThreshold = 0
	}
	if c.QGThreshold > 1 {
		c.QGThreshold = 1
	}
	return c
}
