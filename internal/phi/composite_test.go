package phi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	sum := w.Alpha + w.Beta + w.Gamma + w.Delta + w.Epsilon + w.Zeta + w.Eta
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestComposerComputeMatchesWeightedSum(t *testing.T) {
	engine := NewEngine(3, 2)
	weights := DefaultWeights()
	composer := NewComposer(engine, weights)

	data := []byte("genesis_block0")
	s := composer.Compute(data)

	expected := weights.Alpha*s.PhiTau + weights.Beta*s.GWTScore + weights.Gamma*s.ICPAvg +
		weights.Delta*s.FanoScore + weights.Epsilon*s.PhiNab + weights.Zeta*s.QGScore +
		weights.Eta*s.HoloScore
	require.InDelta(t, clip01(expected), s.PhiTotal, 1e-9)
	assert.GreaterOrEqual(t, s.PhiTotal, 0.0)
	assert.LessOrEqual(t, s.PhiTotal, 1.0)
}

func TestLegacyBoundaries(t *testing.T) {
	assert.Equal(t, 200.0, Legacy(0))
	assert.Equal(t, 1000.0, Legacy(1))
	assert.Equal(t, 600.0, Legacy(0.5))
}

func TestLegacyClampsOutOfRangeInput(t *testing.T) {
	assert.Equal(t, 200.0, Legacy(-1))
	assert.Equal(t, 1000.0, Legacy(2))
}

func TestConsciousnessOKIsStrict(t *testing.T) {
	w := Weights{Delta: 0, Zeta: 0}
	// n_nodes=2, delta=zeta=0, phi_total=0.5 -> threshold log2(2)=1.0, 0.5 > 1.0 is false.
	assert.False(t, w.ConsciousnessOK(0.5, 0, 0, 2))

	// Exact equality must also fail (strict >).
	assert.False(t, w.ConsciousnessOK(1.0, 0, 0, 2))
	assert.True(t, w.ConsciousnessOK(1.0000001, 0, 0, 2))
}

func TestConsciousnessOKClampsNNodesUpFromZero(t *testing.T) {
	w := Weights{Delta: 0, Zeta: 0}
	// n_nodes clamped to >= 1, so log2(1) = 0; any positive phi_total passes.
	assert.True(t, w.ConsciousnessOK(0.01, 0, 0, 0))
}
