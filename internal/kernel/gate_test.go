package kernel

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetsDifficultyZeroAlwaysPasses(t *testing.T) {
	assert.True(t, MeetsDifficulty(strings.Repeat("f", 64), big.NewInt(0)))
	assert.True(t, MeetsDifficulty(strings.Repeat("f", 64), nil))
}

func TestMeetsDifficultyAllZerosAlwaysPasses(t *testing.T) {
	assert.True(t, MeetsDifficulty(strings.Repeat("0", 64), big.NewInt(1000)))
}

func TestMeetsDifficultyAllOnesNeverPasses(t *testing.T) {
	assert.False(t, MeetsDifficulty(strings.Repeat("f", 64), big.NewInt(1)))
}

func TestMeetsDifficultyNonIncreasingInDifficulty(t *testing.T) {
	hash := strings.Repeat("7", 64)
	var lastResult *bool
	for _, d := range []int64{1, 10, 1000, 1 << 20} {
		res := MeetsDifficulty(hash, big.NewInt(d))
		if lastResult != nil && !*lastResult {
			assert.False(t, res, "once false, must stay false as difficulty grows")
		}
		lastResult = &res
	}
}

func TestMeetsDifficultyImpossibleDifficulty(t *testing.T) {
	maxDifficulty := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	assert.False(t, MeetsDifficulty(strings.Repeat("0", 63)+"1", maxDifficulty))
}

func TestEvaluateShortCircuitsOnDifficulty(t *testing.T) {
	p := newPipeline(DefaultConfig())
	valid, structure, gate := p.Evaluate([]byte("anything"), new(big.Int).Lsh(big.NewInt(1), 256), 1)
	assert.False(t, valid)
	assert.Equal(t, GateDifficulty, gate)
	assert.Equal(t, 0.0, structure.PhiTotal)
}

func TestEvaluateConsciousnessGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QGThreshold = 0
	p := newPipeline(cfg)
	// n_nodes extremely high pushes the consciousness threshold (log2 n) out of reach.
	valid, _, gate := p.Evaluate([]byte("cons-probe"), big.NewInt(1), 1<<20)
	assert.False(t, valid)
	assert.Equal(t, GateConsciousness, gate)
}
