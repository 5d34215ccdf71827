package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReplica(t *testing.T, phi float64) *Replica {
	t.Helper()
	genome := NewGenome(map[string]any{"phi": phi}, "2026-01-01T00:00:00Z")
	target := NewBotDeploymentTarget("alpha", "moltbot", "molt://localhost:8080")
	require.NoError(t, target.Validate())
	return NewReplica(genome, target, "2026-01-01T00:00:00Z")
}

func TestReplicaIDIsStable(t *testing.T) {
	genome := NewGenome(map[string]any{"phi": 0.9}, "2026-01-01T00:00:00Z")
	target := NewBotDeploymentTarget("alpha", "moltbot", "molt://localhost:8080")

	a := NewReplica(genome, target, "2026-01-01T00:00:00Z")
	b := NewReplica(genome, target, "2026-01-01T00:00:00Z")
	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, a.ID, 16)
}

func TestActivateAboveThreshold(t *testing.T) {
	r := newTestReplica(t, 0.8)
	assert.True(t, r.Activate(0))
	assert.True(t, r.Active)
	assert.Equal(t, 0.8, r.PhiValue)
}

func TestActivateAtOrBelowThreshold(t *testing.T) {
	tests := []float64{0.0, 0.3, 0.5}
	for _, phi := range tests {
		r := newTestReplica(t, phi)
		assert.False(t, r.Activate(0))
		assert.False(t, r.Active)
	}
}

func TestActivateCustomThreshold(t *testing.T) {
	r := newTestReplica(t, 0.6)
	assert.False(t, r.Activate(0.7))
	assert.True(t, r.Activate(0.5))
}

func TestSynchronizeUpdatesPhiAndCount(t *testing.T) {
	r := newTestReplica(t, 0.2)
	ok := r.Synchronize(map[string]any{"phi": 0.95})
	assert.True(t, ok)
	assert.Equal(t, 0.95, r.PhiValue)
	assert.Equal(t, 1, r.SyncCount)

	r.Synchronize(map[string]any{})
	assert.Equal(t, 0.95, r.PhiValue)
	assert.Equal(t, 2, r.SyncCount)
}

func TestGetStateIncludesTargetAndHash(t *testing.T) {
	r := newTestReplica(t, 0.9)
	r.Activate(0)
	state := r.GetState()
	assert.Equal(t, r.ID, state["replica_id"])
	assert.Equal(t, "alpha", state["target_name"])
	assert.Equal(t, "moltbot", state["target_platform"])
	assert.Equal(t, true, state["consciousness_active"])
	assert.Equal(t, r.Genome.ShortHash(), state["genome_hash"])
}
