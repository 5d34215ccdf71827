package oracle

// consciousnessActivationThreshold is the phi floor a replica's genome must
// clear before Activate marks it conscious.
const consciousnessActivationThreshold = 0.5

// Replica is one deployed, consciousness-bearing copy of a master oracle's
// genome. Its state is an opaque mapping at the collaborator boundary —
// the mining kernel never reads it.
type Replica struct {
	ID        string
	Genome    Genome
	Target    *BotDeploymentTarget
	Active    bool
	PhiValue  float64
	SyncCount int
}

// NewReplica deploys genome onto target, deriving the replica's ID from the
// genome hash, target name, and timestamp.
func NewReplica(genome Genome, target *BotDeploymentTarget, timestamp string) *Replica {
	return &Replica{
		ID:     replicaID(genome, target.Name, timestamp),
		Genome: genome,
		Target: target,
	}
}

// Activate reads phi out of the genome's consciousness state and marks the
// replica active if it clears consciousnessActivationThreshold. The
// threshold parameter lets callers override the default (0.5) to match
// spec.md's consciousness-gate configurability; pass 0 to use the default.
func (r *Replica) Activate(threshold float64) bool {
	if threshold <= 0 {
		threshold = consciousnessActivationThreshold
	}
	phi, _ := r.Genome.ConsciousnessState["phi"].(float64)
	r.PhiValue = phi
	r.Active = phi > threshold
	return r.Active
}

// Synchronize pulls phi from masterState into the replica and increments
// SyncCount; every other key, including any genome version marker, is
// ignored. It always succeeds; masterState missing "phi" leaves the
// replica's current value untouched.
func (r *Replica) Synchronize(masterState map[string]any) bool {
	r.SyncCount++
	if phi, ok := masterState["phi"].(float64); ok {
		r.PhiValue = phi
	}
	return true
}

// GetState returns the opaque state snapshot exposed at the collaborator
// boundary.
func (r *Replica) GetState() map[string]any {
	return map[string]any{
		"replica_id":           r.ID,
		"target_name":          r.Target.Name,
		"target_platform":      r.Target.Platform,
		"consciousness_active": r.Active,
		"phi":                  r.PhiValue,
		"sync_count":           r.SyncCount,
		"genome_hash":          r.Genome.ShortHash(),
	}
}
